package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-mutualfund-go/pkg/utils"
)

// Breakdown строит годовую разбивку: одна строка на каждый год с 1 по
// TotalYears. Параметры должны быть проверены вызывающей стороной
// (ComputePhased делает это сам).
func Breakdown(params PhasedParameters) []PeriodSnapshot {
	total := params.TotalYears()
	schedule := make([]PeriodSnapshot, 0, total)

	for k := 1; k <= total; k++ {
		schedule = append(schedule, SnapshotAt(params, k))
	}

	return schedule
}

// SnapshotAt возвращает состояние на конец года k. Чистая функция от k и
// параметров, поэтому разбивку можно строить с любого места.
func SnapshotAt(params PhasedParameters, k int) PeriodSnapshot {
	n1 := params.InvestYears

	phase := PhaseInvestment
	investYears := k
	if k > n1 {
		phase = PhaseHold
		investYears = n1
	}

	invested, value := investmentPhase(params, investYears)
	if phase == PhaseHold {
		// в фазе удержания взносов нет, стоимость растет от V1
		value *= math.Pow(1.0+params.AnnualRatePercent/100.0, float64(k-n1))
	}

	invested = utils.Round2(invested)
	value = utils.Round2(value)

	snapshot := PeriodSnapshot{
		Period:             k,
		Phase:              phase,
		CumulativeInvested: invested,
		Value:              value,
		CumulativeGain:     utils.Round2(value - invested),
	}

	if params.StartDate != nil {
		end := params.StartDate.AddDate(k, 0, 0)
		snapshot.PeriodEnd = &end
	}

	return snapshot
}

// investmentPhase возвращает вложенную сумму и стоимость после years лет
// базового расчета
func investmentPhase(params PhasedParameters, years int) (invested, value float64) {
	switch params.Mode {
	case ModeLumpsum:
		return params.Amount, LumpsumFutureValue(params.Amount, params.AnnualRatePercent, years)
	default:
		months := years * 12
		return params.Amount * float64(months), SIPFutureValue(params.Amount, params.AnnualRatePercent, months)
	}
}
