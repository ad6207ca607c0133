package calculations

import (
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-mutualfund-go/pkg/utils"
)

// SIPFutureValue возвращает будущую стоимость регулярных ежемесячных взносов
// (взнос в начале месяца): FV = P * [((1 + r)^m - 1) / r] * (1 + r), r = R/12/100.
func SIPFutureValue(monthlyAmount, annualRatePercent float64, months int) float64 {
	r := annualRatePercent / 12.0 / 100.0
	m := float64(months)

	if r == 0.0 {
		return monthlyAmount * m
	}
	return monthlyAmount * ((math.Pow(1.0+r, m) - 1.0) / r) * (1.0 + r)
}

// LumpsumFutureValue возвращает будущую стоимость разового вложения
// при ежегодной капитализации: FV = P * (1 + R/100)^n
func LumpsumFutureValue(principal, annualRatePercent float64, years int) float64 {
	return principal * math.Pow(1.0+annualRatePercent/100.0, float64(years))
}

// ComputeSIP рассчитывает SIP с ежемесячным взносом на заданный срок
func ComputeSIP(params InvestmentParameters) (*CalculationResult, error) {
	return ComputePhased(PhasedParameters{
		Mode:              ModeSIP,
		Amount:            params.Amount,
		AnnualRatePercent: params.AnnualRatePercent,
		InvestYears:       params.Years,
		StartDate:         params.StartDate,
	})
}

// ComputeLumpsum рассчитывает разовое вложение на заданный срок
func ComputeLumpsum(params InvestmentParameters) (*CalculationResult, error) {
	return ComputePhased(PhasedParameters{
		Mode:              ModeLumpsum,
		Amount:            params.Amount,
		AnnualRatePercent: params.AnnualRatePercent,
		InvestYears:       params.Years,
		StartDate:         params.StartDate,
	})
}

// ComputePhased рассчитывает две последовательные фазы: InvestYears лет
// базового расчета (SIP или Lumpsum) и HoldYears лет роста без новых взносов.
// При HoldYears == 0 результат совпадает с обычным расчетом.
func ComputePhased(params PhasedParameters) (*CalculationResult, error) {
	if err := checkPhased(params); err != nil {
		return nil, err
	}

	breakdown := Breakdown(params)

	// итог берется из последней строки разбивки, чтобы они совпадали
	last := breakdown[len(breakdown)-1]
	invest := breakdown[params.InvestYears-1]

	if !utils.IsFinite(last.Value) {
		return nil, fmt.Errorf("%w: итоговая стоимость переполнилась (проверьте ставку/срок/сумму)", ErrInvalidParameter)
	}

	return &CalculationResult{
		Mode:       params.Mode,
		Parameters: params,
		Projection: ProjectionResult{
			FinalValue:           last.Value,
			TotalInvested:        last.CumulativeInvested,
			TotalGain:            last.CumulativeGain,
			GainPercentage:       utils.Percentage(last.CumulativeGain, last.CumulativeInvested),
			MaturityAfterInvest:  invest.Value,
			GainDuringInvestment: invest.CumulativeGain,
		},
		Breakdown: breakdown,
	}, nil
}

func checkPhased(p PhasedParameters) error {
	if p.Mode != ModeSIP && p.Mode != ModeLumpsum {
		return fmt.Errorf("%w: неизвестный режим %q", ErrInvalidParameter, p.Mode)
	}
	if !utils.AllFinite(p.Amount, p.AnnualRatePercent) {
		return fmt.Errorf("%w: сумма и ставка должны быть конечными", ErrInvalidParameter)
	}
	if p.Amount < 0 {
		return fmt.Errorf("%w: сумма не может быть отрицательной: %v", ErrInvalidParameter, p.Amount)
	}
	if p.InvestYears < 0 || p.HoldYears < 0 {
		return fmt.Errorf("%w: длительности фаз не могут быть отрицательными", ErrInvalidParameter)
	}
	if p.InvestYears == 0 {
		if p.HoldYears == 0 {
			return fmt.Errorf("%w: срок должен быть не меньше 1 года", ErrInvalidParameter)
		}
		return fmt.Errorf("%w: без фазы инвестирования нечего удерживать", ErrDegenerateInput)
	}

	// 1 + r ≤ 0 дает неопределенный (или знакопеременный) член капитализации
	if 1.0+p.AnnualRatePercent/100.0 <= 0 {
		return fmt.Errorf("%w: при ставке %v%% капитализация не определена", ErrInvalidParameter, p.AnnualRatePercent)
	}
	return nil
}
