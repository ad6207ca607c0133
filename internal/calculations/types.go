package calculations

import "time"

// Mode - стратегия инвестирования
type Mode string

const (
	ModeSIP     Mode = "sip"
	ModeLumpsum Mode = "lumpsum"
)

// Phase - фаза, к которой относится строка разбивки
type Phase string

const (
	PhaseInvestment Phase = "investment"
	PhaseHold       Phase = "hold"
)

// FundType - тип фонда, определяющий налоговый режим
type FundType string

const (
	FundEquity FundType = "equity"
	FundDebt   FundType = "debt"
)

// Classification - классификация прироста для налогообложения
type Classification string

const (
	ClassLTCG Classification = "LTCG"
	ClassSTCG Classification = "STCG"
	ClassSlab Classification = "slab"
)

// InvestmentParameters - параметры простого (не фазового) расчета.
// Amount - ежемесячный взнос для SIP или начальная сумма для Lumpsum.
type InvestmentParameters struct {
	Amount            float64    `json:"amount"`
	AnnualRatePercent float64    `json:"annual_rate_percent"`
	Years             int        `json:"years"`
	StartDate         *time.Time `json:"start_date,omitempty"`
}

// PhasedParameters - параметры расчета "инвестирование, затем удержание"
type PhasedParameters struct {
	Mode              Mode       `json:"mode"`
	Amount            float64    `json:"amount"`
	AnnualRatePercent float64    `json:"annual_rate_percent"`
	InvestYears       int        `json:"invest_years"`
	HoldYears         int        `json:"hold_years"`
	StartDate         *time.Time `json:"start_date,omitempty"`
}

// TotalYears возвращает полную длительность обеих фаз
func (p PhasedParameters) TotalYears() int {
	return p.InvestYears + p.HoldYears
}

// ProjectionResult - итог расчета. TotalGain == FinalValue - TotalInvested.
type ProjectionResult struct {
	FinalValue           float64 `json:"final_value"`
	TotalInvested        float64 `json:"total_invested"`
	TotalGain            float64 `json:"total_gain"`
	GainPercentage       float64 `json:"gain_percentage"`
	MaturityAfterInvest  float64 `json:"maturity_after_investment"`
	GainDuringInvestment float64 `json:"gain_during_investment"`
}

// PeriodSnapshot - состояние инвестиции на конец года Period
type PeriodSnapshot struct {
	Period             int        `json:"period"`
	Phase              Phase      `json:"phase"`
	CumulativeInvested float64    `json:"cumulative_invested"`
	Value              float64    `json:"value"`
	CumulativeGain     float64    `json:"cumulative_gain"`
	PeriodEnd          *time.Time `json:"period_end,omitempty"`
}

// CalculationResult - результат расчета SIP/Lumpsum/фазового режима
type CalculationResult struct {
	Mode       Mode             `json:"mode"`
	Parameters PhasedParameters `json:"parameters"`
	Projection ProjectionResult `json:"projection"`
	Breakdown  []PeriodSnapshot `json:"breakdown"`
	Tax        *TaxResult       `json:"tax,omitempty"`
}

// TaxResult - результат налогового расчета. HoldingPeriodMonths задан только
// для equity, SlabRatePercent - только для debt; нулевые значения допустимы.
type TaxResult struct {
	FiscalYear              string         `json:"fiscal_year"`
	FundType                FundType       `json:"fund_type"`
	Classification          Classification `json:"classification"`
	HoldingPeriodMonths     *int           `json:"holding_period_months,omitempty"`
	SlabRatePercent         *float64       `json:"slab_rate_percent,omitempty"`
	TaxApplicable           bool           `json:"tax_applicable"`
	TaxRateApplied          float64        `json:"tax_rate_applied"`
	PreTaxGain              float64        `json:"pre_tax_gain"`
	TaxAmount               float64        `json:"tax_amount"`
	GainAfterTax            float64        `json:"gain_after_tax"`
	PreTaxMaturity          float64        `json:"pre_tax_maturity"`
	PostTaxMaturity         float64        `json:"post_tax_maturity"`
	EffectiveTaxRatePercent float64        `json:"effective_tax_rate_percent"`
}

// TaxInput - входные данные налогового калькулятора.
// HoldingPeriodMonths используется для equity, SlabRatePercent - для debt.
type TaxInput struct {
	Gain                float64  `json:"gain"`
	FundType            FundType `json:"fund_type"`
	HoldingPeriodMonths int      `json:"holding_period_months,omitempty"`
	SlabRatePercent     float64  `json:"slab_rate_percent,omitempty"`
	PreTaxMaturity      float64  `json:"pre_tax_maturity,omitempty"`
}

// TaxOptions включает налоговый расчет для проекции.
// HoldingPeriodMonths == 0 означает "весь срок инвестиции".
type TaxOptions struct {
	FundType            FundType `json:"fund_type"`
	SlabRatePercent     float64  `json:"slab_rate_percent,omitempty"`
	HoldingPeriodMonths int      `json:"holding_period_months,omitempty"`
}
