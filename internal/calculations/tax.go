package calculations

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// ComputeTax применяет налоговые правила к приросту капитала.
// Прирост ≤ 0 не облагается. Суммы считаются в decimal и округляются до 2 знаков.
func ComputeTax(rules *taxrules.Rules, in TaxInput) (*TaxResult, error) {
	if rules == nil {
		return nil, fmt.Errorf("%w: не заданы налоговые правила", ErrInvalidParameter)
	}
	if !utils.AllFinite(in.Gain, in.PreTaxMaturity) {
		return nil, fmt.Errorf("%w: прирост и итоговая сумма должны быть конечными", ErrInvalidParameter)
	}

	result := &TaxResult{
		FiscalYear:     rules.FiscalYear,
		FundType:       in.FundType,
		PreTaxGain:     utils.Round2(in.Gain),
		PreTaxMaturity: utils.Round2(in.PreTaxMaturity),
	}

	gain := decimal.NewFromFloat(in.Gain)
	var tax decimal.Decimal

	switch in.FundType {
	case FundEquity:
		if in.HoldingPeriodMonths < 0 {
			return nil, fmt.Errorf("%w: срок владения не может быть отрицательным", ErrInvalidParameter)
		}
		months := in.HoldingPeriodMonths
		result.HoldingPeriodMonths = &months

		if rules.Equity.IsLongTerm(in.HoldingPeriodMonths) {
			result.Classification = ClassLTCG
			result.TaxRateApplied = rules.Equity.LTCGRatePercent

			exemption := decimal.NewFromFloat(rules.Equity.LTCGExemption)
			if gain.GreaterThan(exemption) {
				tax = percentOf(gain.Sub(exemption), rules.Equity.LTCGRatePercent)
			}
		} else {
			result.Classification = ClassSTCG
			result.TaxRateApplied = rules.Equity.STCGRatePercent
			if gain.IsPositive() {
				tax = percentOf(gain, rules.Equity.STCGRatePercent)
			}
		}

	case FundDebt:
		if !rules.Debt.HasSlab(in.SlabRatePercent) {
			return nil, fmt.Errorf("%w: ставка слэба %v%% не входит в %v", ErrInvalidParameter,
				in.SlabRatePercent, rules.Debt.SlabRatesPercent)
		}
		result.Classification = ClassSlab
		slab := in.SlabRatePercent
		result.SlabRatePercent = &slab
		result.TaxRateApplied = in.SlabRatePercent
		if gain.IsPositive() {
			tax = percentOf(gain, in.SlabRatePercent)
		}

	default:
		return nil, fmt.Errorf("%w: неизвестный тип фонда %q", ErrInvalidParameter, in.FundType)
	}

	tax = tax.Round(2)
	result.TaxAmount = tax.InexactFloat64()
	result.TaxApplicable = tax.IsPositive()
	result.GainAfterTax = gain.Sub(tax).Round(2).InexactFloat64()
	result.PostTaxMaturity = decimal.NewFromFloat(in.PreTaxMaturity).Sub(tax).Round(2).InexactFloat64()

	if gain.IsPositive() {
		result.EffectiveTaxRatePercent = tax.Div(gain).Mul(hundred).Round(2).InexactFloat64()
	}

	return result, nil
}

// TaxProjection облагает итог расчета налогом. Срок владения по умолчанию
// равен полному сроку расчета в месяцах.
func TaxProjection(rules *taxrules.Rules, result *CalculationResult, opts TaxOptions) (*TaxResult, error) {
	holding := opts.HoldingPeriodMonths
	if holding == 0 {
		holding = result.Parameters.TotalYears() * 12
	}

	return ComputeTax(rules, TaxInput{
		Gain:                result.Projection.TotalGain,
		FundType:            opts.FundType,
		HoldingPeriodMonths: holding,
		SlabRatePercent:     opts.SlabRatePercent,
		PreTaxMaturity:      result.Projection.FinalValue,
	})
}

func percentOf(amount decimal.Decimal, ratePercent float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(ratePercent)).Div(hundred)
}
