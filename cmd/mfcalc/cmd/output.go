package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/calculations"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/tools"
	"github.com/cloud-ru/mcp-mutualfund-go/pkg/utils"
)

// render печатает результат в выбранном формате (--output)
func render(w io.Writer, v interface{}) error {
	if outputFormat == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	switch r := v.(type) {
	case *calculations.CalculationResult:
		writeCalculation(tw, r)
	case *calculations.TaxResult:
		writeTax(tw, r)
	case *tools.ComparisonResponse:
		writeComparison(tw, r)
	case *calculations.RequiredReturn:
		fmt.Fprintf(tw, "Principal\t%s\n", utils.FormatINR(r.Principal))
		fmt.Fprintf(tw, "Target\t%s\n", utils.FormatINR(r.TargetAmount))
		fmt.Fprintf(tw, "Years\t%d\n", r.Years)
		fmt.Fprintf(tw, "Required return\t%.2f%%\n", r.RequiredReturnPercentage)
	case *taxrules.Rules:
		writeRules(tw, r)
	default:
		return fmt.Errorf("no table view for %T, use --output json", v)
	}
	return tw.Flush()
}

func writeCalculation(w io.Writer, r *calculations.CalculationResult) {
	p := r.Projection
	fmt.Fprintf(w, "Mode\t%s\n", r.Mode)
	fmt.Fprintf(w, "Total invested\t%s\n", utils.FormatINRWithLabel(p.TotalInvested))
	if r.Parameters.HoldYears > 0 {
		fmt.Fprintf(w, "Value after investment\t%s\n", utils.FormatINRWithLabel(p.MaturityAfterInvest))
		fmt.Fprintf(w, "Gain during investment\t%s\n", utils.FormatINR(p.GainDuringInvestment))
	}
	fmt.Fprintf(w, "Final value\t%s\n", utils.FormatINRWithLabel(p.FinalValue))
	fmt.Fprintf(w, "Total gain\t%s (%.2f%%)\n", utils.FormatINR(p.TotalGain), p.GainPercentage)

	if r.Tax != nil {
		fmt.Fprintln(w)
		writeTax(w, r.Tax)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Year\tPhase\tInvested\tValue\tGain\t")
	for _, s := range r.Breakdown {
		year := fmt.Sprintf("%d", s.Period)
		if s.PeriodEnd != nil {
			year = s.PeriodEnd.Format(tools.DateLayout)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", year, s.Phase,
			utils.FormatINR(s.CumulativeInvested), utils.FormatINR(s.Value), utils.FormatINR(s.CumulativeGain))
	}
}

func writeTax(w io.Writer, t *calculations.TaxResult) {
	fmt.Fprintf(w, "Tax rules\t%s\n", t.FiscalYear)
	fmt.Fprintf(w, "Fund type\t%s\n", t.FundType)
	fmt.Fprintf(w, "Classification\t%s\n", t.Classification)
	if t.HoldingPeriodMonths != nil {
		fmt.Fprintf(w, "Holding period\t%d months\n", *t.HoldingPeriodMonths)
	}
	if t.SlabRatePercent != nil {
		fmt.Fprintf(w, "Slab rate\t%.0f%%\n", *t.SlabRatePercent)
	}
	fmt.Fprintf(w, "Tax rate\t%.2f%%\n", t.TaxRateApplied)
	fmt.Fprintf(w, "Pre-tax gain\t%s\n", utils.FormatINR(t.PreTaxGain))
	fmt.Fprintf(w, "Tax\t%s\n", utils.FormatINR(t.TaxAmount))
	fmt.Fprintf(w, "Gain after tax\t%s\n", utils.FormatINR(t.GainAfterTax))
	if t.PreTaxMaturity > 0 {
		fmt.Fprintf(w, "Post-tax maturity\t%s\n", utils.FormatINRWithLabel(t.PostTaxMaturity))
	}
	fmt.Fprintf(w, "Effective tax rate\t%.2f%%\n", t.EffectiveTaxRatePercent)
}

func writeComparison(w io.Writer, c *tools.ComparisonResponse) {
	fmt.Fprintf(w, "\t%s\t%s\t\n", c.A.Label, c.B.Label)
	row := func(name string, a, b float64) {
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", name, utils.FormatINR(a), utils.FormatINR(b))
	}
	row("Total invested", c.A.Projection.TotalInvested, c.B.Projection.TotalInvested)
	row("Final value", c.A.Projection.FinalValue, c.B.Projection.FinalValue)
	row("Total gain", c.A.Projection.TotalGain, c.B.Projection.TotalGain)
	if c.A.Tax != nil && c.B.Tax != nil {
		row("Tax", c.A.Tax.TaxAmount, c.B.Tax.TaxAmount)
		row("Post-tax maturity", c.A.Tax.PostTaxMaturity, c.B.Tax.PostTaxMaturity)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Difference\t%s\n", utils.FormatINR(c.Difference))
	fmt.Fprintf(w, "Better option\t%s\n", c.BetterOption)
}

func writeRules(w io.Writer, r *taxrules.Rules) {
	fmt.Fprintf(w, "Fiscal year\t%s\n", r.FiscalYear)
	if r.Description != "" {
		fmt.Fprintf(w, "Description\t%s\n", r.Description)
	}
	fmt.Fprintf(w, "Equity long-term after\t%d months\n", r.Equity.LongTermThresholdMonths)
	fmt.Fprintf(w, "Equity LTCG\t%.2f%% above %s\n", r.Equity.LTCGRatePercent, utils.FormatINR(r.Equity.LTCGExemption))
	fmt.Fprintf(w, "Equity STCG\t%.2f%%\n", r.Equity.STCGRatePercent)
	fmt.Fprintf(w, "Debt slab rates\t%v\n", r.Debt.SlabRatesPercent)
	for _, s := range r.Debt.IncomeSlabs {
		upper := "and above"
		if s.Upper > 0 {
			upper = "up to " + utils.FormatINR(s.Upper)
		}
		fmt.Fprintf(w, "Income %s\t%.0f%%\n", upper, s.RatePercent)
	}
}
