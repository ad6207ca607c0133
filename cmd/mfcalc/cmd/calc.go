package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/tools"
)

// taxFlags - общие флаги команд проекции: налог и дата начала
type taxFlags struct {
	enabled   bool
	fundType  string
	slab      float64
	holding   int
	startDate string
}

func (f *taxFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.enabled, "tax", false, "Calculate tax on the gain")
	cmd.Flags().StringVar(&f.fundType, "fund-type", "equity", "Fund type: equity or debt")
	cmd.Flags().Float64Var(&f.slab, "slab", 30, "Income tax slab rate for debt funds, %")
	cmd.Flags().IntVar(&f.holding, "holding-months", 0, "Holding period in months (default: full term)")
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "Start date YYYY-MM-DD for dated breakdown rows")
}

func (f *taxFlags) apply(params map[string]interface{}) {
	if f.startDate != "" {
		params["start_date"] = f.startDate
	}
	if !f.enabled {
		return
	}
	params["calculate_tax"] = true
	params["fund_type"] = f.fundType
	params["slab_rate_percent"] = f.slab
	if f.holding > 0 {
		params["holding_period_months"] = float64(f.holding)
	}
}

// runTool вызывает обработчик инструмента и печатает результат
func runTool(cmd *cobra.Command, name string, params map[string]interface{}) error {
	handler, ok := tools.Registry(app.deps)[name]
	if !ok {
		return fmt.Errorf("unknown tool %q", name)
	}
	result, err := handler(cmd.Context(), params)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), result)
}

var (
	sipAmount float64
	sipRate   float64
	sipYears  int
	sipTax    taxFlags
)

var sipCmd = &cobra.Command{
	Use:   "sip",
	Short: "Project a monthly SIP",
	Example: `  mfcalc sip --amount 10000 --rate 12 --years 10
  mfcalc sip --amount 5000 --rate 10 --years 5 --tax --fund-type debt --slab 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{
			"monthly_amount":      sipAmount,
			"annual_rate_percent": sipRate,
			"years":               float64(sipYears),
		}
		sipTax.apply(params)
		return runTool(cmd, "sip_calculator", params)
	},
}

func init() {
	sipCmd.Flags().Float64Var(&sipAmount, "amount", 0, "Monthly contribution")
	sipCmd.Flags().Float64Var(&sipRate, "rate", 0, "Expected annual return, %")
	sipCmd.Flags().IntVar(&sipYears, "years", 0, "Investment duration in years")
	_ = sipCmd.MarkFlagRequired("amount")
	_ = sipCmd.MarkFlagRequired("rate")
	_ = sipCmd.MarkFlagRequired("years")
	sipTax.register(sipCmd)
	rootCmd.AddCommand(sipCmd)
}

var (
	lumpsumPrincipal float64
	lumpsumRate      float64
	lumpsumYears     int
	lumpsumTax       taxFlags
)

var lumpsumCmd = &cobra.Command{
	Use:     "lumpsum",
	Short:   "Project a one-time investment",
	Example: `  mfcalc lumpsum --principal 100000 --rate 12 --years 10 --tax`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{
			"principal":           lumpsumPrincipal,
			"annual_rate_percent": lumpsumRate,
			"years":               float64(lumpsumYears),
		}
		lumpsumTax.apply(params)
		return runTool(cmd, "lumpsum_calculator", params)
	},
}

func init() {
	lumpsumCmd.Flags().Float64Var(&lumpsumPrincipal, "principal", 0, "Initial investment")
	lumpsumCmd.Flags().Float64Var(&lumpsumRate, "rate", 0, "Expected annual return, %")
	lumpsumCmd.Flags().IntVar(&lumpsumYears, "years", 0, "Investment duration in years")
	_ = lumpsumCmd.MarkFlagRequired("principal")
	_ = lumpsumCmd.MarkFlagRequired("rate")
	_ = lumpsumCmd.MarkFlagRequired("years")
	lumpsumTax.register(lumpsumCmd)
	rootCmd.AddCommand(lumpsumCmd)
}

var (
	phasedMode        string
	phasedAmount      float64
	phasedRate        float64
	phasedInvestYears int
	phasedHoldYears   int
	phasedTax         taxFlags
)

var phasedCmd = &cobra.Command{
	Use:     "phased",
	Short:   "Invest for some years, then hold without new contributions",
	Example: `  mfcalc phased --mode sip --amount 10000 --rate 12 --invest-years 5 --hold-years 5`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{
			"mode":                phasedMode,
			"amount":              phasedAmount,
			"annual_rate_percent": phasedRate,
			"invest_years":        float64(phasedInvestYears),
			"hold_years":          float64(phasedHoldYears),
		}
		phasedTax.apply(params)
		return runTool(cmd, "phased_calculator", params)
	},
}

func init() {
	phasedCmd.Flags().StringVar(&phasedMode, "mode", "sip", "Investment mode: sip or lumpsum")
	phasedCmd.Flags().Float64Var(&phasedAmount, "amount", 0, "Monthly contribution (sip) or principal (lumpsum)")
	phasedCmd.Flags().Float64Var(&phasedRate, "rate", 0, "Expected annual return, %")
	phasedCmd.Flags().IntVar(&phasedInvestYears, "invest-years", 0, "Years of active investment")
	phasedCmd.Flags().IntVar(&phasedHoldYears, "hold-years", 0, "Years of holding after the investment phase")
	_ = phasedCmd.MarkFlagRequired("amount")
	_ = phasedCmd.MarkFlagRequired("rate")
	_ = phasedCmd.MarkFlagRequired("invest-years")
	phasedTax.register(phasedCmd)
	rootCmd.AddCommand(phasedCmd)
}

var (
	taxGain     float64
	taxFundType string
	taxSlab     float64
	taxHolding  int
	taxMaturity float64
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Tax on a realized capital gain",
	Example: `  mfcalc tax --gain 200000 --fund-type equity --holding-months 24
  mfcalc tax --gain 50000 --fund-type debt --slab 20`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]interface{}{
			"gain":      taxGain,
			"fund_type": taxFundType,
		}
		if taxFundType == "debt" {
			params["slab_rate_percent"] = taxSlab
		} else {
			params["holding_period_months"] = float64(taxHolding)
		}
		if taxMaturity > 0 {
			params["pre_tax_maturity"] = taxMaturity
		}
		return runTool(cmd, "tax_calculator", params)
	},
}

func init() {
	taxCmd.Flags().Float64Var(&taxGain, "gain", 0, "Capital gain")
	taxCmd.Flags().StringVar(&taxFundType, "fund-type", "equity", "Fund type: equity or debt")
	taxCmd.Flags().Float64Var(&taxSlab, "slab", 30, "Income tax slab rate for debt funds, %")
	taxCmd.Flags().IntVar(&taxHolding, "holding-months", 0, "Holding period in months (equity)")
	taxCmd.Flags().Float64Var(&taxMaturity, "maturity", 0, "Pre-tax maturity value, for post-tax maturity")
	_ = taxCmd.MarkFlagRequired("gain")
	rootCmd.AddCommand(taxCmd)
}

var (
	compareSIP       float64
	compareLumpsum   float64
	compareRate      float64
	compareYears     int
	compareHoldYears int
	compareTax       taxFlags
)

var compareCmd = &cobra.Command{
	Use:     "compare",
	Short:   "Compare a monthly SIP against a lumpsum over the same horizon",
	Example: `  mfcalc compare --sip 10000 --lumpsum 1200000 --rate 12 --years 10 --tax`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		side := func(mode string, amount float64) map[string]interface{} {
			p := map[string]interface{}{
				"mode":                mode,
				"amount":              amount,
				"annual_rate_percent": compareRate,
				"invest_years":        float64(compareYears),
				"hold_years":          float64(compareHoldYears),
			}
			compareTax.apply(p)
			return p
		}
		params := map[string]interface{}{
			"a": side("sip", compareSIP),
			"b": side("lumpsum", compareLumpsum),
		}
		return runTool(cmd, "compare_investments", params)
	},
}

func init() {
	compareCmd.Flags().Float64Var(&compareSIP, "sip", 0, "Monthly SIP contribution")
	compareCmd.Flags().Float64Var(&compareLumpsum, "lumpsum", 0, "Lumpsum principal")
	compareCmd.Flags().Float64Var(&compareRate, "rate", 0, "Expected annual return, %")
	compareCmd.Flags().IntVar(&compareYears, "years", 0, "Investment duration in years")
	compareCmd.Flags().IntVar(&compareHoldYears, "hold-years", 0, "Years of holding after the investment phase")
	_ = compareCmd.MarkFlagRequired("sip")
	_ = compareCmd.MarkFlagRequired("lumpsum")
	_ = compareCmd.MarkFlagRequired("rate")
	_ = compareCmd.MarkFlagRequired("years")
	compareTax.register(compareCmd)
	rootCmd.AddCommand(compareCmd)
}

var (
	reqPrincipal float64
	reqTarget    float64
	reqYears     int
)

var requiredReturnCmd = &cobra.Command{
	Use:     "required-return",
	Short:   "Annual return needed to grow a principal to a target",
	Example: `  mfcalc required-return --principal 100000 --target 200000 --years 6`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "required_return", map[string]interface{}{
			"principal":     reqPrincipal,
			"target_amount": reqTarget,
			"years":         float64(reqYears),
		})
	},
}

func init() {
	requiredReturnCmd.Flags().Float64Var(&reqPrincipal, "principal", 0, "Initial investment")
	requiredReturnCmd.Flags().Float64Var(&reqTarget, "target", 0, "Target amount")
	requiredReturnCmd.Flags().IntVar(&reqYears, "years", 0, "Horizon in years")
	_ = requiredReturnCmd.MarkFlagRequired("principal")
	_ = requiredReturnCmd.MarkFlagRequired("target")
	_ = requiredReturnCmd.MarkFlagRequired("years")
	rootCmd.AddCommand(requiredReturnCmd)
}
