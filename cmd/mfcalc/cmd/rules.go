package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules [fiscal-year]",
	Short: "Show tax rules for a fiscal year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fy := app.deps.Rules.FiscalYear
		if len(args) == 1 {
			fy = args[0]
		}
		rules, err := app.registry.Lookup(fy)
		if err != nil {
			return err
		}
		return render(cmd.OutOrStdout(), rules)
	},
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known fiscal years",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, fy := range app.registry.FiscalYears() {
			marker := " "
			if fy == app.deps.Rules.FiscalYear {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, fy)
		}
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesListCmd)
	rootCmd.AddCommand(rulesCmd)
}
