package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/tracing"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	// версия не требует конфигурации и правил
	PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mfcalc %s (%s)\n", tracing.Version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
