package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/server"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/tools"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve calculators over HTTP",
	Long: `Serve runs the HTTP API:

  GET  /health
  GET  /metrics
  GET  /api/v1/tools
  POST /api/v1/tools/{tool}`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		port := app.cfg.Port
		if servePort > 0 {
			port = servePort
		}
		addr := fmt.Sprintf(":%d", port)

		app.logger.Info("starting mutual fund calculator",
			"addr", addr,
			"fiscal_year", app.deps.Rules.FiscalYear,
			"tools", tools.Names(),
		)

		router := server.NewRouter(tools.Registry(app.deps), app.logger)
		return server.Run(cmd.Context(), addr, router, app.logger)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Listen port (default: $PORT)")
	rootCmd.AddCommand(serveCmd)
}
