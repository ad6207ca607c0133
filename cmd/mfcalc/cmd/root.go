package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-mutualfund-go/internal/config"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/logging"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/taxrules"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/tools"
	"github.com/cloud-ru/mcp-mutualfund-go/internal/tracing"
)

var (
	rulesFile    string
	fiscalYear   string
	outputFormat string
)

// app - состояние, подготовленное в PersistentPreRunE
var app struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *taxrules.Registry
	deps     tools.Deps
	shutdown tracing.ShutdownFunc
}

var rootCmd = &cobra.Command{
	Use:   "mfcalc",
	Short: "Mutual fund SIP / Lumpsum calculator",
	Long: `mfcalc projects maturity values and tax impact for SIP and Lumpsum
investments under compound growth, and compares strategies.

Tax rules are versioned by fiscal year; the built-in set is FY 2026-27.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute запускает корневую команду. SIGINT/SIGTERM отменяют контекст.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesFile, "rules", "", "Additional tax rules YAML file (default: $TAX_RULES_FILE)")
	rootCmd.PersistentFlags().StringVar(&fiscalYear, "fiscal-year", "", "Fiscal year of tax rules (default: $TAX_FISCAL_YEAR)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table or json")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	app.cfg = cfg
	app.logger = logging.New(os.Stderr, cfg.LogLevel)

	if outputFormat != "table" && outputFormat != "json" {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}

	app.registry = taxrules.NewRegistry()
	if rulesFile == "" {
		rulesFile = cfg.TaxRulesFile
	}
	if rulesFile != "" {
		if _, err := app.registry.LoadFile(rulesFile); err != nil {
			return err
		}
	}
	if fiscalYear == "" {
		fiscalYear = cfg.TaxFiscalYear
	}
	rules, err := app.registry.Lookup(fiscalYear)
	if err != nil {
		return fmt.Errorf("%w (known: %v)", err, app.registry.FiscalYears())
	}

	tracer, shutdown, err := tracing.InitTracing(cmd.Context(), cfg.OTELServiceName, cfg.OTELEndpoint, app.logger)
	if err != nil {
		return err
	}
	app.shutdown = shutdown

	app.deps = tools.Deps{
		Config: cfg,
		Rules:  rules,
		Tracer: tracer,
		Logger: app.logger,
	}
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if app.shutdown != nil {
		return app.shutdown(context.Background())
	}
	return nil
}
