package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"exchange-form/config"
	"exchange-form/pkg/catalog"
	"exchange-form/pkg/client"
	"exchange-form/pkg/clipboard"
	"exchange-form/pkg/form"
	"exchange-form/pkg/logging"
	"exchange-form/pkg/rates"
	"exchange-form/pkg/validate"
)

var rootCmd = &cobra.Command{
	Use:   "exchange-form",
	Short: "A currency exchange form with live amount synchronization",
	Long: `exchange-form keeps the two sides of a currency exchange in sync: pick what
you send and what you receive, enter an amount on either side, and the other
side, the rate and the order's validity follow every edit.

Rates come from the bundled rate table or, with --live, from 1Click dry quotes.

Examples:
  exchange-form currencies --search coin
  exchange-form rate BTC ETH
  exchange-form quote 2 BTC to ETH --recipient 0x52908400098527886E0F7030069857D2E4169EE7
  exchange-form quote 150 XRP to BTC --reverse --recipient 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa
  exchange-form form`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}

// app bundles what every command needs after configuration is loaded
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	table   *rates.Table
}

// loadApp reads the configuration, builds the logger and loads the catalog.
// With quiet set and no log file configured, logging is discarded.
func loadApp(cmd *cobra.Command, quiet bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.File = cfg.LogFile
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logCfg.Level = "debug"
	}

	logger := zap.NewNop()
	if !quiet || cfg.LogFile != "" {
		logger, err = logging.New(logCfg)
		if err != nil {
			return nil, err
		}
	}

	var cat *catalog.Catalog
	if cfg.CatalogFile != "" {
		cat, err = catalog.Load(cfg.CatalogFile)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, err
	}

	table, err := rates.FromCatalog(cat)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: logger, catalog: cat, table: table}, nil
}

// provider returns the configured rate source. live forces 1Click quotes.
func (a *app) provider(live bool) (rates.Provider, error) {
	if !live && a.cfg.RateSource != config.SourceOneClick {
		return a.table, nil
	}

	oc := a.cfg.OneClick
	if oc.JWTToken == "" {
		return nil, fmt.Errorf("live rates need a JWT token. Please set EXCHANGE_FORM_RATES_ONECLICK_JWT_TOKEN")
	}

	apiClient := client.NewOneClickClient(oc.JWTToken, oc.BaseURL, a.cfg.RateTimeout)
	return rates.NewOneClick(apiClient, oc.Recipient, oc.RefundTo, "", a.logger.Named("oneclick")), nil
}

// controller creates a form session for the given pair. Empty symbols use the configured defaults.
func (a *app) controller(p rates.Provider, from, to string) (*form.Controller, error) {
	if from == "" {
		from = a.cfg.From
	}
	if to == "" {
		to = a.cfg.To
	}

	orderType, err := form.ParseOrderType(a.cfg.OrderType)
	if err != nil {
		return nil, err
	}

	return form.New(form.Options{
		Catalog:   a.catalog,
		Rates:     p,
		Validator: validate.New(a.cfg.TagRequired),
		Formats:   validate.NetworkFormats{},
		Clipboard: clipboard.Detect(),
		From:      from,
		To:        to,
		OrderType: orderType,
		Logger:    a.logger.Named("form"),
	})
}
