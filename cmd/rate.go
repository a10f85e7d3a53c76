package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exchange-form/pkg/form"
	"exchange-form/pkg/parser"
)

var liveRate bool

var rateCmd = &cobra.Command{
	Use:   "rate <from> <to>",
	Short: "Show the exchange rate between two currencies",
	Long: `Show how many units of <to> one unit of <from> buys, and the inverse.

Pairs listed in one direction only use the exact reciprocal for the other
direction. Pairs with no rate at all show a 1:1 placeholder and a warning.

Examples:
  exchange-form rate BTC ETH
  exchange-form rate eth btc
  exchange-form rate XMR USDT --live`,
	Args: cobra.ExactArgs(2),
	Run:  runRate,
}

func init() {
	rootCmd.AddCommand(rateCmd)

	rateCmd.Flags().BoolVar(&liveRate, "live", false, "Price the pair with a 1Click dry quote")
}

func runRate(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	from := parser.NormalizeTokenSymbol(args[0])
	to := parser.NormalizeTokenSymbol(args[1])

	a, err := loadApp(cmd, false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer a.logger.Sync()

	provider, err := a.provider(liveRate)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	ctrl, err := a.controller(provider, from, to)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := resolveRate(ctrl, a.cfg.RateTimeout, jsonOutput); err != nil {
		printError(err)
		os.Exit(1)
	}

	state := ctrl.State()
	summary := ctrl.Summary()

	if jsonOutput {
		output := map[string]interface{}{
			"from":     state.FromCurrency.Symbol,
			"to":       state.ToCurrency.Symbol,
			"rate":     state.ExchangeRate.String(),
			"inverse":  state.ExchangeRate.Inverse().String(),
			"fallback": state.ExchangeRate.Fallback,
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayRate(state, summary)
}

// resolveRate waits for a pending live rate, showing a spinner unless quiet.
func resolveRate(ctrl *form.Controller, timeout time.Duration, quiet bool) error {
	if _, _, pending := ctrl.PendingRate(); !pending {
		return nil
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !quiet {
		s.Suffix = " Fetching live rate..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := ctrl.ResolvePending(ctx)
	if !quiet {
		s.Stop()
	}
	return err
}

func displayRate(state form.State, summary form.Summary) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     EXCHANGE RATE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:     %s\n", color.YellowString(state.FromCurrency.Label()))
	fmt.Printf("  To:       %s\n", color.YellowString(state.ToCurrency.Label()))
	fmt.Printf("\n  %s\n", color.CyanString(summary.RateLine))
	fmt.Printf("  %s\n", color.HiBlackString(summary.InverseLine))

	for _, w := range summary.Warnings {
		color.Yellow("\n  ! %s", w)
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
