package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	oneclick "github.com/defuse-protocol/one-click-sdk-go"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exchange-form/pkg/catalog"
	"exchange-form/pkg/client"
	"exchange-form/pkg/selector"
)

var (
	searchTerm     string
	checkSupported bool
)

var currenciesCmd = &cobra.Command{
	Use:     "currencies",
	Aliases: []string{"list", "ls"},
	Short:   "List the currencies offered by the form",
	Long: `List every currency in the catalog, popular ones first.

The search matches names and symbols case-insensitively, exactly like the
form's currency dropdown. With --live, each currency is checked against the
tokens 1Click supports.

Examples:
  exchange-form currencies
  exchange-form currencies --search coin
  exchange-form currencies --live`,
	Run: runCurrencies,
}

func init() {
	rootCmd.AddCommand(currenciesCmd)

	currenciesCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Filter by name or symbol")
	currenciesCmd.Flags().BoolVar(&checkSupported, "live", false, "Mark currencies supported by 1Click")
}

func runCurrencies(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := loadApp(cmd, false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer a.logger.Sync()

	groups := selector.Filter(a.catalog.All(), searchTerm)

	var tokens []oneclick.TokenResponse
	if checkSupported {
		tokens, err = fetchTokens(a, jsonOutput)
		if err != nil {
			printError(err)
			os.Exit(1)
		}
	}

	// Output
	if jsonOutput {
		output := map[string]interface{}{
			"popular": groups.Popular,
			"others":  groups.Others,
		}
		if checkSupported {
			supported := []string{}
			for _, c := range groups.All() {
				if client.Supported(tokens, c.Symbol) {
					supported = append(supported, c.Symbol)
				}
			}
			output["supported"] = supported
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
		return
	}

	displayCurrencies(groups, tokens, checkSupported)
}

func fetchTokens(a *app, quiet bool) ([]oneclick.TokenResponse, error) {
	oc := a.cfg.OneClick
	if oc.JWTToken == "" {
		return nil, fmt.Errorf("--live needs a JWT token. Please set EXCHANGE_FORM_RATES_ONECLICK_JWT_TOKEN")
	}
	apiClient := client.NewOneClickClient(oc.JWTToken, oc.BaseURL, a.cfg.RateTimeout)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !quiet {
		s.Suffix = " Fetching supported tokens..."
		s.Start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.RateTimeout)
	defer cancel()
	tokens, err := apiClient.GetSupportedTokens(ctx)
	if !quiet {
		s.Stop()
	}
	return tokens, err
}

func displayCurrencies(groups selector.Groups, tokens []oneclick.TokenResponse, live bool) {
	if groups.Len() == 0 {
		fmt.Println("\nNo currencies found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                          CURRENCIES")
	fmt.Println(strings.Repeat("=", 70))

	section := func(title string, list []catalog.Currency) {
		if len(list) == 0 {
			return
		}
		color.Cyan("\n%s", title)
		fmt.Println(strings.Repeat("-", 70))

		for _, c := range list {
			symbol := color.YellowString("%-6s", c.Symbol)
			label := c.Label()
			if !c.Active {
				symbol = color.HiBlackString("%-6s", c.Symbol)
				label = color.HiBlackString("%s (unavailable)", label)
			}

			line := fmt.Sprintf("  %s  %-36s  %s", symbol, label, color.HiBlackString(c.Network))
			if live {
				if client.Supported(tokens, c.Symbol) {
					line += color.GreenString("  1Click")
				} else {
					line += color.HiBlackString("  -")
				}
			}
			fmt.Println(line)
		}
	}
	section("POPULAR", groups.Popular)
	section("ALL CURRENCIES", groups.Others)

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("\nTotal: %d currencies\n\n", groups.Len())
}
