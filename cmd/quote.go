package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"exchange-form/pkg/form"
	"exchange-form/pkg/parser"
	"exchange-form/pkg/types"
)

var (
	recipientAddr string
	destTag       string
	orderType     string
	reverseAmount bool
	liveQuote     bool
)

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <from> to <to>",
	Short: "Fill in the exchange form and check the order",
	Long: `Fill in the exchange form from the command line and show the resulting order.

The amount is what you send, or with --reverse what the recipient gets. The
command exits with status 1 when the order is incomplete and lists why.

IMPORTANT:
  - You MUST specify --recipient (where you'll receive the currency)
  - Some networks (XRP, XLM, BNB, EOS, ATOM, TON) also need --tag

Examples:
  exchange-form quote 2 BTC to ETH --recipient 0x52908400098527886E0F7030069857D2E4169EE7
  exchange-form quote 0.5 XMR to XRP --recipient rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh --tag 12345
  exchange-form quote 30 ETH to BTC --reverse --type fixed --recipient 1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&recipientAddr, "recipient", "", "Recipient address (REQUIRED - where you'll receive the currency)")
	quoteCmd.Flags().StringVar(&destTag, "tag", "", "Destination tag or memo")
	quoteCmd.Flags().StringVar(&orderType, "type", "", "Order type: fixed or float (default from config)")
	quoteCmd.Flags().BoolVar(&reverseAmount, "reverse", false, "Treat the amount as what the recipient gets")
	quoteCmd.Flags().BoolVar(&liveQuote, "live", false, "Price the pair with a 1Click dry quote")
}

func runQuote(cmd *cobra.Command, args []string) {
	// Parse the command
	req, err := parser.ParseArgs(args)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	req.RecipientAddr = recipientAddr
	req.Tag = destTag
	req.OrderType = orderType
	req.Reverse = reverseAmount

	if err := parser.ValidateQuoteRequest(req); err != nil {
		printError(err)
		os.Exit(1)
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")

	a, err := loadApp(cmd, false)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer a.logger.Sync()

	provider, err := a.provider(liveQuote)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	ctrl, err := a.controller(provider, req.SourceToken, req.DestToken)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := resolveRate(ctrl, a.cfg.RateTimeout, jsonOutput); err != nil {
		printError(err)
		os.Exit(1)
	}

	if err := fillForm(ctrl, req); err != nil {
		printError(err)
		os.Exit(1)
	}

	state := ctrl.State()
	summary := ctrl.Summary()

	if jsonOutput {
		output := map[string]interface{}{
			"from":        state.FromCurrency.Symbol,
			"to":          state.ToCurrency.Symbol,
			"from_amount": state.FromAmount,
			"to_amount":   state.ToAmount,
			"rate":        state.ExchangeRate.String(),
			"order_type":  state.OrderType,
			"fee":         summary.Fee,
			"recipient":   state.DestinationAddress,
			"tag":         state.DestinationTag,
			"valid":       state.IsValid,
			"problems":    summary.Problems,
			"warnings":    summary.Warnings,
		}
		jsonData, _ := json.MarshalIndent(output, "", "  ")
		fmt.Println(string(jsonData))
	} else {
		displaySummary(state, summary)
	}

	if !state.IsValid {
		os.Exit(1)
	}
}

// fillForm applies a parsed request to the form the way a user would type it.
func fillForm(ctrl *form.Controller, req *types.QuoteRequest) error {
	edit := ctrl.EditFromAmount
	if req.Reverse {
		edit = ctrl.EditToAmount
	}
	if _, ok := edit(req.Amount); !ok {
		return fmt.Errorf("invalid amount %q", req.Amount)
	}

	ctrl.EditDestinationAddress(req.RecipientAddr)
	ctrl.EditDestinationTag(req.Tag)

	if req.OrderType != "" {
		o, err := form.ParseOrderType(req.OrderType)
		if err != nil {
			return err
		}
		ctrl.SetOrderType(o)
	}
	return nil
}

func displaySummary(state form.State, summary form.Summary) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     EXCHANGE ORDER")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  %s\n\n", summary.Headline)
	fmt.Printf("  You send:          %s %s", state.FromAmount, color.YellowString(state.FromCurrency.Symbol))
	if summary.FromUSD != "" {
		fmt.Printf("  %s", color.HiBlackString("≈ "+summary.FromUSD))
	}
	fmt.Printf("\n  You get:           ~%s %s", state.ToAmount, color.YellowString(state.ToCurrency.Symbol))
	if summary.ToUSD != "" {
		fmt.Printf("  %s", color.HiBlackString("≈ "+summary.ToUSD))
	}
	fmt.Println()

	fmt.Printf("  Rate:              %s\n", summary.RateLine)
	fmt.Printf("  Order Type:        %s (fee %s)\n", state.OrderType, summary.Fee)
	if state.DestinationAddress != "" {
		fmt.Printf("  Recipient:         %s\n", color.CyanString(state.DestinationAddress))
	}
	if state.Fields.TagRequired || state.DestinationTag != "" {
		fmt.Printf("  %-19s%s\n", summary.TagLabel+":", color.MagentaString(state.DestinationTag))
	}

	if len(summary.Problems) > 0 {
		color.Red("\n  The order is not complete:")
		for _, p := range summary.Problems {
			color.Red("    - %s", p)
		}
	} else {
		color.Green("\n  ✓ Ready to exchange")
	}

	for _, w := range summary.Warnings {
		color.Yellow("  ! %s", w)
	}

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
