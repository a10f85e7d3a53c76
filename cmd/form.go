package cmd

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"exchange-form/pkg/parser"
	"exchange-form/pkg/tui"
)

var (
	formFrom string
	formTo   string
	formLive bool
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Open the interactive exchange form",
	Long: `Open the exchange form in the terminal.

Keys:
  tab / shift+tab   move between fields
  enter             open a currency list, pick a currency, or confirm
  f2 / f3           open the send / receive currency list
  ctrl+r            swap the two sides
  ctrl+v / ctrl+y   paste / copy the address
  ctrl+u            clear the address or tag
  esc               close a list, or quit

Logs go to log.file when set; otherwise they are discarded while the form is open.

Examples:
  exchange-form form
  exchange-form form --from XMR --to BTC
  exchange-form form --live`,
	Run: runForm,
}

func init() {
	rootCmd.AddCommand(formCmd)

	formCmd.Flags().StringVar(&formFrom, "from", "", "Currency to send (default from config)")
	formCmd.Flags().StringVar(&formTo, "to", "", "Currency to receive (default from config)")
	formCmd.Flags().BoolVar(&formLive, "live", false, "Price pairs with 1Click dry quotes")
}

func runForm(cmd *cobra.Command, args []string) {
	a, err := loadApp(cmd, true)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer a.logger.Sync()

	provider, err := a.provider(formLive)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	from, to := formFrom, formTo
	if from != "" {
		from = parser.NormalizeTokenSymbol(from)
	}
	if to != "" {
		to = parser.NormalizeTokenSymbol(to)
	}

	ctrl, err := a.controller(provider, from, to)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	model := tui.New(ctrl, provider, a.cfg.RateTimeout, a.logger.Named("tui"))
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		printError(err)
		os.Exit(1)
	}

	if !model.Submitted() {
		printSuccess("Exchange cancelled.")
		return
	}
	displaySummary(model.State(), ctrl.Summary())
}
