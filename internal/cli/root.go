package cli

import (
	"github.com/spf13/cobra"

	"github.com/kanakku/kanakku/internal/app"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "kanakku",
	Short: "A local purchasing ledger for small businesses",
	Long: `Kanakku keeps a product catalog, tax groups, and purchasing documents
(purchase orders, debit notes, purchases) with line-level pricing.

By default, running kanakku without arguments launches the interactive editor.
Use subcommands for CLI operations.`,
	SilenceUsage: true,
	// Default behavior: launch TUI
	RunE: launchTUI,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

// NeedsApp reports whether the command named by args touches the database.
// Help and the words converter run without opening it.
func NeedsApp(args []string) bool {
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "help" {
			return false
		}
	}
	if len(args) > 0 && args[0] == wordsCmd.Name() {
		return false
	}
	return true
}

func init() {
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(taxesCmd)
	rootCmd.AddCommand(documentsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(tuiCmd)
}
