package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/kanakku/kanakku/internal/pricing"
)

var wordsCmd = &cobra.Command{
	Use:   "words [amount]",
	Short: "Spell an amount in words using Indian numbering",
	Long: `Spell an amount in words using crore, lakh, thousand and hundred.
The amount is rounded to whole units first.

Examples:
  kanakku words 1234567      # Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven
  kanakku words 99.50        # One Hundred`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := decimal.NewFromString(strings.ReplaceAll(args[0], ",", ""))
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), pricing.AmountInWords(amount))
		return nil
	},
}
