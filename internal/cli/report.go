package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kanakku/kanakku/internal/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summaries over purchasing documents",
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Document counts and totals per kind",
	Long: `Document counts and totals per kind for a date range.
Defaults to the current month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		now := today()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		if cmd.Flags().Changed("from") {
			s, _ := cmd.Flags().GetString("from")
			t, err := parseDate(s)
			if err != nil {
				return fmt.Errorf("invalid from date: %w", err)
			}
			start = t
		}
		if cmd.Flags().Changed("to") {
			s, _ := cmd.Flags().GetString("to")
			t, err := parseDate(s)
			if err != nil {
				return fmt.Errorf("invalid to date: %w", err)
			}
			// inclusive on the command line
			end = t.AddDate(0, 0, 1)
		}

		summary, err := appInstance.ReportService.Summary(ctx, start, end)
		if err != nil {
			return fmt.Errorf("failed to build summary: %w", err)
		}

		fmt.Printf("Summary %s to %s\n", start.Format("2006-01-02"), end.AddDate(0, 0, -1).Format("2006-01-02"))
		fmt.Println(strings.Repeat("-", 92))
		fmt.Printf("%-16s %6s %6s %9s %16s %14s %16s\n", "Kind", "Count", "Draft", "Finalized", "Sub Total", "Tax", "Grand Total")
		fmt.Println(strings.Repeat("-", 92))

		kinds := summary.Kinds()
		if len(kinds) == 0 {
			fmt.Println("No documents in range")
			return nil
		}

		for _, ks := range kinds {
			fmt.Printf("%-16s %6d %6d %9d %16s %14s %16s\n",
				ks.Kind.Label(),
				ks.Count,
				ks.Drafts,
				ks.Finalized,
				money(ks.Totals.SubTotal),
				money(ks.Totals.TotalTax),
				money(ks.Totals.GrandTotal),
			)
		}
		return nil
	},
}

var reportMonthlyCmd = &cobra.Command{
	Use:   "monthly [kind]",
	Short: "Finalized grand totals per month for one kind",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := domain.ParseDocumentKind(args[0])
		if err != nil {
			return err
		}

		year, _ := cmd.Flags().GetInt("year")
		if year == 0 {
			year = time.Now().Year()
		}

		totals, err := appInstance.ReportService.GrandTotalByMonth(context.Background(), kind, year)
		if err != nil {
			return fmt.Errorf("failed to build monthly totals: %w", err)
		}

		fmt.Printf("%s %d\n", kind.Label(), year)
		fmt.Println(strings.Repeat("-", 30))
		for m := time.January; m <= time.December; m++ {
			fmt.Printf("%-10s %19s\n", m.String(), money(totals[m]))
		}
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportSummaryCmd)
	reportCmd.AddCommand(reportMonthlyCmd)

	reportSummaryCmd.Flags().String("from", "", "Start date (YYYY-MM-DD), defaults to the first of this month")
	reportSummaryCmd.Flags().String("to", "", "End date, inclusive (YYYY-MM-DD)")

	reportMonthlyCmd.Flags().Int("year", 0, "Year (defaults to the current year)")
}
