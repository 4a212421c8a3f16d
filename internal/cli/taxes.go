package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

var taxesCmd = &cobra.Command{
	Use:     "taxes",
	Aliases: []string{"tax"},
	Short:   "Manage tax rates and tax groups",
}

var taxRatesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Manage tax rates",
}

var taxGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Manage tax groups",
}

var taxRatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tax rates",
	RunE: func(cmd *cobra.Command, args []string) error {
		rates, err := appInstance.TaxRepo.ListRates(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list tax rates: %w", err)
		}

		if len(rates) == 0 {
			fmt.Println("No tax rates found")
			return nil
		}

		fmt.Printf("%-5s %-30s %8s\n", "ID", "Name", "Rate")
		fmt.Println(strings.Repeat("-", 45))
		for _, r := range rates {
			fmt.Printf("%-5d %-30s %8s\n", r.ID, truncate(r.Name, 30), pricing.FormatRate(r.Rate))
		}
		return nil
	},
}

var taxRatesAddCmd = &cobra.Command{
	Use:   "add [name] [percent]",
	Short: "Add a tax rate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseDecimal("rate", strings.TrimSuffix(args[1], "%"))
		if err != nil {
			return err
		}

		rate := &domain.TaxRate{Name: strings.TrimSpace(args[0]), Rate: value}
		if err := appInstance.TaxRepo.CreateRate(context.Background(), rate); err != nil {
			return fmt.Errorf("failed to create tax rate: %w", err)
		}

		fmt.Printf("✓ Tax rate created: %s %s (ID: %d)\n", rate.Name, pricing.FormatRate(rate.Rate), rate.ID)
		return nil
	},
}

var taxGroupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tax groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := appInstance.TaxRepo.ListGroups(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list tax groups: %w", err)
		}

		if len(groups) == 0 {
			fmt.Println("No tax groups found")
			return nil
		}

		fmt.Printf("%-5s %-20s %8s  %s\n", "ID", "Name", "Total", "Rates")
		fmt.Println(strings.Repeat("-", 70))
		for _, g := range groups {
			members := make([]string, 0, len(g.Rates))
			for _, r := range g.Rates {
				members = append(members, fmt.Sprintf("%s %s", r.Name, pricing.FormatRate(r.Rate)))
			}
			fmt.Printf("%-5d %-20s %8s  %s\n", g.ID, truncate(g.Name, 20), pricing.FormatRate(g.TotalRate), strings.Join(members, " + "))
		}
		return nil
	},
}

var taxGroupsAddCmd = &cobra.Command{
	Use:   "add [name] [rate_id...]",
	Short: "Add a tax group from existing rates",
	Long: `Add a tax group. The group total is the sum of its member rates and is fixed
when the group is created.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rates := make([]domain.TaxRate, 0, len(args)-1)
		for _, idStr := range args[1:] {
			id, err := strconv.ParseInt(idStr, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tax rate ID '%s': %w", idStr, err)
			}
			rate, err := appInstance.TaxRepo.GetRate(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get tax rate: %w", err)
			}
			rates = append(rates, *rate)
		}

		group := domain.NewTaxGroup(args[0], rates)
		if err := appInstance.TaxRepo.CreateGroup(ctx, group); err != nil {
			return fmt.Errorf("failed to create tax group: %w", err)
		}

		fmt.Printf("✓ Tax group created: %s %s (ID: %d)\n", group.Name, pricing.FormatRate(group.TotalRate), group.ID)
		return nil
	},
}

func init() {
	taxesCmd.AddCommand(taxRatesCmd)
	taxesCmd.AddCommand(taxGroupsCmd)

	taxRatesCmd.AddCommand(taxRatesListCmd)
	taxRatesCmd.AddCommand(taxRatesAddCmd)

	taxGroupsCmd.AddCommand(taxGroupsListCmd)
	taxGroupsCmd.AddCommand(taxGroupsAddCmd)
}
