package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"product", "catalog"},
	Short:   "Manage the product catalog",
	Long:    `List, search, add, and edit catalog products.`,
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := appInstance.ProductRepo.List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list products: %w", err)
		}
		printProducts(products)
		return nil
	},
}

var productsSearchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search products by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := appInstance.ProductRepo.Search(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to search products: %w", err)
		}
		printProducts(products)
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		unit, _ := cmd.Flags().GetString("unit")
		priceStr, _ := cmd.Flags().GetString("price")

		price, err := parseDecimal("price", priceStr)
		if err != nil {
			return err
		}

		product := domain.NewProduct(args[0], unit, price)
		if err := applyProductFlags(ctx, cmd, product); err != nil {
			return err
		}

		if err := product.Validate(); err != nil {
			return fmt.Errorf("invalid product: %w", err)
		}

		if err := appInstance.ProductRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		fmt.Printf("✓ Product created: %s (ID: %d)\n", product.Name, product.ID)
		fmt.Printf("  Selling Price: %s\n", money(product.SellingPrice))
		return nil
	},
}

var productsEditCmd = &cobra.Command{
	Use:   "edit [id_or_name]",
	Short: "Edit an existing product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		product, err := resolveProduct(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}

		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			product.Name = strings.TrimSpace(name)
		}
		if cmd.Flags().Changed("unit") {
			unit, _ := cmd.Flags().GetString("unit")
			product.Unit = strings.TrimSpace(unit)
		}
		if cmd.Flags().Changed("price") {
			priceStr, _ := cmd.Flags().GetString("price")
			if product.SellingPrice, err = parseDecimal("price", priceStr); err != nil {
				return err
			}
		}
		if err := applyProductFlags(ctx, cmd, product); err != nil {
			return err
		}

		if err := product.Validate(); err != nil {
			return fmt.Errorf("invalid product: %w", err)
		}

		if err := appInstance.ProductRepo.Update(ctx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}

		fmt.Printf("✓ Product updated: %s\n", product.Name)
		return nil
	},
}

var productsShowCmd = &cobra.Command{
	Use:   "show [id_or_name]",
	Short: "Show product details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		product, err := resolveProduct(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}

		fmt.Printf("Product:       %s (ID: %d)\n", product.Name, product.ID)
		fmt.Printf("Unit:          %s\n", product.Unit)
		fmt.Printf("Selling Price: %s\n", money(product.SellingPrice))
		fmt.Printf("Discount:      %s\n", describeDiscount(product.Discount))
		fmt.Printf("Tax:           %s\n", describeTax(product.Tax))

		line := pricing.ResolveOnAdd(*product, 1)
		fmt.Printf("Price on add:  %s\n", money(line.Amount))
		return nil
	},
}

// applyProductFlags sets discount and tax group from --discount-type, --discount, --tax-group
func applyProductFlags(ctx context.Context, cmd *cobra.Command, product *domain.Product) error {
	if cmd.Flags().Changed("discount") {
		valueStr, _ := cmd.Flags().GetString("discount")
		typeStr, _ := cmd.Flags().GetString("discount-type")
		if valueStr == "" {
			product.Discount = nil
		} else {
			value, err := parseDecimal("discount", valueStr)
			if err != nil {
				return err
			}
			product.Discount = &domain.Discount{Type: domain.DiscountType(typeStr), Value: value}
		}
	}

	if cmd.Flags().Changed("tax-group") {
		ref, _ := cmd.Flags().GetString("tax-group")
		if ref == "" {
			product.Tax = nil
			return nil
		}
		group, err := resolveTaxGroup(ctx, ref)
		if err != nil {
			return fmt.Errorf("failed to resolve tax group: %w", err)
		}
		product.Tax = &domain.ProductTax{GroupID: group.ID, GroupName: group.Name, TotalRate: group.TotalRate}
	}

	return nil
}

func describeDiscount(d *domain.Discount) string {
	if d == nil {
		return "none"
	}
	if d.Type == domain.DiscountPercentage {
		return pricing.FormatRate(d.Value) + " per unit price"
	}
	return money(d.Value) + " flat"
}

func describeTax(t *domain.ProductTax) string {
	if t == nil {
		return "none"
	}
	return fmt.Sprintf("%s (%s)", t.GroupName, pricing.FormatRate(t.TotalRate))
}

func printProducts(products []*domain.Product) {
	if len(products) == 0 {
		fmt.Println("No products found")
		return
	}

	fmt.Printf("%-5s %-30s %-8s %15s %-16s %-16s\n", "ID", "Name", "Unit", "Price", "Discount", "Tax")
	fmt.Println(strings.Repeat("-", 96))

	for _, p := range products {
		fmt.Printf("%-5d %-30s %-8s %15s %-16s %-16s\n",
			p.ID,
			truncate(p.Name, 30),
			truncate(p.Unit, 8),
			money(p.SellingPrice),
			truncate(describeDiscount(p.Discount), 16),
			truncate(describeTax(p.Tax), 16),
		)
	}

	fmt.Printf("\nTotal: %d product(s)\n", len(products))
}

func init() {
	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsSearchCmd)
	productsCmd.AddCommand(productsAddCmd)
	productsCmd.AddCommand(productsEditCmd)
	productsCmd.AddCommand(productsShowCmd)

	for _, c := range []*cobra.Command{productsAddCmd, productsEditCmd} {
		c.Flags().String("unit", "", "Unit of measure (pcs, kg, bag)")
		c.Flags().String("price", "0", "Selling price")
		c.Flags().String("discount-type", string(domain.DiscountFixed), "Discount type (Fixed, Percentage)")
		c.Flags().String("discount", "", "Discount value; empty clears the discount")
		c.Flags().String("tax-group", "", "Tax group ID or name; empty clears the tax")
	}
	productsEditCmd.Flags().String("name", "", "New product name")
}
