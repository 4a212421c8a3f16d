package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

var documentsCmd = &cobra.Command{
	Use:     "documents",
	Aliases: []string{"docs", "doc"},
	Short:   "Manage purchase orders, debit notes, and purchases",
	Long: `Create purchasing documents, add catalog products as lines, edit line pricing,
and finalize. Documents are referenced by ID or number (e.g. PO-2026-001).`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		kindStr, _ := cmd.Flags().GetString("kind")
		kind, err := parseKindFilter(kindStr)
		if err != nil {
			return err
		}

		statusStr, _ := cmd.Flags().GetString("status")
		status, err := parseStatusFilter(statusStr)
		if err != nil {
			return err
		}

		docs, err := appInstance.DocumentService.ListDocuments(ctx, kind, status)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}

		if len(docs) == 0 {
			fmt.Println("No documents found")
			return nil
		}

		fmt.Printf("%-5s %-16s %-15s %-24s %-12s %16s %-10s\n", "ID", "Number", "Kind", "Supplier", "Date", "Grand Total", "Status")
		fmt.Println(strings.Repeat("-", 104))

		for _, doc := range docs {
			fmt.Printf("%-5d %-16s %-15s %-24s %-12s %16s %-10s\n",
				doc.ID,
				doc.Number,
				doc.Kind.Label(),
				truncate(doc.Supplier, 24),
				doc.Date.Format("2006-01-02"),
				money(doc.Totals.GrandTotal),
				doc.Status,
			)
		}

		fmt.Printf("\nTotal: %d document(s)\n", len(docs))
		return nil
	},
}

var documentsCreateCmd = &cobra.Command{
	Use:   "create [kind]",
	Short: "Create a new draft document (po, dn, pur)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		kind, err := domain.ParseDocumentKind(args[0])
		if err != nil {
			return err
		}

		dateStr, _ := cmd.Flags().GetString("date")
		date, err := parseDate(dateStr)
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}

		supplier, _ := cmd.Flags().GetString("supplier")
		prefix := appInstance.Config.Prefix(kind)

		doc, err := appInstance.DocumentService.CreateDraft(ctx, kind, supplier, date, prefix)
		if err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}

		if cmd.Flags().Changed("reference") || cmd.Flags().Changed("notes") {
			reference, _ := cmd.Flags().GetString("reference")
			notes, _ := cmd.Flags().GetString("notes")
			if doc, err = appInstance.DocumentService.UpdateDetails(ctx, doc.ID, doc.Supplier, reference, notes); err != nil {
				return fmt.Errorf("failed to save document details: %w", err)
			}
		}

		fmt.Printf("✓ Draft %s created: %s (ID: %d)\n", doc.Kind.Label(), doc.Number, doc.ID)
		if doc.Supplier != "" {
			fmt.Printf("  Supplier: %s\n", doc.Supplier)
		}
		fmt.Printf("  Date: %s\n", doc.Date.Format("2006-01-02"))
		return nil
	},
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [id_or_number]",
	Short: "Show a document with its lines and totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := resolveDocument(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}
		printDocument(doc)
		return nil
	},
}

var documentsAddItemCmd = &cobra.Command{
	Use:   "add-item [document] [product]",
	Short: "Add a catalog product as a new line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		doc, err := resolveDocument(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}

		product, err := resolveProduct(ctx, args[1])
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}

		qty, _ := cmd.Flags().GetInt("qty")
		doc, err = appInstance.DocumentService.AddProduct(ctx, doc.ID, product.ID, qty)
		if err != nil {
			return fmt.Errorf("failed to add item: %w", err)
		}

		fmt.Printf("✓ Added %s to %s\n", product.Name, doc.Number)
		printTotals(doc)
		return nil
	},
}

// lineFlags maps edit-item flags to line fields
var lineFlags = []struct {
	flag  string
	field pricing.Field
	usage string
}{
	{"qty", pricing.FieldQty, "Quantity"},
	{"rate", pricing.FieldRate, "Unit rate"},
	{"discount-type", pricing.FieldDiscountType, "Discount type (Fixed, Percentage)"},
	{"discount", pricing.FieldDiscountValue, "Discount value"},
	{"tax-group", pricing.FieldTaxGroup, "Tax group ID; empty removes the tax"},
}

var documentsEditItemCmd = &cobra.Command{
	Use:   "edit-item [document] [product]",
	Short: "Edit the pricing fields of a line",
	Long: `Edit one or more fields of a line. Every change recomputes the line's discount,
tax and amount and the document totals. Values that cannot be read as numbers
are applied as zero and reported as warnings.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		doc, err := resolveDocument(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}

		product, err := resolveProduct(ctx, args[1])
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}

		changes := make([]pricing.Change, 0, len(lineFlags))
		for _, lf := range lineFlags {
			if cmd.Flags().Changed(lf.flag) {
				value, _ := cmd.Flags().GetString(lf.flag)
				changes = append(changes, pricing.Change{Field: lf.field, Value: value})
			}
		}
		sets, _ := cmd.Flags().GetStringArray("set")
		for _, kv := range sets {
			name, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("--set expects field=value, got %q", kv)
			}
			field, ok := pricing.ParseField(strings.TrimSpace(name))
			if !ok {
				return fmt.Errorf("unknown line field %q", name)
			}
			changes = append(changes, pricing.Change{Field: field, Value: value})
		}
		if len(changes) == 0 {
			return fmt.Errorf("nothing to change: pass at least one of --qty, --rate, --discount-type, --discount, --tax-group, --set")
		}

		doc, warnings, err := appInstance.DocumentService.EditLine(ctx, doc.ID, product.ID, changes)
		if err != nil {
			return fmt.Errorf("failed to edit item: %w", err)
		}

		for _, w := range warnings {
			fmt.Printf("! %v\n", w)
		}

		if idx := doc.FindItem(product.ID); idx >= 0 {
			line := doc.Items[idx]
			fmt.Printf("✓ %s: qty %d × %s, discount %s, tax %s, amount %s\n",
				line.Name, line.Qty, money(line.Rate), money(line.Discount), money(line.Tax), money(line.Amount))
		}
		printTotals(doc)
		return nil
	},
}

var documentsRemoveItemCmd = &cobra.Command{
	Use:   "remove-item [document] [product]",
	Short: "Remove a line from a draft document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		doc, err := resolveDocument(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}

		product, err := resolveProduct(ctx, args[1])
		if err != nil {
			return fmt.Errorf("failed to get product: %w", err)
		}

		doc, err = appInstance.DocumentService.RemoveLine(ctx, doc.ID, product.ID)
		if err != nil {
			return fmt.Errorf("failed to remove item: %w", err)
		}

		fmt.Printf("✓ Removed %s from %s\n", product.Name, doc.Number)
		printTotals(doc)
		return nil
	},
}

var documentsFinalizeCmd = &cobra.Command{
	Use:   "finalize [document]",
	Short: "Finalize a draft document (locks its lines)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		doc, err := resolveDocument(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}

		doc, err = appInstance.DocumentService.Finalize(ctx, doc.ID)
		if err != nil {
			return fmt.Errorf("failed to finalize document: %w", err)
		}

		fmt.Printf("✓ %s finalized: %s\n", doc.Kind.Label(), doc.Number)
		fmt.Printf("  Grand Total: %s\n", money(doc.Totals.GrandTotal))
		return nil
	},
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [document]",
	Short: "Delete a draft document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		doc, err := resolveDocument(ctx, args[0])
		if err != nil {
			return fmt.Errorf("failed to get document: %w", err)
		}

		if !confirmPrompt(fmt.Sprintf("Delete draft %s?", doc.Number)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := appInstance.DocumentService.Delete(ctx, doc.ID); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}

		fmt.Printf("✓ Deleted %s\n", doc.Number)
		return nil
	},
}

func printDocument(doc *domain.Document) {
	fmt.Println(strings.Repeat("=", 100))
	fmt.Printf("%s: %s\n", doc.Kind.Label(), doc.Number)
	fmt.Println(strings.Repeat("=", 100))
	if doc.Supplier != "" {
		fmt.Printf("Supplier:  %s\n", doc.Supplier)
	}
	if doc.Reference != "" {
		fmt.Printf("Reference: %s\n", doc.Reference)
	}
	fmt.Printf("Date:      %s\n", doc.Date.Format("2006-01-02"))
	fmt.Printf("Status:    %s\n", doc.Status)
	if doc.Notes != "" {
		fmt.Printf("Notes:     %s\n", doc.Notes)
	}
	fmt.Println()

	if len(doc.Items) > 0 {
		fmt.Println("Lines:")
		fmt.Println(strings.Repeat("-", 100))
		fmt.Printf("%-5s %-26s %-6s %5s %13s %13s %11s %15s\n", "ID", "Product", "Unit", "Qty", "Rate", "Discount", "Tax", "Amount")
		fmt.Println(strings.Repeat("-", 100))

		for _, item := range doc.Items {
			fmt.Printf("%-5d %-26s %-6s %5d %13s %13s %11s %15s\n",
				item.ID,
				truncate(item.Name, 26),
				truncate(item.Unit, 6),
				item.Qty,
				money(item.Rate),
				money(item.Discount),
				money(item.Tax),
				money(item.Amount),
			)
		}
		fmt.Println(strings.Repeat("-", 100))
	}

	printTotals(doc)
	fmt.Printf("In words:       %s\n", pricing.AmountInWords(doc.Totals.GrandTotal))
	fmt.Println(strings.Repeat("=", 100))
}

func printTotals(doc *domain.Document) {
	fmt.Println()
	fmt.Printf("Sub Total:      %s\n", money(doc.Totals.SubTotal))
	fmt.Printf("Total Discount: %s\n", money(doc.Totals.TotalDiscount))
	fmt.Printf("Total Tax:      %s\n", money(doc.Totals.TotalTax))
	fmt.Printf("Grand Total:    %s\n", money(doc.Totals.GrandTotal))
}

func init() {
	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsCreateCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsAddItemCmd)
	documentsCmd.AddCommand(documentsEditItemCmd)
	documentsCmd.AddCommand(documentsRemoveItemCmd)
	documentsCmd.AddCommand(documentsFinalizeCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)

	// List flags
	documentsListCmd.Flags().String("kind", "", "Filter by kind (po, dn, pur)")
	documentsListCmd.Flags().String("status", "", "Filter by status (draft, finalized)")

	// Create flags
	documentsCreateCmd.Flags().String("supplier", "", "Supplier name")
	documentsCreateCmd.Flags().String("date", "today", "Document date (YYYY-MM-DD)")
	documentsCreateCmd.Flags().String("reference", "", "Supplier reference")
	documentsCreateCmd.Flags().String("notes", "", "Notes")

	// Add item flags
	documentsAddItemCmd.Flags().Int("qty", 1, "Quantity")

	// Edit item flags take raw strings so coerced input can be reported
	for _, lf := range lineFlags {
		documentsEditItemCmd.Flags().String(lf.flag, "", lf.usage)
	}
	documentsEditItemCmd.Flags().StringArray("set", nil, "Apply field=value edits in order, e.g. --set qty=3 --set rate=120")
}
