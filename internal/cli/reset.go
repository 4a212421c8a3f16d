package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kanakku/kanakku/internal/db"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset data in the database",
	Long: `Reset data in the database.

Examples:
  kanakku reset documents    # Delete all documents and their lines
  kanakku reset all          # Wipe everything: documents, products, taxes`,
}

var resetDocumentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Delete all documents and their lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL purchase orders, debit notes, and purchases. Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables([]string{"document_items", "documents"}); err != nil {
			return err
		}

		fmt.Println("All documents have been deleted.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Delete ALL data: documents, products, tax rates and groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmPrompt("This will delete ALL data (documents, products, taxes, everything). Continue?") {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := clearTables(db.Tables()); err != nil {
			return err
		}

		fmt.Println("All data has been deleted.")
		return nil
	},
}

// clearTables deletes every row of the given tables in one transaction.
// Order matters due to foreign keys.
func clearTables(tables []string) error {
	tx, err := appInstance.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range tables {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	return tx.Commit()
}

func confirmPrompt(message string) bool {
	fmt.Printf("%s [y/N] ", message)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.AddCommand(resetDocumentsCmd)
	resetCmd.AddCommand(resetAllCmd)
}
