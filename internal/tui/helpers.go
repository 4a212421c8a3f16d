package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/kanakku/kanakku/internal/app"
	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

const defaultSymbol = "₹"

// moneyFormatter returns a formatter bound to the configured currency symbol
func moneyFormatter(a *app.App) func(decimal.Decimal) string {
	symbol := defaultSymbol
	if a != nil && a.Config != nil && a.Config.Currency.Symbol != "" {
		symbol = a.Config.Currency.Symbol
	}
	return func(amount decimal.Decimal) string {
		return pricing.FormatAmount(amount, symbol)
	}
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// statusBadge renders a document status with color
func statusBadge(status domain.DocumentStatus) string {
	switch status {
	case domain.DocumentStatusDraft:
		return lipgloss.NewStyle().Foreground(mutedColor).Render("DRAFT")
	case domain.DocumentStatusFinalized:
		return lipgloss.NewStyle().Foreground(successColor).Render("FINALIZED")
	default:
		return string(status)
	}
}

// clampCursor keeps a list cursor inside [0, n)
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
