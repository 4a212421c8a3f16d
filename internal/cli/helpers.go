package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
	"github.com/kanakku/kanakku/internal/repository"
)

const defaultSymbol = "₹"

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// money formats an amount in the configured currency
func money(amount decimal.Decimal) string {
	symbol := defaultSymbol
	if appInstance != nil && appInstance.Config != nil && appInstance.Config.Currency.Symbol != "" {
		symbol = appInstance.Config.Currency.Symbol
	}
	return pricing.FormatAmount(amount, symbol)
}

func parseDate(s string) (time.Time, error) {
	switch s {
	case "", "today":
		return today(), nil
	case "yesterday":
		return today().AddDate(0, 0, -1), nil
	default:
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return time.Time{}, fmt.Errorf("expected format: YYYY-MM-DD, 'today', or 'yesterday'")
		}
		return t, nil
	}
}

// today is midnight UTC of the local calendar date
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// resolveDocument finds a document by numeric ID or by document number
func resolveDocument(ctx context.Context, ref string) (*domain.Document, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return appInstance.DocumentService.GetDocument(ctx, id)
	}
	return appInstance.DocumentService.GetDocumentByNumber(ctx, strings.ToUpper(ref))
}

// resolveProduct finds a product by numeric ID or exact name
func resolveProduct(ctx context.Context, ref string) (*domain.Product, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return appInstance.ProductRepo.GetByID(ctx, id)
	}
	product, err := appInstance.ProductRepo.GetByName(ctx, ref)
	if errors.Is(err, repository.ErrNotFound) {
		matches, serr := appInstance.ProductRepo.Search(ctx, ref)
		if serr == nil && len(matches) == 1 {
			return matches[0], nil
		}
	}
	return product, err
}

// resolveTaxGroup finds a tax group by numeric ID or name
func resolveTaxGroup(ctx context.Context, ref string) (*domain.TaxGroup, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return appInstance.TaxRepo.GetGroup(ctx, id)
	}
	groups, err := appInstance.TaxRepo.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		if strings.EqualFold(groups[i].Name, ref) {
			return &groups[i], nil
		}
	}
	return nil, fmt.Errorf("tax group %q: %w", ref, repository.ErrNotFound)
}

func parseKindFilter(s string) (*domain.DocumentKind, error) {
	if s == "" {
		return nil, nil
	}
	kind, err := domain.ParseDocumentKind(s)
	if err != nil {
		return nil, err
	}
	return &kind, nil
}

func parseStatusFilter(s string) (*domain.DocumentStatus, error) {
	switch domain.DocumentStatus(strings.ToLower(s)) {
	case "":
		return nil, nil
	case domain.DocumentStatusDraft:
		status := domain.DocumentStatusDraft
		return &status, nil
	case domain.DocumentStatusFinalized:
		status := domain.DocumentStatusFinalized
		return &status, nil
	}
	return nil, fmt.Errorf("unknown status %q (draft, finalized)", s)
}

func parseDecimal(name, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q", name, s)
	}
	return d, nil
}
