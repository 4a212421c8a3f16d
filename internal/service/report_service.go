package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/repository"
)

// KindSummary aggregates the documents of one kind
type KindSummary struct {
	Kind      domain.DocumentKind
	Count     int
	Drafts    int
	Finalized int
	Totals    domain.Totals
}

// Summary aggregates documents dated in a period
type Summary struct {
	Start  time.Time
	End    time.Time
	ByKind map[domain.DocumentKind]*KindSummary
}

// Kinds returns the per-kind summaries in display order, skipping empty kinds
func (s *Summary) Kinds() []*KindSummary {
	out := make([]*KindSummary, 0, len(s.ByKind))
	for _, kind := range domain.DocumentKinds {
		if ks, ok := s.ByKind[kind]; ok {
			out = append(out, ks)
		}
	}
	return out
}

// ReportService provides aggregations over purchasing documents
type ReportService interface {
	// Summary counts documents and sums their totals per kind for [start, end)
	Summary(ctx context.Context, start, end time.Time) (*Summary, error)

	// GrandTotalByMonth sums finalized grand totals of one kind per month of year
	GrandTotalByMonth(ctx context.Context, kind domain.DocumentKind, year int) (map[time.Month]decimal.Decimal, error)
}

type reportService struct {
	documentRepo repository.DocumentRepository
}

// NewReportService creates a new report service
func NewReportService(documentRepo repository.DocumentRepository) ReportService {
	return &reportService{documentRepo: documentRepo}
}

func (s *reportService) Summary(ctx context.Context, start, end time.Time) (*Summary, error) {
	docs, err := s.documentRepo.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Start:  start,
		End:    end,
		ByKind: make(map[domain.DocumentKind]*KindSummary),
	}

	for _, doc := range docs {
		ks, ok := summary.ByKind[doc.Kind]
		if !ok {
			ks = &KindSummary{Kind: doc.Kind}
			summary.ByKind[doc.Kind] = ks
		}

		ks.Count++
		if doc.Status == domain.DocumentStatusFinalized {
			ks.Finalized++
		} else {
			ks.Drafts++
		}

		ks.Totals.SubTotal = ks.Totals.SubTotal.Add(doc.Totals.SubTotal)
		ks.Totals.TotalDiscount = ks.Totals.TotalDiscount.Add(doc.Totals.TotalDiscount)
		ks.Totals.TotalTax = ks.Totals.TotalTax.Add(doc.Totals.TotalTax)
		ks.Totals.GrandTotal = ks.Totals.GrandTotal.Add(doc.Totals.GrandTotal)
	}

	return summary, nil
}

func (s *reportService) GrandTotalByMonth(
	ctx context.Context,
	kind domain.DocumentKind,
	year int,
) (map[time.Month]decimal.Decimal, error) {
	finalized := domain.DocumentStatusFinalized
	docs, err := s.documentRepo.List(ctx, &kind, &finalized)
	if err != nil {
		return nil, err
	}

	totals := make(map[time.Month]decimal.Decimal)

	// Initialize all months to 0
	for m := time.January; m <= time.December; m++ {
		totals[m] = decimal.Zero
	}

	for _, doc := range docs {
		if doc.Date.Year() == year {
			totals[doc.Date.Month()] = totals[doc.Date.Month()].Add(doc.Totals.GrandTotal)
		}
	}

	return totals, nil
}
