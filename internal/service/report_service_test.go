package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanakku/kanakku/internal/domain"
)

func reportDoc(id int64, kind domain.DocumentKind, date time.Time, grand string, finalized bool) *domain.Document {
	doc := domain.NewDocument(kind, "X", "", date)
	doc.ID = id
	doc.Totals = domain.Totals{SubTotal: d(grand), GrandTotal: d(grand)}
	if finalized {
		doc.Finalize()
	}
	return doc
}

func TestSummary(t *testing.T) {
	jan := func(day int) time.Time { return time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC) }

	repo := newMockDocumentRepo(
		reportDoc(1, domain.KindPurchaseOrder, jan(5), "100.50", true),
		reportDoc(2, domain.KindPurchaseOrder, jan(6), "200", false),
		reportDoc(3, domain.KindDebitNote, jan(7), "50", true),
		reportDoc(4, domain.KindPurchase, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), "999", true),
	)
	svc := NewReportService(repo)

	summary, err := svc.Summary(context.Background(), jan(1), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	po := summary.ByKind[domain.KindPurchaseOrder]
	require.NotNil(t, po)
	assert.Equal(t, 2, po.Count)
	assert.Equal(t, 1, po.Drafts)
	assert.Equal(t, 1, po.Finalized)
	assert.True(t, po.Totals.GrandTotal.Equal(d("300.50")), po.Totals.GrandTotal.String())

	dn := summary.ByKind[domain.KindDebitNote]
	require.NotNil(t, dn)
	assert.Equal(t, 1, dn.Count)

	// end is exclusive
	assert.Nil(t, summary.ByKind[domain.KindPurchase])

	kinds := summary.Kinds()
	require.Len(t, kinds, 2)
	assert.Equal(t, domain.KindPurchaseOrder, kinds[0].Kind)
	assert.Equal(t, domain.KindDebitNote, kinds[1].Kind)
}

func TestGrandTotalByMonth(t *testing.T) {
	repo := newMockDocumentRepo(
		reportDoc(1, domain.KindPurchase, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "10", true),
		reportDoc(2, domain.KindPurchase, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "15", true),
		reportDoc(3, domain.KindPurchase, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), "7", false),
		reportDoc(4, domain.KindPurchase, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "100", true),
		reportDoc(5, domain.KindDebitNote, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "100", true),
	)
	svc := NewReportService(repo)

	totals, err := svc.GrandTotalByMonth(context.Background(), domain.KindPurchase, 2026)
	require.NoError(t, err)
	assert.Len(t, totals, 12)
	assert.True(t, totals[time.March].Equal(d("25")), totals[time.March].String())
	assert.True(t, totals[time.April].IsZero())
}
