package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
	"github.com/kanakku/kanakku/internal/repository"
)

// mock implementations
type mockDocumentRepo struct {
	docs    map[int64]*domain.Document
	nextID  int64
	updated *domain.Document
	deleted []int64
}

func newMockDocumentRepo(docs ...*domain.Document) *mockDocumentRepo {
	m := &mockDocumentRepo{docs: make(map[int64]*domain.Document), nextID: 100}
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return m
}

// clone hands out copies so the service cannot mutate stored state in place
func clone(d *domain.Document) *domain.Document {
	c := *d
	c.Items = append([]domain.LineItem(nil), d.Items...)
	return &c
}

func (m *mockDocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	m.nextID++
	doc.ID = m.nextID
	m.docs[doc.ID] = clone(doc)
	return nil
}
func (m *mockDocumentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	if d, ok := m.docs[id]; ok {
		return clone(d), nil
	}
	return nil, fmt.Errorf("document %d: %w", id, repository.ErrNotFound)
}
func (m *mockDocumentRepo) GetByNumber(ctx context.Context, number string) (*domain.Document, error) {
	for _, d := range m.docs {
		if d.Number == number {
			return clone(d), nil
		}
	}
	return nil, fmt.Errorf("document %s: %w", number, repository.ErrNotFound)
}
func (m *mockDocumentRepo) List(ctx context.Context, kind *domain.DocumentKind, status *domain.DocumentStatus) ([]*domain.Document, error) {
	out := make([]*domain.Document, 0)
	for _, d := range m.docs {
		if kind != nil && d.Kind != *kind {
			continue
		}
		if status != nil && d.Status != *status {
			continue
		}
		out = append(out, clone(d))
	}
	return out, nil
}
func (m *mockDocumentRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Document, error) {
	out := make([]*domain.Document, 0)
	for _, d := range m.docs {
		if !d.Date.Before(start) && d.Date.Before(end) {
			out = append(out, clone(d))
		}
	}
	return out, nil
}
func (m *mockDocumentRepo) Update(ctx context.Context, doc *domain.Document) error {
	m.updated = clone(doc)
	m.docs[doc.ID] = clone(doc)
	return nil
}
func (m *mockDocumentRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.docs, id)
	return nil
}
func (m *mockDocumentRepo) GetNextNumber(ctx context.Context, prefix string, year int) (string, error) {
	return fmt.Sprintf("%s-%d-001", prefix, year), nil
}

type mockProductRepo struct {
	products map[int64]*domain.Product
}

func (m *mockProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }
func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
}
func (m *mockProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	return nil, repository.ErrNotFound
}
func (m *mockProductRepo) List(ctx context.Context) ([]*domain.Product, error) { return nil, nil }
func (m *mockProductRepo) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	return nil, nil
}
func (m *mockProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }

type mockTaxRepo struct {
	groups []domain.TaxGroup
}

func (m *mockTaxRepo) CreateRate(ctx context.Context, rate *domain.TaxRate) error { return nil }
func (m *mockTaxRepo) GetRate(ctx context.Context, id int64) (*domain.TaxRate, error) {
	return nil, repository.ErrNotFound
}
func (m *mockTaxRepo) ListRates(ctx context.Context) ([]domain.TaxRate, error)        { return nil, nil }
func (m *mockTaxRepo) CreateGroup(ctx context.Context, group *domain.TaxGroup) error { return nil }
func (m *mockTaxRepo) GetGroup(ctx context.Context, id int64) (*domain.TaxGroup, error) {
	return nil, repository.ErrNotFound
}
func (m *mockTaxRepo) ListGroups(ctx context.Context) ([]domain.TaxGroup, error) { return m.groups, nil }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	docs *mockDocumentRepo
	svc  *documentService
	doc  *domain.Document
}

// newFixture builds a draft document and a catalog with two products:
// 1 "Cement" 350/bag, 10% discount, GST 18; 2 "Sand" 40/cft, no discount, untaxed.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	doc := domain.NewDocument(domain.KindPurchaseOrder, "PO-2026-001", "Acme", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	doc.ID = 1

	docs := newMockDocumentRepo(doc)
	products := &mockProductRepo{products: map[int64]*domain.Product{
		1: {
			ID: 1, Name: "Cement", Unit: "bag", SellingPrice: d("350"),
			Discount: &domain.Discount{Type: domain.DiscountPercentage, Value: d("10")},
			Tax:      &domain.ProductTax{GroupID: 1, GroupName: "GST 18", TotalRate: d("18")},
		},
		2: {ID: 2, Name: "Sand", Unit: "cft", SellingPrice: d("40")},
	}}
	taxes := &mockTaxRepo{groups: []domain.TaxGroup{
		{ID: 1, Name: "GST 18", TotalRate: d("18")},
		{ID: 2, Name: "GST 5", TotalRate: d("5")},
	}}

	svc := NewDocumentService(docs, products, taxes, slog.New(slog.NewTextHandler(io.Discard, nil))).(*documentService)
	return &fixture{docs: docs, svc: svc, doc: doc}
}

func TestCreateDraft(t *testing.T) {
	f := newFixture(t)

	doc, err := f.svc.CreateDraft(context.Background(), domain.KindDebitNote, "Bharat Steel", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), "DN")
	require.NoError(t, err)
	assert.Equal(t, "DN-2026-001", doc.Number)
	assert.Equal(t, domain.DocumentStatusDraft, doc.Status)
	assert.NotZero(t, doc.ID)
}

func TestAddProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	doc, err := f.svc.AddProduct(ctx, 1, 1, 1)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)

	line := doc.Items[0]
	// 350 - 35 + 63
	assert.True(t, line.Amount.Equal(d("378")), line.Amount.String())
	assert.True(t, doc.Totals.GrandTotal.Equal(d("378")), doc.Totals.GrandTotal.String())

	doc, err = f.svc.AddProduct(ctx, 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, 1, doc.Items[1].Qty)
	assert.True(t, doc.Totals.SubTotal.Equal(d("390")))
	assert.True(t, doc.Totals.GrandTotal.Equal(d("418")))

	// persisted
	assert.Len(t, f.docs.updated.Items, 2)
}

func TestAddProduct_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AddProduct(ctx, 1, 1, 1)
	require.NoError(t, err)

	_, err = f.svc.AddProduct(ctx, 1, 1, 1)
	assert.ErrorIs(t, err, ErrDuplicateLine)

	stored, _ := f.docs.GetByID(ctx, 1)
	assert.Len(t, stored.Items, 1)
}

func TestAddProduct_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddProduct(context.Background(), 1, 99, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestEditLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AddProduct(ctx, 1, 1, 1)
	require.NoError(t, err)

	doc, warnings, err := f.svc.EditLine(ctx, 1, 1, []pricing.Change{
		{Field: pricing.FieldQty, Value: "4"},
		{Field: pricing.FieldTaxGroup, Value: "2"},
	})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	line := doc.Items[0]
	// subtotal 1400, discount 140, tax 350*5/100*4 = 70
	assert.Equal(t, 4, line.Qty)
	assert.True(t, line.Discount.Equal(d("140")), line.Discount.String())
	assert.True(t, line.Tax.Equal(d("70")), line.Tax.String())
	assert.True(t, line.Amount.Equal(d("1330")), line.Amount.String())
	assert.True(t, doc.Totals.GrandTotal.Equal(d("1330")))
}

func TestEditLine_CoercedInputWarns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AddProduct(ctx, 1, 2, 3)
	require.NoError(t, err)

	doc, warnings, err := f.svc.EditLine(ctx, 1, 2, []pricing.Change{{Field: pricing.FieldRate, Value: "abc"}})
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], pricing.ErrNotNumeric)

	// the edit still applies with the coerced value
	assert.True(t, doc.Items[0].Rate.IsZero())
	assert.True(t, doc.Totals.GrandTotal.IsZero())
}

func TestEditLine_NotOnDocument(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.svc.EditLine(context.Background(), 1, 2, []pricing.Change{{Field: pricing.FieldQty, Value: "2"}})
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveLine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AddProduct(ctx, 1, 1, 1)
	require.NoError(t, err)
	_, err = f.svc.AddProduct(ctx, 1, 2, 2)
	require.NoError(t, err)

	doc, err := f.svc.RemoveLine(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, int64(2), doc.Items[0].ID)
	assert.True(t, doc.Totals.GrandTotal.Equal(d("80")))

	_, err = f.svc.RemoveLine(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestRemoveLastLineZeroesTotals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.AddProduct(ctx, 1, 1, 1)
	require.NoError(t, err)

	doc, err := f.svc.RemoveLine(ctx, 1, 1)
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
	assert.True(t, doc.Totals.SubTotal.IsZero())
	assert.True(t, doc.Totals.GrandTotal.IsZero())
}

func TestFinalize(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Finalize(ctx, 1)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = f.svc.AddProduct(ctx, 1, 2, 1)
	require.NoError(t, err)

	doc, err := f.svc.Finalize(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentStatusFinalized, doc.Status)

	_, err = f.svc.AddProduct(ctx, 1, 1, 1)
	assert.ErrorIs(t, err, ErrDocumentNotEditable)
	_, _, err = f.svc.EditLine(ctx, 1, 2, nil)
	assert.ErrorIs(t, err, ErrDocumentNotEditable)
	_, err = f.svc.RemoveLine(ctx, 1, 2)
	assert.ErrorIs(t, err, ErrDocumentNotEditable)
	assert.ErrorIs(t, f.svc.Delete(ctx, 1), ErrDocumentNotEditable)
}

func TestDeleteDraft(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Delete(context.Background(), 1))
	assert.Equal(t, []int64{1}, f.docs.deleted)

	_, err := f.svc.GetDocument(context.Background(), 1)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateDetails(t *testing.T) {
	f := newFixture(t)

	doc, err := f.svc.UpdateDetails(context.Background(), 1, "Other Supplier", "REF-9", "deliver by Friday")
	require.NoError(t, err)
	assert.Equal(t, "Other Supplier", doc.Supplier)
	assert.Equal(t, "REF-9", f.docs.updated.Reference)
}
