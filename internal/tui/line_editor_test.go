package tui

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

func testLine() domain.LineItem {
	group := int64(1)
	return domain.LineItem{
		ID:            3,
		Name:          "Cement",
		Qty:           2,
		Rate:          decimal.NewFromInt(100),
		DiscountType:  domain.DiscountFixed,
		DiscountValue: decimal.NewFromInt(5),
		Discount:      decimal.NewFromInt(5),
		TaxGroupID:    &group,
		Tax:           decimal.NewFromInt(36),
		Amount:        decimal.NewFromInt(231),
	}
}

func testTaxGroups() []domain.TaxGroup {
	return []domain.TaxGroup{
		{ID: 1, Name: "GST 18", TotalRate: decimal.NewFromInt(18)},
		{ID: 2, Name: "GST 5", TotalRate: decimal.NewFromInt(5)},
	}
}

func TestLineEditorUntouched(t *testing.T) {
	e := newLineEditor(testLine(), testTaxGroups())

	assert.Empty(t, e.changes())
	assert.Empty(t, e.warnings())
	assert.True(t, e.preview().Amount.Equal(decimal.NewFromInt(231)))
}

func TestLineEditorPreview(t *testing.T) {
	e := newLineEditor(testLine(), testTaxGroups())

	e.form.inputs[0].SetValue("10")
	e.form.inputs[2].SetValue("Percentage")
	e.form.inputs[4].SetValue("2")

	changes := e.changes()
	require.Len(t, changes, 3)
	assert.Equal(t, pricing.FieldQty, changes[0].Field)
	assert.Equal(t, pricing.FieldDiscountType, changes[1].Field)
	assert.Equal(t, pricing.FieldTaxGroup, changes[2].Field)

	// subtotal 1000, discount 5% = 50, tax 100*5/100*10 = 50
	line := e.preview()
	assert.Equal(t, 10, line.Qty)
	assert.True(t, line.Discount.Equal(decimal.NewFromInt(50)), line.Discount.String())
	assert.True(t, line.Tax.Equal(decimal.NewFromInt(50)), line.Tax.String())
	assert.True(t, line.Amount.Equal(decimal.NewFromInt(1000)), line.Amount.String())
}

func TestLineEditorWarnsOnCoercedInput(t *testing.T) {
	e := newLineEditor(testLine(), testTaxGroups())

	e.form.inputs[1].SetValue("1O0")

	warnings := e.warnings()
	require.Len(t, warnings, 1)
	assert.ErrorIs(t, warnings[0], pricing.ErrNotNumeric)
	assert.True(t, e.preview().Rate.IsZero())
}

func TestLineEditorClearsTaxGroup(t *testing.T) {
	e := newLineEditor(testLine(), testTaxGroups())

	e.form.inputs[4].SetValue("")

	line := e.preview()
	assert.Nil(t, line.TaxGroupID)
	assert.True(t, line.Tax.IsZero())
	assert.True(t, line.Amount.Equal(decimal.NewFromInt(195)))
}

func TestGroupHint(t *testing.T) {
	e := newLineEditor(testLine(), testTaxGroups())
	assert.Equal(t, "1 GST 18 (18%)  2 GST 5 (5%)", e.groupHint())

	e = newLineEditor(testLine(), nil)
	assert.Equal(t, "no tax groups defined", e.groupHint())
}
