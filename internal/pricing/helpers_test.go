package pricing

import (
	"testing"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func assertSameLine(t *testing.T, want, got domain.LineItem) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Unit, got.Unit)
	assert.Equal(t, want.Qty, got.Qty)
	assert.Equal(t, want.DiscountType, got.DiscountType)
	assert.Equal(t, want.TaxGroupID, got.TaxGroupID)
	assert.True(t, want.Rate.Equal(got.Rate), "rate %s != %s", want.Rate, got.Rate)
	assert.True(t, want.DiscountValue.Equal(got.DiscountValue), "discount value %s != %s", want.DiscountValue, got.DiscountValue)
	assert.True(t, want.Discount.Equal(got.Discount), "discount %s != %s", want.Discount, got.Discount)
	assert.True(t, want.Tax.Equal(got.Tax), "tax %s != %s", want.Tax, got.Tax)
	assert.True(t, want.Amount.Equal(got.Amount), "amount %s != %s", want.Amount, got.Amount)
}

func int64p(v int64) *int64 {
	return &v
}
