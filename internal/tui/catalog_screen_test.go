package tui

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanakku/kanakku/internal/domain"
)

func TestProductFromForm(t *testing.T) {
	values := []string{" Cement ", "bag", "350", "Percentage", "10", "1"}

	product, err := productFromForm(values, testTaxGroups(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Cement", product.Name)
	assert.Equal(t, "bag", product.Unit)
	assert.True(t, product.SellingPrice.Equal(decimal.NewFromInt(350)))
	require.NotNil(t, product.Discount)
	assert.Equal(t, domain.DiscountPercentage, product.Discount.Type)
	assert.True(t, product.Discount.Value.Equal(decimal.NewFromInt(10)))
	require.NotNil(t, product.Tax)
	assert.Equal(t, int64(1), product.Tax.GroupID)
	assert.Equal(t, "GST 18", product.Tax.GroupName)
	assert.True(t, product.Tax.TotalRate.Equal(decimal.NewFromInt(18)))
}

func TestProductFromFormBlankOptionals(t *testing.T) {
	product, err := productFromForm([]string{"Sand", "kg", "12.5", "Fixed", "", ""}, nil, nil)
	require.NoError(t, err)

	assert.Nil(t, product.Discount)
	assert.Nil(t, product.Tax)
}

func TestProductFromFormKeepsIdentity(t *testing.T) {
	existing := &domain.Product{
		ID:           7,
		Name:         "Sand",
		SellingPrice: decimal.NewFromInt(10),
		Discount:     &domain.Discount{Type: domain.DiscountFixed, Value: decimal.NewFromInt(1)},
	}

	values := productFormValues(existing)
	assert.Equal(t, []string{"Sand", "", "10", "Fixed", "1", ""}, values)

	values[productFieldPrice] = "11"
	values[productFieldDiscount] = ""
	product, err := productFromForm(values, nil, existing)
	require.NoError(t, err)

	assert.Equal(t, int64(7), product.ID)
	assert.True(t, product.SellingPrice.Equal(decimal.NewFromInt(11)))
	assert.Nil(t, product.Discount)
	// the original is untouched until the repository write succeeds
	assert.NotNil(t, existing.Discount)
	assert.True(t, existing.SellingPrice.Equal(decimal.NewFromInt(10)))
}

func TestProductFromFormErrors(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		errMsg string
	}{
		{"bad price", []string{"Sand", "kg", "ten", "Fixed", "", ""}, "selling price must be a number"},
		{"bad discount", []string{"Sand", "kg", "10", "Fixed", "x", ""}, "discount must be a number"},
		{"unknown group", []string{"Sand", "kg", "10", "Fixed", "", "9"}, `no tax group with id "9"`},
		{"missing name", []string{" ", "kg", "10", "Fixed", "", ""}, "product name is required"},
		{"bad discount type", []string{"Sand", "kg", "10", "Flat", "2", ""}, "discount type must be Fixed or Percentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := productFromForm(tt.values, testTaxGroups(), nil)
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())
		})
	}
}
