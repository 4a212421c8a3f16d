package pricing

import (
	"testing"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOnAdd(t *testing.T) {
	tests := []struct {
		name         string
		product      domain.Product
		qty          int
		wantType     domain.DiscountType
		wantDiscount string
		wantTax      string
		wantAmount   string
	}{
		{
			name:         "no discount no tax",
			product:      domain.Product{ID: 1, SellingPrice: d("99.99")},
			qty:          1,
			wantType:     domain.DiscountFixed,
			wantDiscount: "0",
			wantTax:      "0",
			wantAmount:   "99.99",
		},
		{
			name: "percentage discount",
			product: domain.Product{ID: 2, SellingPrice: d("200"),
				Discount: &domain.Discount{Type: domain.DiscountPercentage, Value: d("10")}},
			qty:          1,
			wantType:     domain.DiscountPercentage,
			wantDiscount: "20",
			wantTax:      "0",
			wantAmount:   "180",
		},
		{
			name: "fixed discount with tax",
			product: domain.Product{ID: 3, SellingPrice: d("150"),
				Discount: &domain.Discount{Type: domain.DiscountFixed, Value: d("15")},
				Tax:      &domain.ProductTax{GroupID: 4, GroupName: "GST 5", TotalRate: d("5")}},
			qty:          1,
			wantType:     domain.DiscountFixed,
			wantDiscount: "15",
			wantTax:      "7.5",
			wantAmount:   "142.5",
		},
		{
			name:         "missing selling price",
			product:      domain.Product{ID: 5},
			qty:          1,
			wantType:     domain.DiscountFixed,
			wantDiscount: "0",
			wantTax:      "0",
			wantAmount:   "0",
		},
		{
			// unit-price basis for discount and tax even with qty > 1
			name: "quantity only scales the price",
			product: domain.Product{ID: 6, SellingPrice: d("100"),
				Discount: &domain.Discount{Type: domain.DiscountPercentage, Value: d("10")},
				Tax:      &domain.ProductTax{GroupID: 1, TotalRate: d("18")}},
			qty:          3,
			wantType:     domain.DiscountPercentage,
			wantDiscount: "10",
			wantTax:      "18",
			wantAmount:   "308",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := ResolveOnAdd(tt.product, tt.qty)

			assert.Equal(t, tt.product.ID, line.ID)
			assert.Equal(t, tt.qty, line.Qty)
			assert.Equal(t, tt.wantType, line.DiscountType)
			assertDecimal(t, tt.wantDiscount, line.Discount, "discount")
			assertDecimal(t, tt.wantTax, line.Tax, "tax")
			assertDecimal(t, tt.wantAmount, line.Amount, "amount")
		})
	}
}

func TestResolveOnAdd_CopiesDisplayFieldsAndTaxGroup(t *testing.T) {
	p := domain.Product{
		ID: 12, Name: "Basmati Rice", Unit: "kg", SellingPrice: d("80"),
		Tax: &domain.ProductTax{GroupID: 3, GroupName: "GST 12", TotalRate: d("12")},
	}

	line := ResolveOnAdd(p, 1)

	assert.Equal(t, "Basmati Rice", line.Name)
	assert.Equal(t, "kg", line.Unit)
	assertDecimal(t, "80", line.Rate)
	require.NotNil(t, line.TaxGroupID)
	assert.Equal(t, int64(3), *line.TaxGroupID)
	assertDecimal(t, "0", line.DiscountValue)
}

func TestResolveOnAdd_IsPure(t *testing.T) {
	p := domain.Product{
		ID: 9, SellingPrice: d("250"),
		Discount: &domain.Discount{Type: domain.DiscountPercentage, Value: d("4")},
		Tax:      &domain.ProductTax{GroupID: 2, TotalRate: d("18")},
	}

	first := ResolveOnAdd(p, 1)
	second := ResolveOnAdd(p, 1)
	assertSameLine(t, first, second)

	assertDecimal(t, "250", p.SellingPrice)
	assert.Equal(t, domain.DiscountPercentage, p.Discount.Type)
	assertDecimal(t, "4", p.Discount.Value)
	assertDecimal(t, "18", p.Tax.TotalRate)

	// the line does not alias the product's tax group id
	*first.TaxGroupID = 77
	assert.Equal(t, int64(2), p.Tax.GroupID)
}
