package pricing

import (
	"github.com/kanakku/kanakku/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// percentOf returns base * pct / 100
func percentOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

// ResolveOnAdd builds a new line for a product picked from the catalog.
//
// Discount and tax are taken against a single unit's selling price, while the
// amount scales the price by quantity. Lines are always added with quantity 1,
// so this only diverges from RecomputeOnEdit once a caller passes more.
func ResolveOnAdd(product domain.Product, quantity int) domain.LineItem {
	sellingPrice := product.SellingPrice

	discountType := domain.DiscountFixed
	discountValue := decimal.Zero
	discount := decimal.Zero
	if product.Discount != nil {
		discountType = product.Discount.Type
		discountValue = product.Discount.Value
		switch discountType {
		case domain.DiscountFixed:
			discount = discountValue
		case domain.DiscountPercentage:
			discount = percentOf(sellingPrice, discountValue)
		}
	}

	taxRate := decimal.Zero
	var taxGroupID *int64
	if product.Tax != nil {
		taxRate = product.Tax.TotalRate
		id := product.Tax.GroupID
		taxGroupID = &id
	}
	tax := percentOf(sellingPrice, taxRate)

	amount := sellingPrice.Mul(decimal.NewFromInt(int64(quantity))).Sub(discount).Add(tax)

	return domain.LineItem{
		ID:            product.ID,
		Name:          product.Name,
		Unit:          product.Unit,
		Qty:           quantity,
		Rate:          sellingPrice,
		DiscountType:  discountType,
		DiscountValue: discountValue,
		Discount:      discount,
		TaxGroupID:    taxGroupID,
		Tax:           tax,
		Amount:        amount,
	}
}
