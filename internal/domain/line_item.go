package domain

import "github.com/shopspring/decimal"

// LineItem is one product row on a purchasing document.
// Discount, Tax and Amount are derived and only ever set together by the pricing package.
type LineItem struct {
	ID            int64 // product id, unique within a document
	Name          string
	Unit          string
	Qty           int
	Rate          decimal.Decimal
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	Discount      decimal.Decimal
	TaxGroupID    *int64
	Tax           decimal.Decimal
	Amount        decimal.Decimal
}

// Subtotal returns rate * qty before discount and tax
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Rate.Mul(decimal.NewFromInt(int64(l.Qty)))
}

// Totals are the derived document totals
type Totals struct {
	SubTotal      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
}
