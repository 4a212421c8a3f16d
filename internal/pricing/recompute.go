package pricing

import (
	"github.com/kanakku/kanakku/internal/domain"
	"github.com/shopspring/decimal"
)

// Field names an editable line field
type Field string

const (
	FieldQty           Field = "qty"
	FieldRate          Field = "rate"
	FieldDiscountType  Field = "discountType"
	FieldDiscountValue Field = "discountValue"
	FieldTaxGroup      Field = "taxGroupId"
)

// Fields lists the editable fields in dialog order
var Fields = []Field{FieldQty, FieldRate, FieldDiscountType, FieldDiscountValue, FieldTaxGroup}

// ParseField maps a field name (or CLI flag spelling) to a Field
func ParseField(s string) (Field, bool) {
	switch s {
	case "qty", "quantity":
		return FieldQty, true
	case "rate", "price":
		return FieldRate, true
	case "discountType", "discount-type", "discount_type":
		return FieldDiscountType, true
	case "discountValue", "discount-value", "discount_value", "discount":
		return FieldDiscountValue, true
	case "taxGroupId", "tax-group", "tax_group_id", "tax":
		return FieldTaxGroup, true
	}
	return "", false
}

// Change is one field edit as typed by the user
type Change struct {
	Field Field
	Value string
}

// RecomputeOnEdit sets one field from raw input and recomputes the line's
// discount, tax and amount from scratch. Discount is taken against the line
// subtotal; tax is computed per unit and scaled by quantity.
func RecomputeOnEdit(line domain.LineItem, field Field, value string, groups []domain.TaxGroup) domain.LineItem {
	switch field {
	case FieldQty:
		line.Qty = ParseQty(value)
	case FieldRate:
		line.Rate = ParseMoneyInput(value)
	case FieldDiscountType:
		line.DiscountType = domain.DiscountType(value)
	case FieldDiscountValue:
		line.DiscountValue = ParseMoneyInput(value)
	case FieldTaxGroup:
		line.TaxGroupID = ParseTaxGroupID(value)
	}
	return Recalculate(line, groups)
}

// ApplyChanges runs RecomputeOnEdit for each change in order
func ApplyChanges(line domain.LineItem, changes []Change, groups []domain.TaxGroup) domain.LineItem {
	for _, c := range changes {
		line = RecomputeOnEdit(line, c.Field, c.Value, groups)
	}
	return line
}

// Recalculate derives discount, tax and amount from the line's current inputs
func Recalculate(line domain.LineItem, groups []domain.TaxGroup) domain.LineItem {
	qty := decimal.NewFromInt(int64(line.Qty))
	subtotal := qty.Mul(line.Rate)

	discountAmount := line.DiscountValue
	if line.DiscountType == domain.DiscountPercentage {
		discountAmount = percentOf(subtotal, line.DiscountValue)
	}
	discountedSubtotal := subtotal.Sub(discountAmount)

	taxRate := decimal.Zero
	if g := domain.FindTaxGroup(groups, line.TaxGroupID); g != nil {
		taxRate = g.TotalRate
	}
	taxPerUnit := percentOf(line.Rate, taxRate)
	totalTax := taxPerUnit.Mul(qty)

	line.Discount = discountAmount
	line.Tax = totalTax
	line.Amount = discountedSubtotal.Add(totalTax)
	return line
}
