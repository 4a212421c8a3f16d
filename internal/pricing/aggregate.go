package pricing

import (
	"github.com/kanakku/kanakku/internal/domain"
	"github.com/shopspring/decimal"
)

// Aggregate totals a document's lines. It always re-reduces the full collection.
func Aggregate(lines []domain.LineItem) domain.Totals {
	subTotal := decimal.Zero
	totalDiscount := decimal.Zero
	totalTax := decimal.Zero
	for _, line := range lines {
		subTotal = subTotal.Add(line.Subtotal())
		totalDiscount = totalDiscount.Add(line.Discount)
		totalTax = totalTax.Add(line.Tax)
	}
	return domain.Totals{
		SubTotal:      subTotal,
		TotalDiscount: totalDiscount,
		TotalTax:      totalTax,
		GrandTotal:    subTotal.Sub(totalDiscount).Add(totalTax),
	}
}
