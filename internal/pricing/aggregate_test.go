package pricing

import (
	"math"
	"testing"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil)

	assertDecimal(t, "0", totals.SubTotal)
	assertDecimal(t, "0", totals.TotalDiscount)
	assertDecimal(t, "0", totals.TotalTax)
	assertDecimal(t, "0", totals.GrandTotal)
	assert.Equal(t, "Zero", AmountInWords(totals.GrandTotal))
}

func TestAggregate_MixedLines(t *testing.T) {
	lines := []domain.LineItem{
		Recalculate(baseLine(), testGroups), // 300 - 30 + 54
		ResolveOnAdd(domain.Product{ID: 3, SellingPrice: d("150"),
			Discount: &domain.Discount{Type: domain.DiscountFixed, Value: d("15")},
			Tax:      &domain.ProductTax{GroupID: 2, TotalRate: d("5")}}, 1), // 150 - 15 + 7.5
	}

	totals := Aggregate(lines)

	assertDecimal(t, "450", totals.SubTotal)
	assertDecimal(t, "45", totals.TotalDiscount)
	assertDecimal(t, "61.5", totals.TotalTax)
	assertDecimal(t, "466.5", totals.GrandTotal)
}

func TestAggregate_SubTotalIsSumOfRateTimesQty(t *testing.T) {
	lines := make([]domain.LineItem, 0, 20)
	want := 0.0
	for i := 1; i <= 20; i++ {
		line := baseLine()
		line.ID = int64(i)
		line.Qty = i
		line.Rate = d("0.1").Mul(d("3")).Add(d("19.99"))
		line = Recalculate(line, testGroups)
		lines = append(lines, line)

		rate, _ := line.Rate.Float64()
		want += rate * float64(i)
	}

	got, _ := Aggregate(lines).SubTotal.Float64()
	assert.LessOrEqual(t, math.Abs(got-want), 1e-9)
}

func TestAggregate_RemoveLineReducesTotals(t *testing.T) {
	first := Recalculate(baseLine(), testGroups)
	second := first
	second.ID = 43

	both := Aggregate([]domain.LineItem{first, second})
	one := Aggregate([]domain.LineItem{first})

	assertDecimal(t, "648", both.GrandTotal)
	assertDecimal(t, "324", one.GrandTotal)
}
