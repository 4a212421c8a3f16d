package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

// lineFields lists the edit dialog inputs in display order
var lineFields = []struct {
	field pricing.Field
	input formField
}{
	{pricing.FieldQty, formField{label: "Quantity:", placeholder: "1", width: 10, limit: 12}},
	{pricing.FieldRate, formField{label: "Rate:", placeholder: "0.00", width: 15, limit: 20}},
	{pricing.FieldDiscountType, formField{label: "Discount Type (Fixed / Percentage):", placeholder: "Fixed", width: 15, limit: 20}},
	{pricing.FieldDiscountValue, formField{label: "Discount:", placeholder: "0", width: 15, limit: 20}},
	{pricing.FieldTaxGroup, formField{label: "Tax Group ID (blank for none):", placeholder: "", width: 10, limit: 12}},
}

// lineEditor is the edit dialog for one line. It keeps the line as loaded
// and previews the recomputed line from whatever is typed.
type lineEditor struct {
	original domain.LineItem
	groups   []domain.TaxGroup
	initial  []string
	form     form
}

func newLineEditor(line domain.LineItem, groups []domain.TaxGroup) lineEditor {
	taxGroup := ""
	if line.TaxGroupID != nil {
		taxGroup = strconv.FormatInt(*line.TaxGroupID, 10)
	}
	initial := []string{
		strconv.Itoa(line.Qty),
		line.Rate.String(),
		string(line.DiscountType),
		line.DiscountValue.String(),
		taxGroup,
	}

	fields := make([]formField, len(lineFields))
	for i, lf := range lineFields {
		fields[i] = lf.input
	}

	return lineEditor{
		original: line,
		groups:   groups,
		initial:  initial,
		form:     newForm(fields, initial),
	}
}

// changes returns an edit for every input whose text differs from the loaded value
func (e *lineEditor) changes() []pricing.Change {
	var changes []pricing.Change
	for i, lf := range lineFields {
		value := e.form.value(i)
		if value != e.initial[i] {
			changes = append(changes, pricing.Change{Field: lf.field, Value: value})
		}
	}
	return changes
}

// preview is the line as it will be saved
func (e *lineEditor) preview() domain.LineItem {
	return pricing.ApplyChanges(e.original, e.changes(), e.groups)
}

func (e *lineEditor) warnings() []error {
	return pricing.CheckChanges(e.changes())
}

// groupHint lists the selectable tax groups
func (e *lineEditor) groupHint() string {
	if len(e.groups) == 0 {
		return "no tax groups defined"
	}
	parts := make([]string, 0, len(e.groups))
	for _, g := range e.groups {
		parts = append(parts, fmt.Sprintf("%d %s (%s)", g.ID, g.Name, pricing.FormatRate(g.TotalRate)))
	}
	return strings.Join(parts, "  ")
}
