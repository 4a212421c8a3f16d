package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is a single named tax component, e.g. "CGST 9%"
type TaxRate struct {
	ID   int64
	Name string
	Rate decimal.Decimal // percentage
}

// Validate returns an error if the tax rate is invalid
func (r *TaxRate) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("tax rate name is required")
	}
	if r.Rate.IsNegative() {
		return errors.New("tax rate cannot be negative")
	}
	return nil
}

// TaxGroup bundles tax rates that apply together. TotalRate is what pricing reads.
type TaxGroup struct {
	ID        int64
	Name      string
	TotalRate decimal.Decimal
	Rates     []TaxRate
}

// NewTaxGroup creates a group whose total is the sum of its member rates
func NewTaxGroup(name string, rates []TaxRate) *TaxGroup {
	g := &TaxGroup{
		Name:  strings.TrimSpace(name),
		Rates: rates,
	}
	g.TotalRate = g.SumRates()
	return g
}

// SumRates adds up the member rates
func (g *TaxGroup) SumRates() decimal.Decimal {
	total := decimal.Zero
	for _, r := range g.Rates {
		total = total.Add(r.Rate)
	}
	return total
}

// Validate returns an error if the tax group is invalid
func (g *TaxGroup) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return errors.New("tax group name is required")
	}
	if g.TotalRate.IsNegative() {
		return errors.New("tax group total cannot be negative")
	}
	return nil
}

// FindTaxGroup returns the group with the given id, or nil
func FindTaxGroup(groups []TaxGroup, id *int64) *TaxGroup {
	if id == nil {
		return nil
	}
	for i := range groups {
		if groups[i].ID == *id {
			return &groups[i]
		}
	}
	return nil
}
