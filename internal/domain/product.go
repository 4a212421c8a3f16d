package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType says how a discount value is interpreted
type DiscountType string

const (
	DiscountFixed      DiscountType = "Fixed"
	DiscountPercentage DiscountType = "Percentage"
)

// IsValid reports whether t is one of the known discount types
func (t DiscountType) IsValid() bool {
	return t == DiscountFixed || t == DiscountPercentage
}

// Discount is the catalog-level discount attached to a product
type Discount struct {
	Type  DiscountType
	Value decimal.Decimal
}

// ProductTax is a read-only snapshot of the tax group assigned to a product
type ProductTax struct {
	GroupID   int64
	GroupName string
	TotalRate decimal.Decimal // percentage
}

type Product struct {
	ID           int64
	Name         string
	Unit         string
	SellingPrice decimal.Decimal
	Discount     *Discount   // nil = no discount
	Tax          *ProductTax // nil = untaxed
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct creates a catalog product with no discount and no tax
func NewProduct(name, unit string, sellingPrice decimal.Decimal) *Product {
	now := time.Now()
	return &Product{
		Name:         strings.TrimSpace(name),
		Unit:         strings.TrimSpace(unit),
		SellingPrice: sellingPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate returns an error if the product is invalid
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("product name is required")
	}
	if p.SellingPrice.IsNegative() {
		return errors.New("selling price cannot be negative")
	}
	if p.Discount != nil {
		if !p.Discount.Type.IsValid() {
			return errors.New("discount type must be Fixed or Percentage")
		}
		if p.Discount.Value.IsNegative() {
			return errors.New("discount value cannot be negative")
		}
	}
	return nil
}
