package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotNumeric          = errors.New("value is not a number")
	ErrNegative            = errors.New("value cannot be negative")
	ErrUnknownDiscountType = errors.New("discount type must be Fixed or Percentage")
	ErrUnknownField        = errors.New("unknown line field")
	ErrOutOfRange          = errors.New("value is out of range")
	ErrNotWholeNumber      = errors.New("value is not a whole number")
)

const maxMoneyExponent = 30

// maxMoney bounds what ParseMoneyInput accepts
var maxMoney = decimal.New(1, 15)

// InputError describes raw input that the tolerant parsers will coerce.
// It is a warning: the line is still recomputed with the coerced value.
type InputError struct {
	Field Field
	Value string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Err.Error())
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ParseQty parses a quantity. Anything non-numeric becomes 0 and fractions
// are truncated toward zero.
func ParseQty(raw string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !isFinite(f) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ParseMoneyInput parses a price, rate or discount value. Anything
// non-numeric or out of range becomes 0.
func ParseMoneyInput(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !moneyInRange(d) {
		return decimal.Zero
	}
	return d
}

// moneyInRange rejects exponents that would make later arithmetic rescale
// to enormous integers, then magnitudes above maxMoney.
func moneyInRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp < -maxMoneyExponent || exp > maxMoneyExponent {
		return false
	}
	return d.Abs().Cmp(maxMoney) <= 0
}

// ParseTaxGroupID parses a tax group reference. Blank or non-numeric input
// means no group.
func ParseTaxGroupID(raw string) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// CheckInput reports whether raw would be coerced when applied to field.
// It never changes what RecomputeOnEdit computes.
func CheckInput(field Field, raw string) error {
	trimmed := strings.TrimSpace(raw)
	switch field {
	case FieldQty:
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return &InputError{Field: field, Value: raw, Err: ErrNotNumeric}
		}
		if math.IsNaN(f) {
			return &InputError{Field: field, Value: raw, Err: ErrNotNumeric}
		}
		if err != nil || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return &InputError{Field: field, Value: raw, Err: ErrOutOfRange}
		}
		if f < 0 {
			return &InputError{Field: field, Value: raw, Err: ErrNegative}
		}
		if f != math.Trunc(f) {
			return &InputError{Field: field, Value: raw, Err: ErrNotWholeNumber}
		}
	case FieldRate, FieldDiscountValue:
		d, err := decimal.NewFromString(trimmed)
		if err != nil {
			return &InputError{Field: field, Value: raw, Err: ErrNotNumeric}
		}
		if !moneyInRange(d) {
			return &InputError{Field: field, Value: raw, Err: ErrOutOfRange}
		}
		if d.IsNegative() {
			return &InputError{Field: field, Value: raw, Err: ErrNegative}
		}
	case FieldDiscountType:
		if !domain.DiscountType(raw).IsValid() {
			return &InputError{Field: field, Value: raw, Err: ErrUnknownDiscountType}
		}
	case FieldTaxGroup:
		if trimmed == "" {
			return nil
		}
		if _, err := strconv.ParseInt(trimmed, 10, 64); err != nil {
			return &InputError{Field: field, Value: raw, Err: ErrNotNumeric}
		}
	default:
		return &InputError{Field: field, Value: raw, Err: ErrUnknownField}
	}
	return nil
}

// CheckChanges runs CheckInput over a batch and collects the warnings
func CheckChanges(changes []Change) []error {
	var warnings []error
	for _, c := range changes {
		if err := CheckInput(c.Field, c.Value); err != nil {
			warnings = append(warnings, err)
		}
	}
	return warnings
}
