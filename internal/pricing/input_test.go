package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQty(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"3", 3},
		{" 12 ", 12},
		{"2.75", 2},
		{"", 0},
		{"abc", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"-4", -4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseQty(tt.raw), "raw=%q", tt.raw)
	}
}

func TestParseMoneyInput(t *testing.T) {
	assertDecimal(t, "12.5", ParseMoneyInput("12.50"))
	assertDecimal(t, "0", ParseMoneyInput("twelve"))
	assertDecimal(t, "0", ParseMoneyInput(""))
	assertDecimal(t, "1000", ParseMoneyInput(" 1000 "))
	assertDecimal(t, "0", ParseMoneyInput("1e99999999"))
	assertDecimal(t, "0", ParseMoneyInput("1e-99999999"))
	assertDecimal(t, "0", ParseMoneyInput("2000000000000000"))
	assertDecimal(t, "1000000000000000", ParseMoneyInput("1e15"))
}

func TestParseTaxGroupID(t *testing.T) {
	id := ParseTaxGroupID("7")
	require.NotNil(t, id)
	assert.Equal(t, int64(7), *id)

	assert.Nil(t, ParseTaxGroupID(""))
	assert.Nil(t, ParseTaxGroupID("gst"))
}

func TestCheckInput(t *testing.T) {
	tests := []struct {
		field Field
		raw   string
		want  error
	}{
		{FieldQty, "2", nil},
		{FieldQty, "two", ErrNotNumeric},
		{FieldQty, "-1", ErrNegative},
		{FieldQty, "2.9", ErrNotWholeNumber},
		{FieldQty, "3.0", nil},
		{FieldQty, "1e10", ErrOutOfRange},
		{FieldQty, "1e999", ErrOutOfRange},
		{FieldQty, "NaN", ErrNotNumeric},
		{FieldRate, "10.5", nil},
		{FieldRate, "x", ErrNotNumeric},
		{FieldRate, "1e99999999", ErrOutOfRange},
		{FieldDiscountValue, "1e-40", ErrOutOfRange},
		{FieldDiscountValue, "-3", ErrNegative},
		{FieldDiscountType, "Percentage", nil},
		{FieldDiscountType, "percent", ErrUnknownDiscountType},
		{FieldTaxGroup, "", nil},
		{FieldTaxGroup, "3", nil},
		{FieldTaxGroup, "gst", ErrNotNumeric},
		{Field("colour"), "red", ErrUnknownField},
	}

	for _, tt := range tests {
		err := CheckInput(tt.field, tt.raw)
		if tt.want == nil {
			assert.NoError(t, err, "%s=%q", tt.field, tt.raw)
			continue
		}
		require.Error(t, err, "%s=%q", tt.field, tt.raw)
		assert.True(t, errors.Is(err, tt.want), "%s=%q: %v", tt.field, tt.raw, err)

		var inputErr *InputError
		require.True(t, errors.As(err, &inputErr))
		assert.Equal(t, tt.field, inputErr.Field)
	}
}

func TestCheckInput_DoesNotChangeResult(t *testing.T) {
	line := Recalculate(baseLine(), testGroups)

	warnings := CheckChanges([]Change{{FieldDiscountValue, "abc"}})
	require.Len(t, warnings, 1)

	got := RecomputeOnEdit(line, FieldDiscountValue, "abc", testGroups)
	assertDecimal(t, "0", got.Discount)
	assertDecimal(t, "354", got.Amount)
}
