package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "₹0.00"},
		{"5", "₹5.00"},
		{"999.999", "₹1,000.00"},
		{"1000", "₹1,000.00"},
		{"12345.6", "₹12,345.60"},
		{"100000", "₹1,00,000.00"},
		{"1234567.5", "₹12,34,567.50"},
		{"12345678", "₹1,23,45,678.00"},
		{"-2500", "-₹2,500.00"},
		{"-0.001", "₹0.00"},
		{"-0.005", "-₹0.01"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(d(tt.amount), "₹"), "amount=%s", tt.amount)
	}
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "18%", FormatRate(d("18.00")))
	assert.Equal(t, "2.5%", FormatRate(d("2.5")))
}
