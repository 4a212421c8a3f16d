package cli

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Cement", 10, "Cement"},
		{"Portland Cement 53 Grade", 10, "Portlan..."},
		{"\u00d1and\u00fa Traders", 8, "\u00d1and\u00fa..."},
		{"₹₹₹₹₹", 5, "₹₹₹₹₹"},
		{"₹₹₹₹₹", 3, "₹₹₹"},
	}

	for _, tt := range tests {
		got := truncate(tt.in, tt.maxLen)
		assert.Equal(t, tt.want, got, "in=%q", tt.in)
		assert.True(t, utf8.ValidString(got), "in=%q", tt.in)
	}
}
