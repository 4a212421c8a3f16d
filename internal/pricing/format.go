package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount formats money with two decimals and Indian digit grouping,
// e.g. 1234567.5 with symbol "₹" is "₹12,34,567.50".
func FormatAmount(amount decimal.Decimal, symbol string) string {
	rounded := amount.Round(2)
	negative := rounded.IsNegative()
	s := rounded.Abs().StringFixed(2)

	dot := strings.IndexByte(s, '.')
	intPart, decPart := s[:dot], s[dot:]

	prefix := symbol
	if negative {
		prefix = "-" + symbol
	}
	return prefix + groupIndian(intPart) + decPart
}

// FormatRate formats a percentage without trailing zeros, e.g. "18%" or "2.5%"
func FormatRate(rate decimal.Decimal) string {
	return rate.String() + "%"
}

// groupIndian inserts commas after the last three digits, then every two
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	groups := make([]string, 0, len(head)/2+2)
	if len(head)%2 == 1 {
		groups = append(groups, head[:1])
		head = head[1:]
	}
	for len(head) > 0 {
		groups = append(groups, head[:2])
		head = head[2:]
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
