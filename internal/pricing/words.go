package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

var (
	ones  = []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	teens = []string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	tens  = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
)

// NumberToWords spells n using the Indian numbering system
// (crore, lakh, thousand, hundred) in title case, e.g. 150000 is
// "One Lakh Fifty Thousand". Zero is returned as lowercase "zero".
// Negative numbers are spelled by magnitude.
func NumberToWords(n int64) string {
	// uint64 keeps math.MinInt64 representable
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	}
	if u == 0 {
		return "zero"
	}
	return titleCase(spell(u))
}

// AmountInWords renders a money amount for printed documents. The amount is
// rounded to whole currency units first; anything at or below zero is "Zero".
func AmountInWords(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.Sign() <= 0 {
		return "Zero"
	}
	return NumberToWords(rounded.IntPart())
}

func spell(n uint64) string {
	parts := make([]string, 0, 5)

	if c := n / crore; c > 0 {
		// crore is the largest unit, so larger counts are spelled recursively
		count := belowHundred(c)
		if c >= 100 {
			count = spell(c)
		}
		parts = append(parts, count+" crore")
	}
	n %= crore

	if l := n / lakh; l > 0 {
		parts = append(parts, belowHundred(l)+" lakh")
	}
	n %= lakh

	if t := n / thousand; t > 0 {
		parts = append(parts, belowHundred(t)+" thousand")
	}
	n %= thousand

	if h := n / 100; h > 0 {
		parts = append(parts, ones[h]+" hundred")
	}
	n %= 100

	if n > 0 {
		parts = append(parts, belowHundred(n))
	}

	return strings.Join(parts, " ")
}

func belowHundred(n uint64) string {
	switch {
	case n < 10:
		return ones[n]
	case n < 20:
		return teens[n-10]
	case n%10 == 0:
		return tens[n/10]
	default:
		return tens[n/10] + " " + ones[n%10]
	}
}

// titleCase upper-cases the first letter of each word.
// A Caser keeps state, so each call gets its own.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
