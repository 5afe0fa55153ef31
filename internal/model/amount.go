package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads the won value out of an amount token such as "50,000원".
// Absent or digitless tokens are zero.
func ParseAmount(amount *string) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, *amount)
	if digits == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatWon renders d with thousands separators and no fraction, e.g. "1,250,000".
func FormatWon(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
