package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses a price token from the price list (e.g. "89.90") into a
// decimal. Returns an error for tokens that are not valid non-negative numbers.
func ParsePrice(token string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(token))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price token %q: %w", token, err)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid price token %q: negative amount", token)
	}
	return price, nil
}

// FormatPEN formats a decimal amount as a string like "S/ 1,234.50".
// Uses comma as thousands separator (common in Peru) and two decimals.
func FormatPEN(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	s := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3 + 4)
	if neg {
		b.WriteString("-S/ ")
	} else {
		b.WriteString("S/ ")
	}

	// Insert separators from the left.
	rem := len(intPart) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(intPart[:rem])
	for i := rem; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)

	return b.String()
}
