// Package money holds the IDR formatting and free-text parsing helpers shared
// by all calculators. Amounts are whole rupiah; there are no decimal places.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var twelve = decimal.NewFromInt(12)

// FormatIDR renders an amount as "Rp 1.234.567" (no decimal places, dot as
// thousands separator). Negative amounts render as "-Rp 1.234.567".
func FormatIDR(n decimal.Decimal) string {
	rounded := n.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("Rp ")
	b.WriteString(groupThousands(digits))
	return b.String()
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseAmount strips every non-digit character and parses the remainder as an
// unsigned whole amount. Empty or non-numeric input yields zero. Never errors;
// money fields must not block typing.
func ParseAmount(text string) decimal.Decimal {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// MonthlyEquivalent normalizes a yearly amount to its monthly share; monthly
// amounts pass through unchanged.
func MonthlyEquivalent(amount decimal.Decimal, yearly bool) decimal.Decimal {
	if yearly {
		return amount.Div(twelve)
	}
	return amount
}

func Clamp(n, lo, hi float64) float64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

func ClampDecimal(n, lo, hi decimal.Decimal) decimal.Decimal {
	if n.LessThan(lo) {
		return lo
	}
	if n.GreaterThan(hi) {
		return hi
	}
	return n
}

// MaxZero returns n, floored at zero.
func MaxZero(n decimal.Decimal) decimal.Decimal {
	if n.IsNegative() {
		return decimal.Zero
	}
	return n
}
