// Package finance holds the value objects a player owns: bank accounts, cards,
// loans and assets. Each type mutates only its own state and reports success
// with a boolean; billing across entities is left to the caller.
package finance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RandomSource is the slice of *rand.Rand the entities need.
type RandomSource interface {
	Float64() float64
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// Dollars builds an amount from a float literal.
func Dollars(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// FormatMoney renders an amount the way history lines and reports show it.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return fmt.Sprintf("-$%s", d.Neg().StringFixed(2))
	}
	return fmt.Sprintf("$%s", d.StringFixed(2))
}

// ParseMoney accepts "1200", "1200.50", "$1,200" and "1.2k".
func ParseMoney(raw string) (decimal.Decimal, error) {
	s := raw
	mult := decimal.NewFromInt(1)
	cleaned := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '$' || c == ',' || c == ' ':
			continue
		case (c == 'k' || c == 'K') && i == len(s)-1:
			mult = decimal.NewFromInt(1000)
			continue
		}
		cleaned = append(cleaned, c)
	}
	if len(cleaned) == 0 {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	d, err := decimal.NewFromString(string(cleaned))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d.Mul(mult), nil
}

// ParseRate accepts a fraction ("0.05") or a percentage ("5%").
func ParseRate(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("invalid rate %q", raw)
	}
	percent := raw[len(raw)-1] == '%'
	s := raw
	if percent {
		s = raw[:len(raw)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid rate %q: %w", raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("rate cannot be negative: %s", raw)
	}
	if percent || d.GreaterThan(decimal.NewFromInt(1)) {
		d = d.Div(hundred)
	}
	return d, nil
}
