// Package money implements fixed-point currency arithmetic for the
// exchange simulation. Values are stored as integer cents to avoid
// floating-point drift; every exported constructor enforces the
// non-negative, ≤2-fractional-digit invariant.
package money

import (
	"encoding/json"
	"fmt"
	"math"
)

// Currency tags a Money value. Only HKD is modeled today.
type Currency string

const (
	HKD Currency = "HKD"
)

// Money is a non-negative amount with at most 2 fractional digits,
// stored internally as cents to keep arithmetic exact.
type Money struct {
	Currency Currency
	cents    int64
}

// New builds a Money from a float64 amount, rounding to the nearest cent.
// Negative amounts are rejected.
func New(currency Currency, amount float64) (Money, error) {
	if amount < 0 {
		return Money{}, fmt.Errorf("money: negative amount %v", amount)
	}
	return Money{Currency: currency, cents: round2(amount)}, nil
}

// FromCents builds a Money directly from an integer cent count.
func FromCents(currency Currency, cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, fmt.Errorf("money: negative cents %d", cents)
	}
	return Money{Currency: currency, cents: cents}, nil
}

// Value returns the amount as a float64 with exactly 2 fractional digits.
func (m Money) Value() float64 {
	return float64(m.cents) / 100
}

// Cents returns the exact integer cent representation.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns m+other. Adding across currencies is a programming error
// and panics, matching the fatal-on-mismatch contract of the engine.
func (m Money) Add(other Money) Money {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: cannot add %s to %s", other.Currency, m.Currency))
	}
	return Money{Currency: m.Currency, cents: m.cents + other.cents}
}

// Sub returns m-other, clamped at zero (callers that need overdraft
// semantics use investor.SubtractCash instead of raw subtraction).
func (m Money) Sub(other Money) Money {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: cannot subtract %s from %s", other.Currency, m.Currency))
	}
	c := m.cents - other.cents
	if c < 0 {
		c = 0
	}
	return Money{Currency: m.Currency, cents: c}
}

// GreaterOrEqual reports whether m >= other (same currency required).
func (m Money) GreaterOrEqual(other Money) bool {
	if m.Currency != other.Currency {
		panic(fmt.Sprintf("money: cannot compare %s to %s", other.Currency, m.Currency))
	}
	return m.cents >= other.cents
}

// MulFloat multiplies the amount by a non-negative scalar, rounding to
// the nearest cent. Used for price × shares totals.
func (m Money) MulFloat(factor float64) Money {
	return Money{Currency: m.Currency, cents: round2(m.Value() * factor)}
}

func round2(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Average returns the simple mean of a slice of same-currency amounts.
// Panics if the slice is empty or mixes currencies.
func Average(values []Money) Money {
	if len(values) == 0 {
		panic("money: average of empty slice")
	}
	currency := values[0].Currency
	var sum int64
	for _, v := range values {
		if v.Currency != currency {
			panic(fmt.Sprintf("money: cannot average %s with %s", v.Currency, currency))
		}
		sum += v.cents
	}
	return Money{Currency: currency, cents: int64(math.Round(float64(sum) / float64(len(values))))}
}

// MarshalJSON renders Money as its float64 value, matching the wire
// format the external collaborators expect.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`%.2f`, m.Value())), nil
}

// UnmarshalJSON restores a Money from its float64 wire form. Currency is
// left at its zero value; callers that need it set it explicitly after
// decode (mirrors how the exchange keys Money by symbol, not by currency
// tag, in its own JSON envelopes).
func (m *Money) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("money: negative amount %v", v)
	}
	m.cents = round2(v)
	return nil
}
