package money

import (
	"fmt"
	"math"
	"strings"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits carried by every amount.
const Decimals = 2

// Amount represents a monetary amount as an integer in the smallest unit (cents).
type Amount = int64

var scale = decimal.New(1, Decimals)

// Money is a fixed-point monetary value with exactly two fractional digits.
// Invariants:
//   - Amount is always stored in the smallest unit.
//   - Values parsed from text never carry more than two fractional digits.
type Money struct {
	amount Amount
}

// Zero is the zero amount.
var Zero = Money{}

// FromMinorUnits creates Money from an amount expressed in cents.
func FromMinorUnits(cents int64) Money {
	return Money{amount: cents}
}

// FromDecimal creates Money from a decimal value.
// Invariants enforced:
//   - At most two fractional digits.
//   - The value fits in an int64 number of cents.
func FromDecimal(d decimal.Decimal) (Money, error) {
	if !d.Equal(d.Truncate(Decimals)) {
		return Money{}, fmt.Errorf("%w: more than %d decimal places in %s",
			domain.ErrMalformedAmount, Decimals, d.String())
	}
	cents := d.Mul(scale)
	if cents.GreaterThan(decimal.NewFromInt(math.MaxInt64)) ||
		cents.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return Money{}, fmt.Errorf("%w: %s exceeds maximum safe integer value",
			domain.ErrMalformedAmount, d.String())
	}
	return Money{amount: cents.IntPart()}, nil
}

// Parse reads a decimal string such as "100", "30.5" or "30.50".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", domain.ErrMalformedAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", domain.ErrMalformedAmount, s)
	}
	return FromDecimal(d)
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MinorUnits returns the amount in cents.
func (m Money) MinorUnits() Amount {
	return m.amount
}

// Decimal returns the amount in the main unit.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -Decimals)
}

// Add returns m + other, failing on int64 overflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m.amount + other.amount
	if (other.amount > 0 && sum < m.amount) || (other.amount < 0 && sum > m.amount) {
		return Money{}, fmt.Errorf("%w: addition overflows", domain.ErrMalformedAmount)
	}
	return Money{amount: sum}, nil
}

// Subtract returns m - other, failing on int64 overflow.
func (m Money) Subtract(other Money) (Money, error) {
	if other.amount == math.MinInt64 {
		return Money{}, fmt.Errorf("%w: subtraction overflows", domain.ErrMalformedAmount)
	}
	return m.Add(other.Negate())
}

// Negate negates the current Money object.
func (m Money) Negate() Money {
	return Money{amount: -m.amount}
}

// Equals checks if the current Money object is equal to another Money object.
func (m Money) Equals(other Money) bool {
	return m.amount == other.amount
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount > other.amount
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount < other.amount
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount > 0
}

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool {
	return m.amount < 0
}

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool {
	return m.amount == 0
}

// String renders the amount with exactly two fractional digits, e.g. "70.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(Decimals)
}

// MarshalJSON encodes the amount as a fixed-point string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both "30.00" and 30.00.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
