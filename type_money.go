package ascent

import (
	"encoding/json"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value: an exact decimal amount in a currency.
type Money struct {
	value decimal.Decimal // major unit value
	cur   string
}

// M builds a Money value from any numeric type.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

func newDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case float32:
		return decimal.NewFromFloat32(x)
	case float64:
		return decimal.NewFromFloat(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	case uint:
		return decimal.NewFromUint64(uint64(x))
	case uint32:
		return decimal.NewFromUint64(uint64(x))
	case uint64:
		return decimal.NewFromUint64(x)
	default:
		panic(fmt.Sprintf("unsupported numeric type %T", v))
	}
}

// currency returns the money's full currency metadata.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency even for unknown codes.
	return *money.New(0, m.cur).Currency()
}

// String returns the formatted representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString is like String but with an explicit sign; zero renders as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// MulF scales the amount by a plain factor (tax rates, multipliers).
func (m Money) MulF(f float64) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(f)), cur: m.cur}
}

// DivF divides the amount by a plain divisor. Division by zero divides by 1.
func (m Money) DivF(f float64) Money {
	if f == 0 {
		f = 1
	}
	return Money{value: m.value.Div(decimal.NewFromFloat(f)), cur: m.cur}
}

// Ratio returns 100 * m / n rounded to the nearest integer. A zero n is
// treated as 1 so the ratio is always defined.
func (m Money) Ratio(n Money) int {
	d := n.value
	if d.IsZero() {
		d = decimal.NewFromInt(1)
	}
	return int(m.value.Div(d).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
}

// AsFloat returns the inexact float value, for display-only computations.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + " != " + b.cur)
	}
	return a.cur
}

type jmoney struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(jmoney{Amount: m.value, Currency: m.cur})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var j jmoney
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	m.value = j.Amount
	m.cur = j.Currency
	return nil
}
