package ascent

import "fmt"

// Percent is a percentage value used in reports.
type Percent float64

// Equal compares two percentages with a fixed precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.0f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.0f%%", p)
	if res == "+0%" {
		return "-"
	}
	return res
}

// Clamp bounds the percentage to [0, 100] for visual bars.
func (p Percent) Clamp() Percent {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
