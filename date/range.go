package date

import "iter"

// Range represents an inclusive interval of days.
type Range struct {
	From, To Date
}

// NewRange returns the range [from, to]. It panics if to is before from.
func NewRange(from, to Date) Range {
	if to.Before(from) {
		panic("invalid range: " + from.String() + " after " + to.String())
	}
	return Range{From: from, To: to}
}

// Trailing returns the range of n days ending at 'to' (inclusive).
func Trailing(to Date, n int) Range {
	if n < 1 {
		n = 1
	}
	return Range{From: to.Add(1 - n), To: to}
}

// Days returns the number of days in the range.
func (r Range) Days() int { return r.To.Sub(r.From) + 1 }

// Contains reports whether d falls within the range.
func (r Range) Contains(d Date) bool {
	return !d.Before(r.From) && !d.After(r.To)
}

// All iterates over every day of the range in chronological order.
func (r Range) All() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}
