package cryptoval

import (
	"fmt"
	"iter"
)

// Range represents an inclusive range of dates.
//
// Either bound may be the zero Date: a zero From means "unbounded past",
// a zero To means "today, at run time". This mirrors how a reporting range
// is usually given on the command line: any of the two ends may be omitted.
type Range struct{ From, To Date }

// NewRange builds a range and rejects inverted bounds. An inverted range is
// a configuration mistake and must fail before any transaction is processed.
func NewRange(from, to Date) (Range, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return Range{}, fmt.Errorf("invalid range: end %s is before start %s", to, from)
	}
	return Range{From: from, To: to}, nil
}

// Bounded returns the range with its open ends pinned: a zero To becomes
// today. A zero From stays zero (there is no meaningful lower pin).
func (r Range) Bounded() Range {
	if r.To.IsZero() {
		r.To = Today()
	}
	return r
}

// Contains reports whether date is within the range, boundaries included.
func (r Range) Contains(date Date) bool {
	if !r.From.IsZero() && date.Before(r.From) {
		return false
	}
	to := r.To
	if to.IsZero() {
		to = Today()
	}
	return !date.After(to)
}

// Days returns an iterator over each date in the range, inclusive.
// Both bounds must be set (see Bounded).
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Label is the human form of the range, for report titles.
func (r Range) Label() string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return "all time"
	case r.From.IsZero():
		return fmt.Sprintf("until %s", r.To)
	case r.To.IsZero():
		return fmt.Sprintf("since %s", r.From)
	default:
		return fmt.Sprintf("%s to %s", r.From, r.To)
	}
}
