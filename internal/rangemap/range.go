package rangemap

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

var (
	// ErrEmptyRange is returned when both bounds exclude the same value. Such
	// a range contains nothing and has no representation.
	ErrEmptyRange = errors.New("range excludes both ends of a single value")

	// ErrShiftOverflow is returned when shifting a range would move one of
	// its ends past the limits of the key type.
	ErrShiftOverflow = errors.New("shifted range overflows key type")
)

// Range is a normalized interval over an ordered key type. Ranges are only
// built by New and the helper constructors, so the start never sorts after
// the end. The zero value is the full range.
type Range[K constraints.Ordered] struct {
	start StartBound[K]
	end   EndBound[K]
}

// New builds a range from a pair of bounds.
//
// A backwards pair is swapped. Two bounds on the same value collapse to the
// point [x, x] if either side includes x, and are rejected with
// ErrEmptyRange if both sides exclude it.
func New[K constraints.Ordered](start, end Bound[K]) (Range[K], error) {
	start = start.canonical()
	end = end.canonical()
	if start.Type == Unbounded || end.Type == Unbounded {
		return Range[K]{StartBound[K]{start}, EndBound[K]{end}}, nil
	}

	switch {
	case start.Value < end.Value:
		return Range[K]{StartBound[K]{start}, EndBound[K]{end}}, nil
	case start.Value > end.Value:
		return Range[K]{StartBound[K]{end}, EndBound[K]{start}}, nil
	}
	if start.Type == Excluded && end.Type == Excluded {
		return Range[K]{}, fmt.Errorf("(%v, %v): %w", start.Value, end.Value, ErrEmptyRange)
	}
	return Point(start.Value), nil
}

func MustNew[K constraints.Ordered](start, end Bound[K]) Range[K] {
	r, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// HalfOpen returns [start, end).
func HalfOpen[K constraints.Ordered](start, end K) Range[K] {
	return MustNew(Inclusive(start), Exclusive(end))
}

// Closed returns [start, end].
func Closed[K constraints.Ordered](start, end K) Range[K] {
	return MustNew(Inclusive(start), Inclusive(end))
}

// AtLeast returns [start, ∞).
func AtLeast[K constraints.Ordered](start K) Range[K] {
	return Range[K]{start: StartBound[K]{Inclusive(start)}}
}

// GreaterThan returns (start, ∞).
func GreaterThan[K constraints.Ordered](start K) Range[K] {
	return Range[K]{start: StartBound[K]{Exclusive(start)}}
}

// LessThan returns (-∞, end).
func LessThan[K constraints.Ordered](end K) Range[K] {
	return Range[K]{end: EndBound[K]{Exclusive(end)}}
}

// AtMost returns (-∞, end].
func AtMost[K constraints.Ordered](end K) Range[K] {
	return Range[K]{end: EndBound[K]{Inclusive(end)}}
}

// Full returns (-∞, ∞).
func Full[K constraints.Ordered]() Range[K] {
	return Range[K]{}
}

// Point returns [v, v].
func Point[K constraints.Ordered](v K) Range[K] {
	return Range[K]{StartBound[K]{Inclusive(v)}, EndBound[K]{Inclusive(v)}}
}

func (r Range[K]) Start() StartBound[K] {
	return r.start
}

func (r Range[K]) End() EndBound[K] {
	return r.end
}

func (r Range[K]) StartValue() (K, bool) {
	return r.start.Val()
}

func (r Range[K]) EndValue() (K, bool) {
	return r.end.Val()
}

func (r Range[K]) IsPoint() bool {
	return r.start.Type == Included && r.end.Type == Included && r.start.Value == r.end.Value
}

func (r Range[K]) Contains(p K) bool {
	return r.start.admits(p) && r.end.admits(p)
}

// ContainsRange reports whether o lies entirely within r.
func (r Range[K]) ContainsRange(o Range[K]) bool {
	return r.start.Compare(o.start) <= 0 && o.end.Compare(r.end) <= 0
}

// Overlaps reports whether r and o share at least one point.
func (r Range[K]) Overlaps(o Range[K]) bool {
	return nonEmpty(maxStart(r.start, o.start), minEnd(r.end, o.end))
}

// Touches reports whether r and o overlap or meet with no gap between them.
// Two ranges excluding the same point on either side do not touch.
func (r Range[K]) Touches(o Range[K]) bool {
	s := maxStart(r.start, o.start)
	e := minEnd(r.end, o.end)
	if s.Type == Unbounded || e.Type == Unbounded {
		return true
	}
	if s.Type == Excluded && e.Type == Excluded {
		return s.Value < e.Value
	}
	return s.Value <= e.Value
}

// Intersect returns the overlapping part of r and o.
func (r Range[K]) Intersect(o Range[K]) (Range[K], bool) {
	s := maxStart(r.start, o.start)
	e := minEnd(r.end, o.end)
	if !nonEmpty(s, e) {
		return Range[K]{}, false
	}
	return Range[K]{s, e}, true
}

// before returns the part of r strictly before s, if any.
func (r Range[K]) before(s StartBound[K]) (Range[K], bool) {
	if r.start.Compare(s) >= 0 {
		return Range[K]{}, false
	}
	e, ok := s.Before()
	if !ok {
		return Range[K]{}, false
	}
	return Range[K]{r.start, minEnd(r.end, e)}, true
}

// after returns the part of r strictly after e, if any.
func (r Range[K]) after(e EndBound[K]) (Range[K], bool) {
	if r.end.Compare(e) <= 0 {
		return Range[K]{}, false
	}
	s, ok := e.After()
	if !ok {
		return Range[K]{}, false
	}
	return Range[K]{maxStart(r.start, s), r.end}, true
}

func formatValue(v any) string {
	if _, ok := v.(struct{}); ok {
		return "()"
	}
	return fmt.Sprintf("%v", v)
}

func (r Range[K]) writeTo(sb *strings.Builder) {
	switch r.start.Type {
	case Unbounded:
		sb.WriteString("(-∞, ")
	case Included:
		fmt.Fprintf(sb, "[%v, ", r.start.Value)
	case Excluded:
		fmt.Fprintf(sb, "(%v, ", r.start.Value)
	}
	switch r.end.Type {
	case Unbounded:
		sb.WriteString("∞)")
	case Included:
		fmt.Fprintf(sb, "%v]", r.end.Value)
	case Excluded:
		fmt.Fprintf(sb, "%v)", r.end.Value)
	}
}

func (r Range[K]) String() string {
	var sb strings.Builder
	r.writeTo(&sb)
	return sb.String()
}

type Number interface {
	constraints.Integer | constraints.Float
}

// shiftBy adds delta to the bounded ends of r. The result is rejected if
// either end wraps around, or if the ends no longer keep their order, which
// can happen when float precision is lost.
func shiftBy[K Number](r Range[K], delta K, up bool) (Range[K], error) {
	out := r
	wrapped := false
	move := func(v K) K {
		var n K
		if up {
			n = v + delta
		} else {
			n = v - delta
		}
		// Each end must move in the direction of the shift, or not at all.
		if (delta >= 0) == up {
			wrapped = wrapped || n < v
		} else {
			wrapped = wrapped || n > v
		}
		return n
	}
	if out.start.Type != Unbounded {
		out.start.Value = move(out.start.Value)
	}
	if out.end.Type != Unbounded {
		out.end.Value = move(out.end.Value)
	}
	if !wrapped && out.start.Type != Unbounded && out.end.Type != Unbounded &&
		cmpValue(out.start.Value, out.end.Value) != cmpValue(r.start.Value, r.end.Value) {
		wrapped = true
	}
	if wrapped {
		return Range[K]{}, fmt.Errorf("%v by %v: %w", r, delta, ErrShiftOverflow)
	}
	return out, nil
}

// Shift moves the bounded ends of r by delta. Unbounded ends stay put.
// ErrShiftOverflow is returned if an end falls outside K.
func Shift[K Number](r Range[K], delta K) (Range[K], error) {
	return shiftBy(r, delta, true)
}

// ShiftRight is Shift by a non-negative amount.
func ShiftRight[K Number](r Range[K], by K) (Range[K], error) {
	return shiftBy(r, by, true)
}

// ShiftLeft moves the bounded ends of r down by by. Useful for unsigned keys,
// where Shift can't go backwards.
func ShiftLeft[K Number](r Range[K], by K) (Range[K], error) {
	return shiftBy(r, by, false)
}
