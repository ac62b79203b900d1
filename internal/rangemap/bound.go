package rangemap

import (
	"golang.org/x/exp/constraints"
)

type BoundType uint8

const (
	Unbounded BoundType = iota
	Included
	Excluded
)

func (t BoundType) String() string {
	switch t {
	case Unbounded:
		return "Unbounded"
	case Included:
		return "Included"
	case Excluded:
		return "Excluded"
	}
	return "BoundType(?)"
}

// Bound describes one endpoint of a range. The zero value is Unbounded.
type Bound[K constraints.Ordered] struct {
	Type  BoundType
	Value K
}

func Inclusive[K constraints.Ordered](v K) Bound[K] {
	return Bound[K]{Type: Included, Value: v}
}

func Exclusive[K constraints.Ordered](v K) Bound[K] {
	return Bound[K]{Type: Excluded, Value: v}
}

func Unbound[K constraints.Ordered]() Bound[K] {
	return Bound[K]{}
}

// Val returns the bound's value, if it has one.
func (b Bound[K]) Val() (v K, ok bool) {
	if b.Type == Unbounded {
		return
	}
	return b.Value, true
}

func (b Bound[K]) IsUnbounded() bool {
	return b.Type == Unbounded
}

// canonical clears the value of an unbounded bound so that bounds can be
// compared with ==.
func (b Bound[K]) canonical() Bound[K] {
	if b.Type == Unbounded {
		return Bound[K]{}
	}
	return b
}

// StartBound is a Bound used as the lower end of a range.
//
// Ordering: Unbounded sorts before everything, and at the same value
// Included(x) sorts before Excluded(x).
type StartBound[K constraints.Ordered] struct {
	Bound[K]
}

// EndBound is a Bound used as the upper end of a range.
//
// Ordering: Unbounded sorts after everything, and at the same value
// Excluded(x) sorts before Included(x).
type EndBound[K constraints.Ordered] struct {
	Bound[K]
}

func cmpValue[K constraints.Ordered](a, b K) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// Compare returns -1, 0 or +1 depending on whether s begins before, at the
// same place as, or after o.
func (s StartBound[K]) Compare(o StartBound[K]) int {
	switch {
	case s.Type == Unbounded && o.Type == Unbounded:
		return 0
	case s.Type == Unbounded:
		return -1
	case o.Type == Unbounded:
		return 1
	}
	if c := cmpValue(s.Value, o.Value); c != 0 {
		return c
	}
	if s.Type == o.Type {
		return 0
	} else if s.Type == Included {
		return -1
	}
	return 1
}

// Compare returns -1, 0 or +1 depending on whether e finishes before, at the
// same place as, or after o.
func (e EndBound[K]) Compare(o EndBound[K]) int {
	switch {
	case e.Type == Unbounded && o.Type == Unbounded:
		return 0
	case e.Type == Unbounded:
		return 1
	case o.Type == Unbounded:
		return -1
	}
	if c := cmpValue(e.Value, o.Value); c != 0 {
		return c
	}
	if e.Type == o.Type {
		return 0
	} else if e.Type == Excluded {
		return -1
	}
	return 1
}

// Before returns the end bound of the region immediately preceding s.
// Nothing precedes an unbounded start.
func (s StartBound[K]) Before() (EndBound[K], bool) {
	switch s.Type {
	case Included:
		return EndBound[K]{Exclusive(s.Value)}, true
	case Excluded:
		return EndBound[K]{Inclusive(s.Value)}, true
	}
	return EndBound[K]{}, false
}

// After returns the start bound of the region immediately following e.
// Nothing follows an unbounded end.
func (e EndBound[K]) After() (StartBound[K], bool) {
	switch e.Type {
	case Included:
		return StartBound[K]{Exclusive(e.Value)}, true
	case Excluded:
		return StartBound[K]{Inclusive(e.Value)}, true
	}
	return StartBound[K]{}, false
}

// admits reports whether p lies at or after s.
func (s StartBound[K]) admits(p K) bool {
	switch s.Type {
	case Included:
		return s.Value <= p
	case Excluded:
		return s.Value < p
	}
	return true
}

// admits reports whether p lies at or before e.
func (e EndBound[K]) admits(p K) bool {
	switch e.Type {
	case Included:
		return p <= e.Value
	case Excluded:
		return p < e.Value
	}
	return true
}

func minStart[K constraints.Ordered](a, b StartBound[K]) StartBound[K] {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

func maxStart[K constraints.Ordered](a, b StartBound[K]) StartBound[K] {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

func minEnd[K constraints.Ordered](a, b EndBound[K]) EndBound[K] {
	if a.Compare(b) <= 0 {
		return a
	}
	return b
}

func maxEnd[K constraints.Ordered](a, b EndBound[K]) EndBound[K] {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

// nonEmpty reports whether the span from s to e contains at least one point.
func nonEmpty[K constraints.Ordered](s StartBound[K], e EndBound[K]) bool {
	if s.Type == Unbounded || e.Type == Unbounded {
		return true
	}
	if s.Value != e.Value {
		return s.Value < e.Value
	}
	return s.Type == Included && e.Type == Included
}
