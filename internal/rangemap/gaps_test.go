package rangemap

import (
	"slices"
	"testing"
)

type gapIterator[K Number] interface {
	Next() (Range[K], bool)
}

func checkGaps[K Number](t *testing.T, g gapIterator[K], exp ...Range[K]) {
	t.Helper()
	var got []Range[K]
	for {
		r, ok := g.Next()
		if !ok {
			break
		}
		got = append(got, r)
		if len(got) > len(exp)+10 {
			break
		}
	}
	if !slices.Equal(got, exp) {
		t.Errorf("Gaps %v != %v", got, exp)
	}
	// Exhausted iterators stay exhausted.
	for i := 0; i < 3; i++ {
		if r, ok := g.Next(); ok {
			t.Errorf("Next() after exhaustion returned %v", r)
		}
	}
}

func TestGaps(t *testing.T) {
	var m Map[uint32, bool]
	m.Insert(HalfOpen[uint32](2, 5), false)
	m.Insert(HalfOpen[uint32](6, 9), true)
	checkGaps[uint32](t, m.Gaps(), HalfOpen[uint32](5, 6))
}

func TestGapsSingleEntry(t *testing.T) {
	var m Map[int, int]
	m.Insert(HalfOpen(2, 5), 1)
	checkGaps[int](t, m.Gaps())
}

func TestGapsMixedBounds(t *testing.T) {
	var m Map[int, int]
	m.Insert(LessThan(0), 1)
	m.Insert(HalfOpen(0, 2), 2)
	m.Insert(MustNew(Exclusive(2), Inclusive(4)), 3)
	m.Insert(GreaterThan(4), 4)
	m.Remove(Closed(10, 12))
	// (2, 4] and (4, 10) meet at 4 without a gap.
	checkGaps[int](t, m.Gaps(),
		Point(2),
		Closed(10, 12))
}

func TestGapsUnboundedEnd(t *testing.T) {
	var m Map[int, int]
	m.Insert(AtLeast(5), 1)
	m.Insert(LessThan(0), 1)
	checkGaps[int](t, m.Gaps(), HalfOpen(0, 5))
}

func TestGapsAll(t *testing.T) {
	var m Map[int, int]
	m.Insert(HalfOpen(0, 1), 1)
	m.Insert(HalfOpen(2, 3), 1)
	m.Insert(HalfOpen(4, 5), 1)
	got := slices.Collect(m.Gaps().All())
	exp := []Range[int]{HalfOpen(1, 2), HalfOpen(3, 4)}
	if !slices.Equal(got, exp) {
		t.Errorf("Gaps().All() %v != %v", got, exp)
	}
}

func TestGapsIn(t *testing.T) {
	tests := []struct {
		name  string
		items []Range[uint32]
		outer Range[uint32]
		exp   []Range[uint32]
	}{
		{"whole range is a gap", nil, HalfOpen[uint32](1, 8),
			[]Range[uint32]{HalfOpen[uint32](1, 8)}},
		{"whole range covered exactly", []Range[uint32]{HalfOpen[uint32](1, 6)}, HalfOpen[uint32](1, 6),
			nil},
		{"item before outer range", []Range[uint32]{HalfOpen[uint32](1, 3)}, HalfOpen[uint32](5, 8),
			[]Range[uint32]{HalfOpen[uint32](5, 8)}},
		{"item touching start of outer range", []Range[uint32]{HalfOpen[uint32](1, 5)}, HalfOpen[uint32](5, 8),
			[]Range[uint32]{HalfOpen[uint32](5, 8)}},
		{"item overlapping start of outer range", []Range[uint32]{HalfOpen[uint32](1, 6)}, HalfOpen[uint32](5, 8),
			[]Range[uint32]{HalfOpen[uint32](6, 8)}},
		{"item starting at start of outer range", []Range[uint32]{HalfOpen[uint32](5, 6)}, HalfOpen[uint32](5, 8),
			[]Range[uint32]{HalfOpen[uint32](6, 8)}},
		{"items floating inside outer range", []Range[uint32]{HalfOpen[uint32](5, 6), HalfOpen[uint32](3, 4)}, HalfOpen[uint32](1, 8),
			[]Range[uint32]{HalfOpen[uint32](1, 3), HalfOpen[uint32](4, 5), HalfOpen[uint32](6, 8)}},
		{"item ending at end of outer range", []Range[uint32]{HalfOpen[uint32](7, 8)}, HalfOpen[uint32](5, 8),
			[]Range[uint32]{HalfOpen[uint32](5, 7)}},
		{"item overlapping end of outer range", []Range[uint32]{HalfOpen[uint32](4, 6)}, HalfOpen[uint32](2, 5),
			[]Range[uint32]{HalfOpen[uint32](2, 4)}},
		{"item touching end of outer range", []Range[uint32]{HalfOpen[uint32](4, 8)}, HalfOpen[uint32](1, 4),
			[]Range[uint32]{HalfOpen[uint32](1, 4)}},
		{"item after outer range", []Range[uint32]{HalfOpen[uint32](6, 7)}, HalfOpen[uint32](1, 4),
			[]Range[uint32]{HalfOpen[uint32](1, 4)}},
		// HalfOpen(4, 4) is the point [4, 4], which is uncovered here.
		{"point outer range with items away from both sides", []Range[uint32]{HalfOpen[uint32](1, 3), HalfOpen[uint32](5, 7)}, HalfOpen[uint32](4, 4),
			[]Range[uint32]{Point[uint32](4)}},
		{"point outer range with items touching both sides", []Range[uint32]{HalfOpen[uint32](2, 4), HalfOpen[uint32](4, 6)}, HalfOpen[uint32](4, 4),
			nil},
		{"point outer range with item straddling", []Range[uint32]{HalfOpen[uint32](2, 5)}, HalfOpen[uint32](4, 4),
			nil},
		{"unbounded outer range", []Range[uint32]{HalfOpen[uint32](2, 5), Closed[uint32](7, 9)}, Full[uint32](),
			[]Range[uint32]{LessThan[uint32](2), HalfOpen[uint32](5, 7), GreaterThan[uint32](9)}},
		{"exclusive outer bounds", []Range[uint32]{Closed[uint32](2, 5)}, MustNew(Exclusive[uint32](0), Exclusive[uint32](8)),
			[]Range[uint32]{MustNew(Exclusive[uint32](0), Exclusive[uint32](2)), MustNew(Exclusive[uint32](5), Exclusive[uint32](8))}},
		{"unbounded item", []Range[uint32]{AtLeast[uint32](3)}, HalfOpen[uint32](0, 10),
			[]Range[uint32]{HalfOpen[uint32](0, 3)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var m Map[uint32, struct{}]
			for _, r := range tc.items {
				m.Insert(r, struct{}{})
			}
			checkGaps[uint32](t, m.GapsIn(tc.outer), tc.exp...)
		})
	}
}

func TestGapsInMatchesGaps(t *testing.T) {
	var m Map[int, int]
	m.Insert(HalfOpen(0, 3), 1)
	m.Insert(Closed(5, 6), 2)
	m.Insert(MustNew(Exclusive(6), Exclusive(8)), 3)
	m.Insert(HalfOpen(10, 12), 1)

	// Bounded by the outermost entries, GapsIn agrees with Gaps.
	first, _ := m.First()
	last, _ := m.Last()
	hull := Range[int]{first.Start(), last.End()}
	got := slices.Collect(m.GapsIn(hull).All())
	exp := slices.Collect(m.Gaps().All())
	if !slices.Equal(got, exp) {
		t.Errorf("GapsIn(%v) %v != Gaps() %v", hull, got, exp)
	}
	if len(exp) != 2 {
		t.Errorf("Gaps() %v, expected 2 gaps", exp)
	}
}
