// Package extent provides offset/length views of a range map over uint64
// offsets, as used to track sparse file and block device extents.
package extent

import (
	"math"

	"github.com/akmistry/rangemap/internal/rangemap"
)

type RangeMap[V any] interface {
	Begin() (begin uint64, ok bool)
	End() (end uint64)

	Add(offset, length uint64, value V)
	Remove(offset, length uint64)
	Get(offset uint64) (value V, ok bool)

	NextKey(offset uint64) (next uint64, ok bool)
	NextEmpty(offset uint64) (next uint64)

	RangeMapIterator[V]
}

type RangeMapIterator[V any] interface {
	Iterate(start uint64, iter func(RangeValue[V]) bool)
}

type Range struct {
	Offset, Length uint64
}

func (r Range) End() uint64 {
	return r.Offset + r.Length
}

func (r Range) Contains(off uint64) bool {
	return off >= r.Offset && off-r.Offset < r.Length
}

func (r Range) Overlaps(other Range) bool {
	return r.Contains(other.Offset) || other.Contains(r.Offset)
}

// Span converts r to the half-open range [Offset, Offset+Length). A range
// running past the top of the offset space is clipped to
// [Offset, MaxUint64]. r must not be empty.
func (r Range) Span() rangemap.Range[uint64] {
	if r.End() < r.Offset {
		return rangemap.Closed(r.Offset, math.MaxUint64)
	}
	return rangemap.HalfOpen(r.Offset, r.End())
}

// FromSpan converts a bounded range to offset/length form. Every range
// stored by Map is half-open or ends at MaxUint64, so this is exact for
// those. For the latter, End() wraps to 0.
func FromSpan(s rangemap.Range[uint64]) Range {
	start, _ := s.StartValue()
	end, _ := s.EndValue()
	if s.Start().Type == rangemap.Excluded {
		start++
	}
	if s.End().Type == rangemap.Included {
		end++
	}
	return Range{Offset: start, Length: end - start}
}

type RangeValue[V any] struct {
	Range
	Value V
}
