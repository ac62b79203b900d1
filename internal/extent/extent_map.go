package extent

import (
	"github.com/akmistry/rangemap/internal/rangemap"
)

var _ = (RangeMap[int])((*Map[int])(nil))

// Map is a RangeMap backed by a rangemap.Map. Adjacent extents with equal
// values are always coalesced.
type Map[V comparable] struct {
	m rangemap.Map[uint64, V]
}

func (m *Map[V]) Begin() (begin uint64, ok bool) {
	first, ok := m.m.First()
	if !ok {
		return 0, false
	}
	return FromSpan(first.Range).Offset, true
}

func (m *Map[V]) End() (end uint64) {
	last, ok := m.m.Last()
	if !ok {
		return 0
	}
	return FromSpan(last.Range).End()
}

func (m *Map[V]) Len() int {
	return m.m.Len()
}

func (m *Map[V]) Add(offset, length uint64, value V) {
	if length == 0 {
		return
	}
	m.m.Insert(Range{Offset: offset, Length: length}.Span(), value)
}

func (m *Map[V]) Remove(offset, length uint64) {
	if length == 0 {
		return
	}
	m.m.Remove(Range{Offset: offset, Length: length}.Span())
}

func (m *Map[V]) Get(offset uint64) (value V, ok bool) {
	return m.m.Get(offset)
}

func (m *Map[V]) GetWithRange(offset uint64) (r RangeValue[V], ok bool) {
	rv, ok := m.m.GetRangeValue(offset)
	if !ok {
		return
	}
	return RangeValue[V]{Range: FromSpan(rv.Range), Value: rv.Value}, true
}

func (m *Map[V]) NextKey(offset uint64) (next uint64, ok bool) {
	_, ok = m.Get(offset)
	if ok {
		return offset, ok
	}

	m.m.Ascend(offset, func(rv rangemap.RangeValue[uint64, V]) bool {
		next = FromSpan(rv.Range).Offset
		ok = true
		return false
	})
	return
}

func (m *Map[V]) NextEmpty(offset uint64) (next uint64) {
	next = offset
	gap, ok := m.m.GapsIn(rangemap.AtLeast(offset)).Next()
	if ok {
		next, _ = gap.StartValue()
		if gap.Start().Type == rangemap.Excluded {
			next++
		}
	}
	return
}

// Iterate calls iter for each extent at or after start, in order. An extent
// straddling start is trimmed to begin at start.
func (m *Map[V]) Iterate(start uint64, iter func(RangeValue[V]) bool) {
	m.m.Ascend(start, func(rv rangemap.RangeValue[uint64, V]) bool {
		r := FromSpan(rv.Range)
		if r.Offset < start {
			r.Length = r.End() - start
			r.Offset = start
		}
		return iter(RangeValue[V]{Range: r, Value: rv.Value})
	})
}

// IterateHoles calls iter for each unmapped part of [offset, offset+length),
// in order.
func (m *Map[V]) IterateHoles(offset, length uint64, iter func(Range) bool) {
	if length == 0 {
		return
	}
	gaps := m.m.GapsIn(Range{Offset: offset, Length: length}.Span())
	for g := range gaps.All() {
		if !iter(FromSpan(g)) {
			return
		}
	}
}
