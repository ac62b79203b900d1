package rangemap

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// Iter walks the entries of a Map from both ends. The two ends never cross,
// and once exhausted an Iter stays exhausted.
type Iter[K constraints.Ordered, V comparable] struct {
	m           *Map[K, V]
	front, back *entry[K, V]
	remaining   int
}

// Iter returns an iterator over the map's entries in ascending order.
func (m *Map[K, V]) Iter() *Iter[K, V] {
	return &Iter[K, V]{m: m, remaining: m.Len()}
}

// Len returns the number of entries not yet returned from either end.
func (it *Iter[K, V]) Len() int {
	return it.remaining
}

func (it *Iter[K, V]) Next() (r Range[K], v V, ok bool) {
	if it.remaining == 0 {
		return
	}
	var e *entry[K, V]
	if it.front == nil {
		e, _ = it.m.tree.Min()
	} else {
		e = higher(it.m.tree, it.front)
	}
	if e == nil {
		// The map was modified underneath us.
		it.remaining = 0
		return
	}
	it.front = e
	it.remaining--
	return e.rng, e.value, true
}

func (it *Iter[K, V]) NextBack() (r Range[K], v V, ok bool) {
	if it.remaining == 0 {
		return
	}
	var e *entry[K, V]
	if it.back == nil {
		e, _ = it.m.tree.Max()
	} else {
		e = lower(it.m.tree, it.back)
	}
	if e == nil {
		it.remaining = 0
		return
	}
	it.back = e
	it.remaining--
	return e.rng, e.value, true
}

// All yields every entry in ascending order.
func (m *Map[K, V]) All() iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		m.ascend(nil, func(e *entry[K, V]) bool {
			return yield(e.rng, e.value)
		})
	}
}

// Backward yields every entry in descending order.
func (m *Map[K, V]) Backward() iter.Seq2[Range[K], V] {
	return func(yield func(Range[K], V) bool) {
		if m.tree == nil {
			return
		}
		m.tree.Descend(func(e *entry[K, V]) bool {
			return yield(e.rng, e.value)
		})
	}
}

func (m *Map[K, V]) Ranges() iter.Seq[Range[K]] {
	return func(yield func(Range[K]) bool) {
		m.ascend(nil, func(e *entry[K, V]) bool {
			return yield(e.rng)
		})
	}
}

func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.ascend(nil, func(e *entry[K, V]) bool {
			return yield(e.value)
		})
	}
}

// RangesBackward yields every range in descending order.
func (m *Map[K, V]) RangesBackward() iter.Seq[Range[K]] {
	return func(yield func(Range[K]) bool) {
		for r := range m.Backward() {
			if !yield(r) {
				return
			}
		}
	}
}

// ValuesBackward yields every value in descending order of range.
func (m *Map[K, V]) ValuesBackward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.Backward() {
			if !yield(v) {
				return
			}
		}
	}
}

// Entries returns a copy of every entry in ascending order.
func (m *Map[K, V]) Entries() []RangeValue[K, V] {
	entries := make([]RangeValue[K, V], 0, m.Len())
	for r, v := range m.All() {
		entries = append(entries, RangeValue[K, V]{Range: r, Value: v})
	}
	return entries
}

// Ascend calls fn for each entry in ascending order, starting with the entry
// containing or following start, until fn returns false.
func (m *Map[K, V]) Ascend(start K, fn func(RangeValue[K, V]) bool) {
	probe := pointKey[K, V](start)
	m.ascend(probe, func(e *entry[K, V]) bool {
		if !nonEmpty(probe.rng.start, e.rng.end) {
			// Entry lies entirely before start.
			return true
		}
		return fn(RangeValue[K, V]{Range: e.rng, Value: e.value})
	})
}

// UpdateValues replaces each value with the result of fn, in ascending
// order. Ranges can't be changed this way; remove and re-insert instead.
// Neighbours which end up touching with equal values are merged.
func (m *Map[K, V]) UpdateValues(fn func(Range[K], V) V) {
	var merge []*entry[K, V]
	var prev *entry[K, V]
	m.ascend(nil, func(e *entry[K, V]) bool {
		e.value = fn(e.rng, e.value)
		if prev != nil && prev.value == e.value && prev.rng.Touches(e.rng) {
			merge = append(merge, e)
		}
		prev = e
		return true
	})

	// Each entry in merge is folded into its predecessor. Walk backwards so
	// runs of several entries collapse into the first one.
	for i := len(merge) - 1; i >= 0; i-- {
		e := merge[i]
		p := lower(m.tree, e)
		m.delete(e)
		p.rng.end = maxEnd(p.rng.end, e.rng.end)
	}
}

// Extend inserts every pair from seq, in order.
func (m *Map[K, V]) Extend(seq iter.Seq2[Range[K], V]) {
	for r, v := range seq {
		m.Insert(r, v)
	}
}

// Collect builds a map by inserting every pair from seq, in order.
func Collect[K constraints.Ordered, V comparable](seq iter.Seq2[Range[K], V]) *Map[K, V] {
	m := NewMap[K, V]()
	m.Extend(seq)
	return m
}
