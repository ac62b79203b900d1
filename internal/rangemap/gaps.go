package rangemap

import (
	"iter"
	"log"

	"golang.org/x/exp/constraints"
)

// Gaps iterates over the maximal uncovered ranges between the entries of a
// Map. Once exhausted it stays exhausted.
type Gaps[K constraints.Ordered, V comparable] struct {
	m    *Map[K, V]
	prev *entry[K, V]
	done bool
}

// Gaps returns an iterator over the gaps between stored ranges, in
// ascending order. The unmapped regions before the first range and after
// the last are not gaps; use GapsIn to include them.
func (m *Map[K, V]) Gaps() *Gaps[K, V] {
	return &Gaps[K, V]{m: m}
}

func (g *Gaps[K, V]) Next() (Range[K], bool) {
	for !g.done {
		if g.m.tree == nil {
			break
		}
		if g.prev == nil {
			first, ok := g.m.tree.Min()
			if !ok {
				break
			}
			g.prev = first
			continue
		}

		next := higher(g.m.tree, g.prev)
		if next == nil {
			break
		}
		start, ok := g.prev.rng.end.After()
		if !ok {
			// The previous range runs to infinity.
			break
		}
		end, ok := next.rng.start.Before()
		if !ok {
			log.Panicf("unbounded start on non-first range %v", next.rng)
		}
		g.prev = next
		if nonEmpty(start, end) {
			return Range[K]{start, end}, true
		}
		// Ranges with different values may sit side by side.
	}
	g.done = true
	return Range[K]{}, false
}

func (g *Gaps[K, V]) All() iter.Seq[Range[K]] {
	return func(yield func(Range[K]) bool) {
		for {
			r, ok := g.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}

// GapsIn iterates over the maximal parts of an outer range not covered by
// any entry of a Map. Once exhausted it stays exhausted.
type GapsIn[K constraints.Ordered, V comparable] struct {
	m       *Map[K, V]
	outer   Range[K]
	cursor  StartBound[K]
	last    *entry[K, V]
	started bool
	done    bool
}

// GapsIn returns an iterator over the parts of outer not covered by the map,
// in ascending order. Unlike Gaps, this includes regions before the first
// entry and after the last one, clipped to outer. If the map is empty, outer
// itself is the only gap.
func (m *Map[K, V]) GapsIn(outer Range[K]) *GapsIn[K, V] {
	return &GapsIn[K, V]{m: m, outer: outer, cursor: outer.start}
}

func (g *GapsIn[K, V]) nextEntry() *entry[K, V] {
	t := g.m.tree
	if t == nil {
		return nil
	}
	if !g.started {
		g.started = true
		if e := floor(t, startKey[K, V](g.outer.start)); e != nil {
			return e
		}
		e, _ := t.Min()
		return e
	}
	if g.last == nil {
		return nil
	}
	return higher(t, g.last)
}

func (g *GapsIn[K, V]) Next() (Range[K], bool) {
	for !g.done {
		e := g.nextEntry()
		if e == nil || !nonEmpty(e.rng.start, g.outer.end) {
			// Nothing else reaches into the outer range.
			g.done = true
			if nonEmpty(g.cursor, g.outer.end) {
				return Range[K]{g.cursor, g.outer.end}, true
			}
			break
		}
		g.last = e

		var gap Range[K]
		hasGap := false
		if end, ok := e.rng.start.Before(); ok && nonEmpty(g.cursor, end) {
			gap = Range[K]{g.cursor, minEnd(end, g.outer.end)}
			hasGap = true
		}
		if after, ok := e.rng.end.After(); ok {
			g.cursor = maxStart(g.cursor, after)
		} else {
			g.done = true
		}
		if hasGap {
			return gap, true
		}
	}
	return Range[K]{}, false
}

func (g *GapsIn[K, V]) All() iter.Seq[Range[K]] {
	return func(yield func(Range[K]) bool) {
		for {
			r, ok := g.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}
}
