package rangemap

import (
	"log"
	"strings"

	"github.com/google/btree"
	"golang.org/x/exp/constraints"
)

// RangeValue is a stored range together with its value.
type RangeValue[K constraints.Ordered, V comparable] struct {
	Range[K]
	Value V
}

// Map maps non-overlapping ranges of K to values of V. Ranges that touch
// and carry equal values are always merged, so every stored range is
// maximal.
//
// The zero value is an empty map ready to use. A Map is not safe for
// concurrent use, and must not be modified while an iterator over it is in
// use.
type Map[K constraints.Ordered, V comparable] struct {
	tree *btree.BTreeG[*entry[K, V]]
}

func NewMap[K constraints.Ordered, V comparable]() *Map[K, V] {
	return &Map[K, V]{tree: newTree[K, V]()}
}

func (m *Map[K, V]) init() {
	if m.tree == nil {
		m.tree = newTree[K, V]()
	}
}

func (m *Map[K, V]) Len() int {
	if m.tree == nil {
		return 0
	}
	return m.tree.Len()
}

func (m *Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

func (m *Map[K, V]) Clear() {
	if m.tree != nil {
		m.tree.Clear(false)
	}
}

// Clone returns an independent copy of m. Values are copied shallowly.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := NewMap[K, V]()
	m.ascend(nil, func(e *entry[K, V]) bool {
		c.put(e.rng, e.value)
		return true
	})
	return c
}

// Equal reports whether both maps hold the same ranges with the same values.
func (m *Map[K, V]) Equal(o *Map[K, V]) bool {
	if m.Len() != o.Len() {
		return false
	}
	a, b := m.Iter(), o.Iter()
	for {
		ar, av, aok := a.Next()
		br, bv, bok := b.Next()
		if !aok || !bok {
			return aok == bok
		}
		if ar != br || av != bv {
			return false
		}
	}
}

// find returns the entry containing p.
func (m *Map[K, V]) find(p K) *entry[K, V] {
	if m.tree == nil {
		return nil
	}
	e := floor(m.tree, pointKey[K, V](p))
	if e == nil || !e.rng.end.admits(p) {
		return nil
	}
	return e
}

func (m *Map[K, V]) Get(p K) (value V, ok bool) {
	e := m.find(p)
	if e == nil {
		return
	}
	return e.value, true
}

// GetRangeValue returns the stored range containing p, and its value.
func (m *Map[K, V]) GetRangeValue(p K) (rv RangeValue[K, V], ok bool) {
	e := m.find(p)
	if e == nil {
		return
	}
	return RangeValue[K, V]{Range: e.rng, Value: e.value}, true
}

func (m *Map[K, V]) Contains(p K) bool {
	return m.find(p) != nil
}

func (m *Map[K, V]) First() (rv RangeValue[K, V], ok bool) {
	if m.tree == nil {
		return
	}
	e, ok := m.tree.Min()
	if !ok {
		return
	}
	return RangeValue[K, V]{Range: e.rng, Value: e.value}, true
}

func (m *Map[K, V]) Last() (rv RangeValue[K, V], ok bool) {
	if m.tree == nil {
		return
	}
	e, ok := m.tree.Max()
	if !ok {
		return
	}
	return RangeValue[K, V]{Range: e.rng, Value: e.value}, true
}

// put stores a new entry whose range must not overlap any stored range.
func (m *Map[K, V]) put(r Range[K], value V) {
	m.init()
	e := &entry[K, V]{rng: r, value: value}
	old, replaced := m.tree.ReplaceOrInsert(e)
	if replaced {
		log.Panicf("unexpected old entry: %v, adding new entry: %v", old.rng, r)
	}
}

func (m *Map[K, V]) delete(e *entry[K, V]) {
	if old, ok := m.tree.Delete(e); !ok || old != e {
		log.Panicf("entry not deleted: %v", e.rng)
	}
}

// candidates returns, in ascending order, the stored entries that touch r.
func (m *Map[K, V]) candidates(r Range[K]) []*entry[K, V] {
	if m.tree == nil {
		return nil
	}

	var items []*entry[K, V]
	probe := startKey[K, V](r.start)
	// Of the entries starting before r, only the last one can reach r.
	if prev := lower(m.tree, probe); prev != nil && prev.rng.Touches(r) {
		items = append(items, prev)
	}
	m.tree.AscendGreaterOrEqual(probe, func(e *entry[K, V]) bool {
		if !e.rng.Touches(r) {
			return false
		}
		items = append(items, e)
		return true
	})
	return items
}

// Insert maps every point of r to value, replacing whatever was stored
// there. The result is merged with any touching range holding an equal
// value.
func (m *Map[K, V]) Insert(r Range[K], value V) {
	merged := r
	for _, e := range m.candidates(r) {
		if e.value == value {
			// Touching or overlapping ranges with the same value are absorbed.
			merged.start = minStart(merged.start, e.rng.start)
			merged.end = maxEnd(merged.end, e.rng.end)
			m.delete(e)
			continue
		}
		if !e.rng.Overlaps(r) {
			continue
		}

		// Punch a hole, and keep the parts of the old range either side of it.
		m.delete(e)
		if head, ok := e.rng.before(r.start); ok {
			m.put(head, e.value)
		}
		if tail, ok := e.rng.after(r.end); ok {
			m.put(tail, e.value)
		}
	}
	m.put(merged, value)
}

// Remove unmaps every point of r. Stored ranges partially covered by r are
// truncated or split.
func (m *Map[K, V]) Remove(r Range[K]) {
	for _, e := range m.candidates(r) {
		if !e.rng.Overlaps(r) {
			continue
		}

		head, headOk := e.rng.before(r.start)
		tail, tailOk := e.rng.after(r.end)
		if headOk {
			// Truncate the old entry in place instead of deleting it and
			// inserting a new one. The start, and so the key, is unchanged.
			e.rng = head
		} else {
			m.delete(e)
		}
		if tailOk {
			m.put(tail, e.value)
		}
	}
}

// InsertAll inserts each entry in order. Later entries overwrite or merge
// with earlier ones.
func (m *Map[K, V]) InsertAll(entries ...RangeValue[K, V]) {
	for _, rv := range entries {
		m.Insert(rv.Range, rv.Value)
	}
}

// String renders the map as {[s1, e1): v1, [s2, e2): v2, ...}. Values are
// formatted with %v, so strings appear unquoted; struct{} values appear as
// ().
func (m *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	m.ascend(nil, func(e *entry[K, V]) bool {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		e.rng.writeTo(&sb)
		sb.WriteString(": ")
		sb.WriteString(formatValue(e.value))
		return true
	})
	sb.WriteByte('}')
	return sb.String()
}

// ascend visits entries in order, starting from the entry with the greatest
// start <= from (or the first entry if from is nil).
func (m *Map[K, V]) ascend(from *entry[K, V], fn func(*entry[K, V]) bool) {
	if m.tree == nil {
		return
	}
	if from == nil {
		m.tree.Ascend(fn)
		return
	}
	if f := floor(m.tree, from); f != nil {
		from = f
	}
	m.tree.AscendGreaterOrEqual(from, fn)
}
