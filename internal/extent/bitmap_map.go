package extent

import (
	"github.com/bits-and-blooms/bitset"
)

var _ = (RangeMap[int])((*BitmapMap[int])(nil))

// BitmapMap is a RangeMap storing one value per offset. It is only practical
// for small, dense offset spaces, and is mostly useful as a reference to
// check other implementations against.
type BitmapMap[V comparable] struct {
	present bitset.BitSet
	values  map[uint64]V
}

func NewBitmapMap[V comparable]() *BitmapMap[V] {
	return &BitmapMap[V]{
		values: make(map[uint64]V),
	}
}

func (m *BitmapMap[V]) init() {
	if m.values == nil {
		m.values = make(map[uint64]V)
	}
}

func (m *BitmapMap[V]) Begin() (uint64, bool) {
	first, ok := m.present.NextSet(0)
	if !ok {
		return 0, false
	}
	return uint64(first), true
}

func (m *BitmapMap[V]) End() uint64 {
	if m.present.None() {
		return 0
	}
	for i := int(m.present.Len()) - 1; i >= 0; i-- {
		if m.present.Test(uint(i)) {
			return uint64(i) + 1
		}
	}
	return 0
}

func (m *BitmapMap[V]) Add(offset, length uint64, value V) {
	m.init()
	for i := offset; i < offset+length; i++ {
		m.present.Set(uint(i))
		m.values[i] = value
	}
}

func (m *BitmapMap[V]) Remove(offset, length uint64) {
	m.init()
	for i := offset; i < offset+length; i++ {
		m.present.Clear(uint(i))
		delete(m.values, i)
	}
}

func (m *BitmapMap[V]) Get(offset uint64) (value V, ok bool) {
	if !m.present.Test(uint(offset)) {
		return
	}
	return m.values[offset], true
}

func (m *BitmapMap[V]) NextKey(off uint64) (uint64, bool) {
	next, ok := m.present.NextSet(uint(off))
	if !ok {
		return 0, false
	}
	return uint64(next), true
}

func (m *BitmapMap[V]) NextEmpty(off uint64) uint64 {
	next, ok := m.present.NextClear(uint(off))
	if ok {
		return uint64(next)
	}
	// Everything past the end of the bitset is clear.
	if l := uint64(m.present.Len()); l > off {
		return l
	}
	return off
}

func (m *BitmapMap[V]) Iterate(start uint64, iter func(RangeValue[V]) bool) {
	var r RangeValue[V]
	off, ok := m.present.NextSet(uint(start))
	for ; ok; off, ok = m.present.NextSet(off + 1) {
		v := m.values[uint64(off)]
		if r.Length > 0 && r.Value == v && r.End() == uint64(off) {
			// Coalesce consecutive offsets
			r.Length++
			continue
		}
		// New range. First give the current one.
		if r.Length > 0 && !iter(r) {
			return
		}
		r.Offset = uint64(off)
		r.Length = 1
		r.Value = v
	}
	if r.Length > 0 {
		iter(r)
	}
}
