package rangemap

import (
	"github.com/google/btree"
	"golang.org/x/exp/constraints"
)

const btreeDegree = 32

// entry is the item stored in the tree. Items are ordered by the start bound
// of their range alone, which is a total order over the map only because
// stored ranges never overlap.
type entry[K constraints.Ordered, V comparable] struct {
	rng   Range[K]
	value V
}

func lessEntry[K constraints.Ordered, V comparable](a, b *entry[K, V]) bool {
	return a.rng.start.Compare(b.rng.start) < 0
}

func newTree[K constraints.Ordered, V comparable]() *btree.BTreeG[*entry[K, V]] {
	return btree.NewG(btreeDegree, lessEntry[K, V])
}

// startKey is a probe item for searching the tree by start bound.
func startKey[K constraints.Ordered, V comparable](s StartBound[K]) *entry[K, V] {
	return &entry[K, V]{rng: Range[K]{start: s}}
}

// pointKey is a probe for the bare key p, treated as Included(p).
func pointKey[K constraints.Ordered, V comparable](p K) *entry[K, V] {
	return startKey[K, V](StartBound[K]{Inclusive(p)})
}

// floor returns the entry with the greatest start <= probe.
func floor[K constraints.Ordered, V comparable](t *btree.BTreeG[*entry[K, V]], probe *entry[K, V]) (found *entry[K, V]) {
	t.DescendLessOrEqual(probe, func(e *entry[K, V]) bool {
		found = e
		return false
	})
	return
}

// lower returns the entry with the greatest start < probe.
func lower[K constraints.Ordered, V comparable](t *btree.BTreeG[*entry[K, V]], probe *entry[K, V]) (found *entry[K, V]) {
	t.DescendLessOrEqual(probe, func(e *entry[K, V]) bool {
		if e.rng.start.Compare(probe.rng.start) == 0 {
			return true
		}
		found = e
		return false
	})
	return
}

// higher returns the entry with the least start > probe.
func higher[K constraints.Ordered, V comparable](t *btree.BTreeG[*entry[K, V]], probe *entry[K, V]) (found *entry[K, V]) {
	t.AscendGreaterOrEqual(probe, func(e *entry[K, V]) bool {
		if e.rng.start.Compare(probe.rng.start) == 0 {
			return true
		}
		found = e
		return false
	})
	return
}
