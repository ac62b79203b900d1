package rangemapctl

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/akmistry/rangemap/internal/extent"
	"github.com/akmistry/rangemap/internal/rangemap"
)

var (
	ErrCheckFailed = errors.New("reference check failed")
)

// Offsets past this aren't checked, as the reference uses one bit per key.
const maxCheckOffset = 1 << 24

// Runner executes commands against a map of uint64 keys to strings.
type Runner struct {
	m   rangemap.Map[uint64, string]
	ref *extent.BitmapMap[string]
	out io.Writer
}

// NewRunner returns a Runner writing query output to out. With check set,
// each mutation is repeated on a BitmapMap and the two are compared.
func NewRunner(out io.Writer, check bool) *Runner {
	r := &Runner{out: out}
	if check {
		r.ref = extent.NewBitmapMap[string]()
	}
	return r
}

func (r *Runner) Map() *rangemap.Map[uint64, string] {
	return &r.m
}

func (r *Runner) Run(cmds []Command) error {
	for i, c := range cmds {
		if err := r.Exec(c); err != nil {
			return fmt.Errorf("command %d (%s): %w", i+1, c.Op, err)
		}
	}
	return nil
}

func (r *Runner) Exec(c Command) error {
	switch c.Op {
	case OpInsert:
		r.m.Insert(c.Range, c.Value)
		slog.Debug("insert", "range", c.Range, "value", c.Value, "entries", r.m.Len())
		return r.check(c)
	case OpRemove:
		r.m.Remove(c.Range)
		slog.Debug("remove", "range", c.Range, "entries", r.m.Len())
		return r.check(c)
	case OpGet:
		rv, ok := r.m.GetRangeValue(c.Key)
		if !ok {
			_, err := fmt.Fprintf(r.out, "%d: unmapped\n", c.Key)
			return err
		}
		_, err := fmt.Fprintf(r.out, "%d: %s in %v\n", c.Key, rv.Value, rv.Range)
		return err
	case OpGaps:
		var gaps iter.Seq[rangemap.Range[uint64]]
		if c.HasRange {
			gaps = r.m.GapsIn(c.Range).All()
		} else {
			gaps = r.m.Gaps().All()
		}
		for g := range gaps {
			if _, err := fmt.Fprintln(r.out, g); err != nil {
				return err
			}
		}
		return nil
	case OpPrint:
		_, err := fmt.Fprintln(r.out, r.m.String())
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidCommand, c.Op)
}

// checkable returns the offsets of a range the reference can represent.
func checkable(rng rangemap.Range[uint64]) (extent.Range, bool) {
	if rng.Start().Type != rangemap.Included || rng.End().Type != rangemap.Excluded {
		return extent.Range{}, false
	}
	er := extent.FromSpan(rng)
	if er.End() > maxCheckOffset {
		return extent.Range{}, false
	}
	return er, true
}

func (r *Runner) check(c Command) error {
	if r.ref == nil {
		return nil
	}
	er, ok := checkable(c.Range)
	if !ok {
		// The reference can no longer track the map.
		slog.Warn("Disabling reference check", "range", c.Range)
		r.ref = nil
		return nil
	}
	if c.Op == OpInsert {
		r.ref.Add(er.Offset, er.Length, c.Value)
	} else {
		r.ref.Remove(er.Offset, er.Length)
	}

	// Compare one key either side of the change as well, to catch bad
	// truncation and merging.
	lo := er.Offset
	if lo > 0 {
		lo--
	}
	for k := lo; k <= er.End(); k++ {
		v, ok := r.m.Get(k)
		rv, rok := r.ref.Get(k)
		if ok != rok || v != rv {
			return fmt.Errorf("%w: key %d: map (%q, %v), reference (%q, %v)", ErrCheckFailed, k, v, ok, rv, rok)
		}
	}

	// The number of maximal runs must match as well.
	runs := 0
	r.ref.Iterate(0, func(extent.RangeValue[string]) bool {
		runs++
		return true
	})
	if runs != r.m.Len() {
		return fmt.Errorf("%w: %d entries, reference has %d", ErrCheckFailed, r.m.Len(), runs)
	}
	return nil
}
