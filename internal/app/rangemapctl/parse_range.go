package rangemapctl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/akmistry/rangemap/internal/rangemap"
)

var (
	ErrInvalidRange = errors.New("invalid range")
)

func isNegInf(s string) bool {
	return s == "-∞" || s == "-inf"
}

func isPosInf(s string) bool {
	return s == "∞" || s == "inf" || s == "+∞" || s == "+inf"
}

func parseBound(s string, inclusive bool) (rangemap.Bound[uint64], error) {
	v, err := ParseSizeString(s)
	if err != nil {
		return rangemap.Bound[uint64]{}, fmt.Errorf("%w: bound %q: %w", ErrInvalidRange, s, err)
	}
	if inclusive {
		return rangemap.Inclusive(v), nil
	}
	return rangemap.Exclusive(v), nil
}

// ParseRange parses a range written the way rangemap.Range prints one, such
// as "[0, 4K)", "(-∞, 10]" or "[1M, inf)". Infinite ends must use a round
// bracket.
func ParseRange(str string) (rangemap.Range[uint64], error) {
	s := strings.TrimSpace(str)
	if len(s) < 2 {
		return rangemap.Range[uint64]{}, fmt.Errorf("%w: %q", ErrInvalidRange, str)
	}

	var startInc, endInc bool
	switch s[0] {
	case '[':
		startInc = true
	case '(':
	default:
		return rangemap.Range[uint64]{}, fmt.Errorf("%w: %q: missing opening bracket", ErrInvalidRange, str)
	}
	switch s[len(s)-1] {
	case ']':
		endInc = true
	case ')':
	default:
		return rangemap.Range[uint64]{}, fmt.Errorf("%w: %q: missing closing bracket", ErrInvalidRange, str)
	}

	startStr, endStr, ok := strings.Cut(s[1:len(s)-1], ",")
	if !ok {
		return rangemap.Range[uint64]{}, fmt.Errorf("%w: %q: missing comma", ErrInvalidRange, str)
	}
	startStr = strings.TrimSpace(startStr)
	endStr = strings.TrimSpace(endStr)

	start := rangemap.Unbound[uint64]()
	if isNegInf(startStr) {
		if startInc {
			return rangemap.Range[uint64]{}, fmt.Errorf("%w: %q: infinite start can't be included", ErrInvalidRange, str)
		}
	} else {
		b, err := parseBound(startStr, startInc)
		if err != nil {
			return rangemap.Range[uint64]{}, err
		}
		start = b
	}

	end := rangemap.Unbound[uint64]()
	if isPosInf(endStr) {
		if endInc {
			return rangemap.Range[uint64]{}, fmt.Errorf("%w: %q: infinite end can't be included", ErrInvalidRange, str)
		}
	} else {
		b, err := parseBound(endStr, endInc)
		if err != nil {
			return rangemap.Range[uint64]{}, err
		}
		end = b
	}

	r, err := rangemap.New(start, end)
	if err != nil {
		return rangemap.Range[uint64]{}, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	return r, nil
}
