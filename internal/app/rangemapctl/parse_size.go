package rangemapctl

import (
	"errors"
	"math/bits"
	"regexp"
	"strconv"
)

var (
	ErrInvalidSizeString = errors.New("invalid size string")

	sizePattern = regexp.MustCompile("^([1-9][0-9]*)([KMGTP])?$")
)

// ParseSizeString parses a decimal number with an optional binary suffix,
// such as 4K or 16G.
func ParseSizeString(str string) (uint64, error) {
	// Special case "0" to simplify the regexp.
	if str == "0" {
		return 0, nil
	}

	parts := sizePattern.FindStringSubmatch(str)
	if len(parts) < 2 {
		return 0, ErrInvalidSizeString
	}

	size, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidSizeString
	}
	var shift int
	if len(parts) == 3 {
		switch parts[2] {
		case "K":
			shift = 10
		case "M":
			shift = 20
		case "G":
			shift = 30
		case "T":
			shift = 40
		case "P":
			shift = 50
		}
	}
	if bits.LeadingZeros64(size) < shift {
		// Overflow
		return 0, ErrInvalidSizeString
	}
	return size << shift, nil
}
