package rangemapctl

import (
	"errors"
	"strings"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akmistry/rangemap/internal/rangemap"
)

func TestParseCommand(t *testing.T) {
	cases := map[string]struct {
		line     string
		expected Command
	}{
		"Insert": {
			line:     "insert [0, 4K) a",
			expected: Command{Op: OpInsert, Range: rangemap.HalfOpen[uint64](0, 4096), HasRange: true, Value: "a"},
		},
		"InsertValueWithSpaces": {
			line:     "insert (1, 2] hello world",
			expected: Command{Op: OpInsert, Range: rangemap.MustNew(rangemap.Exclusive[uint64](1), rangemap.Inclusive[uint64](2)), HasRange: true, Value: "hello world"},
		},
		"Remove": {
			line:     "remove [1K, 2K)",
			expected: Command{Op: OpRemove, Range: rangemap.HalfOpen[uint64](1024, 2048), HasRange: true},
		},
		"Get": {
			line:     "get 1500",
			expected: Command{Op: OpGet, Key: 1500},
		},
		"Gaps": {
			line:     "gaps",
			expected: Command{Op: OpGaps},
		},
		"GapsIn": {
			line:     "gaps [0, 16K)",
			expected: Command{Op: OpGaps, Range: rangemap.HalfOpen[uint64](0, 16384), HasRange: true},
		},
		"Print": {
			line:     "  print  ",
			expected: Command{Op: OpPrint},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := ParseCommand(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, c)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	cases := map[string]struct {
		line        string
		expectedErr error
	}{
		"Unknown":            {"frobnicate [0, 1)", ErrInvalidCommand},
		"InsertNoRange":      {"insert a", ErrInvalidCommand},
		"InsertNoValue":      {"insert [0, 1)", ErrInvalidCommand},
		"InsertBadRange":     {"insert [0, x) a", ErrInvalidRange},
		"RemoveTrailing":     {"remove [0, 1) a", ErrInvalidCommand},
		"GetNoKey":           {"get", ErrInvalidCommand},
		"GetBadKey":          {"get [0, 1)", ErrInvalidSizeString},
		"GapsTrailing":       {"gaps [0, 1) x", ErrInvalidCommand},
		"GapsEmptyRange":     {"gaps (1, 1)", rangemap.ErrEmptyRange},
		"PrintWithArguments": {"print all", ErrInvalidCommand},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCommand(tc.line)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func TestParseScript(t *testing.T) {
	script := `
# Comment
insert [0, 4K) a

remove [1K, 2K)
print
`
	cmds, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, cmds, 3)
	assert.Equal(t, OpInsert, cmds[0].Op)
	assert.Equal(t, OpRemove, cmds[1].Op)
	assert.Equal(t, OpPrint, cmds[2].Op)
}

func TestParseScriptErrors(t *testing.T) {
	script := `insert [0, 4K) a
bogus
print
get nothing
`
	cmds, err := ParseScript(strings.NewReader(script))
	require.Error(t, err)
	assert.Nil(t, cmds)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, merr.Errors[0], ErrInvalidCommand)
	assert.Contains(t, merr.Errors[0].Error(), "line 2")
	assert.ErrorIs(t, merr.Errors[1], ErrInvalidSizeString)
	assert.Contains(t, merr.Errors[1].Error(), "line 4")
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "insert", OpInsert.String())
	assert.Equal(t, "print", OpPrint.String())
	assert.Equal(t, "Op(42)", Op(42).String())
}
