package rangemapctl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/akmistry/rangemap/internal/rangemap"
)

var (
	ErrInvalidCommand = errors.New("invalid command")
)

type Op int

const (
	OpInsert Op = iota
	OpRemove
	OpGet
	OpGaps
	OpPrint
)

var opNames = map[string]Op{
	"insert": OpInsert,
	"remove": OpRemove,
	"get":    OpGet,
	"gaps":   OpGaps,
	"print":  OpPrint,
}

func (o Op) String() string {
	for name, op := range opNames {
		if op == o {
			return name
		}
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is a single parsed script line.
type Command struct {
	Op Op
	// Range for insert and remove, and the outer range for gaps when
	// HasRange is set.
	Range    rangemap.Range[uint64]
	HasRange bool
	// Key for get.
	Key uint64
	// Value for insert.
	Value string
}

// cutRange splits a leading bracketed range off s.
func cutRange(s string) (rng, rest string, ok bool) {
	if s == "" || (s[0] != '[' && s[0] != '(') {
		return "", s, false
	}
	i := strings.IndexAny(s, ")]")
	if i < 0 {
		return "", s, false
	}
	return s[:i+1], strings.TrimSpace(s[i+1:]), true
}

// ParseCommand parses one command, such as "insert [0, 4K) a".
func ParseCommand(line string) (Command, error) {
	name, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)
	op, ok := opNames[name]
	if !ok {
		return Command{}, fmt.Errorf("%w: unknown command %q", ErrInvalidCommand, name)
	}

	c := Command{Op: op}
	switch op {
	case OpInsert, OpRemove:
		rngStr, rest, ok := cutRange(args)
		if !ok {
			return Command{}, fmt.Errorf("%w: %s: expected a range, got %q", ErrInvalidCommand, op, args)
		}
		r, err := ParseRange(rngStr)
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", op, err)
		}
		c.Range = r
		c.HasRange = true
		if op == OpInsert {
			if rest == "" {
				return Command{}, fmt.Errorf("%w: insert: missing value", ErrInvalidCommand)
			}
			c.Value = rest
		} else if rest != "" {
			return Command{}, fmt.Errorf("%w: remove: unexpected %q", ErrInvalidCommand, rest)
		}
	case OpGet:
		k, err := ParseSizeString(args)
		if err != nil {
			return Command{}, fmt.Errorf("%w: get %q: %w", ErrInvalidCommand, args, err)
		}
		c.Key = k
	case OpGaps:
		if args == "" {
			break
		}
		rngStr, rest, ok := cutRange(args)
		if !ok || rest != "" {
			return Command{}, fmt.Errorf("%w: gaps: expected a range, got %q", ErrInvalidCommand, args)
		}
		r, err := ParseRange(rngStr)
		if err != nil {
			return Command{}, fmt.Errorf("gaps: %w", err)
		}
		c.Range = r
		c.HasRange = true
	case OpPrint:
		if args != "" {
			return Command{}, fmt.Errorf("%w: print: unexpected %q", ErrInvalidCommand, args)
		}
	}
	return c, nil
}

// ParseScript parses one command per line. Blank lines and lines starting
// with # are skipped. Every bad line is reported, not just the first.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	var errs multierror.Error
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		c, err := ParseCommand(line)
		if err != nil {
			errs.Errors = append(errs.Errors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}
		cmds = append(cmds, c)
	}
	if err := scanner.Err(); err != nil {
		errs.Errors = append(errs.Errors, err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cmds, nil
}
