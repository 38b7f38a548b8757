package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnresolvable is wrapped by every CoordError.
	ErrUnresolvable = errors.New("unresolvable coordinate")

	// ErrRoot is returned by operations that need a parent, such as Remove
	// and Move, when called with the root coordinate.
	ErrRoot = errors.New("operation not permitted on the root node")
)

// Coord addresses a node by the child indices leading to it from the root.
// The empty Coord is the root.
type Coord []int

// Child returns a new coordinate one level deeper. The receiver is never
// modified, so coordinates can be extended safely while recursing.
func (c Coord) Child(i int) Coord {
	out := make(Coord, len(c)+1)
	copy(out, c)
	out[len(c)] = i
	return out
}

// Parent returns the coordinate of the parent node. ok is false for the root.
func (c Coord) Parent() (Coord, bool) {
	if len(c) == 0 {
		return nil, false
	}
	out := make(Coord, len(c)-1)
	copy(out, c)
	return out, true
}

// Last returns the final index. ok is false for the root.
func (c Coord) Last() (int, bool) {
	if len(c) == 0 {
		return 0, false
	}
	return c[len(c)-1], true
}

// IsRoot reports whether c addresses the root.
func (c Coord) IsRoot() bool { return len(c) == 0 }

// Equal reports whether both coordinates address the same path.
func (c Coord) Equal(o Coord) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p is an ancestor of (or equal to) c.
func (c Coord) HasPrefix(p Coord) bool {
	if len(p) > len(c) {
		return false
	}
	return c[:len(p)].Equal(p)
}

// Clone returns an independent copy.
func (c Coord) Clone() Coord {
	out := make(Coord, len(c))
	copy(out, c)
	return out
}

func (c Coord) String() string {
	parts := make([]string, len(c))
	for i, idx := range c {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// ParseCoord parses the String form ("[0,2,1]") or a dotted path ("0.2.1").
// The empty string and "[]" parse to the root.
func ParseCoord(s string) (Coord, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return Coord{}, nil
	}

	sep := ","
	if !strings.Contains(s, ",") {
		sep = "."
	}

	parts := strings.Split(s, sep)
	out := make(Coord, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("parse coordinate %q: %w", s, err)
		}
		if i < 0 {
			return nil, fmt.Errorf("parse coordinate %q: negative index %d", s, i)
		}
		out = append(out, i)
	}
	return out, nil
}

// CoordError reports a coordinate that does not resolve against a tree.
type CoordError struct {
	Op    string // operation that attempted the resolution
	Coord Coord  // full coordinate requested
	Depth int    // depth at which resolution failed
	Index int    // offending child index
	Len   int    // number of children available at Depth
}

func (e *CoordError) Error() string {
	return fmt.Sprintf("layout %s %s: index %d out of range at depth %d (%d children)",
		e.Op, e.Coord, e.Index, e.Depth, e.Len)
}

func (e *CoordError) Unwrap() error { return ErrUnresolvable }
