// Package cycle implements wraparound index arithmetic over a bounded index
// set. It backs every place that moves a cursor among siblings: hover lists,
// layout sibling selection, enum cycling and dialog button focus.
package cycle

import "errors"

// ErrEmpty is returned when asked to cycle over a set with no members.
var ErrEmpty = errors.New("cycle: empty index set")

// Step returns (i+d) mod n normalized into [0, n).
func Step(i, d, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmpty
	}
	r := (i + d) % n
	if r < 0 {
		r += n
	}
	return r, nil
}

// From cycles from an optional current index. When ok is false there is no
// current index: forward movement lands on 0 and backward movement on n-1.
func From(cur int, ok bool, d, n int) (int, error) {
	if n <= 0 {
		return 0, ErrEmpty
	}
	if !ok {
		if d < 0 {
			return Step(n-1, d+1, n)
		}
		return Step(0, max(d-1, 0), n)
	}
	return Step(cur, d, n)
}

// Next is From with an offset of +1.
func Next(cur int, ok bool, n int) (int, error) {
	return From(cur, ok, 1, n)
}

// Prev is From with an offset of -1.
func Prev(cur int, ok bool, n int) (int, error) {
	return From(cur, ok, -1, n)
}

// Values cycles through a fixed list of values, returning the element d steps
// away from cur. If cur is not in the list, cycling starts as if there were
// no current value.
func Values[T comparable](values []T, cur T, d int) (T, error) {
	idx, ok := -1, false
	for i, v := range values {
		if v == cur {
			idx, ok = i, true
			break
		}
	}

	next, err := From(idx, ok, d, len(values))
	if err != nil {
		var zero T
		return zero, err
	}
	return values[next], nil
}
