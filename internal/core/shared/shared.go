// Package shared provides a guarded cell for state that several views hold
// at once. Access follows a many readers or one writer rule that is checked
// at runtime: a conflicting borrow returns a *BorrowError instead of blocking.
package shared

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBorrowConflict is wrapped by every BorrowError.
var ErrBorrowConflict = errors.New("borrow conflict")

// BorrowError describes a rejected borrow.
type BorrowError struct {
	Name    string // cell name, for messages
	Op      string // "read" or "write"
	Readers int    // live read borrows at the time of the attempt
	Writing bool   // whether a write borrow was live
}

func (e *BorrowError) Error() string {
	switch {
	case e.Writing:
		return fmt.Sprintf("%s: cannot %s %s while it is being written", ErrBorrowConflict, e.Op, e.Name)
	default:
		return fmt.Sprintf("%s: cannot %s %s while %d reader(s) are live", ErrBorrowConflict, e.Op, e.Name, e.Readers)
	}
}

func (e *BorrowError) Unwrap() error { return ErrBorrowConflict }

// Cell guards a value of type T.
type Cell[T any] struct {
	name string

	mu      sync.Mutex
	readers int
	writing bool
	value   T
}

// New creates a cell holding v. The name appears in borrow errors.
func New[T any](name string, v T) *Cell[T] {
	return &Cell[T]{name: name, value: v}
}

// Name returns the cell name.
func (c *Cell[T]) Name() string { return c.name }

// Read borrows the value for reading. It fails while a write borrow is live.
func (c *Cell[T]) Read() (*Ref[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writing {
		return nil, &BorrowError{Name: c.name, Op: "read", Readers: c.readers, Writing: true}
	}
	c.readers++
	return &Ref[T]{cell: c}, nil
}

// Write borrows the value for writing. It fails while any other borrow is
// live.
func (c *Cell[T]) Write() (*RefMut[T], error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writing || c.readers > 0 {
		return nil, &BorrowError{Name: c.name, Op: "write", Readers: c.readers, Writing: c.writing}
	}
	c.writing = true
	return &RefMut[T]{cell: c}, nil
}

// View runs fn with a read borrow held for its duration.
func (c *Cell[T]) View(fn func(v *T) error) error {
	ref, err := c.Read()
	if err != nil {
		return err
	}
	defer ref.Release()
	return fn(ref.Value())
}

// Update runs fn with a write borrow held for its duration.
func (c *Cell[T]) Update(fn func(v *T) error) error {
	ref, err := c.Write()
	if err != nil {
		return err
	}
	defer ref.Release()
	return fn(ref.Value())
}

// Borrows reports the live borrow counts.
func (c *Cell[T]) Borrows() (readers int, writing bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readers, c.writing
}

// Ref is a live read borrow. Callers must not modify the value.
type Ref[T any] struct {
	cell     *Cell[T]
	released bool
}

// Value returns the borrowed value, or nil after Release.
func (r *Ref[T]) Value() *T {
	if r.released {
		return nil
	}
	return &r.cell.value
}

// Release ends the borrow. Calling it again has no effect.
func (r *Ref[T]) Release() {
	r.cell.mu.Lock()
	defer r.cell.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.cell.readers--
}

// RefMut is a live write borrow.
type RefMut[T any] struct {
	cell     *Cell[T]
	released bool
}

// Value returns the borrowed value, or nil after Release.
func (r *RefMut[T]) Value() *T {
	if r.released {
		return nil
	}
	return &r.cell.value
}

// Release ends the borrow. Calling it again has no effect.
func (r *RefMut[T]) Release() {
	r.cell.mu.Lock()
	defer r.cell.mu.Unlock()
	if r.released {
		return
	}
	r.released = true
	r.cell.writing = false
}
