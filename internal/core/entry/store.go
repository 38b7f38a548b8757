package entry

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an entry or section does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for entry persistence.
type Store interface {
	// Create persists a new entry and populates its ID and timestamps.
	Create(ctx context.Context, e *Entry) error

	// Get returns a single entry by ID.
	// Returns ErrNotFound if the entry does not exist.
	Get(ctx context.Context, id int64) (Entry, error)

	// List returns all entries ordered by most recently updated.
	List(ctx context.Context) ([]Entry, error)

	// Update replaces the name and layout of an existing entry.
	// Returns ErrNotFound if the entry does not exist.
	Update(ctx context.Context, e *Entry) error

	// UpdateName renames an entry without touching its layout.
	// Returns ErrNotFound if the entry does not exist.
	UpdateName(ctx context.Context, id int64, name string) error

	// Delete removes an entry and its sections.
	// Returns ErrNotFound if the entry does not exist.
	Delete(ctx context.Context, id int64) error
}

// SectionStore defines the interface for section persistence.
type SectionStore interface {
	// Create persists a new section and populates its ID and timestamps.
	Create(ctx context.Context, s *Section) error

	// Get returns a single section by ID.
	// Returns ErrNotFound if the section does not exist.
	Get(ctx context.Context, id int64) (Section, error)

	// ListByEntry returns the sections of an entry ordered by position.
	ListByEntry(ctx context.Context, entryID int64) ([]Section, error)

	// Update replaces the position, title and content of a section.
	// Returns ErrNotFound if the section does not exist.
	Update(ctx context.Context, s *Section) error

	// Delete removes a section.
	// Returns ErrNotFound if the section does not exist.
	Delete(ctx context.Context, id int64) error
}
