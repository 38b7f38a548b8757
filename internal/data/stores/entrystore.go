package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/data/db"
)

// EntryStore implements entry.Store using SQLite.
type EntryStore struct {
	db  *db.DB
	now func() time.Time
}

var _ entry.Store = (*EntryStore)(nil)

// NewEntryStore creates a new SQLite-backed entry store.
func NewEntryStore(db *db.DB) *EntryStore {
	return &EntryStore{db: db, now: time.Now}
}

// Create inserts e and fills in its ID and timestamps.
func (s *EntryStore) Create(ctx context.Context, e *entry.Entry) error {
	now := s.now()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.UpdatedAt = now

	id, err := s.db.Queries().CreateEntry(ctx, db.CreateEntryParams{
		Name:      e.Name,
		Layout:    e.Layout,
		CreatedAt: e.CreatedAt.UnixNano(),
		UpdatedAt: e.UpdatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	e.ID = id
	return nil
}

// Get returns an entry by ID. Returns entry.ErrNotFound if not found.
func (s *EntryStore) Get(ctx context.Context, id int64) (entry.Entry, error) {
	row, err := s.db.Queries().GetEntry(ctx, id)
	if IsNotFoundError(err) {
		return entry.Entry{}, entry.ErrNotFound
	}
	if err != nil {
		return entry.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return rowToEntry(row), nil
}

// List returns all entries, most recently updated first.
func (s *EntryStore) List(ctx context.Context) ([]entry.Entry, error) {
	rows, err := s.db.Queries().ListEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	entries := make([]entry.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}
	return entries, nil
}

// Update writes the name and layout of e. Returns entry.ErrNotFound if not found.
func (s *EntryStore) Update(ctx context.Context, e *entry.Entry) error {
	now := s.now()
	n, err := s.db.Queries().UpdateEntry(ctx, db.UpdateEntryParams{
		ID:        e.ID,
		Name:      e.Name,
		Layout:    e.Layout,
		UpdatedAt: now.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if n == 0 {
		return entry.ErrNotFound
	}

	e.UpdatedAt = now
	return nil
}

// UpdateName renames an entry. Returns entry.ErrNotFound if not found.
func (s *EntryStore) UpdateName(ctx context.Context, id int64, name string) error {
	n, err := s.db.Queries().UpdateEntryName(ctx, id, name, s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to rename entry: %w", err)
	}
	if n == 0 {
		return entry.ErrNotFound
	}
	return nil
}

// Delete removes an entry and its sections. Returns entry.ErrNotFound if not found.
func (s *EntryStore) Delete(ctx context.Context, id int64) error {
	n, err := s.db.Queries().DeleteEntry(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if n == 0 {
		return entry.ErrNotFound
	}
	return nil
}

func rowToEntry(row db.Entry) entry.Entry {
	return entry.Entry{
		ID:        row.ID,
		Name:      row.Name,
		Layout:    row.Layout,
		CreatedAt: time.Unix(0, row.CreatedAt),
		UpdatedAt: time.Unix(0, row.UpdatedAt),
	}
}
