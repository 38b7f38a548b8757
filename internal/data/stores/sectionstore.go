package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/data/db"
)

// SectionStore implements entry.SectionStore using SQLite.
type SectionStore struct {
	db  *db.DB
	now func() time.Time
}

var _ entry.SectionStore = (*SectionStore)(nil)

// NewSectionStore creates a new SQLite-backed section store.
func NewSectionStore(db *db.DB) *SectionStore {
	return &SectionStore{db: db, now: time.Now}
}

// Create inserts sec and fills in its ID and timestamps. The owning entry
// must exist.
func (s *SectionStore) Create(ctx context.Context, sec *entry.Section) error {
	now := s.now()
	if sec.CreatedAt.IsZero() {
		sec.CreatedAt = now
	}
	sec.UpdatedAt = now

	id, err := s.db.Queries().CreateSection(ctx, db.CreateSectionParams{
		EntryID:   sec.EntryID,
		Position:  int64(sec.Position),
		Title:     sec.Title,
		Content:   sec.Content,
		CreatedAt: sec.CreatedAt.UnixNano(),
		UpdatedAt: sec.UpdatedAt.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to create section: %w", err)
	}

	sec.ID = id
	return nil
}

// Get returns a section by ID. Returns entry.ErrNotFound if not found.
func (s *SectionStore) Get(ctx context.Context, id int64) (entry.Section, error) {
	row, err := s.db.Queries().GetSection(ctx, id)
	if IsNotFoundError(err) {
		return entry.Section{}, entry.ErrNotFound
	}
	if err != nil {
		return entry.Section{}, fmt.Errorf("failed to get section: %w", err)
	}
	return rowToSection(row), nil
}

// ListByEntry returns the sections of an entry ordered by position.
func (s *SectionStore) ListByEntry(ctx context.Context, entryID int64) ([]entry.Section, error) {
	rows, err := s.db.Queries().ListSectionsByEntry(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	sections := make([]entry.Section, 0, len(rows))
	for _, row := range rows {
		sections = append(sections, rowToSection(row))
	}
	return sections, nil
}

// Update writes position, title and content. Returns entry.ErrNotFound if not found.
func (s *SectionStore) Update(ctx context.Context, sec *entry.Section) error {
	now := s.now()
	n, err := s.db.Queries().UpdateSection(ctx, db.UpdateSectionParams{
		ID:        sec.ID,
		Position:  int64(sec.Position),
		Title:     sec.Title,
		Content:   sec.Content,
		UpdatedAt: now.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("failed to update section: %w", err)
	}
	if n == 0 {
		return entry.ErrNotFound
	}

	sec.UpdatedAt = now
	return nil
}

// Delete removes a section. Returns entry.ErrNotFound if not found.
func (s *SectionStore) Delete(ctx context.Context, id int64) error {
	n, err := s.db.Queries().DeleteSection(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete section: %w", err)
	}
	if n == 0 {
		return entry.ErrNotFound
	}
	return nil
}

func rowToSection(row db.Section) entry.Section {
	return entry.Section{
		ID:        row.ID,
		EntryID:   row.EntryID,
		Position:  int(row.Position),
		Title:     row.Title,
		Content:   row.Content,
		CreatedAt: time.Unix(0, row.CreatedAt),
		UpdatedAt: time.Unix(0, row.UpdatedAt),
	}
}
