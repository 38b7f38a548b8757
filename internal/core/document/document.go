// Package document holds the state of one opened entry. Every view of the
// entry shares a single *State; reads and writes go through a guarded cell
// so that a write attempted while a read is live fails with a
// shared.BorrowError instead of corrupting the view.
package document

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/undefinedpatient/glyph/internal/core/cycle"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/logging"
	"github.com/undefinedpatient/glyph/internal/core/shared"
)

// ErrNoSection is returned when an operation names a section the entry does
// not have.
var ErrNoSection = errors.New("no such section")

// Kind distinguishes the records tracked in the dirty set.
type Kind string

const (
	KindEntry   Kind = "entry"
	KindSection Kind = "section"
)

// Ref identifies a record with unsaved changes.
type Ref struct {
	Kind Kind
	ID   int64
}

func (r Ref) String() string { return fmt.Sprintf("%s:%d", r.Kind, r.ID) }

// EntryRef returns the dirty-set key for an entry.
func EntryRef(id int64) Ref { return Ref{Kind: KindEntry, ID: id} }

// SectionRef returns the dirty-set key for a section.
func SectionRef(id int64) Ref { return Ref{Kind: KindSection, ID: id} }

// Doc is the guarded document value. It is only reachable through View and
// the State methods.
type Doc struct {
	entry     entry.Entry
	tree      *layout.Node
	sections  []entry.Section
	active    int
	hasActive bool
	dirty     map[Ref]struct{}
}

// Entry returns the entry record. Its Layout field reflects the last save.
func (d *Doc) Entry() entry.Entry { return d.entry }

// Tree returns the live layout tree. Callers must not modify it; use
// State.EditLayout.
func (d *Doc) Tree() *layout.Node { return d.tree }

// Sections returns the sections ordered by position. The slice must not be
// modified.
func (d *Doc) Sections() []entry.Section { return d.sections }

// Section returns the section at position i.
func (d *Doc) Section(i int) (entry.Section, bool) {
	if i < 0 || i >= len(d.sections) {
		return entry.Section{}, false
	}
	return d.sections[i], true
}

// ActiveIndex returns the position of the active section.
func (d *Doc) ActiveIndex() (int, bool) { return d.active, d.hasActive }

// Active returns the active section.
func (d *Doc) Active() (entry.Section, bool) {
	if !d.hasActive {
		return entry.Section{}, false
	}
	return d.Section(d.active)
}

// IsDirty reports whether anything has unsaved changes.
func (d *Doc) IsDirty() bool { return len(d.dirty) > 0 }

// IsSectionDirty reports whether the section has unsaved changes.
func (d *Doc) IsSectionDirty(id int64) bool {
	_, ok := d.dirty[SectionRef(id)]
	return ok
}

// Dirty returns the dirty set ordered by kind then ID.
func (d *Doc) Dirty() []Ref {
	out := make([]Ref, 0, len(d.dirty))
	for r := range d.dirty {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Ref) int {
		if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (d *Doc) indexOf(sectionID int64) (int, bool) {
	for i, s := range d.sections {
		if s.ID == sectionID {
			return i, true
		}
	}
	return 0, false
}

func (d *Doc) markDirty(r Ref) { d.dirty[r] = struct{}{} }

// renumber rewrites positions after an insert, delete or move, marking every
// section whose position changed.
func (d *Doc) renumber() {
	for i := range d.sections {
		if d.sections[i].Position != i {
			d.sections[i].Position = i
			d.markDirty(SectionRef(d.sections[i].ID))
		}
	}
}

// State is the shared handle to one opened entry.
type State struct {
	id       int64
	cell     *shared.Cell[Doc]
	entries  entry.Store
	sections entry.SectionStore
	log      zerolog.Logger
}

// Open loads an entry with its sections. A stored layout that fails to
// decode is replaced by layout.Default(), logged, and the entry is marked
// dirty so the replacement is written on the next save. Store failures are
// returned unchanged.
func Open(ctx context.Context, entries entry.Store, sections entry.SectionStore, id int64) (*State, error) {
	e, err := entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	secs, err := sections.ListByEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(secs, func(a, b entry.Section) int { return cmp.Compare(a.Position, b.Position) })

	log := logging.ForEntry(logging.Component("document"), id)
	doc := Doc{
		entry:     e,
		sections:  secs,
		hasActive: len(secs) > 0,
		dirty:     make(map[Ref]struct{}),
	}

	tree, err := layout.Decode(e.Layout)
	if err != nil {
		log.Warn().Err(err).Msg("stored layout is unusable, substituting the default layout")
		tree = layout.Default()
		doc.markDirty(EntryRef(id))
	}
	doc.tree = tree
	doc.renumber()

	return &State{
		id:       id,
		cell:     shared.New("entry "+e.Name, doc),
		entries:  entries,
		sections: sections,
		log:      log,
	}, nil
}

// ID returns the entry ID. It does not borrow the cell.
func (s *State) ID() int64 { return s.id }

// View runs fn with a read borrow held. Mutating the state from inside fn
// fails with a shared.BorrowError.
func (s *State) View(fn func(d *Doc) error) error {
	return s.cell.View(fn)
}

// Read returns a live read borrow for callers that need to hold it across
// calls. It must be released.
func (s *State) Read() (*shared.Ref[Doc], error) {
	return s.cell.Read()
}

func (s *State) update(fn func(d *Doc) error) error {
	return s.cell.Update(fn)
}

// Entry returns a copy of the entry record.
func (s *State) Entry() (entry.Entry, error) {
	var e entry.Entry
	err := s.View(func(d *Doc) error {
		e = d.entry
		return nil
	})
	return e, err
}

// Sections returns a copy of the sections.
func (s *State) Sections() ([]entry.Section, error) {
	var out []entry.Section
	err := s.View(func(d *Doc) error {
		out = slices.Clone(d.sections)
		return nil
	})
	return out, err
}

// Active returns the active section.
func (s *State) Active() (entry.Section, bool, error) {
	var (
		sec entry.Section
		ok  bool
	)
	err := s.View(func(d *Doc) error {
		sec, ok = d.Active()
		return nil
	})
	return sec, ok, err
}

// Layout returns a copy of the layout tree.
func (s *State) Layout() (*layout.Node, error) {
	var out *layout.Node
	err := s.View(func(d *Doc) error {
		out = d.tree.Clone()
		return nil
	})
	return out, err
}

// IsDirty reports whether the entry has unsaved changes. It fails with a
// borrow error while a writer holds the document.
func (s *State) IsDirty() (bool, error) {
	dirty := false
	err := s.View(func(d *Doc) error {
		dirty = d.IsDirty()
		return nil
	})
	return dirty, err
}

// Dirty returns the dirty set.
func (s *State) Dirty() ([]Ref, error) {
	var out []Ref
	err := s.View(func(d *Doc) error {
		out = d.Dirty()
		return nil
	})
	return out, err
}

// SetActive selects the section at position i.
func (s *State) SetActive(i int) error {
	return s.update(func(d *Doc) error {
		if i < 0 || i >= len(d.sections) {
			return fmt.Errorf("%w: position %d of %d", ErrNoSection, i, len(d.sections))
		}
		d.active, d.hasActive = i, true
		return nil
	})
}

// CycleActive moves the active section by delta, wrapping around. It returns
// cycle.ErrEmpty when the entry has no sections.
func (s *State) CycleActive(delta int) error {
	return s.update(func(d *Doc) error {
		next, err := cycle.From(d.active, d.hasActive, delta, len(d.sections))
		if err != nil {
			return err
		}
		d.active, d.hasActive = next, true
		return nil
	})
}

// MoveActive shifts the active section by delta among its siblings. Layout
// leaves keep their content indices, so the moved section is shown in the
// leaf bound to its new position.
func (s *State) MoveActive(delta int) error {
	return s.update(func(d *Doc) error {
		if !d.hasActive {
			return fmt.Errorf("%w: nothing selected", ErrNoSection)
		}
		to, err := cycle.Step(d.active, delta, len(d.sections))
		if err != nil {
			return err
		}
		sec := d.sections[d.active]
		d.sections = slices.Delete(d.sections, d.active, d.active+1)
		d.sections = slices.Insert(d.sections, to, sec)
		d.active = to
		d.renumber()
		return nil
	})
}

// MarkDirty adds r to the dirty set.
func (s *State) MarkDirty(r Ref) error {
	return s.update(func(d *Doc) error {
		d.markDirty(r)
		return nil
	})
}

// SetContent replaces a section's text in memory and marks it dirty.
func (s *State) SetContent(sectionID int64, content string) error {
	return s.update(func(d *Doc) error {
		i, ok := d.indexOf(sectionID)
		if !ok {
			return fmt.Errorf("%w: id %d", ErrNoSection, sectionID)
		}
		if d.sections[i].Content == content {
			return nil
		}
		d.sections[i].Content = content
		d.markDirty(SectionRef(sectionID))
		return nil
	})
}

// CreateSection appends a new section, persists it and makes it active.
func (s *State) CreateSection(ctx context.Context, title string) (entry.Section, error) {
	var created entry.Section
	err := s.update(func(d *Doc) error {
		sec := entry.Section{
			EntryID:  d.entry.ID,
			Position: len(d.sections),
			Title:    title,
		}
		if err := s.sections.Create(ctx, &sec); err != nil {
			return fmt.Errorf("failed to create section: %w", err)
		}
		d.sections = append(d.sections, sec)
		d.active, d.hasActive = len(d.sections)-1, true
		created = sec
		return nil
	})
	return created, err
}

// DeleteSection removes a section from the store and the document. Later
// sections move up one position.
func (s *State) DeleteSection(ctx context.Context, sectionID int64) error {
	return s.update(func(d *Doc) error {
		i, ok := d.indexOf(sectionID)
		if !ok {
			return fmt.Errorf("%w: id %d", ErrNoSection, sectionID)
		}
		if err := s.sections.Delete(ctx, sectionID); err != nil {
			return fmt.Errorf("failed to delete section: %w", err)
		}

		d.sections = slices.Delete(d.sections, i, i+1)
		delete(d.dirty, SectionRef(sectionID))
		d.renumber()

		switch {
		case len(d.sections) == 0:
			d.active, d.hasActive = 0, false
		case d.active >= len(d.sections):
			d.active = len(d.sections) - 1
		}
		return nil
	})
}

// RenameSection changes a section title and persists it immediately. Unsaved
// content is left in memory and stays dirty; only the stored record's title
// changes.
func (s *State) RenameSection(ctx context.Context, sectionID int64, title string) error {
	return s.update(func(d *Doc) error {
		i, ok := d.indexOf(sectionID)
		if !ok {
			return fmt.Errorf("%w: id %d", ErrNoSection, sectionID)
		}
		stored, err := s.sections.Get(ctx, sectionID)
		if err != nil {
			return fmt.Errorf("failed to rename section: %w", err)
		}
		stored.Title = title
		if err := s.sections.Update(ctx, &stored); err != nil {
			return fmt.Errorf("failed to rename section: %w", err)
		}
		d.sections[i].Title = title
		return nil
	})
}

// Rename changes the entry name and persists it immediately.
func (s *State) Rename(ctx context.Context, name string) error {
	return s.update(func(d *Doc) error {
		if err := s.entries.UpdateName(ctx, d.entry.ID, name); err != nil {
			return fmt.Errorf("failed to rename entry: %w", err)
		}
		d.entry.Name = name
		return nil
	})
}

// EditLayout runs fn against a copy of the layout tree. When fn succeeds the
// copy replaces the tree and the entry is marked dirty; when it fails the
// tree is left as it was.
func (s *State) EditLayout(fn func(root *layout.Node) error) error {
	return s.update(func(d *Doc) error {
		next := d.tree.Clone()
		if err := fn(next); err != nil {
			return err
		}
		if err := next.Validate(); err != nil {
			return err
		}
		d.tree = next
		d.markDirty(EntryRef(d.entry.ID))
		return nil
	})
}

// Save writes every dirty record. Records that fail to save stay dirty.
func (s *State) Save(ctx context.Context) error {
	return s.update(func(d *Doc) error {
		var errs []error

		if _, ok := d.dirty[EntryRef(d.entry.ID)]; ok {
			if err := s.saveEntry(ctx, d); err != nil {
				errs = append(errs, err)
			} else {
				delete(d.dirty, EntryRef(d.entry.ID))
			}
		}

		for i := range d.sections {
			ref := SectionRef(d.sections[i].ID)
			if _, ok := d.dirty[ref]; !ok {
				continue
			}
			if err := s.sections.Update(ctx, &d.sections[i]); err != nil {
				errs = append(errs, fmt.Errorf("failed to save section %d: %w", d.sections[i].ID, err))
				continue
			}
			delete(d.dirty, ref)
		}

		if err := errors.Join(errs...); err != nil {
			return err
		}

		s.log.Debug().Msg("entry saved")
		return nil
	})
}

func (s *State) saveEntry(ctx context.Context, d *Doc) error {
	data, err := layout.Encode(d.tree)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}

	next := d.entry
	next.Layout = data
	if err := s.entries.Update(ctx, &next); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	d.entry = next
	return nil
}
