package document

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undefinedpatient/glyph/internal/core/cycle"
	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
	"github.com/undefinedpatient/glyph/internal/core/shared"
)

type memEntries struct {
	items   map[int64]entry.Entry
	updates int
	failOn  error
}

func (m *memEntries) Create(_ context.Context, e *entry.Entry) error {
	e.ID = int64(len(m.items) + 1)
	m.items[e.ID] = *e
	return nil
}

func (m *memEntries) Get(_ context.Context, id int64) (entry.Entry, error) {
	e, ok := m.items[id]
	if !ok {
		return entry.Entry{}, entry.ErrNotFound
	}
	return e, nil
}

func (m *memEntries) List(context.Context) ([]entry.Entry, error) {
	out := make([]entry.Entry, 0, len(m.items))
	for _, e := range m.items {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEntries) Update(_ context.Context, e *entry.Entry) error {
	if m.failOn != nil {
		return m.failOn
	}
	m.updates++
	m.items[e.ID] = *e
	return nil
}

func (m *memEntries) UpdateName(_ context.Context, id int64, name string) error {
	e, ok := m.items[id]
	if !ok {
		return entry.ErrNotFound
	}
	e.Name = name
	m.items[id] = e
	return nil
}

func (m *memEntries) Delete(_ context.Context, id int64) error {
	delete(m.items, id)
	return nil
}

type memSections struct {
	items  map[int64]entry.Section
	nextID int64
}

func (m *memSections) Create(_ context.Context, s *entry.Section) error {
	m.nextID++
	s.ID = m.nextID
	s.CreatedAt = time.Now()
	m.items[s.ID] = *s
	return nil
}

func (m *memSections) Get(_ context.Context, id int64) (entry.Section, error) {
	s, ok := m.items[id]
	if !ok {
		return entry.Section{}, entry.ErrNotFound
	}
	return s, nil
}

func (m *memSections) ListByEntry(_ context.Context, entryID int64) ([]entry.Section, error) {
	var out []entry.Section
	for _, s := range m.items {
		if s.EntryID == entryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSections) Update(_ context.Context, s *entry.Section) error {
	if _, ok := m.items[s.ID]; !ok {
		return entry.ErrNotFound
	}
	m.items[s.ID] = *s
	return nil
}

func (m *memSections) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return entry.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func setup(t *testing.T, layoutData []byte, titles ...string) (*State, *memEntries, *memSections) {
	t.Helper()
	ctx := context.Background()

	entries := &memEntries{items: map[int64]entry.Entry{}}
	sections := &memSections{items: map[int64]entry.Section{}}

	e := entry.Entry{Name: "notes", Layout: layoutData}
	require.NoError(t, entries.Create(ctx, &e))
	for i, title := range titles {
		require.NoError(t, sections.Create(ctx, &entry.Section{EntryID: e.ID, Position: i, Title: title}))
	}

	st, err := Open(ctx, entries, sections, e.ID)
	require.NoError(t, err)
	return st, entries, sections
}

func validLayout(t *testing.T) []byte {
	t.Helper()
	data, err := layout.Encode(layout.Default())
	require.NoError(t, err)
	return data
}

func TestOpen_OrdersSectionsAndSelectsFirst(t *testing.T) {
	st, _, _ := setup(t, validLayout(t), "one", "two", "three")

	secs, err := st.Sections()
	require.NoError(t, err)
	require.Len(t, secs, 3)
	assert.Equal(t, "one", secs[0].Title)
	assert.Equal(t, "three", secs[2].Title)

	active, ok, err := st.Active()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", active.Title)
	assert.False(t, isDirty(t, st))
}

func TestOpen_MalformedLayoutIsReplacedOnce(t *testing.T) {
	st, entries, _ := setup(t, []byte(`{"orientation":"sideways"`), "one")

	tree, err := st.Layout()
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), tree)

	dirty, err := st.Dirty()
	require.NoError(t, err)
	assert.Equal(t, []Ref{EntryRef(st.ID())}, dirty)

	require.NoError(t, st.Save(context.Background()))
	assert.False(t, isDirty(t, st))

	stored, _ := entries.Get(context.Background(), st.ID())
	_, err = layout.Decode(stored.Layout)
	require.NoError(t, err, "replacement layout is persisted")
}

func TestOpen_MissingEntry(t *testing.T) {
	entries := &memEntries{items: map[int64]entry.Entry{}}
	sections := &memSections{items: map[int64]entry.Section{}}

	_, err := Open(context.Background(), entries, sections, 99)
	require.ErrorIs(t, err, entry.ErrNotFound)
}

func TestCycleActive(t *testing.T) {
	st, _, _ := setup(t, validLayout(t), "a", "b", "c")

	require.NoError(t, st.CycleActive(-1))
	active, _, _ := st.Active()
	assert.Equal(t, "c", active.Title)

	require.NoError(t, st.CycleActive(2))
	active, _, _ = st.Active()
	assert.Equal(t, "b", active.Title)

	empty, _, _ := setup(t, validLayout(t))
	require.ErrorIs(t, empty.CycleActive(1), cycle.ErrEmpty)
}

func TestSetActive_OutOfRange(t *testing.T) {
	st, _, _ := setup(t, validLayout(t), "a")
	require.ErrorIs(t, st.SetActive(3), ErrNoSection)
	require.NoError(t, st.SetActive(0))
}

func TestSetContent_MarksDirtyAndSaves(t *testing.T) {
	ctx := context.Background()
	st, _, sections := setup(t, validLayout(t), "a", "b")

	secs, _ := st.Sections()
	require.NoError(t, st.SetContent(secs[1].ID, "# hello"))

	dirty, _ := st.Dirty()
	assert.Equal(t, []Ref{SectionRef(secs[1].ID)}, dirty)

	require.NoError(t, st.Save(ctx))
	assert.False(t, isDirty(t, st))

	stored, err := sections.Get(ctx, secs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "# hello", stored.Content)

	require.ErrorIs(t, st.SetContent(12345, "x"), ErrNoSection)
}

func TestSave_FailureKeepsDirty(t *testing.T) {
	st, entries, _ := setup(t, validLayout(t), "a")
	boom := errors.New("disk full")
	entries.failOn = boom

	require.NoError(t, st.EditLayout(func(root *layout.Node) error {
		root.Label = "changed"
		return nil
	}))

	err := st.Save(context.Background())
	require.ErrorIs(t, err, boom)
	assert.True(t, isDirty(t, st))

	entries.failOn = nil
	require.NoError(t, st.Save(context.Background()))
	assert.False(t, isDirty(t, st))
	assert.Equal(t, 1, entries.updates)
}

func TestEditLayout_FailureLeavesTreeUntouched(t *testing.T) {
	st, _, _ := setup(t, validLayout(t), "a")

	_, err := st.Layout()
	require.NoError(t, err)

	err = st.EditLayout(func(root *layout.Node) error {
		root.Label = "half done"
		_, err := root.Remove(layout.Coord{4})
		return err
	})
	require.ErrorIs(t, err, layout.ErrUnresolvable)

	tree, _ := st.Layout()
	assert.Equal(t, "root", tree.Label)
	assert.False(t, isDirty(t, st))
}

func TestCreateAndDeleteSection(t *testing.T) {
	ctx := context.Background()
	st, _, sections := setup(t, validLayout(t), "a", "b")

	created, err := st.CreateSection(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 2, created.Position)

	active, _, _ := st.Active()
	assert.Equal(t, created.ID, active.ID, "new section becomes active")

	secs, _ := st.Sections()
	require.NoError(t, st.DeleteSection(ctx, secs[0].ID))

	secs, _ = st.Sections()
	require.Len(t, secs, 2)
	assert.Equal(t, "b", secs[0].Title)
	assert.Equal(t, 0, secs[0].Position)
	assert.Equal(t, 1, secs[1].Position)

	active, ok, _ := st.Active()
	require.True(t, ok)
	assert.Equal(t, "c", active.Title, "active index clamps to the shorter list")

	dirty, _ := st.Dirty()
	assert.Len(t, dirty, 2, "renumbered sections await save")

	require.NoError(t, st.Save(ctx))
	stored, _ := sections.Get(ctx, secs[0].ID)
	assert.Equal(t, 0, stored.Position)

	require.ErrorIs(t, st.DeleteSection(ctx, 999), ErrNoSection)
}

func TestDeleteLastSection_ClearsActive(t *testing.T) {
	ctx := context.Background()
	st, _, _ := setup(t, validLayout(t), "only")

	secs, _ := st.Sections()
	require.NoError(t, st.DeleteSection(ctx, secs[0].ID))

	_, ok, err := st.Active()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMoveActive(t *testing.T) {
	st, _, _ := setup(t, validLayout(t), "a", "b", "c")

	require.NoError(t, st.MoveActive(1))
	secs, _ := st.Sections()
	assert.Equal(t, []string{"b", "a", "c"}, titles(secs))

	active, _, _ := st.Active()
	assert.Equal(t, "a", active.Title)
	assert.Equal(t, 1, active.Position)
}

func TestRename(t *testing.T) {
	ctx := context.Background()
	st, entries, _ := setup(t, validLayout(t), "a")

	require.NoError(t, st.Rename(ctx, "journal"))
	e, _ := st.Entry()
	assert.Equal(t, "journal", e.Name)

	stored, _ := entries.Get(ctx, st.ID())
	assert.Equal(t, "journal", stored.Name)

	secs, _ := st.Sections()
	require.NoError(t, st.RenameSection(ctx, secs[0].ID, "Intro"))
	secs, _ = st.Sections()
	assert.Equal(t, "Intro", secs[0].Title)
	assert.False(t, isDirty(t, st), "renames are persisted immediately")
}

func TestWriteDuringLiveRead_Fails(t *testing.T) {
	st, _, _ := setup(t, validLayout(t), "a", "b")

	ref, err := st.Read()
	require.NoError(t, err)

	err = st.CycleActive(1)
	require.ErrorIs(t, err, shared.ErrBorrowConflict)

	err = st.View(func(*Doc) error { return st.MarkDirty(EntryRef(st.ID())) })
	require.ErrorIs(t, err, shared.ErrBorrowConflict)

	ref.Release()
	require.NoError(t, st.CycleActive(1))
	active, _, _ := st.Active()
	assert.Equal(t, "b", active.Title)
}

func TestRenameSection_KeepsUnsavedContent(t *testing.T) {
	ctx := context.Background()
	st, _, sections := setup(t, validLayout(t), "a")

	secs, _ := st.Sections()
	id := secs[0].ID
	require.NoError(t, st.SetContent(id, "draft"))
	require.NoError(t, st.RenameSection(ctx, id, "Renamed"))

	stored, err := sections.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Title)
	assert.Empty(t, stored.Content, "unsaved content is not written by a rename")

	secs, _ = st.Sections()
	assert.Equal(t, "draft", secs[0].Content)
	assert.True(t, isDirty(t, st))

	require.NoError(t, st.Save(ctx))
	stored, _ = sections.Get(ctx, id)
	assert.Equal(t, "draft", stored.Content)
	assert.Equal(t, "Renamed", stored.Title)
}

func TestIsDirty_DuringWriteFails(t *testing.T) {
	st, _, _ := setup(t, validLayout(t), "a")

	var checkErr error
	require.NoError(t, st.EditLayout(func(*layout.Node) error {
		_, checkErr = st.IsDirty()
		return nil
	}))

	var borrow *shared.BorrowError
	require.ErrorAs(t, checkErr, &borrow)
	assert.ErrorIs(t, checkErr, shared.ErrBorrowConflict)
}

func isDirty(t *testing.T, st *State) bool {
	t.Helper()
	dirty, err := st.IsDirty()
	require.NoError(t, err)
	return dirty
}

func titles(secs []entry.Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.Title
	}
	return out
}
