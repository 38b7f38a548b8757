package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds the typed statements used by the stores.
type Queries struct {
	db DBTX
}

// New binds a query set to a connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Entry is a row of the entries table. Timestamps are unix nanoseconds.
type Entry struct {
	ID        int64
	Name      string
	Layout    []byte
	CreatedAt int64
	UpdatedAt int64
}

// Section is a row of the sections table.
type Section struct {
	ID        int64
	EntryID   int64
	Position  int64
	Title     string
	Content   string
	CreatedAt int64
	UpdatedAt int64
}

const entryColumns = `id, name, layout, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.Name, &e.Layout, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

type CreateEntryParams struct {
	Name      string
	Layout    []byte
	CreatedAt int64
	UpdatedAt int64
}

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO entries (name, layout, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		arg.Name, arg.Layout, arg.CreatedAt, arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (q *Queries) GetEntry(ctx context.Context, id int64) (Entry, error) {
	return scanEntry(q.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id))
}

func (q *Queries) ListEntries(ctx context.Context) ([]Entry, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type UpdateEntryParams struct {
	ID        int64
	Name      string
	Layout    []byte
	UpdatedAt int64
}

// UpdateEntry returns the number of rows changed.
func (q *Queries) UpdateEntry(ctx context.Context, arg UpdateEntryParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE entries SET name = ?, layout = ?, updated_at = ? WHERE id = ?`,
		arg.Name, arg.Layout, arg.UpdatedAt, arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateEntryName returns the number of rows changed.
func (q *Queries) UpdateEntryName(ctx context.Context, id int64, name string, updatedAt int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE entries SET name = ?, updated_at = ? WHERE id = ?`, name, updatedAt, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteEntry returns the number of rows removed. Sections go with it
// through the foreign key.
func (q *Queries) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const sectionColumns = `id, entry_id, position, title, content, created_at, updated_at`

func scanSection(row interface{ Scan(...any) error }) (Section, error) {
	var s Section
	err := row.Scan(&s.ID, &s.EntryID, &s.Position, &s.Title, &s.Content, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

type CreateSectionParams struct {
	EntryID   int64
	Position  int64
	Title     string
	Content   string
	CreatedAt int64
	UpdatedAt int64
}

func (q *Queries) CreateSection(ctx context.Context, arg CreateSectionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO sections (entry_id, position, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		arg.EntryID, arg.Position, arg.Title, arg.Content, arg.CreatedAt, arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (q *Queries) GetSection(ctx context.Context, id int64) (Section, error) {
	return scanSection(q.db.QueryRowContext(ctx, `SELECT `+sectionColumns+` FROM sections WHERE id = ?`, id))
}

func (q *Queries) ListSectionsByEntry(ctx context.Context, entryID int64) ([]Section, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+sectionColumns+` FROM sections WHERE entry_id = ? ORDER BY position, id`, entryID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type UpdateSectionParams struct {
	ID        int64
	Position  int64
	Title     string
	Content   string
	UpdatedAt int64
}

// UpdateSection returns the number of rows changed.
func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE sections SET position = ?, title = ?, content = ?, updated_at = ? WHERE id = ?`,
		arg.Position, arg.Title, arg.Content, arg.UpdatedAt, arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteSection returns the number of rows removed.
func (q *Queries) DeleteSection(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
