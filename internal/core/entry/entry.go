// Package entry defines the document domain types and persistence interfaces.
package entry

import (
	"regexp"
	"strings"
	"time"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a name to a filename-safe slug.
// "My Entry Name" -> "my-entry-name"
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// Entry is one document. Its sections are stored separately and its layout
// tree is kept as an encoded attribute so that a malformed tree never
// prevents the entry itself from loading.
type Entry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Layout    []byte    `json:"layout,omitempty"` // encoded layout tree
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Slug returns the slugified entry name, falling back to "entry" for names
// without any alphanumeric characters.
func (e *Entry) Slug() string {
	if s := Slugify(e.Name); s != "" {
		return s
	}
	return "entry"
}

// Section is an ordered block of markdown inside an entry. Layout leaves
// refer to sections by Position.
type Section struct {
	ID        int64     `json:"id"`
	EntryID   int64     `json:"entry_id"`
	Position  int       `json:"position"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayTitle returns the title, or "untitled" when it is blank.
func (s *Section) DisplayTitle() string {
	if t := strings.TrimSpace(s.Title); t != "" {
		return t
	}
	return "untitled"
}
