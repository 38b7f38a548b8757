package glyph

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/undefinedpatient/glyph/internal/core/entry"
	"github.com/undefinedpatient/glyph/internal/core/layout"
)

// Markdown files written by Export start with the layout in a comment so an
// import restores it.
const layoutMarker = "<!-- glyph:layout "

// Document is an entry in its markdown form.
type Document struct {
	Name     string
	Layout   *layout.Node // nil when the file carries none
	Sections []entry.Section
}

// Markdown renders an entry as a markdown document: the entry name as the
// title and one second level heading per section.
func (s *EntryService) Markdown(ctx context.Context, id int64) (string, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return "", err
	}
	secs, err := s.sections.ListByEntry(ctx, id)
	if err != nil {
		return "", err
	}
	tree, err := layout.Decode(e.Layout)
	if err != nil {
		tree = nil
	}
	return FormatMarkdown(Document{Name: e.Name, Layout: tree, Sections: secs})
}

// FormatMarkdown writes doc in the format read by ParseMarkdown.
func FormatMarkdown(doc Document) (string, error) {
	var sb strings.Builder

	if doc.Layout != nil {
		data, err := layout.Encode(doc.Layout)
		if err != nil {
			return "", err
		}
		sb.WriteString(layoutMarker)
		sb.Write(data)
		sb.WriteString(" -->\n")
	}

	fmt.Fprintf(&sb, "# %s\n", doc.Name)
	for _, sec := range doc.Sections {
		fmt.Fprintf(&sb, "\n## %s\n", sec.Title)
		if content := strings.Trim(sec.Content, "\n"); content != "" {
			sb.WriteString("\n")
			sb.WriteString(content)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}

// ParseMarkdown splits a markdown document into sections at second level
// headings outside fenced code blocks. Text before the first such heading,
// other than the title, becomes an untitled first section. fallbackName is
// used when there is no first level heading.
func ParseMarkdown(src, fallbackName string) (Document, error) {
	doc := Document{Name: fallbackName}

	var (
		cur     *entry.Section
		body    []string
		fenced  bool
		titled  bool
		preface []string
	)

	flush := func() {
		content := strings.Trim(strings.Join(body, "\n"), "\n")
		if cur != nil {
			cur.Content = content
			cur.Position = len(doc.Sections)
			doc.Sections = append(doc.Sections, *cur)
		} else if content != "" {
			preface = append(preface, content)
		}
		body = body[:0]
	}

	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	first := true
	for sc.Scan() {
		line := sc.Text()

		if first && strings.HasPrefix(line, layoutMarker) {
			first = false
			raw := strings.TrimSuffix(strings.TrimPrefix(line, layoutMarker), " -->")
			tree, err := layout.Decode([]byte(raw))
			if err != nil {
				return Document{}, fmt.Errorf("layout comment: %w", err)
			}
			doc.Layout = tree
			continue
		}
		first = false

		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			fenced = !fenced
		}

		switch {
		case !fenced && !titled && cur == nil && strings.HasPrefix(line, "# "):
			doc.Name = strings.TrimSpace(strings.TrimPrefix(line, "# "))
			titled = true
		case !fenced && strings.HasPrefix(line, "## "):
			flush()
			cur = &entry.Section{Title: strings.TrimSpace(strings.TrimPrefix(line, "## "))}
		default:
			body = append(body, line)
		}
	}
	if err := sc.Err(); err != nil {
		return Document{}, fmt.Errorf("read markdown: %w", err)
	}
	flush()

	if len(preface) > 0 {
		intro := entry.Section{Content: strings.Join(preface, "\n\n")}
		doc.Sections = slices.Insert(doc.Sections, 0, intro)
		for i := range doc.Sections {
			doc.Sections[i].Position = i
		}
	}
	return doc, nil
}

// Export writes an entry to dir as <slug>.md and returns the file path.
func (s *EntryService) Export(ctx context.Context, id int64, dir string) (string, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return "", err
	}
	md, err := s.Markdown(ctx, id)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, e.Slug()+".md")
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ImportResult reports one imported file.
type ImportResult struct {
	Path  string
	Entry entry.Entry
}

// Import creates one entry per markdown file matched by patterns. Patterns
// use doublestar syntax, so "notes/**/*.md" descends into subdirectories.
// Files matched by several patterns are imported once.
func (s *EntryService) Import(ctx context.Context, patterns ...string) ([]ImportResult, error) {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pattern)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	paths = slices.Compact(paths)

	results := make([]ImportResult, 0, len(paths))
	for _, path := range paths {
		e, err := s.importFile(ctx, path)
		if err != nil {
			return results, fmt.Errorf("import %s: %w", path, err)
		}
		results = append(results, ImportResult{Path: path, Entry: e})
	}
	return results, nil
}

func (s *EntryService) importFile(ctx context.Context, path string) (entry.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entry.Entry{}, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	doc, err := ParseMarkdown(string(data), name)
	if err != nil {
		return entry.Entry{}, err
	}
	return s.CreateDocument(ctx, doc)
}

// CreateDocument stores a parsed document as a new entry. Documents without
// a layout get the single column preset.
func (s *EntryService) CreateDocument(ctx context.Context, doc Document) (entry.Entry, error) {
	if strings.TrimSpace(doc.Name) == "" {
		return entry.Entry{}, ErrEmptyName
	}

	tree := doc.Layout
	if tree == nil {
		var err error
		tree, err = layout.Preset(layout.PresetSingle, max(len(doc.Sections), 1))
		if err != nil {
			return entry.Entry{}, err
		}
	}
	data, err := layout.Encode(tree)
	if err != nil {
		return entry.Entry{}, err
	}

	e := entry.Entry{Name: doc.Name, Layout: data}
	if err := s.entries.Create(ctx, &e); err != nil {
		return entry.Entry{}, fmt.Errorf("failed to create entry: %w", err)
	}

	for i, sec := range doc.Sections {
		sec.ID, sec.EntryID, sec.Position = 0, e.ID, i
		if err := s.sections.Create(ctx, &sec); err != nil {
			_ = s.entries.Delete(ctx, e.ID)
			return entry.Entry{}, fmt.Errorf("failed to create section %q: %w", sec.Title, err)
		}
	}
	return e, nil
}
