package logging

import "context"

type contextKey string

const (
	entryIDKey contextKey = "entry_id"
	pageKey    contextKey = "page"
)

// WithEntryID adds the ID of the entry being worked on to the context.
func WithEntryID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, entryIDKey, id)
}

// WithPage adds the name of the active TUI page to the context.
func WithPage(ctx context.Context, page string) context.Context {
	return context.WithValue(ctx, pageKey, page)
}

// GetEntryID retrieves the entry ID from the context.
// ok is false if not present.
func GetEntryID(ctx context.Context) (id int64, ok bool) {
	id, ok = ctx.Value(entryIDKey).(int64)
	return id, ok
}

// GetPage retrieves the page name from the context.
// Returns empty string if not present.
func GetPage(ctx context.Context) string {
	if p, ok := ctx.Value(pageKey).(string); ok {
		return p
	}
	return ""
}
