// Package logging provides component loggers and context fields shared by
// every glyph package.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns a child of the global logger tagged with "cmp".
// Call it after the global logger is configured, not at package init.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// ForEntry tags a logger with an entry ID.
func ForEntry(l zerolog.Logger, id int64) zerolog.Logger {
	return l.With().Int64("entry_id", id).Logger()
}
