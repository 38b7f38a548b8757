// Package tmpl renders the text/template snippets used in entry templates.
package tmpl

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"join":  strings.Join,
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"trim":  strings.TrimSpace,
	"default": func(def, s string) string {
		if strings.TrimSpace(s) == "" {
			return def
		}
		return s
	},
	"repeat": func(n int, s string) string {
		if n < 0 {
			n = 0
		}
		return strings.Repeat(s, n)
	},
}

// IsTemplate reports whether s contains a complete template action: an
// opening "{{" followed later by "}}". Plain strings are returned unchanged by
// Render without being parsed.
func IsTemplate(s string) bool {
	open := strings.Index(s, "{{")
	return open >= 0 && strings.Contains(s[open+2:], "}}")
}

// Parse checks the syntax of a template string.
func Parse(tmpl string) (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return t, nil
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - join: Join string slice with separator (e.g., join .Tags ", ")
//   - upper, lower, trim: string case and whitespace helpers
//   - default: Replace a blank value (e.g., .Name | default "untitled")
//   - repeat: Repeat a string n times (e.g., repeat 3 "-")
func Render(tmpl string, data any) (string, error) {
	if !IsTemplate(tmpl) {
		return tmpl, nil
	}

	t, err := Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
