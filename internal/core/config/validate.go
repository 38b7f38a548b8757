package config

import (
	"fmt"
	"os"
	"sort"

	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/hay-kot/criterio"

	"github.com/undefinedpatient/glyph/internal/core/styles"
	"github.com/undefinedpatient/glyph/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration
// including theme and markdown style names and file accessibility. The
// configPath argument specifies the config file location to validate (empty
// string skips the config file check). Validate runs first.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("theme", c.Theme, themeExists),
		criterio.Run("markdown.style", c.Markdown.Style, markdownStyleExists),
		c.validateTemplates(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Markdown.CacheSize == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Markdown",
			Item:     "cache_size",
			Message:  "rendering cache disabled; every redraw re-renders markdown",
		})
	}

	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if c.Templates[name].Description == "" {
			warnings = append(warnings, ValidationWarning{
				Category: "Templates",
				Item:     name,
				Message:  "template has no description",
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func themeExists(name string) error {
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %v)", name, styles.ThemeNames())
	}
	return nil
}

func markdownStyleExists(name string) error {
	if _, ok := glamourstyles.DefaultStyles[name]; !ok {
		return fmt.Errorf("unknown glamour style %q", name)
	}
	return nil
}

// validateTemplates reports every broken template instead of stopping at the
// first one as Validate does.
func (c *Config) validateTemplates() error {
	var errs criterio.FieldErrorsBuilder
	for name, tpl := range c.Templates {
		for i, sec := range tpl.Sections {
			field := fmt.Sprintf("templates[%q].sections[%d]", name, i)
			if sec.Title == "" && sec.Content == "" {
				errs = errs.Append(field, fmt.Errorf("section has neither title nor content"))
			}
			for _, text := range []string{sec.Title, sec.Content} {
				if !tmpl.IsTemplate(text) {
					continue
				}
				if _, err := tmpl.Parse(text); err != nil {
					errs = errs.Append(field, err)
				}
			}
		}
	}
	return errs.ToError()
}
