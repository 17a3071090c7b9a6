package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
)

// Validate checks the configuration for values the build cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Package.Name) == "" {
		return errors.ValidationError("package.name is required").Build()
	}
	if strings.TrimSpace(c.Output.Directory) == "" {
		return errors.ValidationError("output.directory is required").Build()
	}
	if err := plainFileName("output.navigation_file", c.Output.NavigationFile); err != nil {
		return err
	}
	if err := plainFileName("output.metadata_file", c.Output.MetadataFile); err != nil {
		return err
	}
	pages := filepath.Clean(c.Output.PagesDir)
	if filepath.IsAbs(pages) || pages == ".." || strings.HasPrefix(pages, ".."+string(filepath.Separator)) {
		return errors.ValidationError("output.pages_dir must stay inside output.directory").
			WithContext("value", c.Output.PagesDir).
			Build()
	}
	for _, g := range c.ExcludeGroups {
		if strings.TrimSpace(g) == "" {
			return errors.ValidationError("exclude_groups must not contain empty names").Build()
		}
	}
	return nil
}

func plainFileName(field, name string) error {
	if name == "" || filepath.Base(name) != name {
		return errors.ValidationError(field+" must be a plain file name").
			WithContext("value", name).
			Build()
	}
	return nil
}
