// Copyright 2025 The ResumeKit Authors
// Licensed under the EUPL-1.2

// Package templates serves the built-in LaTeX resume templates.
package templates

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml latex/*.tex
var assets embed.FS

// Template describes one entry of the catalog.
type Template struct {
	ID        string `toml:"id" json:"id"`
	Name      string `toml:"name" json:"name"`
	LatexFile string `toml:"latex_file" json:"-"`
}

// ErrUnknownTemplate is returned for ids not present in the catalog.
type ErrUnknownTemplate struct {
	ID string
}

func (e *ErrUnknownTemplate) Error() string {
	return fmt.Sprintf("template %q not found", e.ID)
}

type catalogFile struct {
	Templates []Template `toml:"templates"`
}

// Catalog resolves template ids to their LaTeX sources.
type Catalog struct {
	templates []Template
	byID      map[string]Template
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	raw, err := assets.ReadFile("catalog.toml")
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var file catalogFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	byID := make(map[string]Template, len(file.Templates))
	for _, tpl := range file.Templates {
		if _, err := assets.ReadFile(tpl.LatexFile); err != nil {
			return nil, fmt.Errorf("template %q: %w", tpl.ID, err)
		}
		byID[tpl.ID] = tpl
	}

	return &Catalog{templates: file.Templates, byID: byID}, nil
}

// List returns all catalog entries.
func (c *Catalog) List() []Template {
	return c.templates
}

// Source returns the LaTeX body for a template id.
func (c *Catalog) Source(id string) (string, error) {
	tpl, ok := c.byID[id]
	if !ok {
		return "", &ErrUnknownTemplate{ID: id}
	}
	raw, err := assets.ReadFile(tpl.LatexFile)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
