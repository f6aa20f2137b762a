package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Project represents a jsi.toml project file.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  Source `toml:"source"`

	// Dir is the directory containing the jsi.toml file (set at load time).
	Dir string `toml:"-"`
}

// Source configures script locations.
type Source struct {
	Dir   string `toml:"dir"`
	Entry string `toml:"entry"`
}

// LoadProject parses a jsi.toml file.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	var project Project
	if err := toml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	project.Dir = filepath.Dir(path)
	return &project, nil
}

// ResolveEntry maps a requested script through the project's source layout.
// An empty request falls back to the configured entry script.
func (p *Project) ResolveEntry(requested string) string {
	if p == nil {
		return requested
	}
	name := requested
	if name == "" {
		name = p.Source.Entry
	}
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, p.Source.Dir, name)
}
