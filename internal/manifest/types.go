package manifest

import (
	"fmt"
	"slices"
)

// Default values applied to items by the loader
const (
	DefaultItemType     = "js"
	DefaultItemCategory = "library"
)

// Author represents a package author
type Author struct {
	Name     string `json:"name" yaml:"name" toml:"name"`
	Homepage string `json:"homepage,omitempty" yaml:"homepage,omitempty" toml:"homepage"`
}

// String renders the author as "Name <homepage>", or just the name
func (a Author) String() string {
	if a.Homepage != "" {
		return a.Name + " <" + a.Homepage + ">"
	}
	return a.Name
}

// Item represents a single catalog entry
type Item struct {
	Name        string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name"`
	Title       string   `json:"title" yaml:"title" toml:"title"`
	Description string   `json:"description" yaml:"description" toml:"description"`
	Path        string   `json:"path" yaml:"path" toml:"path"`
	Type        string   `json:"type" yaml:"type" toml:"type"`
	Category    string   `json:"category" yaml:"category" toml:"category"`
	Requires    []string `json:"requires" yaml:"requires" toml:"requires"`
	Provides    []string `json:"provides" yaml:"provides" toml:"provides"`

	// Source is the absolute path of the item, set when it enters a package
	Source string `json:"-" yaml:"-" toml:"-"`
}

// Clone returns a deep copy of the item
func (i Item) Clone() Item {
	i.Requires = slices.Clone(i.Requires)
	i.Provides = slices.Clone(i.Provides)
	return i
}

// Manifest represents a parsed package manifest
type Manifest struct {
	Name        string
	Description string
	Version     string
	Copyright   string
	Link        string
	License     string
	Authors     []Author
	Includes    []string
	OutputFile  string
	Contents    *Catalog

	// BaseDir is the directory holding the manifest file, with a trailing separator
	BaseDir string
	// SourcePath is BaseDir joined with the declared source path, with a trailing separator
	SourcePath string
}

// Item returns the catalog entry for name
func (m *Manifest) Item(name string) (Item, bool) {
	if m.Contents == nil {
		return Item{}, false
	}
	return m.Contents.Get(name)
}

// Validate validates the manifest references
func (m *Manifest) Validate() error {
	for i, name := range m.Includes {
		if name == "" {
			return fmt.Errorf("includes[%d]: %w", i, ErrEmptyReference)
		}
	}
	if m.Contents == nil {
		return nil
	}
	for _, item := range m.Contents.Items() {
		if slices.Contains(item.Requires, "") {
			return fmt.Errorf("item %s requires: %w", item.Name, ErrEmptyReference)
		}
		if slices.Contains(item.Provides, "") {
			return fmt.Errorf("item %s provides: %w", item.Name, ErrEmptyReference)
		}
	}
	return nil
}
