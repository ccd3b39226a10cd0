// Package minify holds the minifier registry and the built-in script and
// stylesheet minifiers.
package minify

import (
	"sort"

	"github.com/milesj/packager/internal/config"
	"github.com/milesj/packager/internal/domain"
)

// Registry maps a content type to the minifier that handles it
type Registry struct {
	minifiers map[string]domain.Minifier
}

// NewRegistry creates a registry holding the given minifiers
func NewRegistry(minifiers ...domain.Minifier) *Registry {
	r := &Registry{minifiers: make(map[string]domain.Minifier)}
	for _, m := range minifiers {
		r.Add(m)
	}
	return r
}

// NewRegistryFromConfig creates a registry with the minifiers enabled in cfg
func NewRegistryFromConfig(cfg config.MinifyConfig) *Registry {
	r := NewRegistry()
	if cfg.JS.Enabled {
		r.Add(NewJS(cfg.JS))
	}
	if cfg.CSS.Enabled {
		r.Add(NewCSS(cfg.CSS))
	}
	return r
}

// Add registers m under its type, replacing any previous minifier for that type
func (r *Registry) Add(m domain.Minifier) {
	if r.minifiers == nil {
		r.minifiers = make(map[string]domain.Minifier)
	}
	r.minifiers[m.Type()] = m
}

// Get returns the minifier for contentType
func (r *Registry) Get(contentType string) (domain.Minifier, error) {
	m, ok := r.minifiers[contentType]
	if !ok {
		return nil, domain.NewMinifierMissingError(contentType)
	}
	return m, nil
}

// Has reports whether a minifier is registered for contentType
func (r *Registry) Has(contentType string) bool {
	_, ok := r.minifiers[contentType]
	return ok
}

// Types returns the registered content types, sorted
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.minifiers))
	for t := range r.minifiers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
