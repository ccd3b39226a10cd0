package packager

import "github.com/milesj/packager/internal/manifest"

// Package is the ordered, duplicate free set of items resolved for one
// packaging call. Insertion order is emission order.
type Package struct {
	names []string
	items map[string]manifest.Item
}

func newPackage() *Package {
	return &Package{items: make(map[string]manifest.Item)}
}

// Has reports whether name was resolved into the package
func (p *Package) Has(name string) bool {
	_, ok := p.items[name]
	return ok
}

// Get returns a copy of the resolved item
func (p *Package) Get(name string) (manifest.Item, bool) {
	item, ok := p.items[name]
	if !ok {
		return manifest.Item{}, false
	}
	return item.Clone(), true
}

// Len returns the number of resolved items
func (p *Package) Len() int {
	return len(p.names)
}

// Names returns item names in emission order
func (p *Package) Names() []string {
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// Items returns copies of the resolved items in emission order
func (p *Package) Items() []manifest.Item {
	items := make([]manifest.Item, 0, len(p.names))
	for _, name := range p.names {
		items = append(items, p.items[name].Clone())
	}
	return items
}

func (p *Package) add(item manifest.Item) {
	if p.Has(item.Name) {
		return
	}
	p.names = append(p.names, item.Name)
	p.items[item.Name] = item
}
