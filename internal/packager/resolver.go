package packager

import (
	"path/filepath"
	"slices"

	"github.com/milesj/packager/internal/domain"
)

// AddItem adds name and its dependency closure to the current package: every
// requires entry first, then the item, then every provides entry. Items already
// present, or still being resolved higher up the walk, are skipped.
//
// An unknown name anywhere in the closure returns *domain.ItemNotFoundError and
// empties the package.
func (p *Packager) AddItem(name string) error {
	if err := p.addItem(name); err != nil {
		p.reset()
		return err
	}
	return nil
}

func (p *Packager) addItem(name string) error {
	if p.pkg.Has(name) || p.visiting[name] {
		return nil
	}

	item, ok := p.manifest.Item(name)
	if !ok {
		return domain.NewItemNotFoundError(name)
	}
	item.Source = p.manifest.SourcePath + filepath.FromSlash(item.Path)

	p.visiting[name] = true
	defer delete(p.visiting, name)

	for _, req := range item.Requires {
		if err := p.addItem(req); err != nil {
			return err
		}
	}

	p.pkg.add(item)
	p.logger.Debug().
		Str("item", name).
		Int("position", p.pkg.Len()).
		Msg("Resolved item")

	for _, dep := range item.Provides {
		if err := p.addItem(dep); err != nil {
			return err
		}
	}

	return nil
}

// resolve rebuilds the package for the requested top-level names
func (p *Packager) resolve(names []string, filterType []string) error {
	p.reset()

	if len(names) == 0 {
		names = p.manifest.Contents.Names()
	} else if len(p.manifest.Includes) > 0 {
		names = append(append([]string{}, p.manifest.Includes...), names...)
	}

	for _, name := range names {
		item, err := p.GetItem(name)
		if err != nil {
			p.reset()
			return err
		}

		if len(filterType) > 0 && !slices.Contains(filterType, item.Type) {
			p.logger.Debug().
				Str("item", name).
				Str("type", item.Type).
				Msg("Skipped item by type filter")
			continue
		}

		if err := p.AddItem(name); err != nil {
			return err
		}
	}

	return nil
}
