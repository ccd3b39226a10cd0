package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Catalog is an ordered mapping of item name to item. Iteration follows
// declaration order.
type Catalog struct {
	names []string
	items map[string]Item
}

// NewCatalog creates a catalog holding the given items in order
func NewCatalog(items ...Item) (*Catalog, error) {
	c := &Catalog{}
	for _, item := range items {
		if err := c.Add(item); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends an item to the catalog
func (c *Catalog) Add(item Item) error {
	if item.Name == "" {
		return ErrEmptyItemName
	}
	if c.items == nil {
		c.items = make(map[string]Item)
	}
	if _, ok := c.items[item.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateItem, item.Name)
	}
	c.names = append(c.names, item.Name)
	c.items[item.Name] = item.Clone()
	return nil
}

// Get returns a copy of the named item
func (c *Catalog) Get(name string) (Item, bool) {
	item, ok := c.items[name]
	if !ok {
		return Item{}, false
	}
	return item.Clone(), true
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.names)
}

// Names returns item names in declaration order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Items returns copies of all items in declaration order
func (c *Catalog) Items() []Item {
	items := make([]Item, 0, len(c.names))
	for _, name := range c.names {
		items = append(items, c.items[name].Clone())
	}
	return items
}

// update rewrites every item in place, keeping order
func (c *Catalog) update(fn func(*Item)) {
	for _, name := range c.names {
		item := c.items[name]
		fn(&item)
		c.items[name] = item
	}
}

// UnmarshalJSON decodes either an object keyed by item name or an array of
// named items, preserving declaration order
func (c *Catalog) UnmarshalJSON(data []byte) error {
	*c = Catalog{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch tok {
	case nil:
		return nil
	case json.Delim('{'):
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			key, ok := keyTok.(string)
			if !ok {
				return fmt.Errorf("unexpected catalog key %v", keyTok)
			}
			var item Item
			if err := dec.Decode(&item); err != nil {
				return fmt.Errorf("item %s: %w", key, err)
			}
			item.Name = key
			if err := c.Add(item); err != nil {
				return err
			}
		}
	case json.Delim('['):
		for dec.More() {
			var item Item
			if err := dec.Decode(&item); err != nil {
				return err
			}
			if err := c.Add(item); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("contents must be an object or an array, got %v", tok)
	}

	_, err = dec.Token()
	return err
}

// MarshalJSON encodes the catalog as an object keyed by item name in order
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		item := c.items[name]
		item.Name = ""
		value, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes either a mapping keyed by item name or a sequence of
// named items, preserving declaration order
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	*c = Catalog{}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			var item Item
			if err := node.Content[i+1].Decode(&item); err != nil {
				return fmt.Errorf("item %s: %w", key, err)
			}
			item.Name = key
			if err := c.Add(item); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for _, child := range node.Content {
			var item Item
			if err := child.Decode(&item); err != nil {
				return err
			}
			if err := c.Add(item); err != nil {
				return err
			}
		}
	case yaml.ScalarNode:
		if node.Tag != "!!null" {
			return fmt.Errorf("line %d: contents must be a mapping or a sequence", node.Line)
		}
	default:
		return fmt.Errorf("line %d: contents must be a mapping or a sequence", node.Line)
	}
	return nil
}
