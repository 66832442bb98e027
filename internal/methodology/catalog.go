package methodology

import (
	"fmt"
	"strings"
)

// Catalog is an ordered, read-only collection of methodologies. It is safe
// for concurrent use because nothing mutates it after construction.
type Catalog struct {
	methodologies []Methodology
	index         map[string]int
}

// NewCatalog validates the given methodologies and builds a catalog that
// preserves their order. An empty list is a valid catalog.
func NewCatalog(methodologies []Methodology) (*Catalog, error) {
	catalog := &Catalog{
		methodologies: make([]Methodology, 0, len(methodologies)),
		index:         make(map[string]int, len(methodologies)),
	}

	for i, m := range methodologies {
		if err := validateMethodology(m); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, i, err)
		}
		if _, exists := catalog.index[m.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate methodology id %q", ErrInvalidCatalog, m.ID)
		}
		catalog.index[m.ID] = len(catalog.methodologies)
		catalog.methodologies = append(catalog.methodologies, m.clone())
	}

	return catalog, nil
}

func validateMethodology(m Methodology) error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("methodology id is required")
	}
	if !m.Standard.Valid() {
		return fmt.Errorf("methodology %s: unsupported standard %q", m.ID, m.Standard)
	}
	if m.MinScale < 0 {
		return fmt.Errorf("methodology %s: min_scale must not be negative", m.ID)
	}
	if m.MaxScale > 0 && m.MinScale > m.MaxScale {
		return fmt.Errorf("methodology %s: min_scale %v exceeds max_scale %v", m.ID, m.MinScale, m.MaxScale)
	}
	return nil
}

// Len returns the number of methodologies
func (c *Catalog) Len() int {
	return len(c.methodologies)
}

// All returns every methodology in catalog order
func (c *Catalog) All() []Methodology {
	out := make([]Methodology, len(c.methodologies))
	for i, m := range c.methodologies {
		out[i] = m.clone()
	}
	return out
}

// ByID looks up a methodology by identifier
func (c *Catalog) ByID(id string) (Methodology, bool) {
	i, ok := c.index[id]
	if !ok {
		return Methodology{}, false
	}
	return c.methodologies[i].clone(), true
}

// ByStandard returns the methodologies owned by a standard, in catalog order
func (c *Catalog) ByStandard(standard Standard) []Methodology {
	out := []Methodology{}
	for _, m := range c.methodologies {
		if m.Standard == standard {
			out = append(out, m.clone())
		}
	}
	return out
}
