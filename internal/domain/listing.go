package domain

import "fmt"

// Kind identifies which listing page layout a catalog follows.
type Kind string

const (
	// KindArrivals is the new-arrivals page: month facet, name sort, single container.
	KindArrivals Kind = "arrivals"
	// KindOffers is the offers page: category and style facets, price sort,
	// items grouped in category sections and a cosmetic pager.
	KindOffers Kind = "offers"
)

// IsValid reports whether k is a known listing kind.
func (k Kind) IsValid() bool {
	return k == KindArrivals || k == KindOffers
}

// Item is a product card that already exists in the page markup.
// Items are never created or destroyed by the listing logic, only shown,
// hidden or repositioned.
type Item struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Month    string `json:"month,omitempty"`
	Category string `json:"category,omitempty"`
	Style    string `json:"style,omitempty"`
	Price    int64  `json:"price,omitempty"`
	Section  string `json:"section,omitempty"`
	Position int    `json:"position"`
}

// Section groups offers items of one category. Whole sections are shown or
// hidden before per-item filtering runs, and sorting is scoped per section.
type Section struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	ItemIDs  []string `json:"item_ids"`
}

// Catalog is the immutable item set of one listing, in document order.
type Catalog struct {
	Key      string    `json:"key"`
	Kind     Kind      `json:"kind"`
	Language string    `json:"language,omitempty"`
	Items    []Item    `json:"items"`
	Sections []Section `json:"sections,omitempty"`
}

// Scopes returns the containers that sorting is applied within. Arrivals
// catalogs have a single implicit container holding every item.
func (c *Catalog) Scopes() [][]int {
	if c.Kind != KindOffers || len(c.Sections) == 0 {
		all := make([]int, len(c.Items))
		for i := range c.Items {
			all[i] = i
		}
		return [][]int{all}
	}

	byID := make(map[string]int, len(c.Items))
	for i := range c.Items {
		byID[c.Items[i].ID] = i
	}

	scopes := make([][]int, 0, len(c.Sections))
	for _, s := range c.Sections {
		scope := make([]int, 0, len(s.ItemIDs))
		for _, id := range s.ItemIDs {
			if idx, ok := byID[id]; ok {
				scope = append(scope, idx)
			}
		}
		scopes = append(scopes, scope)
	}
	return scopes
}

// Validate checks that the catalog can be served: a key, a known kind,
// unique item IDs and sections that only reference known items.
func (c *Catalog) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("catalog key is required")
	}
	if !c.Kind.IsValid() {
		return fmt.Errorf("catalog %s: unknown kind %q", c.Key, c.Kind)
	}

	seen := make(map[string]struct{}, len(c.Items))
	for _, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("catalog %s: item %q has no id", c.Key, it.Name)
		}
		if _, dup := seen[it.ID]; dup {
			return fmt.Errorf("catalog %s: duplicate item id %q", c.Key, it.ID)
		}
		seen[it.ID] = struct{}{}
	}

	for _, s := range c.Sections {
		for _, id := range s.ItemIDs {
			if _, ok := seen[id]; !ok {
				return fmt.Errorf("catalog %s: section %q references unknown item %q", c.Key, s.Category, id)
			}
		}
	}
	return nil
}
