package domain

// ItemView is an item together with the visibility decided by the filter pass.
type ItemView struct {
	Item
	Hidden bool `json:"hidden"`
}

// SectionView is a section with its visibility and its items in display order.
type SectionView struct {
	Category string     `json:"category"`
	Title    string     `json:"title"`
	Hidden   bool       `json:"hidden"`
	Items    []ItemView `json:"items"`
}

// Result is the decision for one listing state: which items are hidden,
// in which order they appear and what the counter label reads.
type Result struct {
	Listing  string        `json:"listing"`
	Kind     Kind          `json:"kind"`
	State    FacetState    `json:"state"`
	Items    []ItemView    `json:"items"`
	Sections []SectionView `json:"sections,omitempty"`
	Visible  int           `json:"visible"`
	Total    int           `json:"total"`

	// Counter is the label markup; CounterText is the same label as plain text.
	Counter     string `json:"counter"`
	CounterText string `json:"counter_text"`
}

// VisibleItems returns the non-hidden items in display order.
func (r *Result) VisibleItems() []Item {
	out := make([]Item, 0, r.Visible)
	for _, iv := range r.Items {
		if !iv.Hidden {
			out = append(out, iv.Item)
		}
	}
	return out
}

// RowLayout describes the classes applied by the view toggle.
type RowLayout struct {
	Mode       string   `json:"mode"`
	RowClasses []string `json:"row_classes"`
	GridActive bool     `json:"grid_active"`
	ListActive bool     `json:"list_active"`
}

// PageControl is one rendered pagination control.
type PageControl struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Active   bool   `json:"active"`
}
