package memory

import (
	"strings"

	"github.com/utafrali/storefront-listing/internal/domain"
)

// facetActive reports whether a facet value restricts the item set.
func facetActive(v string) bool {
	return v != "" && v != domain.FacetAll
}

// Matches reports whether item satisfies every active facet of state for a
// listing of the given kind. searchLower must be the lower-cased search text.
func Matches(kind domain.Kind, item *domain.Item, state domain.FacetState, searchLower string) bool {
	switch kind {
	case domain.KindOffers:
		if facetActive(state.Category) && item.Category != state.Category {
			return false
		}
		if facetActive(state.Style) && item.Style != state.Style {
			return false
		}
	default:
		if facetActive(state.Month) && item.Month != state.Month {
			return false
		}
	}

	if searchLower != "" && !strings.Contains(strings.ToLower(item.Name), searchLower) {
		return false
	}
	return true
}

// Filter returns one hidden flag per catalog item, in catalog order.
func Filter(c *domain.Catalog, state domain.FacetState) []bool {
	searchLower := strings.ToLower(state.Search)

	hidden := make([]bool, len(c.Items))
	for i := range c.Items {
		hidden[i] = !Matches(c.Kind, &c.Items[i], state, searchLower)
	}
	return hidden
}

// SectionHidden reports whether a whole section is suppressed. Items inside
// a hidden section keep their own filter result.
func SectionHidden(section domain.Section, state domain.FacetState) bool {
	return facetActive(state.Category) && section.Category != state.Category
}

// CountVisible returns the number of items not marked hidden.
func CountVisible(hidden []bool) int {
	n := 0
	for _, h := range hidden {
		if !h {
			n++
		}
	}
	return n
}
