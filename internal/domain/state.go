package domain

import "slices"

// FacetAll is the sentinel value of a facet that matches every item.
const FacetAll = "all"

// Sort modes for listing results.
const (
	SortRecent    = "recent"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortPopular   = "popular"
)

// View modes for the item rows.
const (
	ViewGrid = "grid"
	ViewList = "list"
)

// SortOptions returns the sort modes offered by a listing kind, default first.
func SortOptions(kind Kind) []string {
	switch kind {
	case KindOffers:
		return []string{SortRecent, SortPriceAsc, SortPriceDesc, SortPopular}
	default:
		return []string{SortRecent, SortNameAsc, SortNameDesc}
	}
}

// IsValidSort checks whether sort is offered by the given listing kind.
func IsValidSort(kind Kind, sort string) bool {
	return slices.Contains(SortOptions(kind), sort)
}

// IsValidView checks whether view is a known view mode.
func IsValidView(view string) bool {
	return view == ViewGrid || view == ViewList
}

// FacetState holds the current filter, sort and search selections of one
// listing. It is passed by value into the decision functions and never
// persisted.
type FacetState struct {
	Month    string `json:"month" schema:"month" validate:"facet"`
	Category string `json:"category" schema:"category" validate:"facet"`
	Style    string `json:"style" schema:"style" validate:"facet"`
	Sort     string `json:"sort" schema:"sort" validate:"facet"`
	Search   string `json:"search" schema:"q" validate:"facet"`
	View     string `json:"view" schema:"view" validate:"facet"`
}

// DefaultFacetState returns the state a listing starts with on page load.
func DefaultFacetState() FacetState {
	return FacetState{
		Month:    FacetAll,
		Category: FacetAll,
		Style:    FacetAll,
		Sort:     SortRecent,
		Search:   "",
		View:     ViewGrid,
	}
}

// Normalized fills empty fields with their defaults.
func (s FacetState) Normalized() FacetState {
	if s.Month == "" {
		s.Month = FacetAll
	}
	if s.Category == "" {
		s.Category = FacetAll
	}
	if s.Style == "" {
		s.Style = FacetAll
	}
	if s.Sort == "" {
		s.Sort = SortRecent
	}
	if s.View == "" {
		s.View = ViewGrid
	}
	return s
}

// PagerState is the cosmetic page cursor of the offers listing. It is
// independent of FacetState and never repages the items.
type PagerState struct {
	Page int `json:"page" schema:"page" validate:"gte=0"`
	Last int `json:"last" schema:"-"`
}

// DefaultPagerPages is the number of pages the offers pager simulates.
const DefaultPagerPages = 3
