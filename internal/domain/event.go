package domain

// Event types emitted by the listing page controls.
const (
	EventMonth    = "month"
	EventCategory = "category"
	EventStyle    = "style"
	EventSort     = "sort"
	EventSearch   = "search"
	EventView     = "view"
	EventPage     = "page"
)

// Event is a single user interaction: a select change, a keystroke in the
// search box, a view toggle click or a pagination click.
type Event struct {
	Type  string `json:"type" validate:"required,oneof=month category style sort search view page"`
	Value string `json:"value" validate:"facet"`
}

// Pager control labels as they appear on the offers page.
const (
	PagePrevious = "Anterior"
	PageNext     = "Siguiente"
)
