// Package pager implements the cosmetic page cursor of the offers listing.
//
// The pager only tracks which control is highlighted. It never changes the
// item set shown by the filter pass.
package pager

import (
	"fmt"
	"strconv"

	"github.com/utafrali/storefront-listing/internal/domain"
	"github.com/utafrali/storefront-listing/pkg/pagination"
)

// Pager is an immutable pager value. Every transition returns a new Pager.
type Pager struct {
	cursor pagination.Cursor
}

// New returns a pager positioned on page 1 of pages.
func New(pages int) Pager {
	return Pager{cursor: pagination.NewCursor(pages)}
}

// FromState restores a pager from its wire representation. A zero Last
// falls back to domain.DefaultPagerPages; out-of-range pages are clamped.
func FromState(s domain.PagerState) Pager {
	last := s.Last
	if last < 1 {
		last = domain.DefaultPagerPages
	}
	p := New(last)
	p.cursor.Page = s.Page
	p.cursor = p.cursor.Clamp()
	return p
}

// State returns the wire representation of p.
func (p Pager) State() domain.PagerState {
	return domain.PagerState{Page: p.cursor.Page, Last: p.cursor.Last}
}

// Page returns the current page.
func (p Pager) Page() int { return p.cursor.Page }

// Click applies a click on the control labelled label. Clicks on a disabled
// or already-active control are ignored and reported as unchanged.
func (p Pager) Click(label string) (next Pager, changed bool, err error) {
	switch label {
	case domain.PagePrevious:
		if p.cursor.IsFirst() {
			return p, false, nil
		}
		return Pager{cursor: p.cursor.Prev()}, true, nil
	case domain.PageNext:
		if p.cursor.IsLast() {
			return p, false, nil
		}
		return Pager{cursor: p.cursor.Next()}, true, nil
	}

	page, convErr := strconv.Atoi(label)
	if convErr != nil {
		return p, false, fmt.Errorf("unknown pager control %q", label)
	}
	if page == p.cursor.Page {
		return p, false, nil
	}
	c, ok := p.cursor.Goto(page)
	if !ok {
		return p, false, fmt.Errorf("page %d out of range [1, %d]", page, p.cursor.Last)
	}
	return Pager{cursor: c}, true, nil
}

// Controls returns the rendered controls: previous, one per page, next.
func (p Pager) Controls() []domain.PageControl {
	controls := make([]domain.PageControl, 0, p.cursor.Last+2)
	controls = append(controls, domain.PageControl{
		Label:    domain.PagePrevious,
		Disabled: p.cursor.IsFirst(),
	})
	for i := 1; i <= p.cursor.Last; i++ {
		controls = append(controls, domain.PageControl{
			Label:  strconv.Itoa(i),
			Active: i == p.cursor.Page,
		})
	}
	controls = append(controls, domain.PageControl{
		Label:    domain.PageNext,
		Disabled: p.cursor.IsLast(),
	})
	return controls
}
