// Package view maps a view mode to the row classes of the item container.
package view

import (
	"fmt"

	"github.com/utafrali/storefront-listing/internal/domain"
)

var (
	gridClasses = []string{"row", "row-cols-1", "row-cols-sm-2", "row-cols-md-3", "row-cols-lg-4"}
	listClasses = []string{"row", "row-cols-1", "list-view"}
)

// Layout returns the container classes and toggle state for mode. An empty
// mode is the grid default.
func Layout(mode string) (domain.RowLayout, error) {
	switch mode {
	case domain.ViewGrid, "":
		return domain.RowLayout{
			Mode:       domain.ViewGrid,
			RowClasses: append([]string(nil), gridClasses...),
			GridActive: true,
		}, nil
	case domain.ViewList:
		return domain.RowLayout{
			Mode:       domain.ViewList,
			RowClasses: append([]string(nil), listClasses...),
			ListActive: true,
		}, nil
	default:
		return domain.RowLayout{}, fmt.Errorf("unknown view mode %q", mode)
	}
}
