package memory

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/utafrali/storefront-listing/internal/domain"
)

// DefaultLanguage is the collation used when a catalog names none.
var DefaultLanguage = language.Spanish

// newCollator builds a collator for lang. Collators keep internal buffers
// and must not be shared between goroutines.
func newCollator(lang string) *collate.Collator {
	tag := DefaultLanguage
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	return collate.New(tag)
}

// Comparator returns the item ordering for a sort mode, or nil for modes
// that keep document order.
func Comparator(mode string, coll *collate.Collator) func(a, b *domain.Item) int {
	byName := func(a, b *domain.Item) int {
		return coll.CompareString(a.Name, b.Name)
	}

	switch mode {
	case domain.SortNameAsc:
		return byName
	case domain.SortNameDesc:
		return func(a, b *domain.Item) int { return byName(b, a) }
	case domain.SortPriceAsc:
		return func(a, b *domain.Item) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceDesc:
		return func(a, b *domain.Item) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortPopular:
		// No popularity signal exists yet; alphabetical stands in.
		return byName
	default:
		return nil
	}
}

// Order returns catalog item indexes in display order.
//
// With a nil comparator the document order is kept. Otherwise, within each
// sort scope, the visible items are stably sorted and placed after the
// hidden ones, which keep their relative order. Positions outside every
// scope never move.
func Order(c *domain.Catalog, hidden []bool, compare func(a, b *domain.Item) int) []int {
	order := make([]int, len(c.Items))
	for i := range order {
		order[i] = i
	}
	if compare == nil {
		return order
	}

	for _, scope := range c.Scopes() {
		seq := make([]int, 0, len(scope))
		visible := make([]int, 0, len(scope))
		for _, idx := range scope {
			if hidden[idx] {
				seq = append(seq, idx)
			} else {
				visible = append(visible, idx)
			}
		}
		if len(visible) == 0 {
			continue
		}

		slices.SortStableFunc(visible, func(a, b int) int {
			return compare(&c.Items[a], &c.Items[b])
		})
		seq = append(seq, visible...)

		slots := slices.Clone(scope)
		slices.Sort(slots)
		for i, slot := range slots {
			order[slot] = seq[i]
		}
	}
	return order
}
