package memory

import (
	"context"
	"slices"
	"sync"

	apperrors "github.com/utafrali/storefront-listing/pkg/errors"

	"github.com/utafrali/storefront-listing/internal/domain"
)

// Engine is an in-memory implementation of the ListingEngine interface.
// Catalogs are immutable once loaded; the mutex only guards replacement.
type Engine struct {
	mu       sync.RWMutex
	catalogs map[string]*domain.Catalog
}

// New creates a new in-memory listing engine.
func New() *Engine {
	return &Engine{
		catalogs: make(map[string]*domain.Catalog),
	}
}

// Load validates catalog and registers a private copy of it.
func (e *Engine) Load(_ context.Context, catalog *domain.Catalog) error {
	if err := catalog.Validate(); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	cp := *catalog
	cp.Items = slices.Clone(catalog.Items)
	cp.Sections = make([]domain.Section, len(catalog.Sections))
	for i, s := range catalog.Sections {
		s.ItemIDs = slices.Clone(s.ItemIDs)
		cp.Sections[i] = s
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.catalogs[cp.Key] = &cp
	return nil
}

// Catalog returns the catalog registered under key.
func (e *Engine) Catalog(_ context.Context, key string) (*domain.Catalog, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.catalogs[key]
	if !ok {
		return nil, apperrors.NotFound("listing", key)
	}
	return c, nil
}

// Keys lists the registered listing keys in sorted order.
func (e *Engine) Keys(_ context.Context) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]string, 0, len(e.catalogs))
	for k := range e.catalogs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Apply runs filter pass, counter update and sort pass, in that order.
func (e *Engine) Apply(ctx context.Context, key string, state domain.FacetState) (*domain.Result, error) {
	c, err := e.Catalog(ctx, key)
	if err != nil {
		return nil, err
	}

	hidden := Filter(c, state)
	visible := CountVisible(hidden)
	counter, counterText := Counter(c.Kind, visible, len(c.Items))
	order := Order(c, hidden, Comparator(state.Sort, newCollator(c.Language)))

	filterPasses.WithLabelValues(c.Key, state.Sort).Inc()
	visibleItems.WithLabelValues(c.Key).Observe(float64(visible))

	return buildResult(c, state, hidden, order, visible, counter, counterText), nil
}

func buildResult(c *domain.Catalog, state domain.FacetState, hidden []bool, order []int, visible int, counter, counterText string) *domain.Result {
	items := make([]domain.ItemView, len(order))
	for pos, idx := range order {
		items[pos] = domain.ItemView{Item: c.Items[idx], Hidden: hidden[idx]}
	}

	var sections []domain.SectionView
	if len(c.Sections) > 0 {
		sections = make([]domain.SectionView, 0, len(c.Sections))
		for _, s := range c.Sections {
			members := make(map[string]struct{}, len(s.ItemIDs))
			for _, id := range s.ItemIDs {
				members[id] = struct{}{}
			}

			sv := domain.SectionView{
				Category: s.Category,
				Title:    s.Title,
				Hidden:   SectionHidden(s, state),
				Items:    make([]domain.ItemView, 0, len(s.ItemIDs)),
			}
			for _, iv := range items {
				if _, ok := members[iv.ID]; ok {
					sv.Items = append(sv.Items, iv)
				}
			}
			sections = append(sections, sv)
		}
	}

	return &domain.Result{
		Listing:     c.Key,
		Kind:        c.Kind,
		State:       state,
		Items:       items,
		Sections:    sections,
		Visible:     visible,
		Total:       len(c.Items),
		Counter:     counter,
		CounterText: counterText,
	}
}
