package engine

import (
	"context"

	"github.com/utafrali/storefront-listing/internal/domain"
)

// ListingEngine decides visibility, order and counter text for listing
// catalogs. Implementations hold catalogs read-only once loaded.
type ListingEngine interface {
	// Load registers or replaces the catalog under catalog.Key.
	Load(ctx context.Context, catalog *domain.Catalog) error

	// Catalog returns the catalog registered under key.
	Catalog(ctx context.Context, key string) (*domain.Catalog, error)

	// Keys lists the registered listing keys in sorted order.
	Keys(ctx context.Context) []string

	// Apply runs the filter pass, counter update and sort pass for state.
	Apply(ctx context.Context, key string, state domain.FacetState) (*domain.Result, error)
}
