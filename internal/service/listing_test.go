package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront-listing/internal/config"
	"github.com/utafrali/storefront-listing/internal/domain"
	"github.com/utafrali/storefront-listing/internal/engine/memory"
	apperrors "github.com/utafrali/storefront-listing/pkg/errors"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T) *ListingService {
	t.Helper()
	svc := NewListingService(memory.New(), newTestLogger())
	ctx := context.Background()

	arrivals := &domain.Catalog{Key: "novedades", Kind: domain.KindArrivals}
	for i, m := range []string{"jan", "jan", "feb", "feb", "mar", "mar"} {
		arrivals.Items = append(arrivals.Items, domain.Item{
			ID:       string(rune('a' + i)),
			Name:     []string{"Vestido", "Abrigo", "Camisa", "Bolso", "Falda", "Gorra"}[i],
			Month:    m,
			Position: i,
		})
	}
	require.NoError(t, svc.Register(ctx, arrivals, 0))

	offers := &domain.Catalog{
		Key:  "ofertas",
		Kind: domain.KindOffers,
		Items: []domain.Item{
			{ID: "j1", Name: "Blue Jacket", Category: "jackets", Style: "casual", Price: 10, Section: "jackets"},
			{ID: "j2", Name: "Red Jacket", Category: "jackets", Style: "formal", Price: 50, Section: "jackets", Position: 1},
			{ID: "j3", Name: "Green Jacket", Category: "jackets", Style: "casual", Price: 30, Section: "jackets", Position: 2},
		},
		Sections: []domain.Section{{Category: "jackets", Title: "Chaquetas", ItemIDs: []string{"j1", "j2", "j3"}}},
	}
	require.NoError(t, svc.Register(ctx, offers, 3))

	return svc
}

func TestListingService_Listings(t *testing.T) {
	svc := newTestService(t)

	got, err := svc.Listings(context.Background())
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "novedades", got[0].Key)
	assert.Equal(t, 6, got[0].Total)
	assert.Equal(t, 0, got[0].Pages)
	assert.Equal(t, "ofertas", got[1].Key)
	assert.Equal(t, 3, got[1].Pages)
	assert.Equal(t, []string{"recent", "price-asc", "price-desc", "popular"}, got[1].SortOptions)
}

func TestListingService_RenderDefaults(t *testing.T) {
	svc := newTestService(t)

	page, err := svc.Render(context.Background(), "ofertas", domain.FacetState{}, domain.PagerState{})
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultFacetState(), page.Result.State)
	assert.Equal(t, "Mostrando <strong>3</strong> de <strong>3</strong> productos", page.Result.Counter)
	assert.Equal(t, domain.ViewGrid, page.Layout.Mode)
	require.NotNil(t, page.Pager)
	assert.Equal(t, domain.PagerState{Page: 1, Last: 3}, *page.Pager)
	require.Len(t, page.Controls, 5)
	assert.True(t, page.Controls[0].Disabled)
	assert.True(t, page.Controls[1].Active)
}

func TestListingService_RenderArrivalsHasNoPager(t *testing.T) {
	svc := newTestService(t)

	page, err := svc.Render(context.Background(), "novedades", domain.FacetState{Month: "feb"}, domain.PagerState{Page: 2})
	require.NoError(t, err)

	assert.Nil(t, page.Pager)
	assert.Empty(t, page.Controls)
	assert.Equal(t, "Mostrando 2 novedades", page.Result.CounterText)
}

func TestListingService_RenderCanonicalisesFacets(t *testing.T) {
	svc := newTestService(t)

	page, err := svc.Render(context.Background(), "novedades", domain.FacetState{Category: "jackets"}, domain.PagerState{})
	require.NoError(t, err)

	assert.Equal(t, domain.FacetAll, page.Result.State.Category)
	assert.Equal(t, 6, page.Result.Visible)
}

func TestListingService_RenderValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		listing string
		state   domain.FacetState
		target  error
	}{
		{"unknown listing", "liquidacion", domain.FacetState{}, apperrors.ErrNotFound},
		{"price sort on arrivals", "novedades", domain.FacetState{Sort: domain.SortPriceAsc}, apperrors.ErrInvalidInput},
		{"name sort on offers", "ofertas", domain.FacetState{Sort: domain.SortNameDesc}, apperrors.ErrInvalidInput},
		{"unknown view", "ofertas", domain.FacetState{View: "carousel"}, apperrors.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Render(ctx, tt.listing, tt.state, domain.PagerState{})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestListingService_ApplyEventFacets(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	page, err := svc.ApplyEvent(ctx, "ofertas", domain.DefaultFacetState(), domain.PagerState{Page: 2},
		domain.Event{Type: domain.EventStyle, Value: "casual"})
	require.NoError(t, err)
	assert.Equal(t, "casual", page.Result.State.Style)
	assert.Equal(t, 2, page.Result.Visible)
	assert.Equal(t, 2, page.Pager.Page, "facet events keep the pager")

	page, err = svc.ApplyEvent(ctx, "ofertas", page.Result.State, *page.Pager,
		domain.Event{Type: domain.EventSort, Value: domain.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"j2", "j3", "j1"}, []string{
		page.Result.Items[0].ID, page.Result.Items[1].ID, page.Result.Items[2].ID,
	})
	assert.True(t, page.Result.Items[0].Hidden)

	page, err = svc.ApplyEvent(ctx, "ofertas", page.Result.State, *page.Pager,
		domain.Event{Type: domain.EventStyle, Value: ""})
	require.NoError(t, err)
	assert.Equal(t, domain.FacetAll, page.Result.State.Style)
	assert.Equal(t, 3, page.Result.Visible)
}

func TestListingService_ApplyEventSearchAndView(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	page, err := svc.ApplyEvent(ctx, "ofertas", domain.DefaultFacetState(), domain.PagerState{},
		domain.Event{Type: domain.EventSearch, Value: "BLUE"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Result.Visible)

	page, err = svc.ApplyEvent(ctx, "ofertas", page.Result.State, *page.Pager,
		domain.Event{Type: domain.EventView, Value: domain.ViewList})
	require.NoError(t, err)
	assert.True(t, page.Layout.ListActive)
	assert.False(t, page.Layout.GridActive)
	assert.Equal(t, "BLUE", page.Result.State.Search)
}

func TestListingService_ApplyEventPager(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	state := domain.DefaultFacetState()
	state.Style = "formal"

	tests := []struct {
		name  string
		from  int
		label string
		want  int
	}{
		{"next", 1, "Siguiente", 2},
		{"previous disabled", 1, "Anterior", 1},
		{"next disabled", 3, "Siguiente", 3},
		{"jump", 1, "3", 3},
		{"active", 2, "2", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.ApplyEvent(ctx, "ofertas", state, domain.PagerState{Page: tt.from},
				domain.Event{Type: domain.EventPage, Value: tt.label})
			require.NoError(t, err)

			assert.Equal(t, tt.want, page.Pager.Page)
			assert.Equal(t, state, page.Result.State, "page events keep the facets")
			assert.Equal(t, 1, page.Result.Visible)
		})
	}
}

func TestListingService_ApplyEventPagerErrors(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.ApplyEvent(ctx, "ofertas", domain.FacetState{}, domain.PagerState{},
		domain.Event{Type: domain.EventPage, Value: "9"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.ApplyEvent(ctx, "novedades", domain.FacetState{}, domain.PagerState{},
		domain.Event{Type: domain.EventPage, Value: "Siguiente"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.ApplyEvent(ctx, "ofertas", domain.FacetState{}, domain.PagerState{},
		domain.Event{Type: "scroll", Value: "top"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestListingService_LoadCatalogs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "novedades.html")
	require.NoError(t, os.WriteFile(path, []byte(
		`<div class="product-item" data-name="Vestido" data-month="jan"></div>`+
			`<div class="product-item" data-name="Blusa" data-month="feb"></div>`), 0o600))

	svc := NewListingService(memory.New(), newTestLogger())
	err := svc.LoadCatalogs(context.Background(), []config.Listing{
		{Key: "novedades", Kind: domain.KindArrivals, Markup: path},
	})
	require.NoError(t, err)

	page, err := svc.Render(context.Background(), "novedades", domain.FacetState{Sort: domain.SortNameAsc}, domain.PagerState{})
	require.NoError(t, err)
	assert.Equal(t, "blusa", page.Result.Items[0].ID)

	err = svc.LoadCatalogs(context.Background(), []config.Listing{
		{Key: "ofertas", Kind: domain.KindOffers, Markup: filepath.Join(dir, "missing.html")},
	})
	assert.ErrorContains(t, err, "load listing ofertas")
}

func TestListingService_PagerSizeComesFromListing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   domain.PagerState
		want domain.PagerState
	}{
		{"no page starts on first", domain.PagerState{Last: 9}, domain.PagerState{Page: 1, Last: 3}},
		{"client size ignored", domain.PagerState{Page: 5, Last: 9}, domain.PagerState{Page: 3, Last: 3}},
		{"in range kept", domain.PagerState{Page: 2}, domain.PagerState{Page: 2, Last: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.Render(ctx, "ofertas", domain.FacetState{}, tt.in)
			require.NoError(t, err)
			require.NotNil(t, page.Pager)
			assert.Equal(t, tt.want, *page.Pager)
		})
	}
}
