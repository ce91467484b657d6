package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront-listing/internal/config"
	"github.com/utafrali/storefront-listing/internal/domain"
	"github.com/utafrali/storefront-listing/internal/engine"
	"github.com/utafrali/storefront-listing/internal/markup"
	"github.com/utafrali/storefront-listing/internal/pager"
	"github.com/utafrali/storefront-listing/internal/view"
	apperrors "github.com/utafrali/storefront-listing/pkg/errors"
	"github.com/utafrali/storefront-listing/pkg/logger"
	"github.com/utafrali/storefront-listing/pkg/tracing"
)

const tracerName = "github.com/utafrali/storefront-listing/internal/service"

// ListingService validates listing state, reduces page events and runs the
// decision pipeline for each request.
type ListingService struct {
	engine engine.ListingEngine
	logger *slog.Logger
	tracer trace.Tracer

	mu    sync.RWMutex
	pages map[string]int
}

// NewListingService creates a new listing service.
func NewListingService(eng engine.ListingEngine, logger *slog.Logger) *ListingService {
	return &ListingService{
		engine: eng,
		logger: logger,
		tracer: tracing.Tracer(tracerName),
		pages:  make(map[string]int),
	}
}

// ListingInfo summarises a registered listing.
type ListingInfo struct {
	Key         string      `json:"key"`
	Kind        domain.Kind `json:"kind"`
	Total       int         `json:"total"`
	Sections    int         `json:"sections"`
	Pages       int         `json:"pages"`
	SortOptions []string    `json:"sort_options"`
}

// Page is everything a listing page needs to reflect one state: the item
// decision, the row layout and, for paged listings, the pager controls.
type Page struct {
	Result      *domain.Result       `json:"result"`
	Layout      domain.RowLayout     `json:"layout"`
	Pager       *domain.PagerState   `json:"pager,omitempty"`
	Controls    []domain.PageControl `json:"pagination,omitempty"`
	SortOptions []string             `json:"sort_options"`
}

// Register loads catalog into the engine. pages is the size of the
// listing's cosmetic pager; zero disables it.
func (s *ListingService) Register(ctx context.Context, catalog *domain.Catalog, pages int) error {
	if err := s.engine.Load(ctx, catalog); err != nil {
		return fmt.Errorf("register listing %s: %w", catalog.Key, err)
	}

	s.mu.Lock()
	s.pages[catalog.Key] = pages
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "listing registered",
		slog.String("listing", catalog.Key),
		slog.String("kind", string(catalog.Kind)),
		slog.Int("items", len(catalog.Items)),
		slog.Int("sections", len(catalog.Sections)),
	)
	return nil
}

// LoadCatalogs parses the markup of every configured listing and registers
// the resulting catalogs.
func (s *ListingService) LoadCatalogs(ctx context.Context, listings []config.Listing) error {
	for _, l := range listings {
		c, err := markup.ParseFile(l.Markup, markup.Source{
			Key:      l.Key,
			Kind:     l.Kind,
			Language: l.Language,
		})
		if err != nil {
			return apperrors.Wrap(err, "load listing "+l.Key)
		}
		if err := s.Register(ctx, c, l.Pages); err != nil {
			return err
		}
	}
	return nil
}

// Listings returns every registered listing in key order.
func (s *ListingService) Listings(ctx context.Context) ([]ListingInfo, error) {
	keys := s.engine.Keys(ctx)
	out := make([]ListingInfo, 0, len(keys))
	for _, key := range keys {
		c, err := s.engine.Catalog(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("list listings: %w", err)
		}
		out = append(out, ListingInfo{
			Key:         c.Key,
			Kind:        c.Kind,
			Total:       len(c.Items),
			Sections:    len(c.Sections),
			Pages:       s.pagesFor(key),
			SortOptions: domain.SortOptions(c.Kind),
		})
	}
	return out, nil
}

// Render validates state and returns the page decision for it.
func (s *ListingService) Render(ctx context.Context, key string, state domain.FacetState, ps domain.PagerState) (*Page, error) {
	ctx = logger.WithListing(ctx, key)
	ctx, span := s.tracer.Start(ctx, "ListingService.Render",
		trace.WithAttributes(attribute.String("listing", key)))
	defer span.End()

	page, err := s.render(ctx, key, state, ps)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("sort", page.Result.State.Sort),
		attribute.Int("visible", page.Result.Visible),
	)
	logger.WithContext(ctx, s.logger).DebugContext(ctx, "listing rendered",
		slog.Int("visible", page.Result.Visible),
		slog.Int("total", page.Result.Total),
		slog.String("sort", page.Result.State.Sort),
		slog.String("view", page.Layout.Mode),
	)
	return page, nil
}

// ApplyEvent reduces ev into the given state and renders the result.
// Facet events leave the pager untouched and page events leave the facets
// untouched. Clicks on disabled or active pager controls keep the state.
func (s *ListingService) ApplyEvent(ctx context.Context, key string, state domain.FacetState, ps domain.PagerState, ev domain.Event) (*Page, error) {
	ctx, span := s.tracer.Start(ctx, "ListingService.ApplyEvent",
		trace.WithAttributes(
			attribute.String("listing", key),
			attribute.String("event", ev.Type),
		))
	defer span.End()

	state = state.Normalized()

	switch ev.Type {
	case domain.EventMonth:
		state.Month = facetValue(ev.Value)
	case domain.EventCategory:
		state.Category = facetValue(ev.Value)
	case domain.EventStyle:
		state.Style = facetValue(ev.Value)
	case domain.EventSort:
		state.Sort = ev.Value
	case domain.EventSearch:
		state.Search = ev.Value
	case domain.EventView:
		state.View = ev.Value
	case domain.EventPage:
		pages := s.pagesFor(key)
		if pages == 0 {
			return nil, apperrors.InvalidInput(fmt.Sprintf("listing %q has no pagination", key))
		}
		next, changed, err := pagerFor(ps, pages).Click(ev.Value)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error())
		}
		if !changed {
			s.logger.DebugContext(ctx, "pager click ignored",
				slog.String("listing", key),
				slog.String("control", ev.Value),
			)
		}
		ps = next.State()
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown event type %q", ev.Type))
	}

	return s.Render(ctx, key, state, ps)
}

func (s *ListingService) render(ctx context.Context, key string, state domain.FacetState, ps domain.PagerState) (*Page, error) {
	c, err := s.engine.Catalog(ctx, key)
	if err != nil {
		return nil, err
	}

	state = canonical(c.Kind, state.Normalized())
	if !domain.IsValidSort(c.Kind, state.Sort) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("sort %q is not offered by listing %q", state.Sort, key))
	}
	layout, err := view.Layout(state.View)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	result, err := s.engine.Apply(ctx, key, state)
	if err != nil {
		return nil, fmt.Errorf("apply listing state: %w", err)
	}

	page := &Page{
		Result:      result,
		Layout:      layout,
		SortOptions: domain.SortOptions(c.Kind),
	}
	if pages := s.pagesFor(key); pages > 0 {
		p := pagerFor(ps, pages)
		st := p.State()
		page.Pager = &st
		page.Controls = p.Controls()
	}
	return page, nil
}

func (s *ListingService) pagesFor(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pages[key]
}

// pagerFor restores the pager of a listing with pages pages. The size
// always comes from the listing; a request without a page starts on page 1.
func pagerFor(ps domain.PagerState, pages int) pager.Pager {
	if ps.Page == 0 {
		return pager.New(pages)
	}
	return pager.FromState(domain.PagerState{Page: ps.Page, Last: pages})
}

// canonical resets the facets a listing kind does not offer.
func canonical(kind domain.Kind, state domain.FacetState) domain.FacetState {
	switch kind {
	case domain.KindOffers:
		state.Month = domain.FacetAll
	default:
		state.Category = domain.FacetAll
		state.Style = domain.FacetAll
	}
	return state
}

func facetValue(v string) string {
	if v == "" {
		return domain.FacetAll
	}
	return v
}
