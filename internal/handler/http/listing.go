package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"

	"github.com/utafrali/storefront-listing/internal/domain"
	"github.com/utafrali/storefront-listing/internal/render"
	"github.com/utafrali/storefront-listing/internal/service"
	"github.com/utafrali/storefront-listing/pkg/httputil"
	"github.com/utafrali/storefront-listing/pkg/logger"
	"github.com/utafrali/storefront-listing/pkg/validator"
)

// ListingHandler handles HTTP requests for listing endpoints.
type ListingHandler struct {
	service  *service.ListingService
	renderer *render.Renderer
	decoder  *schema.Decoder
	logger   *slog.Logger
}

// NewListingHandler creates a new listing HTTP handler.
func NewListingHandler(svc *service.ListingService, renderer *render.Renderer, logger *slog.Logger) *ListingHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &ListingHandler{
		service:  svc,
		renderer: renderer,
		decoder:  dec,
		logger:   logger,
	}
}

// --- Request DTOs ---

// EventRequest is the JSON request body for applying a page event.
type EventRequest struct {
	State domain.FacetState `json:"state"`
	Pager domain.PagerState `json:"pager"`
	Event domain.Event      `json:"event" validate:"required"`
}

// pageEvent is the optional event carried by links of the HTML page.
type pageEvent struct {
	Type  string `schema:"event" validate:"omitempty,oneof=month category style sort search view page"`
	Value string `schema:"value" validate:"facet"`
}

// --- Handlers ---

// List handles GET /api/v1/listings
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.Listings(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: listings})
}

// Get handles GET /api/v1/listings/{listing}
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "listing")

	state, ps, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}

	page, err := h.service.Render(logger.WithListing(r.Context(), key), key, state, ps)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// ApplyEvent handles POST /api/v1/listings/{listing}/events
func (h *ListingHandler) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "listing")
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)

	var req EventRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	page, err := h.service.ApplyEvent(logger.WithListing(r.Context(), key), key, req.State, req.Pager, req.Event)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// Page handles GET /listings/{listing}. Links on the rendered page replay
// the current state with an "event" and "value" pair, which is reduced
// before rendering.
func (h *ListingHandler) Page(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "listing")
	ctx := logger.WithListing(r.Context(), key)

	state, ps, ok := h.decodeQuery(w, r)
	if !ok {
		return
	}

	var ev pageEvent
	if err := h.decoder.Decode(&ev, r.URL.Query()); err != nil {
		writeQueryError(w, err)
		return
	}
	if err := validator.Validate(ev); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	var (
		page *service.Page
		err  error
	)
	if ev.Type != "" {
		page, err = h.service.ApplyEvent(ctx, key, state, ps, domain.Event{Type: ev.Type, Value: ev.Value})
	} else {
		page, err = h.service.Render(ctx, key, state, ps)
	}
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	body, err := h.renderer.Page(r.URL.Path, page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteHTML(w, http.StatusOK, body)
}

// decodeQuery reads facet and pager state from the query string. On
// failure it writes the error response and reports false.
func (h *ListingHandler) decodeQuery(w http.ResponseWriter, r *http.Request) (domain.FacetState, domain.PagerState, bool) {
	var (
		state domain.FacetState
		ps    domain.PagerState
	)
	q := r.URL.Query()

	if err := h.decoder.Decode(&state, q); err != nil {
		writeQueryError(w, err)
		return state, ps, false
	}
	if err := h.decoder.Decode(&ps, q); err != nil {
		writeQueryError(w, err)
		return state, ps, false
	}
	if err := validator.Validate(state); err != nil {
		httputil.WriteValidationError(w, err)
		return state, ps, false
	}
	if err := validator.Validate(ps); err != nil {
		httputil.WriteValidationError(w, err)
		return state, ps, false
	}
	return state, ps, true
}

func writeQueryError(w http.ResponseWriter, err error) {
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: err.Error()},
	})
}
