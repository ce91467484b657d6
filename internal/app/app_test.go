package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront-listing/internal/config"
	"github.com/utafrali/storefront-listing/internal/domain"
	"github.com/utafrali/storefront-listing/pkg/health"
	"github.com/utafrali/storefront-listing/pkg/tracing"
)

func newTestConfig(t *testing.T, markup string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "novedades.html")
	require.NoError(t, os.WriteFile(path, []byte(markup), 0o600))

	return &config.Config{
		Environment:  "development",
		HTTPPort:     0,
		AllowOrigins: []string{"*"},
		Tracing:      tracing.DefaultConfig(ServiceName),
		Listings: []config.Listing{
			{Key: "novedades", Kind: domain.KindArrivals, Markup: path},
		},
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewApp_ServesLoadedListings(t *testing.T) {
	cfg := newTestConfig(t, `<div class="product-item" data-name="Vestido" data-month="jan"></div>`)

	a, err := NewApp(context.Background(), cfg, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp health.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, health.StatusUp, resp.Checks["listing:novedades"].Status)

	w = httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/listings/novedades", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mostrando <strong>1</strong> novedades")
}

func TestNewApp_EmptyListingIsNotReady(t *testing.T) {
	cfg := newTestConfig(t, `<p>sin productos</p>`)

	a, err := NewApp(context.Background(), cfg, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })

	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestNewApp_MissingMarkup(t *testing.T) {
	cfg := newTestConfig(t, "")
	cfg.Listings[0].Markup = filepath.Join(t.TempDir(), "missing.html")

	_, err := NewApp(context.Background(), cfg, newTestLogger())
	assert.ErrorContains(t, err, "load catalogs")
}
