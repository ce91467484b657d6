package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, hf http.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	hf.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestLivenessHandler_AlwaysReturns200(t *testing.T) {
	h := NewHandler("listing-service")
	h.Register("catalog:ofertas", func(ctx context.Context) error { return fmt.Errorf("not loaded") })

	rec, resp := serve(t, h.LivenessHandler())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, StatusUp, resp.Status)
	assert.Equal(t, "listing-service", resp.Service)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReadinessHandler_AllHealthy(t *testing.T) {
	h := NewHandler("listing-service")
	h.Register("catalog:novedades", func(ctx context.Context) error { return nil })
	h.Register("catalog:ofertas", func(ctx context.Context) error { return nil })

	rec, resp := serve(t, h.ReadinessHandler())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusUp, resp.Status)
	assert.Equal(t, StatusUp, resp.Checks["catalog:novedades"].Status)
	assert.Equal(t, StatusUp, resp.Checks["catalog:ofertas"].Status)
}

func TestReadinessHandler_OneDown(t *testing.T) {
	h := NewHandler("listing-service")
	h.Register("catalog:novedades", func(ctx context.Context) error { return nil })
	h.Register("catalog:ofertas", func(ctx context.Context) error { return fmt.Errorf("catalog not loaded") })

	rec, resp := serve(t, h.ReadinessHandler())

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, StatusDown, resp.Status)
	assert.Equal(t, StatusDown, resp.Checks["catalog:ofertas"].Status)
	assert.Equal(t, "catalog not loaded", resp.Checks["catalog:ofertas"].Error)
	assert.Equal(t, StatusUp, resp.Checks["catalog:novedades"].Status)
}

func TestReadinessHandler_NoCheckers(t *testing.T) {
	rec, resp := serve(t, NewHandler("listing-service").ReadinessHandler())

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusUp, resp.Status)
	assert.Empty(t, resp.Checks)
}

func TestRegister_Overwrites(t *testing.T) {
	h := NewHandler("listing-service")
	h.Register("catalog", func(ctx context.Context) error { return fmt.Errorf("down") })
	h.Register("catalog", func(ctx context.Context) error { return nil })

	resp := h.Check(context.Background())
	assert.Equal(t, StatusUp, resp.Status)
	assert.Len(t, resp.Checks, 1)
}
