package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"covergate/internal/plan"
	"covergate/internal/pricing"
)

func newCatalogRouter(t *testing.T) (chi.Router, []*plan.Plan) {
	t.Helper()
	store := plan.NewInMemoryStore()
	seeded := plan.SeedCatalog(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(store, pricing.NewCalculator(store, nil), logger).Register(r)
	return r, seeded
}

func TestHandleList(t *testing.T) {
	r, seeded := newCatalogRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plans", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Plans, len(seeded))

	// The catalog is sorted by code and hides rate-card internals.
	assert.Equal(t, "TERM-20", resp.Plans[0].Code)
	assert.Equal(t, 20, resp.Plans[0].TermYears)
	assert.NotContains(t, w.Body.String(), "age_band")
}

func TestHandleQuote(t *testing.T) {
	r, seeded := newCatalogRouter(t)
	base := fmt.Sprintf("/plans/%s/quote", seeded[0].ID)

	t.Run("quotes every frequency", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			base+"?age=30&gender=female&health_status=good&occupation_risk=low", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Premiums, 5)
		assert.Equal(t, "120", resp.Premiums["monthly"].String())
		assert.Equal(t, "360", resp.Premiums["quarterly"].String())
	})

	t.Run("missing rating inputs are rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, base+"?age=30", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown plan is not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/plans/%s/quote?age=30&gender=female&health_status=good&occupation_risk=low", uuid.New()), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed plan id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
			"/plans/not-a-uuid/quote?age=30&gender=female&health_status=good&occupation_risk=low", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
