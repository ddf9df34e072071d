package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/caravansite/internal/leads"
)

func scrape(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestLeadCounter(t *testing.T) {
	require.NoError(t, LeadCounter.NotifyLead(context.Background(), leads.Lead{Collection: "brochureRequests"}))
	RecordMutation("reviews", "deleted")

	out := scrape(t)
	assert.Contains(t, out, `caravansite_leads_submitted_total{collection="brochureRequests"}`)
	assert.Contains(t, out, `caravansite_admin_mutations_total{action="deleted",collection="reviews"}`)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/models/{slug}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/models/coastal-19", nil))

	out := scrape(t)
	assert.Contains(t, out, `route="/models/{slug}"`)
	assert.Contains(t, out, `status="418"`)
	assert.NotContains(t, out, "coastal-19")
}
