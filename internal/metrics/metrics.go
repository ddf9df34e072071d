package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ziadkadry99/caravansite/internal/leads"
)

var (
	LeadsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caravansite_leads_submitted_total",
			Help: "Total number of public form submissions stored",
		},
		[]string{"collection"},
	)

	AdminMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caravansite_admin_mutations_total",
			Help: "Total number of admin changes to stored records",
		},
		[]string{"collection", "action"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "caravansite_rate_limited_total",
			Help: "Total number of form submissions rejected by the rate limiter",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "caravansite_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	LiveClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "caravansite_live_clients",
			Help: "Number of admin dashboards connected to the live feed",
		},
	)
)

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// LeadCounter counts every new lead by collection.
var LeadCounter leads.Notifier = leads.NotifierFunc(func(_ context.Context, lead leads.Lead) error {
	LeadsSubmitted.WithLabelValues(lead.Collection).Inc()
	return nil
})

// RecordMutation counts an admin change.
func RecordMutation(collection, action string) {
	AdminMutations.WithLabelValues(collection, action).Inc()
}

// Middleware records request durations labelled by the matched chi route
// pattern, keeping label cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
