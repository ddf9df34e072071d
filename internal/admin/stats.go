package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// Tables maps external collection names to their SQLite tables.
var Tables = map[string]string{
	"quoteRequests":      "quote_requests",
	"brochureRequests":   "brochure_requests",
	"warranty-claims":    "warranty_claims",
	"eventRegistrations": "event_registrations",
	"reviews":            "reviews",
	"blogs":              "articles",
	"events":             "events",
}

// CollectionStats is the dashboard tile for one collection.
type CollectionStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// Stats counts records per status for every collection.
func Stats(ctx context.Context, database *db.DB) (map[string]CollectionStats, error) {
	out := make(map[string]CollectionStats, len(Tables))
	for collection, table := range Tables {
		counts, err := database.CountByStatus(ctx, table)
		if err != nil {
			return nil, err
		}
		cs := CollectionStats{ByStatus: counts}
		for _, n := range counts {
			cs.Total += n
		}
		out[collection] = cs
	}
	return out, nil
}

// RegisterStatsRoutes mounts GET /stats.
func RegisterStatsRoutes(r chi.Router, database *db.DB) {
	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
		stats, err := Stats(r.Context(), database)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, stats)
	})
}
