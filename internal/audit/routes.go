package audit

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// RegisterRoutes mounts audit endpoints under /audit on the given (admin) router.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/audit", func(r chi.Router) {
		r.Get("/", handleQuery(store))
		r.Get("/{id}", handleGetByID(store))
	})
}

func handleQuery(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := httpx.ParsePage(r)
		filter := QueryFilter{
			Actor:      q.Get("actor"),
			Action:     Action(q.Get("action")),
			Collection: q.Get("collection"),
			RecordID:   q.Get("record_id"),
			Since:      httpx.ParseTime(r, "since"),
			Until:      httpx.ParseUntil(r, "until"),
			Limit:      page.Limit,
			Offset:     page.Offset,
		}

		entries, err := store.Query(r.Context(), filter)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if entries == nil {
			entries = []Entry{}
		}
		httpx.WriteJSON(w, http.StatusOK, entries)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, entry)
	}
}
