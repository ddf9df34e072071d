package reviews

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/catalog"
	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// RegisterRoutes mounts the public review endpoints.
func RegisterRoutes(r chi.Router, store *Store, notifier leads.Notifier) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleApproved(store))
		r.Get("/summary", handleSummary(store))
		r.Post("/", handleCreate(store, notifier))
	})
}

// RegisterAdminRoutes mounts moderation endpoints, including the featured toggle.
func RegisterAdminRoutes(r chi.Router, store *Store, rec *admin.Recorder) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGetByID(store))
		r.Put("/{id}/featured", handleSetFeatured(store, rec))
		admin.RegisterMutationRoutes(r, Collection, Statuses, store, rec)
	})
}

func handleCreate(store *Store, notifier leads.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if req.Model != "" {
			if _, ok := catalog.BySlug(req.Model); !ok {
				httpx.WriteError(w, validate.Errors{"model": "is not a known model"})
				return
			}
		}

		created, err := store.Create(r.Context(), Review{
			CustomerName: req.CustomerName,
			Location:     req.Location,
			Model:        req.Model,
			Rating:       req.Rating,
			Title:        req.Title,
			Content:      req.Content,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		notifier.NotifyLead(r.Context(), leads.Lead{
			Collection: Collection,
			ID:         created.ID,
			Name:       created.CustomerName,
			Summary:    strconv.Itoa(created.Rating) + " star review awaiting moderation",
			CreatedAt:  created.CreatedAt,
		})
		httpx.WriteJSON(w, http.StatusCreated, created)
	}
}

func handleApproved(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		list, err := store.Approved(r.Context(), r.URL.Query().Get("model"), limit)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func handleSummary(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := store.Summarize(r.Context(), r.URL.Query().Get("model"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, sum)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), httpx.ParseListFilter(r))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rv, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, rv)
	}
}

func handleSetFeatured(store *Store, rec *admin.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req FeaturedRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		previous, err := store.SetFeatured(r.Context(), id, req.Featured)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		rec.Record(r.Context(), admin.Change{
			Action:     audit.ActionFeatured,
			Collection: Collection,
			RecordID:   id,
			Summary:    "featured set to " + strconv.FormatBool(req.Featured),
			Previous:   strconv.FormatBool(previous),
			New:        strconv.FormatBool(req.Featured),
		})
		httpx.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "featured": req.Featured})
	}
}
