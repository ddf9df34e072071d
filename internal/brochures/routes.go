package brochures

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/catalog"
	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// RegisterRoutes mounts the public brochure form endpoint.
func RegisterRoutes(r chi.Router, store *Store, notifier leads.Notifier) {
	r.Post("/"+Collection, handleCreate(store, notifier))
}

// RegisterAdminRoutes mounts the back-office endpoints.
func RegisterAdminRoutes(r chi.Router, store *Store, rec *admin.Recorder) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGetByID(store))
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
		for _, slug := range req.Models {
			if _, ok := catalog.BySlug(slug); !ok {
				httpx.WriteError(w, validate.Errors{"models": slug + " is not a current model"})
				return
			}
		}

		created, err := store.Create(r.Context(), Request{
			Name:           req.Name,
			Email:          req.Email,
			Address:        req.Address,
			Suburb:         req.Suburb,
			Postcode:       req.Postcode,
			Models:         req.Models,
			Delivery:       req.Delivery,
			MarketingOptIn: req.MarketingOptIn,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		summary := "Brochure by " + string(created.Delivery)
		if len(created.Models) > 0 {
			summary += ": " + strings.Join(created.Models, ", ")
		}
		notifier.NotifyLead(r.Context(), leads.Lead{
			Collection: Collection,
			ID:         created.ID,
			Name:       created.Name,
			Email:      created.Email,
			Summary:    summary,
			CreatedAt:  created.CreatedAt,
		})
		httpx.WriteJSON(w, http.StatusCreated, created)
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
		b, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, b)
	}
}
