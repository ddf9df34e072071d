package quotes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/catalog"
	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/locator"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// RegisterRoutes mounts the public quote form endpoint.
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

// check validates the request against the catalog and dealer network.
func check(req CreateRequest) error {
	_, err := catalog.PriceQuote(req.Model, req.Options)
	switch {
	case errors.Is(err, catalog.ErrUnknownModel):
		return validate.Errors{"model": "is not a current model"}
	case errors.Is(err, catalog.ErrUnknownOption):
		return validate.Errors{"options": err.Error()}
	case err != nil:
		return err
	}
	if req.DealerID != "" {
		if _, ok := locator.Dealers.Entry(req.DealerID); !ok {
			return validate.Errors{"dealer_id": "is not a known dealer"}
		}
	}
	return nil
}

func handleCreate(store *Store, notifier leads.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if err := check(req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		created, err := store.Create(r.Context(), Request{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Postcode: req.Postcode,
			Model:    req.Model,
			Options:  req.Options,
			TradeIn:  req.TradeIn,
			Message:  req.Message,
			DealerID: req.DealerID,
		})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		summary := "Quote requested for " + created.Model
		if created.Estimate != nil {
			summary += fmt.Sprintf(" (est. $%d)", created.Estimate.Total)
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
		q, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, q)
	}
}
