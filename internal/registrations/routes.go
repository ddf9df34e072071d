package registrations

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/events"
	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// RegisterRoutes mounts the public registration form endpoint.
func RegisterRoutes(r chi.Router, store *Store, eventStore *events.Store, notifier leads.Notifier) {
	r.Post("/"+Collection, handleCreate(store, eventStore, notifier))
}

// RegisterAdminRoutes mounts the back-office endpoints. The list accepts
// event_id in addition to the common filters.
func RegisterAdminRoutes(r chi.Router, store *Store, rec *admin.Recorder) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGetByID(store))
		admin.RegisterMutationRoutes(r, Collection, Statuses, store, rec)
	})
}

func handleCreate(store *Store, eventStore *events.Store, notifier leads.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if req.Attendees == 0 {
			req.Attendees = 1
		}

		ev, err := eventStore.GetByID(r.Context(), req.EventID)
		if errors.Is(err, db.ErrNotFound) {
			httpx.WriteError(w, validate.Errors{"event_id": "is not a known event"})
			return
		}
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if !ev.IsOpen(time.Now()) {
			httpx.WriteError(w, validate.Errors{"event_id": "is not open for registration"})
			return
		}

		created, err := store.Book(r.Context(), Registration{
			EventID:   ev.ID,
			Name:      req.Name,
			Email:     req.Email,
			Phone:     req.Phone,
			Attendees: req.Attendees,
		})
		if errors.Is(err, ErrFull) {
			booked, err := store.BookedSeats(r.Context(), ev.ID)
			if err != nil {
				httpx.WriteError(w, err)
				return
			}
			httpx.WriteError(w, validate.Errors{"attendees": fmt.Sprintf("only %d places left", max(0, ev.Capacity-booked))})
			return
		}
		if errors.Is(err, db.ErrNotFound) {
			httpx.WriteError(w, validate.Errors{"event_id": "is not a known event"})
			return
		}
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		notifier.NotifyLead(r.Context(), leads.Lead{
			Collection: Collection,
			ID:         created.ID,
			Name:       created.Name,
			Email:      created.Email,
			Summary:    fmt.Sprintf("%d for %s", created.Attendees, ev.Summary()),
			CreatedAt:  created.CreatedAt,
		})
		httpx.WriteJSON(w, http.StatusCreated, created)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), httpx.ParseListFilter(r), r.URL.Query().Get("event_id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func handleGetByID(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, reg)
	}
}
