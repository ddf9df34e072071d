package events

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// RegisterRoutes mounts the public event endpoints.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleUpcoming(store))
		r.Get("/{slug}", handleGetBySlug(store))
	})
}

// RegisterAdminRoutes mounts the back-office endpoints, including create and update.
func RegisterAdminRoutes(r chi.Router, store *Store, rec *admin.Recorder) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/", handleCreate(store, rec))
		r.Get("/{id}", handleGetByID(store))
		r.Put("/{id}", handleUpdate(store, rec))
		admin.RegisterMutationRoutes(r, Collection, Statuses, store, rec)
	})
}

func fromInput(in Input) Event {
	return Event{
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
		Capacity:    in.Capacity,
		CoverImage:  in.CoverImage,
		Status:      in.Status,
	}
}

func handleUpcoming(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		list, err := store.Upcoming(r.Context(), limit)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func handleGetBySlug(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := store.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if e.Status == StatusDraft {
			httpx.WriteError(w, db.ErrNotFound)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, e)
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
		e, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, e)
	}
}

func handleCreate(store *Store, rec *admin.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, err)
			return
		}
		created, err := store.Create(r.Context(), fromInput(in))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		rec.Record(r.Context(), admin.Change{
			Action:     audit.ActionCreated,
			Collection: Collection,
			RecordID:   created.ID,
			Summary:    "created event " + created.Slug,
			New:        string(created.Status),
		})
		httpx.WriteJSON(w, http.StatusCreated, created)
	}
}

func handleUpdate(store *Store, rec *admin.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := httpx.Decode(r, &in); err != nil {
			httpx.WriteError(w, err)
			return
		}
		e := fromInput(in)
		e.ID = chi.URLParam(r, "id")

		updated, err := store.Update(r.Context(), e)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		rec.Record(r.Context(), admin.Change{
			Action:     audit.ActionUpdated,
			Collection: Collection,
			RecordID:   updated.ID,
			Summary:    "updated event " + updated.Slug,
		})
		httpx.WriteJSON(w, http.StatusOK, updated)
	}
}
