package articles

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// RegisterRoutes mounts the public blog endpoints.
func RegisterRoutes(r chi.Router, store *Store, renderer *Renderer) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handlePublished(store))
		r.Get("/tags", handleTags(store))
		r.Get("/{slug}", handleGetBySlug(store, renderer))
	})
}

// RegisterAdminRoutes mounts the back-office endpoints, including create and update.
func RegisterAdminRoutes(r chi.Router, store *Store, renderer *Renderer, rec *admin.Recorder) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/", handleCreate(store, rec))
		r.Get("/{id}", handleGetByID(store))
		r.Get("/{id}/preview", handlePreview(store, renderer))
		r.Put("/{id}", handleUpdate(store, rec))
		admin.RegisterMutationRoutes(r, Collection, Statuses, store, rec)
	})
}

func fromInput(in Input) Article {
	return Article{
		Slug:        in.Slug,
		Title:       in.Title,
		Excerpt:     in.Excerpt,
		Body:        in.Body,
		BodyFormat:  in.BodyFormat,
		CoverImage:  in.CoverImage,
		Author:      in.Author,
		Tags:        in.Tags,
		Status:      in.Status,
		PublishedAt: in.PublishedAt,
	}
}

func handlePublished(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		list, err := store.Published(r.Context(), r.URL.Query().Get("tag"), limit)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, list)
	}
}

func handleTags(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := store.Tags(r.Context())
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, tags)
	}
}

func handleGetBySlug(store *Store, renderer *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if a.Status != StatusPublished {
			httpx.WriteError(w, db.ErrNotFound)
			return
		}
		out, err := renderer.RenderArticle(*a)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
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
		a, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, a)
	}
}

// handlePreview renders any article regardless of status.
func handlePreview(store *Store, renderer *Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		out, err := renderer.RenderArticle(*a)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, out)
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
			Summary:    "created article " + created.Slug,
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
		a := fromInput(in)
		a.ID = chi.URLParam(r, "id")

		updated, err := store.Update(r.Context(), a)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		rec.Record(r.Context(), admin.Change{
			Action:     audit.ActionUpdated,
			Collection: Collection,
			RecordID:   updated.ID,
			Summary:    "updated article " + updated.Slug,
		})
		httpx.WriteJSON(w, http.StatusOK, updated)
	}
}
