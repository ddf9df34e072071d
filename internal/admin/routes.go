package admin

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// Mutator is implemented by every collection store.
type Mutator interface {
	SetStatus(ctx context.Context, id, status string) (previous string, err error)
	Delete(ctx context.Context, id string) error
}

// StatusRequest is the body of PUT /{id}/status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RegisterMutationRoutes mounts PUT /{id}/status and DELETE /{id} on r, which
// is expected to be scoped to a single collection.
func RegisterMutationRoutes(r chi.Router, collection string, statuses []string, store Mutator, rec *Recorder) {
	r.Put("/{id}/status", handleSetStatus(collection, statuses, store, rec))
	r.Delete("/{id}", handleDelete(collection, store, rec))
}

func handleSetStatus(collection string, statuses []string, store Mutator, rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req StatusRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		if !slices.Contains(statuses, req.Status) {
			httpx.WriteError(w, validate.Errors{"status": "must be one of " + strings.Join(statuses, ", ")})
			return
		}

		previous, err := store.SetStatus(r.Context(), id, req.Status)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		rec.Record(r.Context(), Change{
			Action:     audit.ActionStatusChanged,
			Collection: collection,
			RecordID:   id,
			Summary:    fmt.Sprintf("status %s -> %s", previous, req.Status),
			Previous:   previous,
			New:        req.Status,
		})
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"id":       id,
			"status":   req.Status,
			"previous": previous,
		})
	}
}

func handleDelete(collection string, store Mutator, rec *Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, err)
			return
		}
		rec.Record(r.Context(), Change{
			Action:     audit.ActionDeleted,
			Collection: collection,
			RecordID:   id,
			Summary:    "deleted " + collection + " record",
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
