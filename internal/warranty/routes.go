package warranty

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/catalog"
	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/locator"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

// RegisterRoutes mounts the public warranty form endpoint.
func RegisterRoutes(r chi.Router, store *Store, notifier leads.Notifier) {
	r.Post("/"+Collection, handleCreate(store, notifier))
}

// RegisterAdminRoutes mounts the back-office endpoints, including notes.
func RegisterAdminRoutes(r chi.Router, store *Store, rec *admin.Recorder) {
	r.Route("/"+Collection, func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Get("/{id}", handleGetByID(store))
		r.Put("/{id}/notes", handleSetNotes(store, rec))
		admin.RegisterMutationRoutes(r, Collection, Statuses, store, rec)
	})
}

func toClaim(req CreateRequest) (Claim, error) {
	fields := validate.Errors{}
	if req.Model != "" {
		if _, ok := catalog.BySlug(req.Model); !ok {
			fields["model"] = "is not a known model"
		}
	}
	if req.DealerID != "" {
		if _, ok := locator.Dealers.Entry(req.DealerID); !ok {
			fields["dealer_id"] = "is not a known dealer"
		}
	}

	c := Claim{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		ChassisNumber: req.ChassisNumber,
		Model:         req.Model,
		DealerID:      req.DealerID,
		Description:   req.Description,
		ImageURLs:     req.ImageURLs,
	}
	if req.PurchaseDate != "" {
		d, err := time.Parse(time.DateOnly, req.PurchaseDate)
		if err == nil && d.After(time.Now()) {
			fields["purchase_date"] = "cannot be in the future"
		}
		c.PurchaseDate = &d
	}
	if len(fields) > 0 {
		return Claim{}, fields
	}
	return c, nil
}

func handleCreate(store *Store, notifier leads.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}
		claim, err := toClaim(req)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		created, err := store.Create(r.Context(), claim)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		notifier.NotifyLead(r.Context(), leads.Lead{
			Collection: Collection,
			ID:         created.ID,
			Name:       created.Name,
			Email:      created.Email,
			Summary:    "Warranty claim for chassis " + created.ChassisNumber,
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
		c, err := store.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}

func handleSetNotes(store *Store, rec *admin.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req NotesRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		previous, err := store.SetNotes(r.Context(), id, req.AdminNotes)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		rec.Record(r.Context(), admin.Change{
			Action:     audit.ActionNotesUpdated,
			Collection: Collection,
			RecordID:   id,
			Summary:    "updated admin notes",
			Previous:   previous,
			New:        req.AdminNotes,
		})

		c, err := store.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, c)
	}
}
