package catalog

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// RegisterRoutes mounts the read-only catalog API under /models.
func RegisterRoutes(r chi.Router) {
	r.Route("/models", func(r chi.Router) {
		r.Get("/", handleList)
		r.Get("/ranges", handleRanges)
		r.Get("/{slug}", handleGet)
		r.Get("/{slug}/price", handlePrice)
	})
}

// ParseFilter reads range, berths, max_price, max_length and q.
func ParseFilter(r *http.Request) Filter {
	q := r.URL.Query()
	f := Filter{Range: q.Get("range"), Query: q.Get("q")}
	if n, err := strconv.Atoi(q.Get("berths")); err == nil {
		f.MinBerths = n
	}
	if n, err := strconv.Atoi(q.Get("max_price")); err == nil {
		f.MaxPrice = n
	}
	if n, err := strconv.ParseFloat(q.Get("max_length"), 64); err == nil {
		f.MaxLength = n
	}
	return f
}

func handleList(w http.ResponseWriter, r *http.Request) {
	out := Search(ParseFilter(r), SortKey(r.URL.Query().Get("sort")))
	if out == nil {
		out = []Model{}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func handleRanges(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, Ranges())
}

func handleGet(w http.ResponseWriter, r *http.Request) {
	m, ok := BySlug(chi.URLParam(r, "slug"))
	if !ok {
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorBody{Error: "model not found"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, m)
}

func handlePrice(w http.ResponseWriter, r *http.Request) {
	var ids []string
	if v := r.URL.Query().Get("options"); v != "" {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}

	q, err := PriceQuote(chi.URLParam(r, "slug"), ids)
	switch {
	case errors.Is(err, ErrUnknownModel):
		httpx.WriteJSON(w, http.StatusNotFound, httpx.ErrorBody{Error: err.Error()})
	case errors.Is(err, ErrUnknownOption):
		httpx.BadRequest(w, err.Error())
	case err != nil:
		httpx.WriteError(w, err)
	default:
		httpx.WriteJSON(w, http.StatusOK, q)
	}
}
