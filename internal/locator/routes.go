package locator

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// ListResponse is the locator API payload.
type ListResponse struct {
	Selected string  `json:"selected"`
	Region   *Region `json:"region,omitempty"`
	Entries  []Entry `json:"entries"`
}

// RegisterRoutes mounts the directory API under /<kind>.
func RegisterRoutes(r chi.Router, d *Directory) {
	r.Route("/"+d.Kind, func(r chi.Router) {
		r.Get("/", handleList(d))
		r.Get("/regions", handleRegions(d))
		r.Get("/toggle", handleToggle(d))
		r.Get("/map.svg", handleMap(d))
	})
}

func handleList(d *Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "" {
			httpx.WriteJSON(w, http.StatusOK, ListResponse{Entries: d.Search(q)})
			return
		}

		selected := r.URL.Query().Get("region")
		region, ok := d.Region(selected)
		if !ok {
			selected = ""
		}
		resp := ListResponse{Selected: selected, Entries: d.ForRegion(selected)}
		if ok {
			resp.Region = &region
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

func handleRegions(d *Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, d.Regions())
	}
}

// handleToggle answers "what is selected after clicking?" for scripted maps.
func handleToggle(d *Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"selected": d.Toggle(q.Get("selected"), q.Get("clicked")),
		})
	}
}

func handleMap(d *Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		selected := r.URL.Query().Get("region")
		if _, ok := d.Region(selected); !ok {
			selected = ""
		}
		svg, err := d.RenderMap(selected, "/"+d.Kind)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(svg))
	}
}
