package importers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// maxImportBytes bounds an uploaded export.
const maxImportBytes = 32 << 20

// RegisterRoutes mounts POST /import/{collection} on the admin router. The
// body is a JSON export in any shape ReadFile accepts.
func RegisterRoutes(r chi.Router, im *Importer) {
	r.Post("/import/{collection}", handleImport(im))
}

func handleImport(im *Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, ok := aliases[chi.URLParam(r, "collection")]
		if !ok {
			httpx.BadRequest(w, "unknown collection")
			return
		}

		records, err := DecodeJSON(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			httpx.BadRequest(w, err.Error())
			return
		}

		res, err := im.Import(r.Context(), Source{Path: "upload", Collection: collection}, records)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, res)
	}
}
