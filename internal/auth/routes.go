package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/httpx"
)

// RegisterRoutes mounts the login endpoint. It must sit outside RequireAdmin.
func RegisterRoutes(r chi.Router, store *Store, issuer *Issuer) {
	r.Post("/login", handleLogin(store, issuer))
}

func handleLogin(store *Store, issuer *Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, err)
			return
		}

		u, err := store.Authenticate(r.Context(), req.Email, req.Password)
		if errors.Is(err, ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized, httpx.ErrorBody{Error: err.Error()})
			return
		}
		if err != nil {
			httpx.WriteError(w, err)
			return
		}

		token, exp, err := issuer.Issue(u)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, LoginResponse{Token: token, ExpiresAt: exp, User: *u})
	}
}
