// Package dashboard serves the admin landing page: per-collection counters,
// recent lead alerts and the live feed of new submissions.
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/notifications"
)

// Dashboard provides the admin overview endpoints.
type Dashboard struct {
	hub           *Hub
	db            *db.DB
	notifications *notifications.Store
}

// New creates a new Dashboard.
func New(hub *Hub, database *db.DB, notes *notifications.Store) *Dashboard {
	return &Dashboard{hub: hub, db: database, notifications: notes}
}

// RegisterRoutes mounts the dashboard API onto the admin router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", d.handleStats)
	r.Get("/dashboard/recent", d.handleRecent)
}

// RegisterPage mounts the public shell page. It holds no data; the page
// logs in and calls the admin API.
func (d *Dashboard) RegisterPage(r chi.Router) {
	r.Get("/admin", d.ServeIndex)
}
