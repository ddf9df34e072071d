package dashboard

import (
	"net/http"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/httpx"
	"github.com/ziadkadry99/caravansite/internal/notifications"
)

// recentLimit caps the recent alerts list.
const recentLimit = 10

// statsResponse is the JSON response for the stats endpoint.
type statsResponse struct {
	Collections          map[string]admin.CollectionStats `json:"collections"`
	PendingNotifications int                              `json:"pending_notifications"`
	LiveClients          int                              `json:"live_clients"`
}

func (d *Dashboard) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := admin.Stats(ctx, d.db)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	pending := 0
	if d.notifications != nil {
		list, err := d.notifications.GetPending(ctx)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		pending = len(list)
	}

	live := 0
	if d.hub != nil {
		live = d.hub.Clients()
	}

	httpx.WriteJSON(w, http.StatusOK, statsResponse{
		Collections:          stats,
		PendingNotifications: pending,
		LiveClients:          live,
	})
}

func (d *Dashboard) handleRecent(w http.ResponseWriter, r *http.Request) {
	recent := []notifications.Notification{}
	if d.notifications != nil {
		list, err := d.notifications.List(r.Context(), notifications.ListFilter{Limit: recentLimit})
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		recent = list
	}
	httpx.WriteJSON(w, http.StatusOK, recent)
}
