package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/leads"
	"github.com/ziadkadry99/caravansite/internal/notifications"
)

func setupTest(t *testing.T) (*Dashboard, *Hub, *db.DB, *notifications.Store) {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := NewHub(nil)
	go hub.Run(ctx)

	notes := notifications.NewStore(database)
	return New(hub, database, notes), hub, database, notes
}

func setupRouter(d *Dashboard, hub *Hub) chi.Router {
	r := chi.NewRouter()
	d.RegisterPage(r)
	d.RegisterRoutes(r)
	r.Get("/ws/admin", hub.HandleWebSocket)
	return r
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Clients() != n {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", hub.Clients(), n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/admin"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	return conn
}

func TestStatsEndpoint(t *testing.T) {
	d, hub, database, notes := setupTest(t)
	r := setupRouter(d, hub)
	ctx := context.Background()

	now := time.Now().UTC()
	_, err := database.ExecContext(ctx,
		`INSERT INTO brochure_requests (id, name, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		"b-1", "Jo", "jo@example.com", now, now)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	notes.Create(ctx, notifications.Notification{Collection: "brochureRequests", RecordID: "b-1", Title: "New brochure request"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp statsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Collections["brochureRequests"].Total != 1 {
		t.Errorf("brochure total = %d, want 1", resp.Collections["brochureRequests"].Total)
	}
	if resp.Collections["brochureRequests"].ByStatus["pending"] != 1 {
		t.Errorf("by status = %v", resp.Collections["brochureRequests"].ByStatus)
	}
	if resp.PendingNotifications != 1 {
		t.Errorf("pending = %d, want 1", resp.PendingNotifications)
	}
}

func TestRecentEndpoint(t *testing.T) {
	d, hub, _, notes := setupTest(t)
	r := setupRouter(d, hub)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		notes.Create(ctx, notifications.Notification{Collection: "reviews", RecordID: "r", Title: "t", CreatedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/recent", nil))
	var recent []notifications.Notification
	json.NewDecoder(w.Body).Decode(&recent)
	if len(recent) != recentLimit {
		t.Fatalf("recent = %d, want %d", len(recent), recentLimit)
	}
	if !recent[0].CreatedAt.Equal(base.Add(11 * time.Minute)) {
		t.Errorf("first = %v, want newest", recent[0].CreatedAt)
	}
}

func TestServeIndex(t *testing.T) {
	d, hub, _, _ := setupTest(t)
	r := setupRouter(d, hub)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "/ws/admin") {
		t.Error("index page does not connect to the live feed")
	}
}

func TestLiveFeedBroadcastsLeads(t *testing.T) {
	d, hub, _, _ := setupTest(t)
	srv := httptest.NewServer(setupRouter(d, hub))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitForClients(t, hub, 1)

	lead := leads.Lead{Collection: "quoteRequests", ID: "q-1", Name: "Jo", Summary: "Quote for coastal-16"}
	if err := hub.NotifyLead(context.Background(), lead); err != nil {
		t.Fatalf("NotifyLead: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if msg.Type != "lead" || msg.Lead == nil || msg.Lead.ID != "q-1" {
		t.Errorf("msg = %+v", msg)
	}
}

func TestLiveFeedPing(t *testing.T) {
	d, hub, _, _ := setupTest(t)
	srv := httptest.NewServer(setupRouter(d, hub))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	tests := []struct {
		send string
		want string
	}{
		{`{"type":"ping"}`, "pong"},
		{`not json`, "error"},
		{`{"type":"subscribe"}`, "error"},
	}
	for _, tt := range tests {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.send)); err != nil {
			t.Fatalf("write: %v", err)
		}
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if msg.Type != tt.want {
			t.Errorf("reply to %s = %q, want %q", tt.send, msg.Type, tt.want)
		}
	}
}

func TestLiveFeedUnregisters(t *testing.T) {
	d, hub, _, _ := setupTest(t)
	srv := httptest.NewServer(setupRouter(d, hub))
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, hub, 1)
	conn.Close()
	waitForClients(t, hub, 0)
}
