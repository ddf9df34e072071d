package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	s := NewStore(database)
	s.now = func() time.Time { return now }
	return s
}

func mustCreate(t *testing.T, s *Store, e Event) *Event {
	t.Helper()
	created, err := s.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("Create(%s): %v", e.Title, err)
	}
	return created
}

func TestCreateDerivesSlug(t *testing.T) {
	s := setupStore(t)
	e := mustCreate(t, s, Event{Title: "Factory Open Day 2026", StartsAt: now, EndsAt: now.Add(time.Hour)})
	if e.Slug != "factory-open-day-2026" {
		t.Errorf("Slug = %q", e.Slug)
	}
	if e.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", e.Status)
	}

	got, err := s.GetBySlug(context.Background(), "factory-open-day-2026")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("GetBySlug returned %s", got.ID)
	}
}

func TestSlugUnique(t *testing.T) {
	s := setupStore(t)
	mustCreate(t, s, Event{Title: "Rally", StartsAt: now, EndsAt: now})

	_, err := s.Create(context.Background(), Event{Title: "Rally", StartsAt: now, EndsAt: now})
	var verrs validate.Errors
	if !errors.As(err, &verrs) || verrs["slug"] == "" {
		t.Fatalf("expected slug validation error, got %v", err)
	}
}

func TestUpcomingOrdering(t *testing.T) {
	s := setupStore(t)
	mustCreate(t, s, Event{ID: "past", Title: "Past Show", StartsAt: now.Add(-72 * time.Hour), EndsAt: now.Add(-48 * time.Hour), Status: StatusPublished})
	mustCreate(t, s, Event{ID: "later", Title: "Later Show", StartsAt: now.Add(30 * 24 * time.Hour), EndsAt: now.Add(31 * 24 * time.Hour), Status: StatusPublished})
	mustCreate(t, s, Event{ID: "running", Title: "Running Show", StartsAt: now.Add(-time.Hour), EndsAt: now.Add(5 * time.Hour), Status: StatusPublished})
	mustCreate(t, s, Event{ID: "soon", Title: "Soon Show", StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(26 * time.Hour), Status: StatusPublished})
	mustCreate(t, s, Event{ID: "draft", Title: "Draft Show", StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(26 * time.Hour)})
	mustCreate(t, s, Event{ID: "cancelled", Title: "Cancelled Show", StartsAt: now.Add(24 * time.Hour), EndsAt: now.Add(26 * time.Hour), Status: StatusCancelled})

	got, err := s.Upcoming(context.Background(), 0)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	want := []string{"running", "soon", "later"}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("[%d] = %s, want %s", i, got[i].ID, id)
		}
	}

	limited, _ := s.Upcoming(context.Background(), 1)
	if len(limited) != 1 || limited[0].ID != "running" {
		t.Errorf("limited = %+v", limited)
	}
}

func TestIsOpen(t *testing.T) {
	e := Event{Status: StatusPublished, EndsAt: now.Add(time.Hour)}
	if !e.IsOpen(now) {
		t.Error("expected open")
	}
	if e.IsOpen(now.Add(2 * time.Hour)) {
		t.Error("expected closed after end")
	}
	e.Status = StatusCancelled
	if e.IsOpen(now) {
		t.Error("cancelled event should be closed")
	}
}

func setupRouter(t *testing.T) (*chi.Mux, *Store) {
	t.Helper()
	s := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, s)
	r.Route("/admin", func(r chi.Router) {
		RegisterAdminRoutes(r, s, admin.NewRecorder(nil, nil))
	})
	return r, s
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return w
}

func TestAdminCreateAndUpdate(t *testing.T) {
	r, s := setupRouter(t)

	w := do(r, http.MethodPost, "/admin/events", `{"title":"Melbourne Caravan Show","location":"Flemington","starts_at":"2026-06-10T09:00:00Z","ends_at":"2026-06-14T17:00:00Z","capacity":200,"status":"published"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created Event
	json.NewDecoder(w.Body).Decode(&created)
	if created.Slug != "melbourne-caravan-show" {
		t.Errorf("Slug = %q", created.Slug)
	}

	w = do(r, http.MethodPut, "/admin/events/"+created.ID, `{"title":"Melbourne Leisurefest","slug":"melbourne-leisurefest","starts_at":"2026-06-10T09:00:00Z","ends_at":"2026-06-14T17:00:00Z"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}
	got, _ := s.GetByID(context.Background(), created.ID)
	if got.Title != "Melbourne Leisurefest" || got.Slug != "melbourne-leisurefest" {
		t.Errorf("after update = %+v", got)
	}
	if got.Status != StatusPublished {
		t.Errorf("status lost on update: %q", got.Status)
	}

	if w := do(r, http.MethodGet, "/events/melbourne-leisurefest", ""); w.Code != http.StatusOK {
		t.Errorf("public get = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/events", ""); w.Code != http.StatusOK {
		t.Errorf("public list = %d", w.Code)
	}
}

func TestAdminRejects(t *testing.T) {
	r, _ := setupRouter(t)

	bodies := []string{
		`{"title":"Backwards","starts_at":"2026-06-10T09:00:00Z","ends_at":"2026-06-09T09:00:00Z"}`,
		`{"title":"Bad Slug","slug":"Bad Slug!","starts_at":"2026-06-10T09:00:00Z","ends_at":"2026-06-10T09:00:00Z"}`,
		`{"starts_at":"2026-06-10T09:00:00Z","ends_at":"2026-06-10T09:00:00Z"}`,
		`{"title":"No dates"}`,
	}
	for _, body := range bodies {
		if w := do(r, http.MethodPost, "/admin/events", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, w.Code)
		}
	}

	if w := do(r, http.MethodPut, "/admin/events/missing", `{"title":"X","starts_at":"2026-06-10T09:00:00Z","ends_at":"2026-06-10T09:00:00Z"}`); w.Code != http.StatusNotFound {
		t.Errorf("update unknown = %d, want 404", w.Code)
	}
}

func TestPublicHidesDrafts(t *testing.T) {
	r, s := setupRouter(t)
	mustCreate(t, s, Event{Title: "Secret Preview", StartsAt: now.Add(time.Hour), EndsAt: now.Add(2 * time.Hour)})

	if w := do(r, http.MethodGet, "/events/secret-preview", ""); w.Code != http.StatusNotFound {
		t.Errorf("draft by slug = %d, want 404", w.Code)
	}
}
