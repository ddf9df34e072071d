package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:            "test-1",
		Actor:         "sales@coastline.example",
		Action:        ActionStatusChanged,
		Collection:    "quoteRequests",
		RecordID:      "q-1",
		Summary:       "Marked quote as contacted",
		PreviousValue: "new",
		NewValue:      "contacted",
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "test-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Actor != "sales@coastline.example" {
		t.Errorf("Actor = %q", got.Actor)
	}
	if got.Action != ActionStatusChanged {
		t.Errorf("Action = %q, want %q", got.Action, ActionStatusChanged)
	}
	if got.Collection != "quoteRequests" || got.RecordID != "q-1" {
		t.Errorf("Collection/RecordID = %q/%q", got.Collection, got.RecordID)
	}
	if got.PreviousValue != "new" || got.NewValue != "contacted" {
		t.Errorf("values = %q -> %q", got.PreviousValue, got.NewValue)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestLogGeneratesUUID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{Actor: "admin", Action: ActionDeleted, Collection: "reviews", RecordID: "r-1"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("expected generated ID")
	}
	if entries[0].PreviousValue != "" || entries[0].NewValue != "" {
		t.Error("expected empty values for NULL columns")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)
	_, err := store.GetByID(context.Background(), "missing")
	if !errors.Is(err, db.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func seed(t *testing.T, store *Store) time.Time {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	entries := []Entry{
		{ID: "e1", Timestamp: base, Actor: "alice", Action: ActionStatusChanged, Collection: "quoteRequests", RecordID: "q-1"},
		{ID: "e2", Timestamp: base.Add(time.Hour), Actor: "bob", Action: ActionDeleted, Collection: "reviews", RecordID: "r-1"},
		{ID: "e3", Timestamp: base.Add(2 * time.Hour), Actor: "alice", Action: ActionNotesUpdated, Collection: "warranty-claims", RecordID: "w-1"},
		{ID: "e4", Timestamp: base.Add(3 * time.Hour), Actor: "alice", Action: ActionStatusChanged, Collection: "quoteRequests", RecordID: "q-1"},
	}
	for _, e := range entries {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log(%s): %v", e.ID, err)
		}
	}
	return base
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := seed(t, store)
	since := base.Add(90 * time.Minute)
	until := base.Add(2 * time.Hour)

	tests := []struct {
		name    string
		filter  QueryFilter
		wantIDs []string
	}{
		{"all newest first", QueryFilter{}, []string{"e4", "e3", "e2", "e1"}},
		{"by actor", QueryFilter{Actor: "bob"}, []string{"e2"}},
		{"by action", QueryFilter{Action: ActionStatusChanged}, []string{"e4", "e1"}},
		{"by collection", QueryFilter{Collection: "warranty-claims"}, []string{"e3"}},
		{"by record", QueryFilter{Collection: "quoteRequests", RecordID: "q-1"}, []string{"e4", "e1"}},
		{"since", QueryFilter{Since: &since}, []string{"e4", "e3"}},
		{"until", QueryFilter{Until: &until}, []string{"e3", "e2", "e1"}},
		{"limit", QueryFilter{Limit: 2}, []string{"e4", "e3"}},
		{"offset", QueryFilter{Offset: 3}, []string{"e1"}},
		{"limit and offset", QueryFilter{Limit: 1, Offset: 1}, []string{"e3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(entries) != len(tt.wantIDs) {
				t.Fatalf("got %d entries, want %d", len(entries), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if entries[i].ID != id {
					t.Errorf("entries[%d].ID = %q, want %q", i, entries[i].ID, id)
				}
			}
		})
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := seed(t, store)

	n, err := store.DeleteBefore(ctx, base.Add(90*time.Minute))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted %d, want 2", n)
	}

	entries, _ := store.Query(ctx, QueryFilter{})
	if len(entries) != 2 {
		t.Errorf("remaining %d, want 2", len(entries))
	}
}

func TestQueryRoute(t *testing.T) {
	store := setupStore(t)
	seed(t, store)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/audit?actor=alice&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var entries []Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries for alice, got %d", len(entries))
	}
}

func TestGetByIDRoute(t *testing.T) {
	store := setupStore(t)
	seed(t, store)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit/e2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
