package articles

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

var now = time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)

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

func setupRouter(t *testing.T) (*chi.Mux, *Store) {
	t.Helper()
	store := setupStore(t)
	renderer := NewRenderer()
	r := chi.NewRouter()
	RegisterRoutes(r, store, renderer)
	r.Route("/admin", func(r chi.Router) {
		RegisterAdminRoutes(r, store, renderer, admin.NewRecorder(nil, nil))
	})
	return r, store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, bytes.NewBufferString(body)))
	return w
}

func at(days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func mustCreate(t *testing.T, s *Store, a Article) *Article {
	t.Helper()
	created, err := s.Create(context.Background(), a)
	if err != nil {
		t.Fatalf("Create(%s): %v", a.Title, err)
	}
	return created
}

func TestCreateDefaults(t *testing.T) {
	s := setupStore(t)
	a := mustCreate(t, s, Article{Title: "Packing for the Gibb River Road", Tags: []string{" Touring ", "touring", "Outback"}})

	if a.Slug != "packing-for-the-gibb-river-road" {
		t.Errorf("Slug = %q", a.Slug)
	}
	if a.Status != StatusDraft || a.BodyFormat != FormatMarkdown {
		t.Errorf("Status = %q, BodyFormat = %q", a.Status, a.BodyFormat)
	}
	if a.PublishedAt != nil {
		t.Errorf("draft should not have a publish date, got %v", a.PublishedAt)
	}
	if strings.Join(a.Tags, ",") != "touring,outback" {
		t.Errorf("Tags = %v", a.Tags)
	}

	got, err := s.GetBySlug(context.Background(), a.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Errorf("stored tags = %v", got.Tags)
	}
}

func TestSlugUnique(t *testing.T) {
	s := setupStore(t)
	mustCreate(t, s, Article{Title: "Winter Checklist"})

	_, err := s.Create(context.Background(), Article{Title: "Winter Checklist"})
	var verr validate.Errors
	if !errors.As(err, &verr) || verr["slug"] == "" {
		t.Fatalf("expected slug validation error, got %v", err)
	}
}

func TestPublishStampsDate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	published := mustCreate(t, s, Article{Title: "Launch", Status: StatusPublished})
	if published.PublishedAt == nil || !published.PublishedAt.Equal(now) {
		t.Errorf("PublishedAt = %v, want %v", published.PublishedAt, now)
	}

	draft := mustCreate(t, s, Article{Title: "Later"})
	if _, err := s.SetStatus(ctx, draft.ID, string(StatusPublished)); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	got, _ := s.GetByID(ctx, draft.ID)
	if got.PublishedAt == nil || !got.PublishedAt.Equal(now) {
		t.Errorf("PublishedAt after publish = %v", got.PublishedAt)
	}
}

func TestPublishedOrderingAndTags(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	mustCreate(t, s, Article{ID: "a1", Title: "Old news", Status: StatusPublished, PublishedAt: at(-30), Tags: []string{"news"}})
	mustCreate(t, s, Article{ID: "a2", Title: "Fresh news", Status: StatusPublished, PublishedAt: at(-1), Tags: []string{"news", "factory"}})
	mustCreate(t, s, Article{ID: "a3", Title: "Touring tips", Status: StatusPublished, PublishedAt: at(-10), Tags: []string{"touring"}})
	mustCreate(t, s, Article{ID: "a4", Title: "Unfinished", Tags: []string{"news"}})
	mustCreate(t, s, Article{ID: "a5", Title: "Retired", Status: StatusArchived, PublishedAt: at(-100)})

	tests := []struct {
		name string
		tag  string
		want []string
	}{
		{"all", "", []string{"a2", "a3", "a1"}},
		{"tag", "news", []string{"a2", "a1"}},
		{"tag case", "FACTORY", []string{"a2"}},
		{"unknown tag", "recipes", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Published(ctx, tt.tag, 0)
			if err != nil {
				t.Fatalf("Published: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d articles, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("[%d] = %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}

	tags, err := s.Tags(ctx)
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if tags["news"] != 2 || tags["touring"] != 1 || tags["factory"] != 1 {
		t.Errorf("Tags = %v", tags)
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer()

	out, err := r.Render(Article{Body: "# Towing\n\nCheck the **ball weight**."})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, `<h1 id="towing">Towing</h1>`) || !strings.Contains(out, "<strong>ball weight</strong>") {
		t.Errorf("markdown output = %s", out)
	}

	legacy := "<p>Imported <em>post</em></p>"
	out, _ = r.Render(Article{Body: legacy, BodyFormat: FormatHTML})
	if out != legacy {
		t.Errorf("html body changed: %s", out)
	}
}

func TestPublicRoutes(t *testing.T) {
	r, s := setupRouter(t)
	mustCreate(t, s, Article{Title: "Live post", Status: StatusPublished, Body: "Hello *there*"})
	mustCreate(t, s, Article{Title: "Hidden post", Body: "secret"})

	w := do(r, http.MethodGet, "/blogs/live-post", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got Rendered
	json.NewDecoder(w.Body).Decode(&got)
	if !strings.Contains(got.BodyHTML, "<em>there</em>") {
		t.Errorf("BodyHTML = %q", got.BodyHTML)
	}

	if w := do(r, http.MethodGet, "/blogs/hidden-post", ""); w.Code != http.StatusNotFound {
		t.Errorf("draft by slug = %d, want 404", w.Code)
	}

	w = do(r, http.MethodGet, "/blogs", "")
	var list []Article
	json.NewDecoder(w.Body).Decode(&list)
	if len(list) != 1 {
		t.Errorf("public list = %d articles, want 1", len(list))
	}
}

func TestAdminCreateUpdate(t *testing.T) {
	r, s := setupRouter(t)

	w := do(r, http.MethodPost, "/admin/blogs", `{"title":"New Range","body":"Coming soon","tags":["news"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d, body = %s", w.Code, w.Body.String())
	}
	var created Article
	json.NewDecoder(w.Body).Decode(&created)

	w = do(r, http.MethodPut, "/admin/blogs/"+created.ID, `{"title":"New Range Revealed","body":"Here it is","status":"published"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update = %d, body = %s", w.Code, w.Body.String())
	}
	got, _ := s.GetByID(context.Background(), created.ID)
	if got.Title != "New Range Revealed" || got.Slug != "new-range" || got.Status != StatusPublished || got.PublishedAt == nil {
		t.Errorf("updated = %+v", got)
	}

	if w := do(r, http.MethodPost, "/admin/blogs", `{"title":"x","body_format":"rtf"}`); w.Code != http.StatusBadRequest {
		t.Errorf("bad format = %d, want 400", w.Code)
	}
	if w := do(r, http.MethodPut, "/admin/blogs/missing", `{"title":"x"}`); w.Code != http.StatusNotFound {
		t.Errorf("update unknown = %d, want 404", w.Code)
	}
	if w := do(r, http.MethodGet, "/admin/blogs/"+created.ID+"/preview", ""); w.Code != http.StatusOK {
		t.Errorf("preview = %d", w.Code)
	}
	if w := do(r, http.MethodPut, "/admin/blogs/"+created.ID+"/status", `{"status":"archived"}`); w.Code != http.StatusOK {
		t.Errorf("archive = %d", w.Code)
	}
}
