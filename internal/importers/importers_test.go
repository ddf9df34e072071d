package importers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/caravansite/internal/admin"
	"github.com/ziadkadry99/caravansite/internal/articles"
	"github.com/ziadkadry99/caravansite/internal/audit"
	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/reviews"
)

func setup(t *testing.T) (*Importer, *db.DB, *audit.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	auditStore := audit.NewStore(database)
	return New(database, admin.NewRecorder(auditStore, nil), nil, nil), database, auditStore
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDecodeShapes(t *testing.T) {
	list, err := DecodeJSON(strings.NewReader(`[{"id":"a","x":1},{"id":"b"}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{list[0].ID, list[1].ID})

	keyed, err := DecodeJSON(strings.NewReader(`{"z":{"name":"Zed"},"a":{"name":"Al"}}`))
	require.NoError(t, err)
	require.Len(t, keyed, 2)
	assert.Equal(t, "a", keyed[0].ID)
	assert.Equal(t, "Al", keyed[0].Doc.String("name"))

	wrapped, err := DecodeJSON(strings.NewReader(`{"documents":[{"id":"w"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "w", wrapped[0].ID)

	_, err = DecodeJSON(strings.NewReader(`"nope"`))
	assert.Error(t, err)

	yamlRecords, err := DecodeYAML([]byte("- id: y1\n  title: Seed\n  tags: [a, b]\n"))
	require.NoError(t, err)
	assert.Equal(t, "y1", yamlRecords[0].ID)
	assert.Equal(t, []string{"a", "b"}, yamlRecords[0].Doc.Strings("tags"))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "reviews.json", "[]")
	writeFile(t, dir, "export/quoteRequests.json", "[]")
	writeFile(t, dir, "seeds/events.yaml", "[]")
	writeFile(t, dir, "seeds/eventRegistrations.yml", "[]")
	writeFile(t, dir, "notes.json", "[]")
	writeFile(t, dir, "readme.txt", "")

	sources, unknown, err := Discover(dir, nil)
	require.NoError(t, err)

	var collections []string
	for _, s := range sources {
		collections = append(collections, s.Collection)
	}
	assert.Equal(t, []string{"events", "reviews", "quoteRequests", "eventRegistrations"}, collections)
	assert.Equal(t, []string{filepath.Join(dir, "notes.json")}, unknown)

	only, _, err := Discover(dir, []string{"seeds/*.y*ml"})
	require.NoError(t, err)
	assert.Len(t, only, 2)

	_, _, err = Discover(dir, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestCollectionFor(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"export/reviews.json", "reviews", true},
		{"articles.yaml", "blogs", true},
		{"warranty_claims.json", "warranty-claims", true},
		{"warranty-claims.json", "warranty-claims", true},
		{"users.json", "", false},
	}
	for _, tt := range tests {
		got, ok := CollectionFor(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestImportLegacyReviews(t *testing.T) {
	im, database, auditStore := setup(t)
	ctx := context.Background()

	records, err := DecodeJSON(strings.NewReader(`{
		"r1": {"name": "Ann", "text": "Towed it round Tassie.", "stars": 7, "date": {"_seconds": 1700000000, "_nanoseconds": 0}},
		"r2": {"customerName": "Ben", "content": "Great layout.", "rating": 4, "status": "pending", "createdAt": "2024-02-01T10:00:00Z"},
		"r3": {"name": "", "text": ""}
	}`))
	require.NoError(t, err)

	res, err := im.Import(ctx, Source{Path: "reviews.json", Collection: reviews.Collection}, records)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Found)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "r3")

	store := reviews.NewStore(database)
	r1, err := store.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 5, r1.Rating)
	assert.Equal(t, reviews.StatusApproved, r1.Status)
	assert.True(t, r1.CreatedAt.Equal(time.Unix(1700000000, 0)))

	r2, _ := store.GetByID(ctx, "r2")
	assert.Equal(t, reviews.StatusPending, r2.Status)

	again, err := im.Import(ctx, Source{Path: "reviews.json", Collection: reviews.Collection}, records[:2])
	require.NoError(t, err)
	assert.Equal(t, 0, again.Imported)
	assert.Equal(t, 2, again.Skipped)
	assert.Empty(t, again.Errors)

	entries, err := auditStore.Query(ctx, audit.QueryFilter{Action: audit.ActionImported})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "system", entries[0].Actor)
}

func TestImportSourcesOrdersEventsFirst(t *testing.T) {
	im, database, _ := setup(t)
	dir := t.TempDir()
	writeFile(t, dir, "eventRegistrations.json", `[{"id":"reg1","eventId":"ev1","name":"Jo","email":"jo@example.com","attendees":3}]`)
	writeFile(t, dir, "events.yaml", "- id: ev1\n  title: Caravan Show\n  date: \"2026-09-01T09:00:00Z\"\n")
	writeFile(t, dir, "articles.json", `[{"id":"a1","title":"Old Post","content":"<p>hi</p>","date":"2020-01-01"}]`)

	sources, _, err := Discover(dir, nil)
	require.NoError(t, err)
	results, err := im.ImportSources(context.Background(), sources)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, 1, r.Imported, "%s: %v", r.Source.Collection, r.Errors)
	}

	a, err := articles.NewStore(database).GetBySlug(context.Background(), "old-post")
	require.NoError(t, err)
	assert.Equal(t, articles.FormatHTML, a.BodyFormat)
	assert.Equal(t, articles.StatusPublished, a.Status)
}

func TestImportArticlesWithoutASCIITitles(t *testing.T) {
	im, database, _ := setup(t)
	ctx := context.Background()
	records := []Record{
		{ID: "Post1", Doc: map[string]any{"title": "🚐", "body": "one"}},
		{ID: "Post2", Doc: map[string]any{"title": "⛺", "body": "two"}},
		{ID: "Post3", Doc: map[string]any{"title": "Café Olé", "body": "three"}},
	}

	res, err := im.Import(ctx, Source{Collection: articles.Collection}, records)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported, "%v", res.Errors)

	store := articles.NewStore(database)
	for id, slug := range map[string]string{"Post1": "post1", "Post2": "post2", "Post3": "cafe-ole"} {
		a, err := store.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, slug, a.Slug, id)
	}
}

func TestImportRegistrationNeedsEvent(t *testing.T) {
	im, _, _ := setup(t)
	records := []Record{{ID: "reg1", Doc: map[string]any{"eventId": "missing", "name": "Jo", "email": "jo@example.com"}}}
	res, err := im.Import(context.Background(), Source{Collection: "eventRegistrations"}, records)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "does not exist")
}

func TestImportRoute(t *testing.T) {
	im, _, _ := setup(t)
	r := chi.NewRouter()
	RegisterRoutes(r, im)

	body := `[{"id":"q1","name":"Jo","email":"jo@example.com","model":"coastal-16","createdAt":1700000000000}]`
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import/quoteRequests", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, 1, res.Imported)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/import/users", strings.NewReader("[]")))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
