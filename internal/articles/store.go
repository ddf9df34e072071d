package articles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/docshape"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

const table = "articles"

const selectColumns = `SELECT id, slug, title, excerpt, body, body_format, cover_image, author, tags, status, published_at, created_at, updated_at FROM articles`

// Store manages persistence of articles.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a new article store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Create inserts an article. A missing slug is derived from the title, and a
// published article without a publish date is stamped with the current time.
func (s *Store) Create(ctx context.Context, a Article) (*Article, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Slug == "" {
		a.Slug = docshape.SlugFor(a.Title, a.ID)
	}
	if a.Status == "" {
		a.Status = StatusDraft
	}
	if a.BodyFormat == "" {
		a.BodyFormat = FormatMarkdown
	}
	a.Tags = normalizeTags(a.Tags)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	s.stampPublished(&a)
	if err := s.checkSlug(ctx, a.Slug, a.ID); err != nil {
		return nil, err
	}

	tags, _ := json.Marshal(a.Tags)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (id, slug, title, excerpt, body, body_format, cover_image, author, tags, status, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Slug, a.Title, a.Excerpt, a.Body, a.BodyFormat, a.CoverImage, a.Author, string(tags),
		string(a.Status), nullTime(a.PublishedAt), a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting article: %w", err)
	}
	return &a, nil
}

// Update replaces every editable field of an existing article.
func (s *Store) Update(ctx context.Context, a Article) (*Article, error) {
	existing, err := s.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	if a.Slug == "" {
		a.Slug = existing.Slug
	}
	if a.Status == "" {
		a.Status = existing.Status
	}
	if a.BodyFormat == "" {
		a.BodyFormat = existing.BodyFormat
	}
	if a.PublishedAt == nil {
		a.PublishedAt = existing.PublishedAt
	}
	a.Tags = normalizeTags(a.Tags)
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = s.now().UTC()
	s.stampPublished(&a)
	if err := s.checkSlug(ctx, a.Slug, a.ID); err != nil {
		return nil, err
	}

	tags, _ := json.Marshal(a.Tags)
	_, err = s.db.ExecContext(ctx,
		`UPDATE articles SET slug = ?, title = ?, excerpt = ?, body = ?, body_format = ?, cover_image = ?,
		 author = ?, tags = ?, status = ?, published_at = ?, updated_at = ? WHERE id = ?`,
		a.Slug, a.Title, a.Excerpt, a.Body, a.BodyFormat, a.CoverImage,
		a.Author, string(tags), string(a.Status), nullTime(a.PublishedAt), a.UpdatedAt, a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating article: %w", err)
	}
	return &a, nil
}

func (s *Store) stampPublished(a *Article) {
	if a.Status == StatusPublished && a.PublishedAt == nil {
		t := s.now().UTC()
		a.PublishedAt = &t
	}
}

// checkSlug rejects a slug already used by another article.
func (s *Store) checkSlug(ctx context.Context, slug, id string) error {
	if slug == "" {
		return validate.Errors{"slug": "is required"}
	}
	var other string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM articles WHERE slug = ? AND id != ?", slug, id).Scan(&other)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	return validate.Errors{"slug": "is already used by another article"}
}

// GetByID retrieves an article.
func (s *Store) GetByID(ctx context.Context, id string) (*Article, error) {
	return s.getOne(ctx, "id", id)
}

// GetBySlug retrieves an article by slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*Article, error) {
	return s.getOne(ctx, "slug", slug)
}

func (s *Store) getOne(ctx context.Context, column, value string) (*Article, error) {
	a, err := scanArticle(s.db.QueryRowContext(ctx, selectColumns+" WHERE "+column+" = ?", value))
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting article: %w", err)
	}
	return a, nil
}

// List returns articles matching the admin filter, newest first.
func (s *Store) List(ctx context.Context, filter db.ListFilter) ([]Article, error) {
	query, args := filter.Build(selectColumns, "title", "excerpt", "author", "slug")
	return s.query(ctx, query, args...)
}

// Published returns published articles, most recently published first,
// optionally restricted to a tag.
func (s *Store) Published(ctx context.Context, tag string, limit int) ([]Article, error) {
	query := selectColumns + " WHERE status = ?"
	args := []any{string(StatusPublished)}
	if tag = strings.ToLower(strings.TrimSpace(tag)); tag != "" {
		query += " AND EXISTS (SELECT 1 FROM json_each(articles.tags) WHERE json_each.value = ?)"
		args = append(args, tag)
	}
	query += " ORDER BY published_at DESC, created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return s.query(ctx, query, args...)
}

// Tags returns every tag used by a published article with its post count.
func (s *Store) Tags(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT json_each.value, COUNT(*) FROM articles, json_each(articles.tags)
		 WHERE articles.status = ? GROUP BY json_each.value`, string(StatusPublished))
	if err != nil {
		return nil, fmt.Errorf("counting tags: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			tag string
			n   int
		)
		if err := rows.Scan(&tag, &n); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		counts[tag] = n
	}
	return counts, rows.Err()
}

// SetStatus changes the status and returns the previous one. Publishing an
// article for the first time stamps published_at.
func (s *Store) SetStatus(ctx context.Context, id, status string) (string, error) {
	previous, err := s.db.UpdateStatus(ctx, table, id, status)
	if err != nil {
		return "", err
	}
	if Status(status) == StatusPublished {
		_, err = s.db.ExecContext(ctx, "UPDATE articles SET published_at = ? WHERE id = ? AND published_at IS NULL",
			s.now().UTC(), id)
		if err != nil {
			return "", fmt.Errorf("stamping published_at: %w", err)
		}
	}
	return previous, nil
}

// Delete removes an article.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.DeleteByID(ctx, table, id)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Article, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}
	defer rows.Close()

	out := []Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func normalizeTags(tags []string) []string {
	out := []string{}
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(sc scanner) (*Article, error) {
	var (
		a         Article
		tags      string
		status    string
		published sql.NullTime
	)
	err := sc.Scan(&a.ID, &a.Slug, &a.Title, &a.Excerpt, &a.Body, &a.BodyFormat, &a.CoverImage, &a.Author,
		&tags, &status, &published, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = Status(status)
	if published.Valid {
		t := published.Time
		a.PublishedAt = &t
	}
	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil || a.Tags == nil {
		a.Tags = []string{}
	}
	return &a, nil
}
