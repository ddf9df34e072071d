package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/docshape"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

const table = "events"

const selectColumns = `SELECT id, slug, title, description, location, starts_at, ends_at, capacity, cover_image, status, created_at, updated_at FROM events`

// Store manages persistence of events.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a new event store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Create inserts an event. A missing slug is derived from the title.
func (s *Store) Create(ctx context.Context, e Event) (*Event, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Slug == "" {
		e.Slug = docshape.SlugFor(e.Title, e.ID)
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now().UTC()
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	if err := s.checkSlug(ctx, e.Slug, e.ID); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (id, slug, title, description, location, starts_at, ends_at, capacity, cover_image, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Slug, e.Title, e.Description, e.Location, e.StartsAt.UTC(), e.EndsAt.UTC(), e.Capacity,
		e.CoverImage, string(e.Status), e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting event: %w", err)
	}
	return &e, nil
}

// Update replaces every editable field of an existing event.
func (s *Store) Update(ctx context.Context, e Event) (*Event, error) {
	existing, err := s.GetByID(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	if e.Slug == "" {
		e.Slug = existing.Slug
	}
	if e.Status == "" {
		e.Status = existing.Status
	}
	if err := s.checkSlug(ctx, e.Slug, e.ID); err != nil {
		return nil, err
	}
	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = s.now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE events SET slug = ?, title = ?, description = ?, location = ?, starts_at = ?, ends_at = ?,
		 capacity = ?, cover_image = ?, status = ?, updated_at = ? WHERE id = ?`,
		e.Slug, e.Title, e.Description, e.Location, e.StartsAt.UTC(), e.EndsAt.UTC(),
		e.Capacity, e.CoverImage, string(e.Status), e.UpdatedAt, e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating event: %w", err)
	}
	return &e, nil
}

// checkSlug rejects a slug already used by another event.
func (s *Store) checkSlug(ctx context.Context, slug, id string) error {
	if slug == "" {
		return validate.Errors{"slug": "is required"}
	}
	var other string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM events WHERE slug = ? AND id != ?", slug, id).Scan(&other)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking slug: %w", err)
	}
	return validate.Errors{"slug": "is already used by another event"}
}

// GetByID retrieves an event.
func (s *Store) GetByID(ctx context.Context, id string) (*Event, error) {
	return s.getOne(ctx, "id", id)
}

// GetBySlug retrieves an event by slug.
func (s *Store) GetBySlug(ctx context.Context, slug string) (*Event, error) {
	return s.getOne(ctx, "slug", slug)
}

func (s *Store) getOne(ctx context.Context, column, value string) (*Event, error) {
	e, err := scanEvent(s.db.QueryRowContext(ctx, selectColumns+" WHERE "+column+" = ?", value))
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return e, nil
}

// List returns events matching the admin filter, newest first.
func (s *Store) List(ctx context.Context, filter db.ListFilter) ([]Event, error) {
	query, args := filter.Build(selectColumns, "title", "location", "slug")
	return s.query(ctx, query, args...)
}

// Upcoming returns published events that have not finished, soonest first.
func (s *Store) Upcoming(ctx context.Context, limit int) ([]Event, error) {
	query := selectColumns + " WHERE status = ? AND ends_at > ? ORDER BY starts_at ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return s.query(ctx, query, string(StatusPublished), s.now().UTC())
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// SetStatus changes the status and returns the previous one.
func (s *Store) SetStatus(ctx context.Context, id, status string) (string, error) {
	return s.db.UpdateStatus(ctx, table, id, status)
}

// Delete removes an event. Registrations are kept for the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.DeleteByID(ctx, table, id)
}

// Exists reports whether an event with the id exists. It backs the
// registration form's check.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking event: %w", err)
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(sc scanner) (*Event, error) {
	var (
		e      Event
		status string
	)
	err := sc.Scan(&e.ID, &e.Slug, &e.Title, &e.Description, &e.Location, &e.StartsAt, &e.EndsAt,
		&e.Capacity, &e.CoverImage, &status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = Status(status)
	return &e, nil
}

// IsOpen reports whether the event still accepts registrations.
func (e Event) IsOpen(now time.Time) bool {
	return e.Status == StatusPublished && now.Before(e.EndsAt)
}

// Summary is a one-line description used in notifications and listings.
func (e Event) Summary() string {
	parts := []string{e.Title}
	if e.Location != "" {
		parts = append(parts, e.Location)
	}
	parts = append(parts, e.StartsAt.Format("2 Jan 2006"))
	return strings.Join(parts, ", ")
}
