package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/docshape"
)

const table = "reviews"

const selectColumns = `SELECT id, customer_name, location, model, rating, title, content, featured, status, created_at, updated_at FROM reviews`

// Store manages persistence of reviews.
type Store struct {
	db *db.DB
}

// NewStore creates a new review store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a review. Ratings are clamped to 1..5.
func (s *Store) Create(ctx context.Context, rv Review) (*Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.New().String()
	}
	if rv.Status == "" {
		rv.Status = StatusPending
	}
	rv.Rating = docshape.ClampRating(rv.Rating)
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	if rv.UpdatedAt.IsZero() {
		rv.UpdatedAt = rv.CreatedAt
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (id, customer_name, location, model, rating, title, content, featured, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rv.ID, rv.CustomerName, rv.Location, rv.Model, rv.Rating, rv.Title, rv.Content, rv.Featured,
		string(rv.Status), rv.CreatedAt.UTC(), rv.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting review: %w", err)
	}
	return &rv, nil
}

// GetByID retrieves a review.
func (s *Store) GetByID(ctx context.Context, id string) (*Review, error) {
	rv, err := scanReview(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting review: %w", err)
	}
	return rv, nil
}

// List returns reviews matching the admin filter, newest first.
func (s *Store) List(ctx context.Context, filter db.ListFilter) ([]Review, error) {
	query, args := filter.Build(selectColumns, "customer_name", "title", "content", "model")
	return s.query(ctx, query, args...)
}

// Approved returns the reviews shown on the site: featured first, then newest.
func (s *Store) Approved(ctx context.Context, model string, limit int) ([]Review, error) {
	query := selectColumns + " WHERE status = ?"
	args := []any{string(StatusApproved)}
	if model != "" {
		query += " AND model = ?"
		args = append(args, model)
	}
	query += " ORDER BY featured DESC, created_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return s.query(ctx, query, args...)
}

// Summarize aggregates the approved ratings, optionally for one model.
func (s *Store) Summarize(ctx context.Context, model string) (Summary, error) {
	query := "SELECT rating, COUNT(*) FROM reviews WHERE status = ?"
	args := []any{string(StatusApproved)}
	if model != "" {
		query += " AND model = ?"
		args = append(args, model)
	}
	query += " GROUP BY rating"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Summary{}, fmt.Errorf("summarising reviews: %w", err)
	}
	defer rows.Close()

	sum := Summary{Histogram: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	total := 0
	for rows.Next() {
		var rating, n int
		if err := rows.Scan(&rating, &n); err != nil {
			return Summary{}, fmt.Errorf("scanning review summary: %w", err)
		}
		sum.Histogram[rating] = n
		sum.Count += n
		total += rating * n
	}
	if err := rows.Err(); err != nil {
		return Summary{}, err
	}
	if sum.Count > 0 {
		sum.Average = math.Round(float64(total)/float64(sum.Count)*10) / 10
	}
	return sum, nil
}

// SetFeatured toggles the featured flag and returns the previous value.
func (s *Store) SetFeatured(ctx context.Context, id string, featured bool) (bool, error) {
	var previous bool
	err := s.db.QueryRowContext(ctx, "SELECT featured FROM reviews WHERE id = ?", id).Scan(&previous)
	if err == sql.ErrNoRows {
		return false, db.ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("reading featured flag: %w", err)
	}
	_, err = s.db.ExecContext(ctx, "UPDATE reviews SET featured = ?, updated_at = ? WHERE id = ?",
		featured, time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("updating featured flag: %w", err)
	}
	return previous, nil
}

// SetStatus changes the status and returns the previous one.
func (s *Store) SetStatus(ctx context.Context, id, status string) (string, error) {
	return s.db.UpdateStatus(ctx, table, id, status)
}

// Delete removes a review.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.DeleteByID(ctx, table, id)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		out = append(out, *rv)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(sc scanner) (*Review, error) {
	var (
		rv     Review
		status string
	)
	err := sc.Scan(&rv.ID, &rv.CustomerName, &rv.Location, &rv.Model, &rv.Rating, &rv.Title, &rv.Content,
		&rv.Featured, &status, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	rv.Status = Status(status)
	return &rv, nil
}
