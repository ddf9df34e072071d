package brochures

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/caravansite/internal/db"
)

const table = "brochure_requests"

const selectColumns = `SELECT id, name, email, address, suburb, postcode, models, delivery, marketing_opt_in, status, created_at, updated_at FROM brochure_requests`

// Store manages persistence of brochure requests.
type Store struct {
	db *db.DB
}

// NewStore creates a new brochure store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a brochure request.
func (s *Store) Create(ctx context.Context, b Request) (*Request, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.Delivery == "" {
		b.Delivery = DeliveryEmail
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	if b.Models == nil {
		b.Models = []string{}
	}

	models, err := json.Marshal(b.Models)
	if err != nil {
		return nil, fmt.Errorf("marshalling models: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO brochure_requests (id, name, email, address, suburb, postcode, models, delivery, marketing_opt_in, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Email, b.Address, b.Suburb, b.Postcode, string(models), string(b.Delivery),
		b.MarketingOptIn, string(b.Status), b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting brochure request: %w", err)
	}
	return &b, nil
}

// GetByID retrieves a brochure request.
func (s *Store) GetByID(ctx context.Context, id string) (*Request, error) {
	b, err := scanRequest(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting brochure request: %w", err)
	}
	return b, nil
}

// List returns brochure requests matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter db.ListFilter) ([]Request, error) {
	query, args := filter.Build(selectColumns, "name", "email", "suburb", "postcode")
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing brochure requests: %w", err)
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		b, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning brochure request: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// SetStatus changes the status and returns the previous one.
func (s *Store) SetStatus(ctx context.Context, id, status string) (string, error) {
	return s.db.UpdateStatus(ctx, table, id, status)
}

// Delete removes a brochure request.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.DeleteByID(ctx, table, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(sc scanner) (*Request, error) {
	var (
		b                        Request
		models, delivery, status string
	)
	err := sc.Scan(&b.ID, &b.Name, &b.Email, &b.Address, &b.Suburb, &b.Postcode, &models, &delivery,
		&b.MarketingOptIn, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Delivery = Delivery(delivery)
	b.Status = Status(status)
	if err := json.Unmarshal([]byte(models), &b.Models); err != nil {
		return nil, fmt.Errorf("decoding models: %w", err)
	}
	return &b, nil
}
