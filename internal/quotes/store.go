package quotes

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/caravansite/internal/catalog"
	"github.com/ziadkadry99/caravansite/internal/db"
)

const table = "quote_requests"

const selectColumns = `SELECT id, name, email, phone, postcode, model, options, trade_in, message, dealer_id, status, created_at, updated_at FROM quote_requests`

// Store manages persistence of quote requests.
type Store struct {
	db *db.DB
}

// NewStore creates a new quote store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a quote request. Empty ids, statuses and timestamps are filled in.
func (s *Store) Create(ctx context.Context, q Request) (*Request, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if q.Status == "" {
		q.Status = StatusNew
	}
	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = q.CreatedAt
	}
	if q.Options == nil {
		q.Options = []string{}
	}

	options, err := json.Marshal(q.Options)
	if err != nil {
		return nil, fmt.Errorf("marshalling options: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO quote_requests (id, name, email, phone, postcode, model, options, trade_in, message, dealer_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.Name, q.Email, q.Phone, q.Postcode, q.Model, string(options), q.TradeIn, q.Message, q.DealerID,
		string(q.Status), q.CreatedAt.UTC(), q.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting quote request: %w", err)
	}
	attachEstimate(&q)
	return &q, nil
}

// GetByID retrieves a quote request.
func (s *Store) GetByID(ctx context.Context, id string) (*Request, error) {
	q, err := scanRequest(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting quote request: %w", err)
	}
	attachEstimate(q)
	return q, nil
}

// List returns quote requests matching the filter, newest first.
// Free text matches name, email, postcode and model.
func (s *Store) List(ctx context.Context, filter db.ListFilter) ([]Request, error) {
	query, args := filter.Build(selectColumns, "name", "email", "postcode", "model")
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing quote requests: %w", err)
	}
	defer rows.Close()

	out := []Request{}
	for rows.Next() {
		q, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quote request: %w", err)
		}
		out = append(out, *q)
	}
	return out, rows.Err()
}

// SetStatus changes the status and returns the previous one.
func (s *Store) SetStatus(ctx context.Context, id, status string) (string, error) {
	return s.db.UpdateStatus(ctx, table, id, status)
}

// Delete removes a quote request.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.DeleteByID(ctx, table, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(sc scanner) (*Request, error) {
	var (
		q       Request
		options string
		status  string
	)
	err := sc.Scan(&q.ID, &q.Name, &q.Email, &q.Phone, &q.Postcode, &q.Model, &options, &q.TradeIn,
		&q.Message, &q.DealerID, &status, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.Status = Status(status)
	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}
	return &q, nil
}

// attachEstimate prices the configuration when it still matches the catalog.
func attachEstimate(q *Request) {
	if est, err := catalog.PriceQuote(q.Model, q.Options); err == nil {
		q.Estimate = &est
	}
}
