package warranty

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/caravansite/internal/db"
)

const table = "warranty_claims"

const selectColumns = `SELECT id, name, email, phone, chassis_number, model, purchase_date, dealer_id, description, image_urls, admin_notes, status, created_at, updated_at FROM warranty_claims`

// Store manages persistence of warranty claims.
type Store struct {
	db *db.DB
}

// NewStore creates a new warranty store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a claim. Chassis numbers are stored upper-case.
func (s *Store) Create(ctx context.Context, c Claim) (*Claim, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusSubmitted
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	if c.ImageURLs == nil {
		c.ImageURLs = []string{}
	}
	c.ChassisNumber = strings.ToUpper(c.ChassisNumber)

	images, err := json.Marshal(c.ImageURLs)
	if err != nil {
		return nil, fmt.Errorf("marshalling image urls: %w", err)
	}

	var purchased sql.NullTime
	if c.PurchaseDate != nil {
		purchased = sql.NullTime{Time: c.PurchaseDate.UTC(), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO warranty_claims (id, name, email, phone, chassis_number, model, purchase_date, dealer_id, description, image_urls, admin_notes, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.ChassisNumber, c.Model, purchased, c.DealerID, c.Description,
		string(images), c.AdminNotes, string(c.Status), c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting warranty claim: %w", err)
	}
	return &c, nil
}

// GetByID retrieves a claim.
func (s *Store) GetByID(ctx context.Context, id string) (*Claim, error) {
	c, err := scanClaim(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting warranty claim: %w", err)
	}
	return c, nil
}

// List returns claims matching the filter, newest first. Free text
// matches name, email, chassis number and model.
func (s *Store) List(ctx context.Context, filter db.ListFilter) ([]Claim, error) {
	query, args := filter.Build(selectColumns, "name", "email", "chassis_number", "model")
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing warranty claims: %w", err)
	}
	defer rows.Close()

	out := []Claim{}
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning warranty claim: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// SetStatus changes the status and returns the previous one.
func (s *Store) SetStatus(ctx context.Context, id, status string) (string, error) {
	return s.db.UpdateStatus(ctx, table, id, status)
}

// SetNotes replaces the admin notes and returns the previous notes.
func (s *Store) SetNotes(ctx context.Context, id, notes string) (string, error) {
	var previous string
	err := s.db.QueryRowContext(ctx, "SELECT admin_notes FROM warranty_claims WHERE id = ?", id).Scan(&previous)
	if err == sql.ErrNoRows {
		return "", db.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading admin notes: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"UPDATE warranty_claims SET admin_notes = ?, updated_at = ? WHERE id = ?",
		notes, time.Now().UTC(), id,
	)
	if err != nil {
		return "", fmt.Errorf("updating admin notes: %w", err)
	}
	return previous, nil
}

// Delete removes a claim.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.DeleteByID(ctx, table, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClaim(sc scanner) (*Claim, error) {
	var (
		c              Claim
		purchased      sql.NullTime
		images, status string
	)
	err := sc.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.ChassisNumber, &c.Model, &purchased, &c.DealerID,
		&c.Description, &images, &c.AdminNotes, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = Status(status)
	if purchased.Valid {
		c.PurchaseDate = &purchased.Time
	}
	if err := json.Unmarshal([]byte(images), &c.ImageURLs); err != nil {
		return nil, fmt.Errorf("decoding image urls: %w", err)
	}
	return &c, nil
}
