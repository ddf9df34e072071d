package registrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/caravansite/internal/db"
	"github.com/ziadkadry99/caravansite/internal/validate"
)

const table = "event_registrations"

// ErrFull is returned by Book when the event has too few places left.
var ErrFull = errors.New("event is full")

// seatsFree is a condition that holds when the event row e can take the
// given number of extra attendees. Events with capacity 0 are unlimited.
func seatsFree(attendees string) string {
	return `(e.capacity = 0 OR
	(SELECT COALESCE(SUM(r.attendees), 0) FROM event_registrations r
	 WHERE r.event_id = e.id AND r.status != 'cancelled') + ` + attendees + ` <= e.capacity)`
}

const selectColumns = `SELECT id, event_id, name, email, phone, attendees, status, created_at, updated_at FROM event_registrations`

// Store manages persistence of event registrations.
type Store struct {
	db *db.DB
}

// NewStore creates a new registration store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a registration without looking at the event. The importer
// uses it for historic records; the public form goes through Book.
func (s *Store) Create(ctx context.Context, reg Registration) (*Registration, error) {
	reg = withDefaults(reg)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO event_registrations (id, event_id, name, email, phone, attendees, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reg.ID, reg.EventID, reg.Name, reg.Email, reg.Phone, reg.Attendees, string(reg.Status),
		reg.CreatedAt.UTC(), reg.UpdatedAt.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting registration: %w", err)
	}
	return &reg, nil
}

// Book inserts a registration only if the event still has room for its
// attendees. The seat count and the insert are one statement, so two
// concurrent bookings cannot both take the last places. It returns ErrFull
// when the event is full and db.ErrNotFound when the event does not exist.
func (s *Store) Book(ctx context.Context, reg Registration) (*Registration, error) {
	reg = withDefaults(reg)
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO event_registrations (id, event_id, name, email, phone, attendees, status, created_at, updated_at)
		 SELECT ?, e.id, ?, ?, ?, ?, ?, ?, ? FROM events e
		 WHERE e.id = ? AND `+seatsFree("?"),
		reg.ID, reg.Name, reg.Email, reg.Phone, reg.Attendees, string(reg.Status),
		reg.CreatedAt.UTC(), reg.UpdatedAt.UTC(),
		reg.EventID, reg.Attendees,
	)
	if err != nil {
		return nil, fmt.Errorf("booking registration: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists int
		err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events WHERE id = ?`, reg.EventID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("checking event: %w", err)
		}
		if exists == 0 {
			return nil, db.ErrNotFound
		}
		return nil, ErrFull
	}
	return &reg, nil
}

func withDefaults(reg Registration) Registration {
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}
	if reg.Status == "" {
		reg.Status = StatusRegistered
	}
	if reg.Attendees == 0 {
		reg.Attendees = 1
	}
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	if reg.UpdatedAt.IsZero() {
		reg.UpdatedAt = reg.CreatedAt
	}
	return reg
}

// GetByID retrieves a registration.
func (s *Store) GetByID(ctx context.Context, id string) (*Registration, error) {
	reg, err := scanRegistration(s.db.QueryRowContext(ctx, selectColumns+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting registration: %w", err)
	}
	return reg, nil
}

// List returns registrations matching the filter, newest first. A
// non-empty eventID restricts the list to one event.
func (s *Store) List(ctx context.Context, filter db.ListFilter, eventID string) ([]Registration, error) {
	base := selectColumns
	var extra []any
	if eventID != "" {
		base = `SELECT * FROM (` + selectColumns + ` WHERE event_id = ?)`
		extra = append(extra, eventID)
	}
	query, args := filter.Build(base, "name", "email")
	rows, err := s.db.QueryContext(ctx, query, append(extra, args...)...)
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	defer rows.Close()

	out := []Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning registration: %w", err)
		}
		out = append(out, *reg)
	}
	return out, rows.Err()
}

// BookedSeats sums attendees over an event's registrations that are not cancelled.
func (s *Store) BookedSeats(ctx context.Context, eventID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(attendees), 0) FROM event_registrations WHERE event_id = ? AND status != ?`,
		eventID, string(StatusCancelled),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting booked seats: %w", err)
	}
	return n, nil
}

// SetStatus changes the status and returns the previous one. Reinstating a
// cancelled registration takes its seats back, so it is refused when the
// event has filled up in the meantime.
func (s *Store) SetStatus(ctx context.Context, id, status string) (string, error) {
	if status == string(StatusCancelled) {
		return s.db.UpdateStatus(ctx, table, id, status)
	}

	var previous string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM event_registrations WHERE id = ?`, id).Scan(&previous)
	if err == sql.ErrNoRows {
		return "", db.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading registration status: %w", err)
	}
	if previous != string(StatusCancelled) {
		return s.db.UpdateStatus(ctx, table, id, status)
	}

	// Registrations whose event was deleted have no capacity to respect.
	res, err := s.db.ExecContext(ctx,
		`UPDATE event_registrations SET status = ?, updated_at = ?
		 WHERE id = ? AND status = ? AND (
		   NOT EXISTS (SELECT 1 FROM events e WHERE e.id = event_registrations.event_id) OR
		   EXISTS (SELECT 1 FROM events e WHERE e.id = event_registrations.event_id AND `+seatsFree("event_registrations.attendees")+`))`,
		status, time.Now().UTC(), id, string(StatusCancelled),
	)
	if err != nil {
		return "", fmt.Errorf("updating registration status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return "", validate.Errors{"status": "cannot reinstate: " + ErrFull.Error()}
	}
	return previous, nil
}

// Delete removes a registration.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.DeleteByID(ctx, table, id)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRegistration(sc scanner) (*Registration, error) {
	var (
		reg    Registration
		status string
	)
	err := sc.Scan(&reg.ID, &reg.EventID, &reg.Name, &reg.Email, &reg.Phone, &reg.Attendees, &status,
		&reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	reg.Status = Status(status)
	return &reg, nil
}
