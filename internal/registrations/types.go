package registrations

import "time"

// Collection is the external name of the event registration collection.
const Collection = "eventRegistrations"

// Status is the attendance state of a registration.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusConfirmed  Status = "confirmed"
	StatusCancelled  Status = "cancelled"
	StatusAttended   Status = "attended"
)

// Statuses lists every valid status.
var Statuses = []string{string(StatusRegistered), string(StatusConfirmed), string(StatusCancelled), string(StatusAttended)}

// Registration books one or more people into an event.
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Attendees int       `json:"attendees"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateRequest is the public form payload. Attendees defaults to 1.
type CreateRequest struct {
	EventID   string `json:"event_id" validate:"required"`
	Name      string `json:"name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,phone"`
	Attendees int    `json:"attendees" validate:"omitempty,min=1,max=10"`
}
