package events

import "time"

// Collection is the external name of the event collection.
const Collection = "events"

// Status controls whether an event is shown on the site.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid status.
var Statuses = []string{string(StatusDraft), string(StatusPublished), string(StatusCancelled)}

// Event is a show, open day or rally.
type Event struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	CoverImage  string    `json:"cover_image"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input is the admin create/update payload. Capacity 0 means unlimited.
type Input struct {
	Slug        string    `json:"slug" validate:"omitempty,slug,max=120"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=20000"`
	Location    string    `json:"location" validate:"max=200"`
	StartsAt    time.Time `json:"starts_at" validate:"required"`
	EndsAt      time.Time `json:"ends_at" validate:"required,gtefield=StartsAt"`
	Capacity    int       `json:"capacity" validate:"min=0"`
	CoverImage  string    `json:"cover_image" validate:"omitempty,url"`
	Status      Status    `json:"status" validate:"omitempty,oneof=draft published cancelled"`
}
