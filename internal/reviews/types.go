package reviews

import "time"

// Collection is the external name of the review collection.
const Collection = "reviews"

// Status is the moderation state of a review.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Statuses lists every valid status.
var Statuses = []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}

// Review is an owner's review of their caravan.
type Review struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	Location     string    `json:"location"`
	Model        string    `json:"model"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Featured     bool      `json:"featured"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest is the public form payload.
type CreateRequest struct {
	CustomerName string `json:"customer_name" validate:"required,max=100"`
	Location     string `json:"location" validate:"max=100"`
	Model        string `json:"model"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Title        string `json:"title" validate:"max=150"`
	Content      string `json:"content" validate:"required,min=10,max=5000"`
}

// FeaturedRequest is the body of PUT /{id}/featured.
type FeaturedRequest struct {
	Featured bool `json:"featured"`
}

// Summary aggregates approved ratings.
type Summary struct {
	Count     int         `json:"count"`
	Average   float64     `json:"average"`
	Histogram map[int]int `json:"histogram"`
}
