package brochures

import "time"

// Collection is the external name of the brochure request collection.
const Collection = "brochureRequests"

// Status tracks whether the brochure has gone out.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
)

// Statuses lists every valid status.
var Statuses = []string{string(StatusPending), string(StatusSent)}

// Delivery is how the visitor wants the brochure.
type Delivery string

const (
	DeliveryPost  Delivery = "post"
	DeliveryEmail Delivery = "email"
)

// Request asks for a printed or e-mailed brochure.
type Request struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Address        string    `json:"address"`
	Suburb         string    `json:"suburb"`
	Postcode       string    `json:"postcode"`
	Models         []string  `json:"models"`
	Delivery       Delivery  `json:"delivery"`
	MarketingOptIn bool      `json:"marketing_opt_in"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateRequest is the public form payload. A postal address is required
// only for printed brochures.
type CreateRequest struct {
	Name           string   `json:"name" validate:"required,max=100"`
	Email          string   `json:"email" validate:"required,email"`
	Address        string   `json:"address" validate:"required_if=Delivery post,max=200"`
	Suburb         string   `json:"suburb" validate:"required_if=Delivery post,max=100"`
	Postcode       string   `json:"postcode" validate:"required,postcode"`
	Models         []string `json:"models" validate:"max=10"`
	Delivery       Delivery `json:"delivery" validate:"required,oneof=post email"`
	MarketingOptIn bool     `json:"marketing_opt_in"`
}
