package quotes

import (
	"time"

	"github.com/ziadkadry99/caravansite/internal/catalog"
)

// Collection is the external name of the quote request collection.
const Collection = "quoteRequests"

// Status is the sales pipeline stage of a quote request.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQuoted    Status = "quoted"
	StatusClosed    Status = "closed"
)

// Statuses lists every valid status in pipeline order.
var Statuses = []string{string(StatusNew), string(StatusContacted), string(StatusQuoted), string(StatusClosed)}

// Request is a visitor's request for a price on a configured model.
type Request struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone"`
	Postcode  string         `json:"postcode"`
	Model     string         `json:"model"`
	Options   []string       `json:"options"`
	TradeIn   bool           `json:"trade_in"`
	Message   string         `json:"message"`
	DealerID  string         `json:"dealer_id,omitempty"`
	Status    Status         `json:"status"`
	Estimate  *catalog.Quote `json:"estimate,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateRequest is the public form payload.
type CreateRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"omitempty,phone"`
	Postcode string   `json:"postcode" validate:"required,postcode"`
	Model    string   `json:"model" validate:"required"`
	Options  []string `json:"options" validate:"max=20"`
	TradeIn  bool     `json:"trade_in"`
	Message  string   `json:"message" validate:"max=2000"`
	DealerID string   `json:"dealer_id"`
}
