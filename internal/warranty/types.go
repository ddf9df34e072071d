package warranty

import "time"

// Collection is the external name of the warranty claim collection.
const Collection = "warranty-claims"

// Status is the progress of a claim.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusInReview  Status = "in_review"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// Statuses lists every valid status.
var Statuses = []string{
	string(StatusSubmitted), string(StatusInReview), string(StatusApproved),
	string(StatusRejected), string(StatusCompleted),
}

// Claim is a warranty claim against a chassis. Images are hosted
// elsewhere; only their URLs are kept.
type Claim struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	ChassisNumber string     `json:"chassis_number"`
	Model         string     `json:"model"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
	DealerID      string     `json:"dealer_id,omitempty"`
	Description   string     `json:"description"`
	ImageURLs     []string   `json:"image_urls"`
	AdminNotes    string     `json:"admin_notes"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateRequest is the public form payload.
type CreateRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         string   `json:"phone" validate:"required,phone"`
	ChassisNumber string   `json:"chassis_number" validate:"required,alphanum,min=6,max=17"`
	Model         string   `json:"model"`
	PurchaseDate  string   `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	DealerID      string   `json:"dealer_id"`
	Description   string   `json:"description" validate:"required,min=20,max=5000"`
	ImageURLs     []string `json:"image_urls" validate:"max=10,dive,url"`
}

// NotesRequest is the body of PUT /{id}/notes.
type NotesRequest struct {
	AdminNotes string `json:"admin_notes" validate:"max=5000"`
}
