package notifications

import "time"

// Notification is an admin alert raised for a new lead.
type Notification struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"`
	RecordID   string    `json:"record_id"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Delivered  bool      `json:"delivered"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListFilter controls which notifications are returned by List.
type ListFilter struct {
	Collection string
	Delivered  *bool
	Since      time.Time
	Until      time.Time
	Limit      int
	Offset     int
}
