package audit

import "time"

// Action describes what an admin did to a record.
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionStatusChanged Action = "status_changed"
	ActionDeleted       Action = "deleted"
	ActionFeatured      Action = "featured"
	ActionNotesUpdated  Action = "notes_updated"
	ActionImported      Action = "imported"
)

// Entry is a single audit trail record.
type Entry struct {
	ID            string    `json:"id"`
	Timestamp     time.Time `json:"timestamp"`
	Actor         string    `json:"actor"`
	Action        Action    `json:"action"`
	Collection    string    `json:"collection"`
	RecordID      string    `json:"record_id"`
	Summary       string    `json:"summary"`
	PreviousValue string    `json:"previous_value,omitempty"`
	NewValue      string    `json:"new_value,omitempty"`
}
