package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Notification statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Notification is the persisted and broadcast view of one outbound
// email: what was composed, for whom, and how delivery went.
type Notification struct {
	ID         [16]byte   `json:"id"`
	RequestID  [16]byte   `json:"request_id"`
	CreatedAt  time.Time  `json:"created_at"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	Channel    string     `json:"channel"`
	Subject    string     `json:"subject"`
	Recipients string     `json:"recipients"`
	Body       string     `json:"body,omitempty"`
	Status     string     `json:"status"`
	LastError  string     `json:"last_error,omitempty"`
}

// MarshalJSON customizes JSON serialization for Notification to return UUIDs as strings.
func (n Notification) MarshalJSON() ([]byte, error) {
	type Alias Notification
	return json.Marshal(&struct {
		ID        string `json:"id"`
		RequestID string `json:"request_id"`
		*Alias
	}{
		ID:        uuid.UUID(n.ID).String(),
		RequestID: uuid.UUID(n.RequestID).String(),
		Alias:     (*Alias)(&n),
	})
}
