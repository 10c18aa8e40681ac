package entity

import "time"

// Notification is append-only: rows are created as side effects of
// workflow transitions and never updated or deleted.
type Notification struct {
	ID        int       `json:"id"`
	AccountID int       `json:"account_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
