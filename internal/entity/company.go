package entity

import "time"

// Company registration statuses.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Company struct {
	ID                 int       `json:"id"`
	AccountID          int       `json:"account_id"`
	Name               string    `json:"name"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Description        string    `json:"description"`
	Website            *string   `json:"website,omitempty"`
	RegisterDay        time.Time `json:"register_day"`
	RegistrationStatus string    `json:"registration_status"`
}
