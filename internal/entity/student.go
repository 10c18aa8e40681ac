package entity

import "time"

type Student struct {
	ID         int       `json:"id"`
	AccountID  int       `json:"account_id"`
	StudentID  string    `json:"student_id"`
	Name       string    `json:"name"`
	Faculty    string    `json:"faculty"`
	Year       string    `json:"year"` // "1".."8" or "Alumni"
	Phone      string    `json:"phone"`
	Transcript *string   `json:"transcript,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
