package model

import "time"

// Notice is the single staff announcement shown on every family dashboard.
type Notice struct {
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
