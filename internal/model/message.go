package model

import "time"

// Conversation is the single thread between one family user and staff.
type Conversation struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
}

type Message struct {
	ID             int64      `json:"id"`
	ConversationID int64      `json:"conversation_id"`
	SenderID       int64      `json:"sender_id"`
	Body           string     `json:"body"`
	ImageURL       string     `json:"image_url"`
	FileURL        string     `json:"file_url"`
	CreatedAt      time.Time  `json:"created_at"`
	ReadAt         *time.Time `json:"read_at"`
}
