package model

import "time"

type MarketList struct {
	ID               int64      `json:"id"`
	DisplayCode      string     `json:"display_code"`
	OwnerID          int64      `json:"owner_id"`
	Content          string     `json:"content"`
	OrganizedContent string     `json:"organized_content"`
	Status           string     `json:"status"`
	Note             string     `json:"note"`
	CreatedAt        time.Time  `json:"created_at"`
	ApprovedAt       *time.Time `json:"approved_at"`
	DeliveredAt      *time.Time `json:"delivered_at"`
	DeclinedAt       *time.Time `json:"declined_at"`
}

type ListComment struct {
	ID        int64     `json:"id"`
	ListID    int64     `json:"list_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
