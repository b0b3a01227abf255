package model

// DeliveryFlow is one staff-configured time-of-day window used to label
// lists with an operational status for the dashboard. Times are "HH:MM".
type DeliveryFlow struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	StatusText string `json:"status_text"`
	SortOrder  int    `json:"sort_order"`
}

// SendStatusPreset is a saved admin message for "send order status".
type SendStatusPreset struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	SortOrder int    `json:"sort_order"`
}
