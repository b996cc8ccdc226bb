// internal/models/query.go
package models

import "time"

// Query statuses as stored in the queries table.
const (
	QueryStatusPending  = "pending"
	QueryStatusAnswered = "answered"
)

// Urgency levels accepted on intake.
const (
	UrgencyLow    = "low"
	UrgencyMedium = "medium"
	UrgencyHigh   = "high"
)

// Query is a farmer-submitted question.
type Query struct {
	ID        int64     `json:"id"`
	FarmerID  string    `json:"farmer_id"`
	QueryText string    `json:"query_text"`
	ImageURL  string    `json:"image_url,omitempty"`
	Language  string    `json:"language"`
	CropType  string    `json:"crop_type,omitempty"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	Urgency   string    `json:"urgency"`
	CreatedAt time.Time `json:"created_at"`

	Replies []Reply  `json:"replies"`
	Farmer  *Profile `json:"farmer,omitempty"`
}
