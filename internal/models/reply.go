// internal/models/reply.go
package models

import "time"

// Reply is a response attached to a query. OfficerID is empty for
// automated advisory replies.
type Reply struct {
	ID           int64     `json:"id"`
	QueryID      int64     `json:"query_id"`
	OfficerID    string    `json:"officer_id,omitempty"`
	ResponseText string    `json:"response_text"`
	CreatedAt    time.Time `json:"created_at"`
}
