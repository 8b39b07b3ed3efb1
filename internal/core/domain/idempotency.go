package domain

import "time"

// IdempotentResponse is a stored HTTP response replayed for a repeated Idempotency-Key.
type IdempotentResponse struct {
	Key        string    `json:"key"`
	UserID     string    `json:"userID"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"statusCode"`
	Body       []byte    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}
