package models

import "time"

// Auth event types published to Kafka
const (
	EventUserSignedUp       = "user_signed_up"
	EventUserLoggedIn       = "user_logged_in"
	EventUserLoggedOut      = "user_logged_out"
	EventRefreshTokenReused = "refresh_token_reused"
)

// AuthEvent is an authentication lifecycle event
type AuthEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}
