package models

import "time"

// Post represents a post row, optionally joined with its author's handle
type Post struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Body       string    `json:"body" db:"body"`
	UserID     *int64    `json:"user_id" db:"user_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UserHandle *string   `json:"user_handle,omitempty" db:"user_handle"`
}
