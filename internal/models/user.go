package models

import "time"

// UserDB represents a user record in the database
type UserDB struct {
	ID        int64     `json:"id" db:"id"`                       // Primary key
	Email     string    `json:"email" db:"email"`                 // Unique email
	Password  string    `json:"-" db:"password"`                  // Bcrypt hash, never serialized
	Name      *string   `json:"name,omitempty" db:"name"`         // Display name
	Handle    *string   `json:"handle,omitempty" db:"handle"`     // Unique public handle
	Bio       *string   `json:"bio,omitempty" db:"bio"`           // Free-form bio
	Location  *string   `json:"location,omitempty" db:"location"` // Free-form location
	Website   *string   `json:"website,omitempty" db:"website"`   // Personal website
	CreatedAt time.Time `json:"created_at" db:"created_at"`       // Creation timestamp
}

// UserUpdate holds the profile fields to change. Nil fields are left as is.
type UserUpdate struct {
	Email    *string
	Password *string
	Name     *string
	Handle   *string
	Bio      *string
	Location *string
	Website  *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil && u.Password == nil && u.Name == nil && u.Handle == nil &&
		u.Bio == nil && u.Location == nil && u.Website == nil
}
