package models

// SignupRequest represents the JSON body for user signup
// swagger:model SignupRequest
type SignupRequest struct {
	// required: true
	// example: jane@example.com
	Email string `json:"email"`

	// required: true
	// example: secret123
	Password string `json:"password"`

	// example: Jane
	Name string `json:"name,omitempty"`

	// Letters, digits and underscore, 3-30 characters
	// example: jane_doe
	Handle string `json:"handle,omitempty"`
}
