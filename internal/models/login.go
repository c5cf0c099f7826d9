package models

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// required: true
	// example: jane@example.com
	Email string `json:"email"`

	// required: true
	// example: secret123
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued access token. The refresh token
// travels in the refreshToken cookie.
// swagger:model TokenResponse
type TokenResponse struct {
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`
}
