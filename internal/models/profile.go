package models

// ProfileResponse wraps the current user's profile
// swagger:model ProfileResponse
type ProfileResponse struct {
	// example: Profile fetched successfully
	Message string  `json:"message"`
	User    *UserDB `json:"user"`
}

// UpdateProfileRequest represents the JSON body for a partial profile update.
// Empty email and password are ignored.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Email    string  `json:"email,omitempty"`
	Password string  `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Handle   *string `json:"handle,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// RawProfileResponse exposes the unfiltered users row (non-production only)
// swagger:model RawProfileResponse
type RawProfileResponse struct {
	Row map[string]any `json:"row"`
}
