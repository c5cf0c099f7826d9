package models

// MessageResponse is the generic success or error body
// swagger:model MessageResponse
type MessageResponse struct {
	// example: Invalid credentials
	Message string `json:"message"`
}

// StatusResponse is returned by the health route
// swagger:model StatusResponse
type StatusResponse struct {
	// example: success
	Status string `json:"status"`
}
