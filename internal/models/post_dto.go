package models

// CreatePostRequest represents the JSON body for PUT /post
// swagger:model CreatePostRequest
type CreatePostRequest struct {
	// example: Hello
	Title string `json:"title"`

	// example: First post
	Body string `json:"body"`
}

// PostsResponse wraps a post list
// swagger:model PostsResponse
type PostsResponse struct {
	Message string `json:"message,omitempty"`
	Posts   []Post `json:"posts"`
}
