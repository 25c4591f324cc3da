package dto

// CreateComponentRequest payload for tags and ingredients.
type CreateComponentRequest struct {
	Name string `json:"name"`
}

// ComponentResponse response shape shared by tags and ingredients.
type ComponentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
