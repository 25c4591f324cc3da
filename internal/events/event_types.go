package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventRecipeCreated  EventType = "recipe_created"
	EventRecipeUpdated  EventType = "recipe_updated"
	EventRecipeDeleted  EventType = "recipe_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string `json:"email"`
}

// RecipeCreatedPayload payload.
type RecipeCreatedPayload struct {
	RecipeID int64  `json:"recipe_id"`
	Title    string `json:"title"`
}

// RecipeUpdatedPayload payload.
type RecipeUpdatedPayload struct {
	RecipeID int64  `json:"recipe_id"`
	Title    string `json:"title"`
}

// RecipeDeletedPayload payload.
type RecipeDeletedPayload struct {
	RecipeID int64 `json:"recipe_id"`
}
