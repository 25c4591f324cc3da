package domain

import "time"

// Recipe is the aggregate for a user's recipe. IngredientIDs and TagIDs are
// plain references: the linked components must exist but are not required to
// share the recipe's owner.
type Recipe struct {
	ID            int64
	UserID        int64
	Title         string
	TimeMinutes   int
	Price         float64
	Link          string
	IngredientIDs []int64
	TagIDs        []int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
