package domain

// Component is a user-owned named item attached to recipes. Tags and
// ingredients share this exact shape and differ only in which table stores
// them and which join table links them to recipes.
type Component struct {
	ID     int64
	UserID int64
	Name   string
}

// Tag and Ingredient are the two component variants.
type (
	Tag        = Component
	Ingredient = Component
)
