package dto

// CreateRecipeRequest payload. TimeMinutes and Price are pointers so missing
// fields can be rejected rather than defaulting to zero.
type CreateRecipeRequest struct {
	Title         string   `json:"title"`
	TimeMinutes   *int     `json:"time_minutes"`
	Price         *float64 `json:"price"`
	Link          string   `json:"link"`
	IngredientIDs []int64  `json:"ingredients"`
	TagIDs        []int64  `json:"tags"`
}

// PatchRecipeRequest payload; absent fields are left untouched. An explicit
// empty list clears the relationship.
type PatchRecipeRequest struct {
	Title         *string  `json:"title"`
	TimeMinutes   *int     `json:"time_minutes"`
	Price         *float64 `json:"price"`
	Link          *string  `json:"link"`
	IngredientIDs []int64  `json:"ingredients"`
	TagIDs        []int64  `json:"tags"`
}

// RecipeResponse response shape; relationships are id sets.
type RecipeResponse struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	TimeMinutes   int     `json:"time_minutes"`
	Price         float64 `json:"price"`
	Link          string  `json:"link"`
	IngredientIDs []int64 `json:"ingredients"`
	TagIDs        []int64 `json:"tags"`
}
