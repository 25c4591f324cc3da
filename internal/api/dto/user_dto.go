package dto

// CreateUserRequest payload for new accounts.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// TokenRequest payload for obtaining an auth token.
type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the opaque bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest payload for full profile replacement.
type UpdateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// PatchUserRequest payload for partial profile updates.
type PatchUserRequest struct {
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// UserResponse is the public account shape; the password hash never leaves
// the service.
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
