package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TokenRepository encapsulates auth token persistence. Tokens are opaque and
// one-per-user: GetOrCreate returns the existing token when one is already
// bound to the user.
type TokenRepository interface {
	GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error)
	GetUserID(ctx context.Context, token string) (int64, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) GetOrCreate(ctx context.Context, userID int64, candidate string) (string, error) {
	// The no-op DO UPDATE makes the insert return the existing row's token
	// when the user already has one.
	const query = `
        INSERT INTO auth_tokens (user_id, token)
        VALUES ($1, $2)
        ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
        RETURNING token`

	var token string
	if err := r.pool.QueryRow(ctx, query, userID, candidate).Scan(&token); err != nil {
		return "", err
	}
	return token, nil
}

func (r *tokenRepository) GetUserID(ctx context.Context, token string) (int64, error) {
	const query = `SELECT user_id FROM auth_tokens WHERE token=$1`

	var userID int64
	if err := r.pool.QueryRow(ctx, query, token).Scan(&userID); err != nil {
		return 0, err
	}
	return userID, nil
}
