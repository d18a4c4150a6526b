package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ellavondegurechaff/packengine/internal/domain/logger"
	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

// UserRepository resolves platform users with raw pgx queries.
type UserRepository struct {
	pool PgxPool
}

var _ packs.UserResolver = (*UserRepository)(nil)

func NewUserRepository(pool PgxPool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetOrCreateUser is idempotent. An empty username keeps the stored one.
func (r *UserRepository) GetOrCreateUser(ctx context.Context, userID, username string) (*packs.User, error) {
	const q = `
INSERT INTO users (user_id, username)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE
SET username = CASE WHEN EXCLUDED.username = '' THEN users.username ELSE EXCLUDED.username END
RETURNING user_id, username, card_count, pack_count, created_at`

	ql := logger.NewQueryLogger("get_or_create_user", q, userID, username)
	var u packs.User
	err := r.pool.QueryRow(ctx, q, userID, username).
		Scan(&u.UserID, &u.Username, &u.CardCount, &u.PackCount, &u.CreatedAt)
	ql.Log(err, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user %s: %w", userID, err)
	}
	return &u, nil
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (*packs.User, error) {
	const q = `
SELECT user_id, username, card_count, pack_count, created_at
FROM users WHERE user_id = $1`

	var u packs.User
	err := r.pool.QueryRow(ctx, q, userID).
		Scan(&u.UserID, &u.Username, &u.CardCount, &u.PackCount, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, packs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
