package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

func newPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return mock
}

func TestUserRepository_GetOrCreateUser(t *testing.T) {
	mock := newPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users \(user_id, username\)`).
		WithArgs("alice", "Alice").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "username", "card_count", "pack_count", "created_at"}).
			AddRow("alice", "Alice", 4, 1, created))
	u, err := r.GetOrCreateUser(ctx, "alice", "Alice")
	require.NoError(t, err)
	require.Equal(t, &packs.User{UserID: "alice", Username: "Alice", CardCount: 4, PackCount: 1, CreatedAt: created}, u)

	mock.ExpectQuery(`INSERT INTO users \(user_id, username\)`).
		WithArgs("bob", "").
		WillReturnError(errors.New("connection reset"))
	_, err = r.GetOrCreateUser(ctx, "bob", "")
	require.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetUser(t *testing.T) {
	mock := newPool(t)
	defer mock.Close()
	r := NewUserRepository(mock)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT user_id, username, card_count, pack_count, created_at FROM users WHERE user_id = \$1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "username", "card_count", "pack_count", "created_at"}).
			AddRow("alice", "Alice", 2, 0, time.Now()))
	u, err := r.GetUser(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 2, u.CardCount)

	mock.ExpectQuery(`SELECT user_id, username, card_count, pack_count, created_at FROM users WHERE user_id = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetUser(ctx, "ghost")
	require.ErrorIs(t, err, packs.ErrNotFound)
}
