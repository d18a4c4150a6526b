package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun/driver/pgdriver"
)

const uniqueViolation = "23505"

// PgxPool is the subset of *pgxpool.Pool the pgx repositories use.
// pgxmock.PgxPoolIface satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// fieldError is a server error exposing protocol fields by code, as pgdriver.Error does.
type fieldError interface {
	error
	Field(k byte) string
}

var _ fieldError = pgdriver.Error{}

// isUniqueViolation reports whether err is a unique constraint violation from
// either the pgx driver or bun's pgdriver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var fe fieldError
	if errors.As(err, &fe) {
		return fe.Field('C') == uniqueViolation
	}
	return false
}
