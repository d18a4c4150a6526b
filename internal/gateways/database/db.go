// Package database connects the engine to PostgreSQL: a pgx pool for raw
// queries and a bun DB for the transactional pack store.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	defaultConnTimeout   = 5 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = time.Second
)

type Config struct {
	Host        string `toml:"host" env:"HOST"`
	Port        int    `toml:"port" env:"PORT"`
	User        string `toml:"user" env:"USER"`
	Password    string `toml:"password" env:"PASSWORD"`
	Database    string `toml:"database" env:"NAME"`
	SSLMode     string `toml:"ssl_mode" env:"SSLMODE"`
	PoolSize    int    `toml:"pool_size" env:"POOL_SIZE"`
	MinConns    int    `toml:"min_conns" env:"MIN_CONNS"`
	MaxLifetime int    `toml:"max_lifetime" env:"MAX_LIFETIME"`
}

// DSN builds the postgres URL shared by pgx, bun and goose.
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s&connect_timeout=5",
		c.User, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Database, sslMode)
}

type DB struct {
	pool  *pgxpool.Pool
	bunDB *bun.DB
}

// New opens the pgx pool, retrying the first ping, and the bun DB on the same DSN.
func New(ctx context.Context, cfg Config) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	if cfg.PoolSize > 0 {
		poolConfig.MaxConns = int32(cfg.PoolSize)
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxLifetime) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
		err = pool.Ping(pingCtx)
		cancel()
		if err == nil {
			break
		}
		if attempt == defaultMaxRetries {
			pool.Close()
			return nil, fmt.Errorf("database server unreachable after %d attempts: %w", defaultMaxRetries, err)
		}
		slog.Warn("Database not reachable yet, retrying",
			slog.String("type", "db"),
			slog.Int("attempt", attempt),
			slog.Any("error", err))
		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(defaultRetryInterval):
		}
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.DSN())))
	if cfg.PoolSize > 0 {
		sqldb.SetMaxOpenConns(cfg.PoolSize)
	}

	return &DB{
		pool:  pool,
		bunDB: bun.NewDB(sqldb, pgdialect.New()),
	}, nil
}

func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

func (db *DB) BunDB() *bun.DB {
	return db.bunDB
}

func (db *DB) Ping(ctx context.Context) error {
	start := time.Now()
	if err := db.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pgx ping failed: %w", err)
	}
	if err := db.bunDB.PingContext(ctx); err != nil {
		return fmt.Errorf("bun ping failed: %w", err)
	}
	slog.Debug("Database ping",
		slog.String("type", "db"),
		slog.Duration("took", time.Since(start)))
	return nil
}

func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
	if db.bunDB != nil {
		db.bunDB.Close()
	}
}
