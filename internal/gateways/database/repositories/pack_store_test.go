package repositories

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
	"github.com/ellavondegurechaff/packengine/internal/gateways/database/models"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "pgx unique violation", err: &pgconn.PgError{Code: "23505"}, want: true},
		{name: "pgdriver unique violation", err: fieldErr{'C': "23505"}, want: true},
		{name: "pgdriver wrapped", err: fmt.Errorf("mutation 0: %w", fieldErr{'C': "23505"}), want: true},
		{name: "pgdriver not null violation", err: fieldErr{'C': "23502"}},
		{name: "wrapped", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: true},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}},
		{name: "plain error", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInsertErr(t *testing.T) {
	require.NoError(t, insertErr(nil))
	require.ErrorIs(t, insertErr(&pgconn.PgError{Code: "23505"}), packs.ErrConflict)

	other := errors.New("boom")
	require.ErrorIs(t, insertErr(other), other)
	require.NotErrorIs(t, insertErr(other), packs.ErrConflict)
}

func TestGuardedWrites(t *testing.T) {
	require.NoError(t, conditional(driver.RowsAffected(1), nil))
	require.ErrorIs(t, conditional(driver.RowsAffected(0), nil), packs.ErrConflict)
	require.NoError(t, required(driver.RowsAffected(1), nil))
	require.ErrorIs(t, required(driver.RowsAffected(0), nil), packs.ErrNotFound)

	boom := errors.New("boom")
	require.ErrorIs(t, conditional(nil, boom), boom)

	require.ErrorIs(t, notFound(sql.ErrNoRows), packs.ErrNotFound)
	require.ErrorIs(t, notFound(boom), boom)
}

func TestJSONText(t *testing.T) {
	require.Equal(t, `["shit-pack"]`, jsonText([]string{packs.ShitPackStamp}))
	require.Equal(t,
		`{"rarity_id":"rare","rarity_name":"Rare","total_of_type":1,"class":2}`,
		jsonText(models.BestRarityFromDomain(packs.BestRarity{RarityID: "rare", RarityName: "Rare", TotalOfType: 1, Class: packs.RarityClassFullArt})))
}

// fieldErr carries server fields the way pgdriver.Error does.
type fieldErr map[byte]string

func (e fieldErr) Error() string       { return e['M'] }
func (e fieldErr) Field(k byte) string { return e[k] }

// newQueryDB returns a bun DB for rendering queries. It never connects.
func newQueryDB(t *testing.T) *bun.DB {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN("postgres://packs@localhost:5432/packs?sslmode=disable")))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBuildWrite(t *testing.T) {
	openedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mutation  packs.Mutation
		wantCheck writeCheck
		contains  []string
	}{
		{
			name:      "Create pack",
			mutation:  packs.CreatePackMutation{Pack: packs.Pack{PackID: "pack-alice-1", UserID: "alice", Version: 1}},
			wantCheck: checkPackInsert,
			contains:  []string{`INSERT INTO "packs"`, "'pack-alice-1'"},
		},
		{
			name:      "Create instance",
			mutation:  packs.CreateInstanceMutation{Instance: packs.CardInstance{DesignID: "d1", InstanceID: "s1-d1-rare-1", PackID: "pack-alice-1"}},
			wantCheck: checkInsert,
			contains:  []string{`INSERT INTO "card_instances"`, "'s1-d1-rare-1'"},
		},
		{
			name:      "Open instance only while unopened inside its pack",
			mutation:  packs.OpenInstanceMutation{DesignID: "d1", InstanceID: "i1", PackID: "pack-alice-1", OpenedAt: openedAt, AddStamps: []string{packs.ShitPackStamp}},
			wantCheck: checkGuarded,
			contains: []string{
				`UPDATE "card_instances"`,
				"pack_id = NULL",
				`stamps = stamps || '["shit-pack"]'::jsonb`,
				"(design_id = 'd1' AND instance_id = 'i1')",
				"(pack_id = 'pack-alice-1')",
				"(opened_at IS NULL)",
			},
		},
		{
			name:      "Stamp instance",
			mutation:  packs.StampInstanceMutation{DesignID: "d1", InstanceID: "i2", Stamps: []string{packs.ShitPackStamp}},
			wantCheck: checkRequired,
			contains:  []string{`stamps = stamps || '["shit-pack"]'::jsonb`, "(design_id = 'd1' AND instance_id = 'i2')"},
		},
		{
			name:      "Assign instance keeps an existing minter",
			mutation:  packs.AssignInstanceMutation{DesignID: "d1", InstanceID: "i1", UserID: "bob", Username: "Bob"},
			wantCheck: checkGuarded,
			contains:  []string{"user_id = 'bob'", "CASE WHEN minter_id = '' THEN 'bob' ELSE minter_id END", "(opened_at IS NULL)"},
		},
		{
			name:      "Delete instance only from its pack",
			mutation:  packs.DeleteInstanceMutation{DesignID: "d1", InstanceID: "i1", PackID: "pack-alice-1"},
			wantCheck: checkGuarded,
			contains:  []string{`DELETE FROM "card_instances"`, "(pack_id = 'pack-alice-1')"},
		},
		{
			name:      "Patch pack compares version",
			mutation:  packs.PatchPackMutation{PackID: "pack-alice-1", ExpectedVersion: 3, UserID: "alice"},
			wantCheck: checkGuarded,
			contains:  []string{`UPDATE "packs"`, "version = version + 1", "(pack_id = 'pack-alice-1')", "(version = 3)"},
		},
		{
			name:      "Delete pack compares version",
			mutation:  packs.DeletePackMutation{PackID: "pack-alice-1", ExpectedVersion: 4},
			wantCheck: checkGuarded,
			contains:  []string{`DELETE FROM "packs"`, "(pack_id = 'pack-alice-1')", "(version = 4)"},
		},
		{
			name:      "Adjust user counters",
			mutation:  packs.AdjustUserCountersMutation{UserID: "alice", CardDelta: 1, PackDelta: -1},
			wantCheck: checkRequired,
			contains:  []string{"card_count = card_count + 1", "pack_count = pack_count + -1", "(user_id = 'alice')"},
		},
		{
			name: "Best rarity compares the previous value",
			mutation: packs.PatchBestRarityMutation{
				DesignID: "d1",
				Expected: &packs.BestRarity{RarityID: "common", TotalOfType: 3},
				Best:     packs.BestRarity{RarityID: "rare", TotalOfType: 1},
			},
			wantCheck: checkGuarded,
			contains: []string{
				`UPDATE "card_designs"`,
				`"rarity_id":"rare"`,
				"(best_rarity_found->>'rarity_id' = 'common')",
				"((best_rarity_found->>'total_of_type')::int = 3)",
			},
		},
		{
			name:      "Best rarity on a design never opened",
			mutation:  packs.PatchBestRarityMutation{DesignID: "d1", Best: packs.BestRarity{RarityID: "rare", TotalOfType: 1}},
			wantCheck: checkGuarded,
			contains:  []string{"best_rarity_found IS NULL", "'no-cards-opened'"},
		},
	}

	db := newQueryDB(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := buildWrite(db, tt.mutation)
			require.NoError(t, err)
			require.Equal(t, tt.wantCheck, w.check)

			b, err := w.query.AppendQuery(db.Formatter(), nil)
			require.NoError(t, err)
			query := string(b)
			for _, want := range tt.contains {
				require.Contains(t, query, want)
			}
		})
	}
}

type unknownMutation struct{}

func (unknownMutation) Kind() packs.MutationKind { return packs.MutationPatch }
func (unknownMutation) Entity() string           { return "unknown" }

func TestBuildWrite_UnknownMutation(t *testing.T) {
	_, err := buildWrite(newQueryDB(t), unknownMutation{})
	require.Error(t, err)
}

func TestWriteResult(t *testing.T) {
	dup := fieldErr{'C': "23505", 'M': "duplicate key value violates unique constraint"}
	boom := errors.New("boom")

	tests := []struct {
		name    string
		check   writeCheck
		res     sql.Result
		err     error
		wantErr error
	}{
		{name: "Guarded write matched", check: checkGuarded, res: driver.RowsAffected(1)},
		{name: "Guarded write lost", check: checkGuarded, res: driver.RowsAffected(0), wantErr: packs.ErrConflict},
		{name: "Required write missing", check: checkRequired, res: driver.RowsAffected(0), wantErr: packs.ErrNotFound},
		{name: "Instance slot taken", check: checkInsert, err: dup, wantErr: packs.ErrConflict},
		{name: "Pack id taken", check: checkPackInsert, err: dup, wantErr: packs.ErrPackIDTaken},
		{name: "Driver failure passes through", check: checkPackInsert, err: boom, wantErr: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := write{check: tt.check}.result(tt.res, tt.err)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	require.NotErrorIs(t, write{check: checkInsert}.result(nil, dup), packs.ErrPackIDTaken)
	require.ErrorIs(t, write{check: checkPackInsert}.result(nil, dup), packs.ErrConflict)
}
