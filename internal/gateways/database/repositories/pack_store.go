package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/ellavondegurechaff/packengine/internal/domain/logger"
	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
	"github.com/ellavondegurechaff/packengine/internal/gateways/database/models"
)

const defaultTimeout = 10 * time.Second

// PackStore implements packs.Store on bun. Commit runs every mutation in one
// database transaction; conditional writes that match no row report packs.ErrConflict.
type PackStore struct {
	db        *bun.DB
	txTimeout time.Duration
}

var _ packs.Store = (*PackStore)(nil)

func NewPackStore(db *bun.DB, txTimeout time.Duration) *PackStore {
	if txTimeout <= 0 {
		txTimeout = defaultTimeout
	}
	return &PackStore{db: db, txTimeout: txTimeout}
}

func (s *PackStore) ListDesignsBySeason(ctx context.Context, seasonID string) ([]packs.CardDesign, error) {
	var rows []models.CardDesign
	err := s.db.NewSelect().
		Model(&rows).
		Where("season_id = ?", seasonID).
		Order("design_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs of season %s: %w", seasonID, err)
	}
	return designsToDomain(rows), nil
}

func (s *PackStore) ListDesignsByIDs(ctx context.Context, designIDs []string) ([]packs.CardDesign, error) {
	if len(designIDs) == 0 {
		return nil, nil
	}
	var rows []models.CardDesign
	err := s.db.NewSelect().
		Model(&rows).
		Where("design_id IN (?)", bun.In(designIDs)).
		Order("design_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}
	return designsToDomain(rows), nil
}

func (s *PackStore) ListInstancesBySeason(ctx context.Context, seasonID string) ([]packs.CardInstance, error) {
	var rows []models.CardInstance
	err := s.db.NewSelect().
		Model(&rows).
		Where("season_id = ?", seasonID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances of season %s: %w", seasonID, err)
	}
	return instancesToDomain(rows), nil
}

func (s *PackStore) ListInstancesByDesigns(ctx context.Context, designIDs []string) ([]packs.CardInstance, error) {
	if len(designIDs) == 0 {
		return nil, nil
	}
	var rows []models.CardInstance
	err := s.db.NewSelect().
		Model(&rows).
		Where("design_id IN (?)", bun.In(designIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	return instancesToDomain(rows), nil
}

func (s *PackStore) GetDesign(ctx context.Context, designID string) (*packs.CardDesign, error) {
	row := new(models.CardDesign)
	err := s.db.NewSelect().
		Model(row).
		Where("design_id = ?", designID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	d := row.ToDomain()
	return &d, nil
}

func (s *PackStore) GetInstance(ctx context.Context, designID, instanceID string) (*packs.CardInstance, error) {
	row := new(models.CardInstance)
	err := s.db.NewSelect().
		Model(row).
		Where("design_id = ? AND instance_id = ?", designID, instanceID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	inst := row.ToDomain()
	return &inst, nil
}

func (s *PackStore) GetPack(ctx context.Context, packID string) (*packs.Pack, error) {
	row := new(models.Pack)
	err := s.db.NewSelect().
		Model(row).
		Where("pack_id = ?", packID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err)
	}
	p := row.ToDomain()
	return &p, nil
}

func (s *PackStore) ListPacksByUser(ctx context.Context, userID string) ([]packs.Pack, error) {
	var rows []models.Pack
	err := s.db.NewSelect().
		Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at ASC", "pack_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packs of user %s: %w", userID, err)
	}
	out := make([]packs.Pack, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// UpsertDesign inserts a design or replaces its metadata and rarities.
// The stored best rarity is left untouched.
func (s *PackStore) UpsertDesign(ctx context.Context, d packs.CardDesign) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	row := models.CardDesignFromDomain(d)
	row.BestRarityFound = nil
	_, err := s.db.NewInsert().
		Model(row).
		ExcludeColumn("best_rarity_found", "created_at").
		On("CONFLICT (design_id) DO UPDATE").
		Set("season_id = EXCLUDED.season_id").
		Set("card_name = EXCLUDED.card_name").
		Set("card_description = EXCLUDED.card_description").
		Set("image_url = EXCLUDED.image_url").
		Set("artist_name = EXCLUDED.artist_name").
		Set("rarity_details = EXCLUDED.rarity_details").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert design %s: %w", d.DesignID, err)
	}
	return nil
}

func (s *PackStore) Commit(ctx context.Context, t *packs.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	ql := logger.NewQueryLogger("commit", "pack transaction", t.Len())
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for i, m := range t.Mutations {
			if err := apply(ctx, tx, m); err != nil {
				return fmt.Errorf("mutation %d (%s %s): %w", i, m.Kind(), m.Entity(), err)
			}
		}
		return nil
	})
	ql.Log(err, int64(t.Len()))
	return err
}

// execQuery is the part of bun's insert, update and delete queries a write needs.
type execQuery interface {
	schema.QueryAppender
	Exec(ctx context.Context, dest ...any) (sql.Result, error)
}

type writeCheck int

const (
	// checkGuarded writes must match a row; otherwise a concurrent writer won.
	checkGuarded writeCheck = iota
	// checkRequired writes must match a row; otherwise the row does not exist.
	checkRequired
	checkInsert
	checkPackInsert
)

// write is one mutation rendered as a query plus how its outcome is read.
type write struct {
	query execQuery
	check writeCheck
}

func (w write) result(res sql.Result, err error) error {
	switch w.check {
	case checkInsert:
		return insertErr(err)
	case checkPackInsert:
		return packInsertErr(err)
	case checkRequired:
		return required(res, err)
	default:
		return conditional(res, err)
	}
}

func apply(ctx context.Context, db bun.IDB, m packs.Mutation) error {
	w, err := buildWrite(db, m)
	if err != nil {
		return err
	}
	res, err := w.query.Exec(ctx)
	return w.result(res, err)
}

func buildWrite(db bun.IDB, m packs.Mutation) (write, error) {
	switch m := m.(type) {
	case packs.CreatePackMutation:
		return write{db.NewInsert().Model(models.PackFromDomain(m.Pack)), checkPackInsert}, nil

	case packs.CreateInstanceMutation:
		return write{db.NewInsert().Model(models.CardInstanceFromDomain(m.Instance)), checkInsert}, nil

	case packs.OpenInstanceMutation:
		q := db.NewUpdate().
			Model((*models.CardInstance)(nil)).
			Set("opened_at = ?", m.OpenedAt).
			Set("pack_id = NULL").
			Where("design_id = ? AND instance_id = ?", m.DesignID, m.InstanceID).
			Where("pack_id = ?", m.PackID).
			Where("opened_at IS NULL")
		if len(m.AddStamps) > 0 {
			q = q.Set("stamps = stamps || ?::jsonb", jsonText(m.AddStamps))
		}
		return write{q, checkGuarded}, nil

	case packs.StampInstanceMutation:
		return write{db.NewUpdate().
			Model((*models.CardInstance)(nil)).
			Set("stamps = stamps || ?::jsonb", jsonText(m.Stamps)).
			Where("design_id = ? AND instance_id = ?", m.DesignID, m.InstanceID), checkRequired}, nil

	case packs.AssignInstanceMutation:
		return write{db.NewUpdate().
			Model((*models.CardInstance)(nil)).
			Set("user_id = ?", m.UserID).
			Set("username = ?", m.Username).
			Set("minter_id = CASE WHEN minter_id = '' THEN ? ELSE minter_id END", m.UserID).
			Set("minter_username = CASE WHEN minter_id = '' THEN ? ELSE minter_username END", m.Username).
			Where("design_id = ? AND instance_id = ?", m.DesignID, m.InstanceID).
			Where("opened_at IS NULL"), checkGuarded}, nil

	case packs.DeleteInstanceMutation:
		return write{db.NewDelete().
			Model((*models.CardInstance)(nil)).
			Where("design_id = ? AND instance_id = ?", m.DesignID, m.InstanceID).
			Where("pack_id = ?", m.PackID), checkGuarded}, nil

	case packs.PatchPackMutation:
		return write{db.NewUpdate().
			Model((*models.Pack)(nil)).
			Set("user_id = ?", m.UserID).
			Set("username = ?", m.Username).
			Set("card_details = ?::jsonb", jsonText(models.PackCardsFromDomain(m.CardDetails))).
			Set("version = version + 1").
			Where("pack_id = ?", m.PackID).
			Where("version = ?", m.ExpectedVersion), checkGuarded}, nil

	case packs.DeletePackMutation:
		return write{db.NewDelete().
			Model((*models.Pack)(nil)).
			Where("pack_id = ?", m.PackID).
			Where("version = ?", m.ExpectedVersion), checkGuarded}, nil

	case packs.AdjustUserCountersMutation:
		return write{db.NewUpdate().
			Model((*models.User)(nil)).
			Set("card_count = card_count + ?", m.CardDelta).
			Set("pack_count = pack_count + ?", m.PackDelta).
			Where("user_id = ?", m.UserID), checkRequired}, nil

	case packs.PatchBestRarityMutation:
		q := db.NewUpdate().
			Model((*models.CardDesign)(nil)).
			Set("best_rarity_found = ?::jsonb", jsonText(models.BestRarityFromDomain(m.Best))).
			Where("design_id = ?", m.DesignID)
		if m.Expected.Found() {
			q = q.Where("best_rarity_found->>'rarity_id' = ?", m.Expected.RarityID).
				Where("(best_rarity_found->>'total_of_type')::int = ?", m.Expected.TotalOfType)
		} else {
			q = q.Where("(best_rarity_found IS NULL OR best_rarity_found->>'rarity_id' IN ('', ?))", packs.NoCardsOpenedRarityID)
		}
		return write{q, checkGuarded}, nil

	default:
		return write{}, fmt.Errorf("unsupported mutation %T", m)
	}
}

func insertErr(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", packs.ErrConflict, err)
	}
	return err
}

// packInsertErr reports a duplicate pack id apart from other conflicts so the
// caller can retry with a new id.
func packInsertErr(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %v", packs.ErrPackIDTaken, err)
	}
	return err
}

// conditional maps a guarded write that matched nothing to ErrConflict.
func conditional(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return packs.ErrConflict
	}
	return nil
}

func required(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return packs.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return packs.ErrNotFound
	}
	return err
}

// jsonText encodes values bound to jsonb columns. The encoded types cannot fail to marshal.
func jsonText(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func designsToDomain(rows []models.CardDesign) []packs.CardDesign {
	out := make([]packs.CardDesign, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}

func instancesToDomain(rows []models.CardInstance) []packs.CardInstance {
	out := make([]packs.CardInstance, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out
}
