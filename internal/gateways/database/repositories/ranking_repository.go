package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ellavondegurechaff/packengine/internal/domain/logger"
	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

// RankingRepository reads and replaces the site-wide rarity display ranking.
type RankingRepository struct {
	pool PgxPool
}

var _ packs.RankingSource = (*RankingRepository)(nil)

func NewRankingRepository(pool PgxPool) *RankingRepository {
	return &RankingRepository{pool: pool}
}

func (r *RankingRepository) RarityRanks(ctx context.Context) ([]packs.RarityRank, error) {
	const q = `SELECT rarity_id, rank FROM rarity_rankings ORDER BY rank ASC, rarity_id ASC`

	ql := logger.NewQueryLogger("rarity_ranks", q)
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		ql.Log(err, 0)
		return nil, fmt.Errorf("failed to load rarity ranking: %w", err)
	}
	defer rows.Close()

	var ranks []packs.RarityRank
	for rows.Next() {
		var rr packs.RarityRank
		if err := rows.Scan(&rr.RarityID, &rr.Rank); err != nil {
			return nil, fmt.Errorf("failed to scan rarity rank: %w", err)
		}
		ranks = append(ranks, rr)
	}
	err = rows.Err()
	ql.Log(err, int64(len(ranks)))
	if err != nil {
		return nil, fmt.Errorf("failed to load rarity ranking: %w", err)
	}
	return ranks, nil
}

// ReplaceRanks swaps the whole ranking table in one transaction.
func (r *RankingRepository) ReplaceRanks(ctx context.Context, ranks []packs.RarityRank) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM rarity_rankings`); err != nil {
		return fmt.Errorf("failed to clear rarity ranking: %w", err)
	}
	for _, rr := range ranks {
		_, err := tx.Exec(ctx, `INSERT INTO rarity_rankings (rarity_id, rank) VALUES ($1, $2)`, rr.RarityID, rr.Rank)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("rarity %s ranked twice: %w", rr.RarityID, packs.ErrConflict)
			}
			return fmt.Errorf("failed to insert rank of %s: %w", rr.RarityID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
