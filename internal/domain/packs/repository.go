package packs

import "context"

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock

// Store is the transactional record store the engine runs on. Reads return
// ErrNotFound for missing records. Commit applies every mutation or none.
type Store interface {
	ListDesignsBySeason(ctx context.Context, seasonID string) ([]CardDesign, error)
	ListDesignsByIDs(ctx context.Context, designIDs []string) ([]CardDesign, error)
	ListInstancesBySeason(ctx context.Context, seasonID string) ([]CardInstance, error)
	ListInstancesByDesigns(ctx context.Context, designIDs []string) ([]CardInstance, error)
	GetDesign(ctx context.Context, designID string) (*CardDesign, error)
	GetInstance(ctx context.Context, designID, instanceID string) (*CardInstance, error)
	GetPack(ctx context.Context, packID string) (*Pack, error)
	ListPacksByUser(ctx context.Context, userID string) ([]Pack, error)
	Commit(ctx context.Context, tx *Transaction) error
}

// UserResolver creates or fetches platform users keyed by external identity.
type UserResolver interface {
	GetOrCreateUser(ctx context.Context, userID, username string) (*User, error)
}

// RankingSource provides the site-wide rarity ordering. It may be absent.
type RankingSource interface {
	RarityRanks(ctx context.Context) ([]RarityRank, error)
}
