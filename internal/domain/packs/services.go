package packs

import (
	"context"
	"sync/atomic"
	"time"
)

const defaultMaxConflictRetries = 3

type Service interface {
	ResolveCardPool(ctx context.Context, pt PackType) (*CardPool, error)
	CreatePack(ctx context.Context, req CreatePackRequest) (*Pack, error)
	CreatePackFromPool(ctx context.Context, req CreatePackRequest, pool *CardPool) (*Pack, error)
	CreatePacksForUser(ctx context.Context, pt PackType, userID, username string, packCount int) (*BatchResult, error)
	AssignPack(ctx context.Context, packID, userID, username string) (*Pack, error)
	OpenCard(ctx context.Context, packID, designID, instanceID string) (*CardInstance, error)
	OpenPack(ctx context.Context, packID string) ([]CardInstance, error)
	DeletePack(ctx context.Context, packID string) error
	DeleteFirstPackForUser(ctx context.Context, userID string) (*Pack, error)
	RecomputeBestRarity(ctx context.Context, designID string) (*BestRarity, error)
	GetPack(ctx context.Context, packID string) (*Pack, error)
	ListPacksForUser(ctx context.Context, userID string) ([]Pack, error)
}

type Options struct {
	// MaxConflictRetries bounds how often a conflicting commit is retried from a fresh read.
	MaxConflictRetries int
	// BatchConcurrency bounds how many packs CreatePacksForUser creates at once.
	BatchConcurrency int
	Allocator        *Allocator
	Sorter           *RankingSorter
	Now              func() time.Time
}

type service struct {
	store            Store
	users            UserResolver
	resolver         *PoolResolver
	allocator        *Allocator
	sorter           *RankingSorter
	maxRetries       int
	batchConcurrency int
	now              func() time.Time

	// lastPackMilli is the timestamp of the last pack id this service issued.
	lastPackMilli atomic.Int64
}

func NewService(store Store, users UserResolver, opts Options) *service {
	s := &service{
		store:            store,
		users:            users,
		resolver:         NewPoolResolver(store),
		allocator:        opts.Allocator,
		sorter:           opts.Sorter,
		maxRetries:       opts.MaxConflictRetries,
		batchConcurrency: opts.BatchConcurrency,
		now:              opts.Now,
	}
	if s.allocator == nil {
		s.allocator = NewRandomAllocator()
	}
	if s.sorter == nil {
		s.sorter = NewRankingSorter(nil, 0)
	}
	if s.maxRetries <= 0 {
		s.maxRetries = defaultMaxConflictRetries
	}
	if s.batchConcurrency <= 0 {
		s.batchConcurrency = 1
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// packTimestamp returns a millisecond timestamp for a pack id, strictly greater
// than every timestamp issued before by this service.
func (s *service) packTimestamp() int64 {
	now := s.now().UnixMilli()
	for {
		last := s.lastPackMilli.Load()
		ts := max(now, last+1)
		if s.lastPackMilli.CompareAndSwap(last, ts) {
			return ts
		}
	}
}

func (s *service) ResolveCardPool(ctx context.Context, pt PackType) (*CardPool, error) {
	return s.resolver.Resolve(ctx, pt)
}

func (s *service) GetPack(ctx context.Context, packID string) (*Pack, error) {
	return s.store.GetPack(ctx, packID)
}

func (s *service) ListPacksForUser(ctx context.Context, userID string) ([]Pack, error) {
	return s.store.ListPacksByUser(ctx, userID)
}
