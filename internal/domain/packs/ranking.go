package packs

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	defaultRankingCacheSize = 64
	rankingRefreshInterval  = time.Minute
)

// RankingSorter orders pack cards for display using the site-wide rarity ranking.
// Without a ranking source, or for rarities missing from it, cards fall back to
// cap ordering: common (large cap) first, rarest last.
//
// The ranking table is held as one snapshot that each reload replaces whole.
// The LRU memoizes per-rarity lookups against the current snapshot.
type RankingSorter struct {
	source RankingSource
	cache  *lru.Cache

	mu         sync.Mutex
	table      map[string]int
	lastLoaded time.Time
}

func NewRankingSorter(source RankingSource, cacheSize int) *RankingSorter {
	if cacheSize <= 0 {
		cacheSize = defaultRankingCacheSize
	}
	cache, _ := lru.New(cacheSize)
	return &RankingSorter{
		source: source,
		cache:  cache,
	}
}

// Rank returns the display rank of a rarity, if the ranking table knows it.
func (s *RankingSorter) Rank(ctx context.Context, rarityID string) (int, bool) {
	if s == nil || s.source == nil {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.reloadIfStale(ctx)
	if v, ok := s.cache.Get(rarityID); ok {
		return v.(int), true
	}
	rank, ok := s.table[rarityID]
	if ok {
		s.cache.Add(rarityID, rank)
	}
	return rank, ok
}

// reloadIfStale swaps in a fresh ranking table. A failed load keeps the previous one.
// Callers hold s.mu.
func (s *RankingSorter) reloadIfStale(ctx context.Context) {
	if !s.lastLoaded.IsZero() && time.Since(s.lastLoaded) < rankingRefreshInterval {
		return
	}
	s.lastLoaded = time.Now()

	ranks, err := s.source.RarityRanks(ctx)
	if err != nil {
		slog.Warn("Rarity ranking unavailable, using cap ordering",
			slog.String("type", "engine"),
			slog.Any("error", err))
		return
	}

	table := make(map[string]int, len(ranks))
	for _, r := range ranks {
		table[r.RarityID] = r.Rank
	}
	s.table = table
	s.cache.Purge()
}

// Invalidate drops the loaded table so the next lookup reloads it.
func (s *RankingSorter) Invalidate() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLoaded = time.Time{}
	s.table = nil
	s.cache.Purge()
}

// SortCards orders cards in place for display.
func (s *RankingSorter) SortCards(ctx context.Context, cards []PackCard) {
	ranks := make(map[string]int)
	ranked := make(map[string]bool)
	for _, c := range cards {
		if _, seen := ranked[c.RarityID]; seen {
			continue
		}
		rank, ok := s.Rank(ctx, c.RarityID)
		ranks[c.RarityID] = rank
		ranked[c.RarityID] = ok
	}

	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		ra, rb := ranked[a.RarityID], ranked[b.RarityID]
		switch {
		case ra && rb && ranks[a.RarityID] != ranks[b.RarityID]:
			return ranks[a.RarityID] < ranks[b.RarityID]
		case ra != rb:
			return ra
		case a.TotalOfType != b.TotalOfType:
			return a.TotalOfType > b.TotalOfType
		default:
			return false
		}
	})
}
