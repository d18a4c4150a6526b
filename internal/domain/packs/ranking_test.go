package packs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type rankingFunc func(ctx context.Context) ([]RarityRank, error)

func (f rankingFunc) RarityRanks(ctx context.Context) ([]RarityRank, error) {
	return f(ctx)
}

func cardIDs(cards []PackCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.InstanceID
	}
	return out
}

func packCards() []PackCard {
	return []PackCard{
		{InstanceID: "rare-1", RarityID: "rare", TotalOfType: 10},
		{InstanceID: "common-1", RarityID: "common", TotalOfType: 100},
		{InstanceID: "mythic-1", RarityID: "mythic", TotalOfType: 1},
		{InstanceID: "common-2", RarityID: "common", TotalOfType: 100},
	}
}

func TestRankingSorter_SortCards(t *testing.T) {
	tests := []struct {
		name   string
		source RankingSource
		want   []string
	}{
		{
			name: "No ranking source falls back to caps",
			want: []string{"common-1", "common-2", "rare-1", "mythic-1"},
		},
		{
			name: "Ranking source failure falls back to caps",
			source: rankingFunc(func(context.Context) ([]RarityRank, error) {
				return nil, errors.New("boom")
			}),
			want: []string{"common-1", "common-2", "rare-1", "mythic-1"},
		},
		{
			name: "Ranks decide order",
			source: rankingFunc(func(context.Context) ([]RarityRank, error) {
				return []RarityRank{{RarityID: "mythic", Rank: 0}, {RarityID: "common", Rank: 1}, {RarityID: "rare", Rank: 2}}, nil
			}),
			want: []string{"mythic-1", "common-1", "common-2", "rare-1"},
		},
		{
			name: "Ranked rarities come before unranked ones",
			source: rankingFunc(func(context.Context) ([]RarityRank, error) {
				return []RarityRank{{RarityID: "rare", Rank: 5}}, nil
			}),
			want: []string{"rare-1", "common-1", "common-2", "mythic-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRankingSorter(tt.source, 8)
			cards := packCards()
			s.SortCards(context.Background(), cards)
			got := cardIDs(cards)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("SortCards() = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestRankingSorter_CachesTable(t *testing.T) {
	calls := 0
	s := NewRankingSorter(rankingFunc(func(context.Context) ([]RarityRank, error) {
		calls++
		return []RarityRank{{RarityID: "common", Rank: 1}}, nil
	}), 8)

	ctx := context.Background()
	for range 3 {
		if rank, ok := s.Rank(ctx, "common"); !ok || rank != 1 {
			t.Fatalf("Rank() = %v, %v, want 1, true", rank, ok)
		}
	}
	if _, ok := s.Rank(ctx, "unknown"); ok {
		t.Errorf("Rank() of unknown rarity reported ok")
	}
	if calls != 1 {
		t.Errorf("ranking source called %d times, want 1", calls)
	}

	s.Invalidate()
	s.Rank(ctx, "common")
	if calls != 2 {
		t.Errorf("ranking source called %d times after Invalidate, want 2", calls)
	}
}

func TestRankingSorter_TableLargerThanCache(t *testing.T) {
	source := rankingFunc(func(context.Context) ([]RarityRank, error) {
		return []RarityRank{{RarityID: "mythic", Rank: 0}, {RarityID: "common", Rank: 1}, {RarityID: "rare", Rank: 2}}, nil
	})
	s := NewRankingSorter(source, 1)

	for range 3 {
		cards := packCards()
		s.SortCards(context.Background(), cards)
		got := cardIDs(cards)
		want := []string{"mythic-1", "common-1", "common-2", "rare-1"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("SortCards() = %v, want %v", got, want)
			}
		}
	}
}

func TestRankingSorter_ReloadDropsRemovedRarities(t *testing.T) {
	ranks := []RarityRank{{RarityID: "common", Rank: 1}, {RarityID: "rare", Rank: 2}}
	s := NewRankingSorter(rankingFunc(func(context.Context) ([]RarityRank, error) {
		return ranks, nil
	}), 8)

	ctx := context.Background()
	if _, ok := s.Rank(ctx, "rare"); !ok {
		t.Fatalf("Rank() of rare reported unranked")
	}

	ranks = []RarityRank{{RarityID: "common", Rank: 3}}
	s.Invalidate()

	if _, ok := s.Rank(ctx, "rare"); ok {
		t.Errorf("Rank() of removed rarity still ranked")
	}
	if rank, ok := s.Rank(ctx, "common"); !ok || rank != 3 {
		t.Errorf("Rank() = %v, %v, want 3, true", rank, ok)
	}
}

func TestRankingSorter_FailedReloadKeepsTable(t *testing.T) {
	fail := false
	s := NewRankingSorter(rankingFunc(func(context.Context) ([]RarityRank, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return []RarityRank{{RarityID: "common", Rank: 1}}, nil
	}), 8)

	ctx := context.Background()
	s.Rank(ctx, "common")

	fail = true
	s.mu.Lock()
	s.lastLoaded = time.Time{}
	s.mu.Unlock()

	if rank, ok := s.Rank(ctx, "common"); !ok || rank != 1 {
		t.Errorf("Rank() after failed reload = %v, %v, want 1, true", rank, ok)
	}
}
