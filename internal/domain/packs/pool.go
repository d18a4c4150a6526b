package packs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Validate rejects pack types that cannot describe a pool.
func (pt PackType) Validate() error {
	switch pt.Category {
	case PackCategorySeason:
		if pt.SeasonID == "" {
			return fmt.Errorf("%w: season pack type %q has no season id", ErrConfiguration, pt.PackTypeID)
		}
	case PackCategoryCustom:
		if len(pt.DesignIDs) == 0 {
			return fmt.Errorf("%w: custom pack type %q has no designs", ErrConfiguration, pt.PackTypeID)
		}
	default:
		return fmt.Errorf("%w: pack type %q has unknown category %q", ErrConfiguration, pt.PackTypeID, pt.Category)
	}
	return nil
}

type PoolResolver struct {
	store Store
}

func NewPoolResolver(store Store) *PoolResolver {
	return &PoolResolver{store: store}
}

// Resolve loads every design in scope of the pack type and every instance ever issued for them.
func (r *PoolResolver) Resolve(ctx context.Context, pt PackType) (*CardPool, error) {
	if err := pt.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	pool := &CardPool{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if pt.Category == PackCategorySeason {
			pool.Designs, err = r.store.ListDesignsBySeason(gctx, pt.SeasonID)
		} else {
			pool.Designs, err = r.store.ListDesignsByIDs(gctx, pt.DesignIDs)
		}
		if err != nil {
			return fmt.Errorf("failed to load designs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pt.Category == PackCategorySeason {
			pool.Instances, err = r.store.ListInstancesBySeason(gctx, pt.SeasonID)
		} else {
			pool.Instances, err = r.store.ListInstancesByDesigns(gctx, pt.DesignIDs)
		}
		if err != nil {
			return fmt.Errorf("failed to load instances: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(pool.Designs) == 0 {
		return nil, outOfCards(pt.PackTypeID, ReasonNoDesigns)
	}

	slog.Debug("Card pool resolved",
		slog.String("type", "engine"),
		slog.String("pack_type", pt.PackTypeID),
		slog.Int("designs", len(pool.Designs)),
		slog.Int("instances", len(pool.Instances)),
		slog.Duration("took", time.Since(start)))

	return pool, nil
}

type slotKey struct {
	designID   string
	rarityID   string
	cardNumber int
}

// Remaining lists every (design, rarity, serial) slot of the pool that has not been issued.
func (p *CardPool) Remaining() []Candidate {
	issued := make(map[slotKey]int, len(p.Instances))
	for _, inst := range p.Instances {
		issued[slotKey{inst.DesignID, inst.RarityID, inst.CardNumber}]++
	}

	possible := 0
	for _, d := range p.Designs {
		for _, r := range d.RarityDetails {
			possible += max(r.Cap, 0)
		}
	}

	remaining := make([]Candidate, 0, max(possible-len(p.Instances), 0))
	for _, d := range p.Designs {
		for _, r := range d.RarityDetails {
			for n := 1; n <= r.Cap; n++ {
				key := slotKey{d.DesignID, r.RarityID, n}
				if issued[key] > 0 {
					issued[key]--
					continue
				}
				remaining = append(remaining, Candidate{
					DesignID:    d.DesignID,
					RarityID:    r.RarityID,
					CardNumber:  n,
					TotalOfType: r.Cap,
				})
			}
		}
	}
	return remaining
}

// Design returns the design with the given id from the snapshot.
func (p *CardPool) Design(designID string) (*CardDesign, bool) {
	for i := range p.Designs {
		if p.Designs[i].DesignID == designID {
			return &p.Designs[i], true
		}
	}
	return nil, false
}

type RemainingCount struct {
	DesignID  string
	CardName  string
	RarityID  string
	Cap       int
	Remaining int
}

// Summary counts remaining serials per design and rarity, in design order.
func (p *CardPool) Summary() []RemainingCount {
	counts := make(map[[2]string]int)
	for _, c := range p.Remaining() {
		counts[[2]string{c.DesignID, c.RarityID}]++
	}

	var out []RemainingCount
	for _, d := range p.Designs {
		for _, r := range d.RarityDetails {
			out = append(out, RemainingCount{
				DesignID:  d.DesignID,
				CardName:  d.CardName,
				RarityID:  r.RarityID,
				Cap:       r.Cap,
				Remaining: counts[[2]string{d.DesignID, r.RarityID}],
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DesignID < out[j].DesignID
	})
	return out
}
