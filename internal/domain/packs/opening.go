package packs

import (
	"context"
	"fmt"
	"log/slog"
)

// OpenCard moves one card out of its pack. The instance, pack, owner counters and
// the design's best rarity change in a single transaction; the pack is deleted
// by the transaction that opens its last card.
func (s *service) OpenCard(ctx context.Context, packID, designID, instanceID string) (*CardInstance, error) {
	return retryOnConflict(s.maxRetries, func() (*CardInstance, error) {
		return s.openCard(ctx, packID, designID, instanceID)
	})
}

func (s *service) openCard(ctx context.Context, packID, designID, instanceID string) (*CardInstance, error) {
	inst, err := s.store.GetInstance(ctx, designID, instanceID)
	if err != nil {
		return nil, fmt.Errorf("card %s: %w", instanceID, err)
	}
	if inst.Opened() {
		return nil, fmt.Errorf("card %s: %w", instanceID, ErrAlreadyOpened)
	}
	if inst.PackID == "" || inst.PackID != packID {
		return nil, fmt.Errorf("card %s is not in pack %s: %w", instanceID, packID, ErrNotFound)
	}

	pack, err := s.store.GetPack(ctx, packID)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", packID, err)
	}
	idx := pack.Entry(instanceID)
	if idx < 0 {
		return nil, fmt.Errorf("card %s is not listed in pack %s: %w", instanceID, packID, ErrNotFound)
	}
	if pack.CardDetails[idx].Opened {
		return nil, fmt.Errorf("card %s in pack %s: %w", instanceID, packID, ErrAlreadyOpened)
	}
	if !pack.Assigned() {
		return nil, fmt.Errorf("pack %s: %w", packID, ErrUnassigned)
	}

	details := make([]PackCard, len(pack.CardDetails))
	copy(details, pack.CardDetails)
	details[idx].Opened = true

	deletePack := true
	lowestOnly := true
	for _, c := range details {
		if !c.Opened {
			deletePack = false
		}
		if !c.IsLowestTier {
			lowestOnly = false
		}
	}
	isShitPack := deletePack && lowestOnly

	design, err := s.store.GetDesign(ctx, designID)
	if err != nil {
		return nil, fmt.Errorf("design %s: %w", designID, err)
	}
	updateBest := IsBetter(inst.rarityCandidate(), design.BestRarityFound)

	now := s.now()
	open := OpenInstanceMutation{
		DesignID:   designID,
		InstanceID: instanceID,
		PackID:     packID,
		OpenedAt:   now,
	}
	if isShitPack {
		open.AddStamps = []string{ShitPackStamp}
	}

	tx := NewTransaction().Add(open)
	if isShitPack {
		for i, c := range details {
			if i == idx {
				continue
			}
			tx.Add(StampInstanceMutation{
				DesignID:   c.DesignID,
				InstanceID: c.InstanceID,
				Stamps:     []string{ShitPackStamp},
			})
		}
	}

	owner := inst.UserID
	if owner == "" {
		owner = pack.UserID
	}
	packDelta := 0
	if deletePack {
		packDelta = -1
	}
	if owner == pack.UserID {
		tx.Add(AdjustUserCountersMutation{UserID: owner, CardDelta: 1, PackDelta: packDelta})
	} else {
		tx.Add(AdjustUserCountersMutation{UserID: owner, CardDelta: 1})
		if packDelta != 0 {
			tx.Add(AdjustUserCountersMutation{UserID: pack.UserID, PackDelta: packDelta})
		}
	}

	if deletePack {
		tx.Add(DeletePackMutation{PackID: packID, ExpectedVersion: pack.Version})
	} else {
		tx.Add(PatchPackMutation{
			PackID:          packID,
			ExpectedVersion: pack.Version,
			UserID:          pack.UserID,
			Username:        pack.Username,
			CardDetails:     details,
		})
	}

	if updateBest {
		tx.Add(PatchBestRarityMutation{
			DesignID: designID,
			Expected: design.BestRarityFound,
			Best:     inst.bestRarity(),
		})
	}

	if err := s.store.Commit(ctx, tx); err != nil {
		return nil, err
	}

	opened := *inst
	opened.OpenedAt = &now
	opened.PackID = ""
	if isShitPack {
		opened.Stamps = append(opened.Stamps, ShitPackStamp)
	}

	slog.Info("Card opened",
		slog.String("type", "engine"),
		slog.String("pack_id", packID),
		slog.String("instance_id", instanceID),
		slog.String("user_id", owner),
		slog.Bool("pack_deleted", deletePack),
		slog.Bool("shit_pack", isShitPack),
		slog.Bool("best_rarity_updated", updateBest))

	return &opened, nil
}

// OpenPack opens every card still unopened in the pack, in display order.
func (s *service) OpenPack(ctx context.Context, packID string) ([]CardInstance, error) {
	pack, err := s.store.GetPack(ctx, packID)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", packID, err)
	}

	var opened []CardInstance
	for _, c := range pack.CardDetails {
		if c.Opened {
			continue
		}
		inst, err := s.OpenCard(ctx, packID, c.DesignID, c.InstanceID)
		if err != nil {
			if IsAlreadyOpened(err) {
				continue
			}
			return opened, err
		}
		opened = append(opened, *inst)
	}
	return opened, nil
}

// RecomputeBestRarity rebuilds a design's best rarity from every opened instance.
// It returns the stored value, or nil if no card of the design has been opened.
func (s *service) RecomputeBestRarity(ctx context.Context, designID string) (*BestRarity, error) {
	return retryOnConflict(s.maxRetries, func() (*BestRarity, error) {
		design, err := s.store.GetDesign(ctx, designID)
		if err != nil {
			return nil, fmt.Errorf("design %s: %w", designID, err)
		}
		instances, err := s.store.ListInstancesByDesigns(ctx, []string{designID})
		if err != nil {
			return nil, fmt.Errorf("failed to load instances for design %s: %w", designID, err)
		}

		best := BestOf(instances)
		if best == nil {
			return design.BestRarityFound, nil
		}
		current := design.BestRarityFound
		if current.Found() && current.RarityID == best.RarityID && current.TotalOfType == best.TotalOfType {
			return current, nil
		}

		tx := NewTransaction().Add(PatchBestRarityMutation{
			DesignID: designID,
			Expected: current,
			Best:     *best,
		})
		if err := s.store.Commit(ctx, tx); err != nil {
			return nil, fmt.Errorf("failed to store best rarity for design %s: %w", designID, err)
		}

		slog.Info("Best rarity recomputed",
			slog.String("type", "engine"),
			slog.String("design_id", designID),
			slog.String("rarity_id", best.RarityID),
			slog.Int("total_of_type", best.TotalOfType))
		return best, nil
	})
}
