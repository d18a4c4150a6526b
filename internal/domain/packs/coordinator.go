package packs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type CreatePackRequest struct {
	UserID   string
	Username string
	Count    int
	PackType PackType
}

type BatchResult struct {
	Packs  []*Pack
	Failed int
}

// CreatePack resolves a fresh pool snapshot, draws the cards and commits the pack.
// A commit that loses a slot to a concurrent creation is retried from a new snapshot.
func (s *service) CreatePack(ctx context.Context, req CreatePackRequest) (*Pack, error) {
	if req.Count < 1 {
		return nil, ErrInvalidCount
	}
	if err := req.PackType.Validate(); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		pool, err := s.resolver.Resolve(ctx, req.PackType)
		if err != nil {
			return nil, err
		}

		pack, err := s.CreatePackFromPool(ctx, req, pool)
		if err == nil {
			return pack, nil
		}
		if !errors.Is(err, ErrConflict) {
			return nil, err
		}

		lastErr = err
		slog.Warn("Pack creation conflicted, retrying with a fresh pool",
			slog.String("type", "engine"),
			slog.String("pack_type", req.PackType.PackTypeID),
			slog.String("user_id", req.UserID),
			slog.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("pack creation failed after %d attempts: %w", s.maxRetries+1, lastErr)
}

// CreatePackFromPool draws from an already resolved pool and commits once.
// It returns ErrConflict if a drawn slot was taken since the pool was read.
func (s *service) CreatePackFromPool(ctx context.Context, req CreatePackRequest, pool *CardPool) (*Pack, error) {
	if req.Count < 1 {
		return nil, ErrInvalidCount
	}

	ptID := req.PackType.PackTypeID
	remaining := pool.Remaining()
	if len(remaining) == 0 {
		return nil, outOfCards(ptID, ReasonNoCardsLeft)
	}
	if len(remaining) < req.Count {
		return nil, outOfCards(ptID, ReasonNotEnoughCards)
	}

	drawn, _, err := s.allocator.Draw(remaining, req.Count)
	if err != nil {
		return nil, outOfCards(ptID, ReasonNotEnoughCards)
	}

	now := s.now()
	pack := &Pack{
		PackTypeID:  ptID,
		UserID:      req.UserID,
		Username:    req.Username,
		CardDetails: make([]PackCard, 0, len(drawn)),
		Version:     1,
		CreatedAt:   now,
	}

	instances := make([]CardInstance, 0, len(drawn))
	for _, c := range drawn {
		design, ok := pool.Design(c.DesignID)
		if !ok {
			return nil, outOfCards(ptID, ReasonDesignNotFound)
		}
		rarity, ok := design.Rarity(c.RarityID)
		if !ok {
			return nil, outOfCards(ptID, ReasonRarityNotFound)
		}
		inst := mint(design, rarity, c, req, now)
		instances = append(instances, inst)
		pack.CardDetails = append(pack.CardDetails, summarize(&inst))
	}
	s.sorter.SortCards(ctx, pack.CardDetails)

	if req.UserID != "" {
		if _, err := s.users.GetOrCreateUser(ctx, req.UserID, req.Username); err != nil {
			return nil, fmt.Errorf("failed to resolve user %s: %w", req.UserID, err)
		}
	}

	// A taken pack id only costs a new id; the drawn slots are still valid.
	for attempt := 0; ; attempt++ {
		pack.PackID = PackID(req.UserID, s.packTimestamp())

		tx := NewTransaction().Add(CreatePackMutation{Pack: *pack})
		for _, inst := range instances {
			inst.PackID = pack.PackID
			tx.Add(CreateInstanceMutation{Instance: inst})
		}
		if req.UserID != "" {
			tx.Add(AdjustUserCountersMutation{UserID: req.UserID, PackDelta: 1})
		}

		err := s.store.Commit(ctx, tx)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrPackIDTaken) || attempt >= s.maxRetries {
			return nil, err
		}
		slog.Debug("Pack id taken, issuing a new one",
			slog.String("type", "engine"),
			slog.String("pack_id", pack.PackID),
			slog.Int("attempt", attempt+1))
	}

	slog.Info("Pack created",
		slog.String("type", "engine"),
		slog.String("pack_id", pack.PackID),
		slog.String("pack_type", ptID),
		slog.String("user_id", req.UserID),
		slog.Int("cards", len(pack.CardDetails)))

	return pack, nil
}

// CreatePacksForUser creates packCount packs. Exhaustion does not stop the batch;
// it is reported once at the end with the first reason and the number of failed packs.
func (s *service) CreatePacksForUser(ctx context.Context, pt PackType, userID, username string, packCount int) (*BatchResult, error) {
	if packCount < 1 {
		return nil, ErrInvalidCount
	}
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	if pt.CardCount < 1 {
		return nil, fmt.Errorf("%w: pack type %q has no card count", ErrConfiguration, pt.PackTypeID)
	}

	req := CreatePackRequest{
		UserID:   userID,
		Username: username,
		Count:    pt.CardCount,
		PackType: pt,
	}

	result := &BatchResult{}
	var (
		mu       sync.Mutex
		firstOut *PackTypeIsOutOfCardsError
	)

	sem := semaphore.NewWeighted(int64(s.batchConcurrency))
	g, gctx := errgroup.WithContext(ctx)
	for range packCount {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			pack, err := s.CreatePack(gctx, req)

			mu.Lock()
			defer mu.Unlock()

			var out *PackTypeIsOutOfCardsError
			switch {
			case err == nil:
				result.Packs = append(result.Packs, pack)
			case errors.As(err, &out):
				result.Failed++
				if firstOut == nil {
					firstOut = out
				}
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	if result.Failed > 0 {
		slog.Warn("Some packs could not be created",
			slog.String("type", "engine"),
			slog.String("pack_type", pt.PackTypeID),
			slog.String("user_id", userID),
			slog.Int("failed", result.Failed),
			slog.String("reason", firstOut.Reason))
		return result, &PackTypeIsOutOfCardsError{
			PackTypeID:  pt.PackTypeID,
			Reason:      firstOut.Reason,
			FailedCount: result.Failed,
		}
	}
	return result, nil
}

// AssignPack gives an unassigned pack to a user.
func (s *service) AssignPack(ctx context.Context, packID, userID, username string) (*Pack, error) {
	if userID == "" {
		return nil, fmt.Errorf("assign pack %s: empty user id", packID)
	}
	return retryOnConflict(s.maxRetries, func() (*Pack, error) {
		pack, err := s.store.GetPack(ctx, packID)
		if err != nil {
			return nil, err
		}
		if pack.Assigned() {
			return nil, ErrAlreadyAssigned
		}
		if _, err := s.users.GetOrCreateUser(ctx, userID, username); err != nil {
			return nil, fmt.Errorf("failed to resolve user %s: %w", userID, err)
		}

		tx := NewTransaction().Add(PatchPackMutation{
			PackID:          pack.PackID,
			ExpectedVersion: pack.Version,
			UserID:          userID,
			Username:        username,
			CardDetails:     pack.CardDetails,
		})
		for _, c := range pack.CardDetails {
			if c.Opened {
				continue
			}
			tx.Add(AssignInstanceMutation{
				DesignID:   c.DesignID,
				InstanceID: c.InstanceID,
				UserID:     userID,
				Username:   username,
			})
		}
		tx.Add(AdjustUserCountersMutation{UserID: userID, PackDelta: 1})

		if err := s.store.Commit(ctx, tx); err != nil {
			return nil, err
		}

		pack.UserID = userID
		pack.Username = username
		pack.Version++
		return pack, nil
	})
}

// DeletePack removes a pack and the instances still inside it, reverting the owner's pack count.
func (s *service) DeletePack(ctx context.Context, packID string) error {
	_, err := retryOnConflict(s.maxRetries, func() (*Pack, error) {
		pack, err := s.store.GetPack(ctx, packID)
		if err != nil {
			return nil, err
		}
		return pack, s.deletePack(ctx, pack)
	})
	return err
}

func (s *service) deletePack(ctx context.Context, pack *Pack) error {
	tx := NewTransaction()
	for _, c := range pack.CardDetails {
		if c.Opened {
			continue
		}
		tx.Add(DeleteInstanceMutation{
			DesignID:   c.DesignID,
			InstanceID: c.InstanceID,
			PackID:     pack.PackID,
		})
	}
	tx.Add(DeletePackMutation{PackID: pack.PackID, ExpectedVersion: pack.Version})
	if pack.Assigned() {
		tx.Add(AdjustUserCountersMutation{UserID: pack.UserID, PackDelta: -1})
	}

	if err := s.store.Commit(ctx, tx); err != nil {
		return err
	}

	slog.Info("Pack deleted",
		slog.String("type", "engine"),
		slog.String("pack_id", pack.PackID),
		slog.String("user_id", pack.UserID))
	return nil
}

// DeleteFirstPackForUser deletes the user's oldest pack.
func (s *service) DeleteFirstPackForUser(ctx context.Context, userID string) (*Pack, error) {
	return retryOnConflict(s.maxRetries, func() (*Pack, error) {
		packs, err := s.store.ListPacksByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(packs) == 0 {
			return nil, fmt.Errorf("user %s has no packs: %w", userID, ErrNotFound)
		}
		first := &packs[0]
		for i := range packs {
			if packs[i].CreatedAt.Before(first.CreatedAt) {
				first = &packs[i]
			}
		}
		if err := s.deletePack(ctx, first); err != nil {
			return nil, err
		}
		return first, nil
	})
}

func retryOnConflict[T any](maxRetries int, fn func() (T, error)) (T, error) {
	var (
		out T
		err error
	)
	for attempt := 0; attempt <= maxRetries; attempt++ {
		out, err = fn()
		if !errors.Is(err, ErrConflict) {
			return out, err
		}
	}
	return out, fmt.Errorf("gave up after %d attempts: %w", maxRetries+1, err)
}

func mint(design *CardDesign, rarity RarityDetail, c Candidate, req CreatePackRequest, now time.Time) CardInstance {
	return CardInstance{
		DesignID:        design.DesignID,
		InstanceID:      InstanceID(design.SeasonID, design.DesignID, rarity.RarityID, c.CardNumber),
		SeasonID:        design.SeasonID,
		CardName:        design.CardName,
		CardDescription: design.CardDescription,
		ImageURL:        design.ImageURL,
		ArtistName:      design.ArtistName,
		RarityID:        rarity.RarityID,
		RarityName:      rarity.RarityName,
		FrameURL:        rarity.FrameURL,
		RarityColor:     rarity.Color,
		RarityClass:     rarity.Class,
		IsLowestTier:    rarity.IsLowestTier,
		CardNumber:      c.CardNumber,
		TotalOfType:     c.TotalOfType,
		UserID:          req.UserID,
		Username:        req.Username,
		MinterID:        req.UserID,
		MinterUsername:  req.Username,
		MintedAt:        now,
	}
}

func summarize(inst *CardInstance) PackCard {
	return PackCard{
		DesignID:     inst.DesignID,
		InstanceID:   inst.InstanceID,
		CardName:     inst.CardName,
		RarityID:     inst.RarityID,
		RarityName:   inst.RarityName,
		FrameURL:     inst.FrameURL,
		RarityColor:  inst.RarityColor,
		IsLowestTier: inst.IsLowestTier,
		CardNumber:   inst.CardNumber,
		TotalOfType:  inst.TotalOfType,
	}
}
