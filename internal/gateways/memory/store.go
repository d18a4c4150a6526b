// Package memory is a map-backed packs.Store for tests and local runs.
// Commit is all-or-nothing and enforces the same conflict rules as the database store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

type slotKey struct {
	designID   string
	rarityID   string
	cardNumber int
}

type state struct {
	designs   map[string]packs.CardDesign
	instances map[string]packs.CardInstance
	slots     map[slotKey]string
	packs     map[string]packs.Pack
	users     map[string]packs.User
}

func (s *state) clone() *state {
	return &state{
		designs:   cloneMap(s.designs),
		instances: cloneMap(s.instances),
		slots:     cloneMap(s.slots),
		packs:     cloneMap(s.packs),
		users:     cloneMap(s.users),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type Store struct {
	mu      sync.RWMutex
	st      *state
	ranks   []packs.RarityRank
	commits int
}

var (
	_ packs.Store         = (*Store)(nil)
	_ packs.UserResolver  = (*Store)(nil)
	_ packs.RankingSource = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{st: &state{
		designs:   make(map[string]packs.CardDesign),
		instances: make(map[string]packs.CardInstance),
		slots:     make(map[slotKey]string),
		packs:     make(map[string]packs.Pack),
		users:     make(map[string]packs.User),
	}}
}

func instanceKey(designID, instanceID string) string {
	return designID + "/" + instanceID
}

// PutDesign seeds or replaces a design.
func (s *Store) PutDesign(d packs.CardDesign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.designs[d.DesignID] = cloneDesign(d)
}

// PutInstance seeds an instance outside of a transaction.
func (s *Store) PutInstance(inst packs.CardInstance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := instanceKey(inst.DesignID, inst.InstanceID)
	s.st.instances[key] = cloneInstance(inst)
	s.st.slots[slotKey{inst.DesignID, inst.RarityID, inst.CardNumber}] = key
}

// SetRarityRanks replaces the ranking table. A nil table makes RarityRanks fail.
func (s *Store) SetRarityRanks(ranks []packs.RarityRank) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranks = slices.Clone(ranks)
}

// Commits returns how many transactions were applied.
func (s *Store) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// User returns a stored user.
func (s *Store) User(userID string) (packs.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.st.users[userID]
	return u, ok
}

// Instances returns every stored instance ordered by instance id.
func (s *Store) Instances() []packs.CardInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]packs.CardInstance, 0, len(s.st.instances))
	for _, inst := range s.st.instances {
		out = append(out, cloneInstance(inst))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstanceID < out[j].InstanceID })
	return out
}

// Packs returns every stored pack ordered by pack id.
func (s *Store) Packs() []packs.Pack {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]packs.Pack, 0, len(s.st.packs))
	for _, p := range s.st.packs {
		out = append(out, clonePack(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PackID < out[j].PackID })
	return out
}

func (s *Store) ListDesignsBySeason(_ context.Context, seasonID string) ([]packs.CardDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []packs.CardDesign
	for _, d := range s.st.designs {
		if d.SeasonID == seasonID {
			out = append(out, cloneDesign(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DesignID < out[j].DesignID })
	return out, nil
}

func (s *Store) ListDesignsByIDs(_ context.Context, designIDs []string) ([]packs.CardDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []packs.CardDesign
	for _, id := range designIDs {
		if d, ok := s.st.designs[id]; ok {
			out = append(out, cloneDesign(d))
		}
	}
	return out, nil
}

func (s *Store) ListInstancesBySeason(_ context.Context, seasonID string) ([]packs.CardInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []packs.CardInstance
	for _, inst := range s.st.instances {
		if inst.SeasonID == seasonID {
			out = append(out, cloneInstance(inst))
		}
	}
	return out, nil
}

func (s *Store) ListInstancesByDesigns(_ context.Context, designIDs []string) ([]packs.CardInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []packs.CardInstance
	for _, inst := range s.st.instances {
		if slices.Contains(designIDs, inst.DesignID) {
			out = append(out, cloneInstance(inst))
		}
	}
	return out, nil
}

func (s *Store) GetDesign(_ context.Context, designID string) (*packs.CardDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.st.designs[designID]
	if !ok {
		return nil, packs.ErrNotFound
	}
	d = cloneDesign(d)
	return &d, nil
}

func (s *Store) GetInstance(_ context.Context, designID, instanceID string) (*packs.CardInstance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.st.instances[instanceKey(designID, instanceID)]
	if !ok {
		return nil, packs.ErrNotFound
	}
	inst = cloneInstance(inst)
	return &inst, nil
}

func (s *Store) GetPack(_ context.Context, packID string) (*packs.Pack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.st.packs[packID]
	if !ok {
		return nil, packs.ErrNotFound
	}
	p = clonePack(p)
	return &p, nil
}

func (s *Store) ListPacksByUser(_ context.Context, userID string) ([]packs.Pack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []packs.Pack
	for _, p := range s.st.packs {
		if p.UserID == userID {
			out = append(out, clonePack(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].PackID < out[j].PackID
	})
	return out, nil
}

func (s *Store) GetOrCreateUser(_ context.Context, userID, username string) (*packs.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.st.users[userID]
	if !ok {
		u = packs.User{UserID: userID, Username: username, CreatedAt: time.Now()}
	} else if username != "" {
		u.Username = username
	}
	s.st.users[userID] = u
	return &u, nil
}

func (s *Store) RarityRanks(context.Context) ([]packs.RarityRank, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ranks == nil {
		return nil, fmt.Errorf("rarity ranking: %w", packs.ErrNotFound)
	}
	return slices.Clone(s.ranks), nil
}

// Commit applies tx to a copy of the state and swaps it in only if every mutation succeeded.
func (s *Store) Commit(ctx context.Context, tx *packs.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	for i, m := range tx.Mutations {
		if err := next.apply(m); err != nil {
			return fmt.Errorf("mutation %d (%s %s): %w", i, m.Kind(), m.Entity(), err)
		}
	}
	s.st = next
	s.commits++
	return nil
}

func (s *state) apply(m packs.Mutation) error {
	switch m := m.(type) {
	case packs.CreatePackMutation:
		if _, ok := s.packs[m.Pack.PackID]; ok {
			return packs.ErrPackIDTaken
		}
		s.packs[m.Pack.PackID] = clonePack(m.Pack)

	case packs.CreateInstanceMutation:
		inst := m.Instance
		key := instanceKey(inst.DesignID, inst.InstanceID)
		slot := slotKey{inst.DesignID, inst.RarityID, inst.CardNumber}
		if _, ok := s.instances[key]; ok {
			return packs.ErrConflict
		}
		if _, ok := s.slots[slot]; ok {
			return packs.ErrConflict
		}
		s.instances[key] = cloneInstance(inst)
		s.slots[slot] = key

	case packs.OpenInstanceMutation:
		key := instanceKey(m.DesignID, m.InstanceID)
		inst, ok := s.instances[key]
		if !ok {
			return packs.ErrNotFound
		}
		if inst.OpenedAt != nil || inst.PackID != m.PackID {
			return packs.ErrConflict
		}
		openedAt := m.OpenedAt
		inst.OpenedAt = &openedAt
		inst.PackID = ""
		inst.Stamps = append(slices.Clone(inst.Stamps), m.AddStamps...)
		s.instances[key] = inst

	case packs.StampInstanceMutation:
		key := instanceKey(m.DesignID, m.InstanceID)
		inst, ok := s.instances[key]
		if !ok {
			return packs.ErrNotFound
		}
		inst.Stamps = append(slices.Clone(inst.Stamps), m.Stamps...)
		s.instances[key] = inst

	case packs.AssignInstanceMutation:
		key := instanceKey(m.DesignID, m.InstanceID)
		inst, ok := s.instances[key]
		if !ok {
			return packs.ErrNotFound
		}
		if inst.OpenedAt != nil {
			return packs.ErrConflict
		}
		inst.UserID = m.UserID
		inst.Username = m.Username
		if inst.MinterID == "" {
			inst.MinterID = m.UserID
			inst.MinterUsername = m.Username
		}
		s.instances[key] = inst

	case packs.DeleteInstanceMutation:
		key := instanceKey(m.DesignID, m.InstanceID)
		inst, ok := s.instances[key]
		if !ok {
			return packs.ErrNotFound
		}
		if inst.PackID != m.PackID {
			return packs.ErrConflict
		}
		delete(s.instances, key)
		delete(s.slots, slotKey{inst.DesignID, inst.RarityID, inst.CardNumber})

	case packs.PatchPackMutation:
		p, ok := s.packs[m.PackID]
		if !ok {
			return packs.ErrNotFound
		}
		if p.Version != m.ExpectedVersion {
			return packs.ErrConflict
		}
		if len(m.CardDetails) != len(p.CardDetails) {
			return fmt.Errorf("pack %s has %d cards, patch has %d", m.PackID, len(p.CardDetails), len(m.CardDetails))
		}
		p.UserID = m.UserID
		p.Username = m.Username
		p.CardDetails = cloneCards(m.CardDetails)
		p.Version++
		s.packs[m.PackID] = p

	case packs.DeletePackMutation:
		p, ok := s.packs[m.PackID]
		if !ok {
			return packs.ErrNotFound
		}
		if p.Version != m.ExpectedVersion {
			return packs.ErrConflict
		}
		delete(s.packs, m.PackID)

	case packs.AdjustUserCountersMutation:
		u, ok := s.users[m.UserID]
		if !ok {
			return fmt.Errorf("user %s: %w", m.UserID, packs.ErrNotFound)
		}
		u.CardCount += m.CardDelta
		u.PackCount += m.PackDelta
		s.users[m.UserID] = u

	case packs.PatchBestRarityMutation:
		d, ok := s.designs[m.DesignID]
		if !ok {
			return packs.ErrNotFound
		}
		if !sameBest(d.BestRarityFound, m.Expected) {
			return packs.ErrConflict
		}
		best := m.Best
		d.BestRarityFound = &best
		s.designs[m.DesignID] = d

	default:
		return fmt.Errorf("unsupported mutation %T", m)
	}
	return nil
}

func sameBest(a, b *packs.BestRarity) bool {
	if !a.Found() || !b.Found() {
		return a.Found() == b.Found()
	}
	return a.RarityID == b.RarityID && a.TotalOfType == b.TotalOfType
}

func cloneDesign(d packs.CardDesign) packs.CardDesign {
	d.RarityDetails = slices.Clone(d.RarityDetails)
	if d.BestRarityFound != nil {
		best := *d.BestRarityFound
		d.BestRarityFound = &best
	}
	return d
}

func cloneInstance(inst packs.CardInstance) packs.CardInstance {
	inst.Stamps = slices.Clone(inst.Stamps)
	inst.TradeHistory = slices.Clone(inst.TradeHistory)
	if inst.OpenedAt != nil {
		t := *inst.OpenedAt
		inst.OpenedAt = &t
	}
	return inst
}

func clonePack(p packs.Pack) packs.Pack {
	p.CardDetails = cloneCards(p.CardDetails)
	return p
}

func cloneCards(cards []packs.PackCard) []packs.PackCard {
	out := make([]packs.PackCard, len(cards))
	for i, c := range cards {
		c.Stamps = slices.Clone(c.Stamps)
		out[i] = c
	}
	return out
}
