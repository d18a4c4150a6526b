package packs

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"
)

// Allocator draws candidates uniformly at random. Safe for concurrent use.
type Allocator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewAllocator(seed int64) *Allocator {
	return &Allocator{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomAllocator seeds the allocator from crypto/rand, falling back to the clock.
func NewRandomAllocator() *Allocator {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return NewAllocator(time.Now().UnixNano())
	}
	return NewAllocator(int64(binary.LittleEndian.Uint64(b[:])))
}

// Allocate picks one candidate and returns it with the list minus that candidate.
// The input slice is reordered in place.
func (a *Allocator) Allocate(remaining []Candidate) (Candidate, []Candidate, error) {
	if len(remaining) == 0 {
		return Candidate{}, remaining, ErrOutOfCards
	}

	a.mu.Lock()
	i := a.rng.Intn(len(remaining))
	a.mu.Unlock()

	picked := remaining[i]
	last := len(remaining) - 1
	remaining[i] = remaining[last]
	return picked, remaining[:last], nil
}

// Draw allocates count candidates without repeating a slot.
func (a *Allocator) Draw(remaining []Candidate, count int) ([]Candidate, []Candidate, error) {
	if count < 1 {
		return nil, remaining, ErrInvalidCount
	}
	if len(remaining) < count {
		return nil, remaining, ErrOutOfCards
	}

	drawn := make([]Candidate, 0, count)
	for range count {
		var c Candidate
		var err error
		c, remaining, err = a.Allocate(remaining)
		if err != nil {
			return nil, remaining, err
		}
		drawn = append(drawn, c)
	}
	return drawn, remaining, nil
}
