package packs

import (
	"errors"
	"testing"
)

func candidates(n int) []Candidate {
	out := make([]Candidate, n)
	for i := range out {
		out[i] = Candidate{DesignID: "d1", RarityID: "common", CardNumber: i + 1, TotalOfType: n}
	}
	return out
}

func TestAllocator_Allocate_Empty(t *testing.T) {
	a := NewAllocator(1)
	_, _, err := a.Allocate(nil)
	if !errors.Is(err, ErrOutOfCards) {
		t.Errorf("Allocate() error = %v, want ErrOutOfCards", err)
	}
}

func TestAllocator_Draw_NoRepeats(t *testing.T) {
	a := NewAllocator(7)
	drawn, rest, err := a.Draw(candidates(10), 10)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if len(rest) != 0 {
		t.Errorf("Draw() left %d candidates, want 0", len(rest))
	}

	seen := make(map[int]bool)
	for _, c := range drawn {
		if seen[c.CardNumber] {
			t.Errorf("Draw() repeated serial %d", c.CardNumber)
		}
		seen[c.CardNumber] = true
	}
	if len(seen) != 10 {
		t.Errorf("Draw() returned %d distinct serials, want 10", len(seen))
	}
}

func TestAllocator_Draw_Errors(t *testing.T) {
	a := NewAllocator(7)
	if _, _, err := a.Draw(candidates(2), 3); !errors.Is(err, ErrOutOfCards) {
		t.Errorf("Draw() over capacity error = %v, want ErrOutOfCards", err)
	}
	if _, _, err := a.Draw(candidates(2), 0); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Draw() zero count error = %v, want ErrInvalidCount", err)
	}
}

func TestAllocator_Allocate_Uniform(t *testing.T) {
	a := NewAllocator(42)
	const rounds = 40000
	counts := make(map[int]int)
	for range rounds {
		c, _, err := a.Allocate(candidates(4))
		if err != nil {
			t.Fatalf("Allocate() error = %v", err)
		}
		counts[c.CardNumber]++
	}

	for n := 1; n <= 4; n++ {
		share := float64(counts[n]) / rounds
		if share < 0.22 || share > 0.28 {
			t.Errorf("serial %d drawn with share %.3f, want about 0.25", n, share)
		}
	}
}
