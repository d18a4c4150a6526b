package packs

import (
	"testing"
	"time"
)

func TestInstanceID(t *testing.T) {
	tests := []struct {
		name       string
		seasonID   string
		designID   string
		rarityID   string
		cardNumber int
		want       string
	}{
		{
			name:       "First serial",
			seasonID:   "s1",
			designID:   "d1",
			rarityID:   "common",
			cardNumber: 1,
			want:       "s1-d1-common-1",
		},
		{
			name:       "Multi digit serial",
			seasonID:   "2024",
			designID:   "dragon",
			rarityID:   "full-art",
			cardNumber: 125,
			want:       "2024-dragon-full-art-125",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InstanceID(tt.seasonID, tt.designID, tt.rarityID, tt.cardNumber)
			if got != tt.want {
				t.Errorf("InstanceID() = %v, want %v", got, tt.want)
			}
			if again := InstanceID(tt.seasonID, tt.designID, tt.rarityID, tt.cardNumber); again != got {
				t.Errorf("InstanceID() not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestPackID(t *testing.T) {
	if got := PackID("alice", 1700000000000); got != "pack-alice-1700000000000" {
		t.Errorf("PackID() = %v", got)
	}
	if got := PackID("", 42); got != "pack-none-42" {
		t.Errorf("PackID() for unassigned = %v", got)
	}
}

func TestService_PackTimestampIncreases(t *testing.T) {
	clock := time.UnixMilli(1000)
	s := NewService(nil, nil, Options{Now: func() time.Time { return clock }})

	var got []int64
	for range 3 {
		got = append(got, s.packTimestamp())
	}
	clock = time.UnixMilli(500)
	got = append(got, s.packTimestamp())
	clock = time.UnixMilli(2000)
	got = append(got, s.packTimestamp())

	want := []int64{1000, 1001, 1002, 1003, 2000}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("packTimestamp() = %v, want %v", got, want)
		}
	}
}
