package packs

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

func testDesign() CardDesign {
	return CardDesign{
		SeasonID: "s1",
		DesignID: "d1",
		CardName: "Pog Champ",
		RarityDetails: []RarityDetail{
			{RarityID: "common", RarityName: "Common", Cap: 3, IsLowestTier: true},
			{RarityID: "rare", RarityName: "Rare", Cap: 1},
		},
	}
}

func sortCandidates(c []Candidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].RarityID != c[j].RarityID {
			return c[i].RarityID < c[j].RarityID
		}
		return c[i].CardNumber < c[j].CardNumber
	})
}

func TestCardPool_Remaining(t *testing.T) {
	tests := []struct {
		name      string
		instances []CardInstance
		want      []Candidate
	}{
		{
			name: "Nothing issued",
			want: []Candidate{
				{DesignID: "d1", RarityID: "common", CardNumber: 1, TotalOfType: 3},
				{DesignID: "d1", RarityID: "common", CardNumber: 2, TotalOfType: 3},
				{DesignID: "d1", RarityID: "common", CardNumber: 3, TotalOfType: 3},
				{DesignID: "d1", RarityID: "rare", CardNumber: 1, TotalOfType: 1},
			},
		},
		{
			name: "Issued serials are removed",
			instances: []CardInstance{
				{DesignID: "d1", RarityID: "common", CardNumber: 2},
				{DesignID: "d1", RarityID: "rare", CardNumber: 1},
			},
			want: []Candidate{
				{DesignID: "d1", RarityID: "common", CardNumber: 1, TotalOfType: 3},
				{DesignID: "d1", RarityID: "common", CardNumber: 3, TotalOfType: 3},
			},
		},
		{
			name: "Instances of other designs are ignored",
			instances: []CardInstance{
				{DesignID: "d2", RarityID: "common", CardNumber: 1},
				{DesignID: "d1", RarityID: "common", CardNumber: 1},
				{DesignID: "d1", RarityID: "common", CardNumber: 2},
				{DesignID: "d1", RarityID: "common", CardNumber: 3},
			},
			want: []Candidate{
				{DesignID: "d1", RarityID: "rare", CardNumber: 1, TotalOfType: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := &CardPool{Designs: []CardDesign{testDesign()}, Instances: tt.instances}
			got := pool.Remaining()
			sortCandidates(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Remaining() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCardPool_Remaining_Exhausted(t *testing.T) {
	pool := &CardPool{
		Designs: []CardDesign{testDesign()},
		Instances: []CardInstance{
			{DesignID: "d1", RarityID: "common", CardNumber: 1},
			{DesignID: "d1", RarityID: "common", CardNumber: 2},
			{DesignID: "d1", RarityID: "common", CardNumber: 3},
			{DesignID: "d1", RarityID: "rare", CardNumber: 1},
		},
	}
	if got := pool.Remaining(); len(got) != 0 {
		t.Errorf("Remaining() = %v, want empty", got)
	}
}

func TestCardPool_Summary(t *testing.T) {
	pool := &CardPool{
		Designs:   []CardDesign{testDesign()},
		Instances: []CardInstance{{DesignID: "d1", RarityID: "common", CardNumber: 1}},
	}
	want := []RemainingCount{
		{DesignID: "d1", CardName: "Pog Champ", RarityID: "common", Cap: 3, Remaining: 2},
		{DesignID: "d1", CardName: "Pog Champ", RarityID: "rare", Cap: 1, Remaining: 1},
	}
	if got := pool.Summary(); !reflect.DeepEqual(got, want) {
		t.Errorf("Summary() = %v, want %v", got, want)
	}
}

func TestPackType_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pt      PackType
		wantErr bool
	}{
		{name: "Season", pt: PackType{PackTypeID: "p", Category: PackCategorySeason, SeasonID: "s1"}},
		{name: "Season without id", pt: PackType{PackTypeID: "p", Category: PackCategorySeason}, wantErr: true},
		{name: "Custom", pt: PackType{PackTypeID: "p", Category: PackCategoryCustom, DesignIDs: []string{"d1"}}},
		{name: "Custom without designs", pt: PackType{PackTypeID: "p", Category: PackCategoryCustom}, wantErr: true},
		{name: "Unknown category", pt: PackType{PackTypeID: "p", Category: "promo", SeasonID: "s1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pt.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrConfiguration) {
				t.Errorf("Validate() error = %v, want ErrConfiguration", err)
			}
		})
	}
}
