package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

func TestPackTypeFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   packTypeFlags
		want    packs.PackType
		wantErr bool
	}{
		{
			name:  "Season",
			flags: packTypeFlags{seasonID: "s1", cardCount: 4},
			want:  packs.PackType{PackTypeID: "season-s1", Category: packs.PackCategorySeason, SeasonID: "s1", CardCount: 4},
		},
		{
			name:  "Custom",
			flags: packTypeFlags{id: "promo", designIDs: []string{"d1", "d2"}, cardCount: 1},
			want:  packs.PackType{PackTypeID: "promo", Category: packs.PackCategoryCustom, DesignIDs: []string{"d1", "d2"}, CardCount: 1},
		},
		{
			name:    "Neither",
			flags:   packTypeFlags{cardCount: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.packType()
			if tt.wantErr {
				require.ErrorIs(t, err, packs.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFilterPool(t *testing.T) {
	pool := &packs.CardPool{
		Designs: []packs.CardDesign{
			{DesignID: "d1", CardName: "Pog Champ"},
			{DesignID: "d2", CardName: "Kappa"},
		},
		Instances: []packs.CardInstance{
			{DesignID: "d1", RarityID: "common", CardNumber: 1},
			{DesignID: "d2", RarityID: "common", CardNumber: 1},
		},
	}

	got := filterPool(pool, "pogch")
	require.Len(t, got.Designs, 1)
	require.Equal(t, "d1", got.Designs[0].DesignID)
	require.Len(t, got.Instances, 1)
	require.Equal(t, "d1", got.Instances[0].DesignID)

	require.Empty(t, filterPool(pool, "zzz").Designs)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "designs.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[design]]
season_id = "s1"
design_id = "d1"
name = "Pog Champ"

[[design.rarity]]
id = "common"
cap = 3
lowest_tier = true

[[design.rarity]]
id = "rare"
cap = 1
class = "full-art"
`), 0o600))

	designs, err := loadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	require.Equal(t, "Pog Champ", designs[0].CardName)
	require.Equal(t, []packs.RarityDetail{
		{RarityID: "common", Cap: 3, IsLowestTier: true},
		{RarityID: "rare", Cap: 1, Class: packs.RarityClassFullArt},
	}, designs[0].RarityDetails)
}

func TestParseRanks(t *testing.T) {
	ranks, err := parseRanks([]string{"mythic=0", "common=3"})
	require.NoError(t, err)
	require.Equal(t, []packs.RarityRank{{RarityID: "mythic", Rank: 0}, {RarityID: "common", Rank: 3}}, ranks)

	_, err = parseRanks([]string{"mythic"})
	require.Error(t, err)
	_, err = parseRanks([]string{"mythic=first"})
	require.Error(t, err)
}
