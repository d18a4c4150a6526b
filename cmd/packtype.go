package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

type packTypeFlags struct {
	id        string
	name      string
	seasonID  string
	designIDs []string
	cardCount int
}

func (f *packTypeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "pack-type", "", "pack type id")
	cmd.Flags().StringVar(&f.name, "pack-name", "", "pack type display name")
	cmd.Flags().StringVar(&f.seasonID, "season", "", "draw from every design of this season")
	cmd.Flags().StringSliceVar(&f.designIDs, "designs", nil, "draw from these design ids")
	cmd.Flags().IntVar(&f.cardCount, "cards", 5, "cards per pack")
	cmd.MarkFlagsMutuallyExclusive("season", "designs")
}

func (f *packTypeFlags) packType() (packs.PackType, error) {
	pt := packs.PackType{
		PackTypeID: f.id,
		Name:       f.name,
		SeasonID:   f.seasonID,
		DesignIDs:  f.designIDs,
		CardCount:  f.cardCount,
	}
	switch {
	case f.seasonID != "":
		pt.Category = packs.PackCategorySeason
		if pt.PackTypeID == "" {
			pt.PackTypeID = "season-" + f.seasonID
		}
	case len(f.designIDs) > 0:
		pt.Category = packs.PackCategoryCustom
		if pt.PackTypeID == "" {
			pt.PackTypeID = "custom"
		}
	default:
		return pt, fmt.Errorf("%w: one of --season or --designs is required", packs.ErrConfiguration)
	}
	return pt, pt.Validate()
}
