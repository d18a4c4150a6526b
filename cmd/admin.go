package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

type seedFile struct {
	Designs []seedDesign `toml:"design"`
}

type seedDesign struct {
	SeasonID    string       `toml:"season_id"`
	DesignID    string       `toml:"design_id"`
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	ImageURL    string       `toml:"image_url"`
	Artist      string       `toml:"artist"`
	Rarities    []seedRarity `toml:"rarity"`
}

type seedRarity struct {
	ID         string `toml:"id"`
	Name       string `toml:"name"`
	FrameURL   string `toml:"frame_url"`
	Color      string `toml:"color"`
	Cap        int    `toml:"cap"`
	Class      string `toml:"class"`
	LowestTier bool   `toml:"lowest_tier"`
}

func (d seedDesign) toDomain() (packs.CardDesign, error) {
	if d.SeasonID == "" || d.DesignID == "" {
		return packs.CardDesign{}, fmt.Errorf("design %q: season_id and design_id are required", d.DesignID)
	}
	out := packs.CardDesign{
		SeasonID:        d.SeasonID,
		DesignID:        d.DesignID,
		CardName:        d.Name,
		CardDescription: d.Description,
		ImageURL:        d.ImageURL,
		ArtistName:      d.Artist,
	}
	for _, r := range d.Rarities {
		class, err := packs.ParseRarityClass(r.Class)
		if err != nil {
			return packs.CardDesign{}, fmt.Errorf("design %s: %w", d.DesignID, err)
		}
		if r.Cap < 1 {
			return packs.CardDesign{}, fmt.Errorf("design %s rarity %s: cap must be at least 1", d.DesignID, r.ID)
		}
		out.RarityDetails = append(out.RarityDetails, packs.RarityDetail{
			RarityID:     r.ID,
			RarityName:   r.Name,
			FrameURL:     r.FrameURL,
			Color:        r.Color,
			Cap:          r.Cap,
			Class:        class,
			IsLowestTier: r.LowestTier,
		})
	}
	return out, nil
}

func loadSeedFile(path string) ([]packs.CardDesign, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var f seedFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	designs := make([]packs.CardDesign, 0, len(f.Designs))
	for _, d := range f.Designs {
		design, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		designs = append(designs, design)
	}
	return designs, nil
}

func newSeedDesignsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-designs <file.toml>",
		Short: "Insert or update card designs from a TOML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			designs, err := loadSeedFile(args[0])
			if err != nil {
				return err
			}
			return app.run(cmd, func(ctx context.Context) error {
				for _, d := range designs {
					if err := app.Store.UpsertDesign(ctx, d); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d designs\n", len(designs))
				return nil
			})
		},
	}
}

// parseRanks reads "rarity=rank" pairs.
func parseRanks(args []string) ([]packs.RarityRank, error) {
	ranks := make([]packs.RarityRank, 0, len(args))
	for _, a := range args {
		id, rank, ok := strings.Cut(a, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid rank %q, want rarity=rank", a)
		}
		n, err := strconv.Atoi(rank)
		if err != nil {
			return nil, fmt.Errorf("invalid rank %q: %w", a, err)
		}
		ranks = append(ranks, packs.RarityRank{RarityID: id, Rank: n})
	}
	return ranks, nil
}

func newSetRanksCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-ranks <rarity=rank>...",
		Short: "Replace the rarity display ranking",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ranks, err := parseRanks(args)
			if err != nil {
				return err
			}
			return app.run(cmd, func(ctx context.Context) error {
				return app.Ranks.ReplaceRanks(ctx, ranks)
			})
		},
	}
}
