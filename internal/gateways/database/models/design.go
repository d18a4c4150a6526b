package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

type RarityDetail struct {
	RarityID     string `json:"rarity_id"`
	RarityName   string `json:"rarity_name"`
	FrameURL     string `json:"frame_url,omitempty"`
	Color        string `json:"color,omitempty"`
	Cap          int    `json:"cap"`
	Class        int    `json:"class"`
	IsLowestTier bool   `json:"is_lowest_tier"`
}

type BestRarity struct {
	RarityID    string `json:"rarity_id"`
	RarityName  string `json:"rarity_name"`
	FrameURL    string `json:"frame_url,omitempty"`
	Color       string `json:"color,omitempty"`
	TotalOfType int    `json:"total_of_type"`
	Class       int    `json:"class"`
}

type CardDesign struct {
	bun.BaseModel `bun:"table:card_designs,alias:cd"`

	DesignID        string         `bun:"design_id,pk"`
	SeasonID        string         `bun:"season_id,notnull"`
	CardName        string         `bun:"card_name,notnull"`
	CardDescription string         `bun:"card_description,notnull"`
	ImageURL        string         `bun:"image_url,notnull"`
	ArtistName      string         `bun:"artist_name,notnull"`
	RarityDetails   []RarityDetail `bun:"rarity_details,type:jsonb,notnull"`
	BestRarityFound *BestRarity    `bun:"best_rarity_found,type:jsonb,nullzero"`
	CreatedAt       time.Time      `bun:"created_at,notnull,default:current_timestamp"`
}

func (d *CardDesign) ToDomain() packs.CardDesign {
	out := packs.CardDesign{
		SeasonID:        d.SeasonID,
		DesignID:        d.DesignID,
		CardName:        d.CardName,
		CardDescription: d.CardDescription,
		ImageURL:        d.ImageURL,
		ArtistName:      d.ArtistName,
		RarityDetails:   make([]packs.RarityDetail, len(d.RarityDetails)),
	}
	for i, r := range d.RarityDetails {
		out.RarityDetails[i] = packs.RarityDetail{
			RarityID:     r.RarityID,
			RarityName:   r.RarityName,
			FrameURL:     r.FrameURL,
			Color:        r.Color,
			Cap:          r.Cap,
			Class:        packs.RarityClass(r.Class),
			IsLowestTier: r.IsLowestTier,
		}
	}
	if d.BestRarityFound != nil {
		best := BestRarityToDomain(*d.BestRarityFound)
		out.BestRarityFound = &best
	}
	return out
}

func CardDesignFromDomain(d packs.CardDesign) *CardDesign {
	out := &CardDesign{
		DesignID:        d.DesignID,
		SeasonID:        d.SeasonID,
		CardName:        d.CardName,
		CardDescription: d.CardDescription,
		ImageURL:        d.ImageURL,
		ArtistName:      d.ArtistName,
		RarityDetails:   make([]RarityDetail, len(d.RarityDetails)),
	}
	for i, r := range d.RarityDetails {
		out.RarityDetails[i] = RarityDetail{
			RarityID:     r.RarityID,
			RarityName:   r.RarityName,
			FrameURL:     r.FrameURL,
			Color:        r.Color,
			Cap:          r.Cap,
			Class:        int(r.Class),
			IsLowestTier: r.IsLowestTier,
		}
	}
	if d.BestRarityFound != nil {
		best := BestRarityFromDomain(*d.BestRarityFound)
		out.BestRarityFound = &best
	}
	return out
}

func BestRarityToDomain(b BestRarity) packs.BestRarity {
	return packs.BestRarity{
		RarityID:    b.RarityID,
		RarityName:  b.RarityName,
		FrameURL:    b.FrameURL,
		Color:       b.Color,
		TotalOfType: b.TotalOfType,
		Class:       packs.RarityClass(b.Class),
	}
}

func BestRarityFromDomain(b packs.BestRarity) BestRarity {
	return BestRarity{
		RarityID:    b.RarityID,
		RarityName:  b.RarityName,
		FrameURL:    b.FrameURL,
		Color:       b.Color,
		TotalOfType: b.TotalOfType,
		Class:       int(b.Class),
	}
}
