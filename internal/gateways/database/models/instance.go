package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

type TradeRecord struct {
	TradeID      string    `json:"trade_id"`
	FromUserID   string    `json:"from_user_id"`
	FromUsername string    `json:"from_username"`
	ToUserID     string    `json:"to_user_id"`
	ToUsername   string    `json:"to_username"`
	CompletedAt  time.Time `json:"completed_at"`
}

// CardInstance is one minted serial. PackID is NULL once the card left its pack.
type CardInstance struct {
	bun.BaseModel `bun:"table:card_instances,alias:ci"`

	DesignID        string        `bun:"design_id,pk"`
	InstanceID      string        `bun:"instance_id,pk"`
	SeasonID        string        `bun:"season_id,notnull"`
	CardName        string        `bun:"card_name,notnull"`
	CardDescription string        `bun:"card_description,notnull"`
	ImageURL        string        `bun:"image_url,notnull"`
	ArtistName      string        `bun:"artist_name,notnull"`
	RarityID        string        `bun:"rarity_id,notnull"`
	RarityName      string        `bun:"rarity_name,notnull"`
	FrameURL        string        `bun:"frame_url,notnull"`
	RarityColor     string        `bun:"rarity_color,notnull"`
	RarityClass     int           `bun:"rarity_class,notnull"`
	IsLowestTier    bool          `bun:"is_lowest_tier,notnull"`
	CardNumber      int           `bun:"card_number,notnull"`
	TotalOfType     int           `bun:"total_of_type,notnull"`
	UserID          string        `bun:"user_id,notnull"`
	Username        string        `bun:"username,notnull"`
	MinterID        string        `bun:"minter_id,notnull"`
	MinterUsername  string        `bun:"minter_username,notnull"`
	PackID          *string       `bun:"pack_id"`
	OpenedAt        *time.Time    `bun:"opened_at"`
	MintedAt        time.Time     `bun:"minted_at,notnull"`
	TradeHistory    []TradeRecord `bun:"trade_history,type:jsonb,notnull"`
	Stamps          []string      `bun:"stamps,type:jsonb,notnull"`
}

func (c *CardInstance) ToDomain() packs.CardInstance {
	out := packs.CardInstance{
		DesignID:        c.DesignID,
		InstanceID:      c.InstanceID,
		SeasonID:        c.SeasonID,
		CardName:        c.CardName,
		CardDescription: c.CardDescription,
		ImageURL:        c.ImageURL,
		ArtistName:      c.ArtistName,
		RarityID:        c.RarityID,
		RarityName:      c.RarityName,
		FrameURL:        c.FrameURL,
		RarityColor:     c.RarityColor,
		RarityClass:     packs.RarityClass(c.RarityClass),
		IsLowestTier:    c.IsLowestTier,
		CardNumber:      c.CardNumber,
		TotalOfType:     c.TotalOfType,
		UserID:          c.UserID,
		Username:        c.Username,
		MinterID:        c.MinterID,
		MinterUsername:  c.MinterUsername,
		OpenedAt:        c.OpenedAt,
		MintedAt:        c.MintedAt,
		Stamps:          c.Stamps,
	}
	if c.PackID != nil {
		out.PackID = *c.PackID
	}
	for _, t := range c.TradeHistory {
		out.TradeHistory = append(out.TradeHistory, packs.TradeRecord{
			TradeID:      t.TradeID,
			FromUserID:   t.FromUserID,
			FromUsername: t.FromUsername,
			ToUserID:     t.ToUserID,
			ToUsername:   t.ToUsername,
			CompletedAt:  t.CompletedAt,
		})
	}
	return out
}

func CardInstanceFromDomain(c packs.CardInstance) *CardInstance {
	out := &CardInstance{
		DesignID:        c.DesignID,
		InstanceID:      c.InstanceID,
		SeasonID:        c.SeasonID,
		CardName:        c.CardName,
		CardDescription: c.CardDescription,
		ImageURL:        c.ImageURL,
		ArtistName:      c.ArtistName,
		RarityID:        c.RarityID,
		RarityName:      c.RarityName,
		FrameURL:        c.FrameURL,
		RarityColor:     c.RarityColor,
		RarityClass:     int(c.RarityClass),
		IsLowestTier:    c.IsLowestTier,
		CardNumber:      c.CardNumber,
		TotalOfType:     c.TotalOfType,
		UserID:          c.UserID,
		Username:        c.Username,
		MinterID:        c.MinterID,
		MinterUsername:  c.MinterUsername,
		OpenedAt:        c.OpenedAt,
		MintedAt:        c.MintedAt,
		TradeHistory:    []TradeRecord{},
		Stamps:          c.Stamps,
	}
	if c.PackID != "" {
		packID := c.PackID
		out.PackID = &packID
	}
	if out.Stamps == nil {
		out.Stamps = []string{}
	}
	for _, t := range c.TradeHistory {
		out.TradeHistory = append(out.TradeHistory, TradeRecord{
			TradeID:      t.TradeID,
			FromUserID:   t.FromUserID,
			FromUsername: t.FromUsername,
			ToUserID:     t.ToUserID,
			ToUsername:   t.ToUsername,
			CompletedAt:  t.CompletedAt,
		})
	}
	return out
}
