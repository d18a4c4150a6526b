package models

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/packengine/internal/domain/packs"
)

type PackCard struct {
	DesignID     string   `json:"design_id"`
	InstanceID   string   `json:"instance_id"`
	CardName     string   `json:"card_name"`
	RarityID     string   `json:"rarity_id"`
	RarityName   string   `json:"rarity_name"`
	FrameURL     string   `json:"frame_url,omitempty"`
	RarityColor  string   `json:"rarity_color,omitempty"`
	IsLowestTier bool     `json:"is_lowest_tier"`
	CardNumber   int      `json:"card_number"`
	TotalOfType  int      `json:"total_of_type"`
	Opened       bool     `json:"opened"`
	Stamps       []string `json:"stamps,omitempty"`
}

type Pack struct {
	bun.BaseModel `bun:"table:packs,alias:p"`

	PackID      string     `bun:"pack_id,pk"`
	PackTypeID  string     `bun:"pack_type_id,notnull"`
	UserID      string     `bun:"user_id,notnull"`
	Username    string     `bun:"username,notnull"`
	CardDetails []PackCard `bun:"card_details,type:jsonb,notnull"`
	Version     int        `bun:"version,notnull"`
	CreatedAt   time.Time  `bun:"created_at,notnull"`
}

func (p *Pack) ToDomain() packs.Pack {
	out := packs.Pack{
		PackID:      p.PackID,
		PackTypeID:  p.PackTypeID,
		UserID:      p.UserID,
		Username:    p.Username,
		CardDetails: make([]packs.PackCard, len(p.CardDetails)),
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
	}
	for i, c := range p.CardDetails {
		out.CardDetails[i] = packs.PackCard(c)
	}
	return out
}

func PackFromDomain(p packs.Pack) *Pack {
	return &Pack{
		PackID:      p.PackID,
		PackTypeID:  p.PackTypeID,
		UserID:      p.UserID,
		Username:    p.Username,
		CardDetails: PackCardsFromDomain(p.CardDetails),
		Version:     p.Version,
		CreatedAt:   p.CreatedAt,
	}
}

func PackCardsFromDomain(cards []packs.PackCard) []PackCard {
	out := make([]PackCard, len(cards))
	for i, c := range cards {
		out[i] = PackCard(c)
	}
	return out
}
