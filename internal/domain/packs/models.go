package packs

import (
	"fmt"
	"time"
)

// NoCardsOpenedRarityID marks a design for which no card has been opened yet.
const NoCardsOpenedRarityID = "no-cards-opened"

// ShitPackStamp is applied to every card of a fully opened pack whose cards are all lowest tier.
const ShitPackStamp = "shit-pack"

type PackCategory string

const (
	PackCategorySeason PackCategory = "season"
	PackCategoryCustom PackCategory = "custom"
)

// RarityClass ranks rarities that share the same cap. Higher wins.
type RarityClass int

const (
	RarityClassStandard RarityClass = iota
	RarityClassLegacy
	RarityClassFullArt
)

func (c RarityClass) String() string {
	switch c {
	case RarityClassLegacy:
		return "legacy"
	case RarityClassFullArt:
		return "full-art"
	default:
		return "standard"
	}
}

type RarityDetail struct {
	RarityID     string
	RarityName   string
	FrameURL     string
	Color        string
	Cap          int
	Class        RarityClass
	IsLowestTier bool
}

// BestRarity is the rarest instance ever opened for a design.
type BestRarity struct {
	RarityID    string
	RarityName  string
	FrameURL    string
	Color       string
	TotalOfType int
	Class       RarityClass
}

// Found reports whether any card has been opened for the design.
func (b *BestRarity) Found() bool {
	return b != nil && b.RarityID != "" && b.RarityID != NoCardsOpenedRarityID
}

type CardDesign struct {
	SeasonID        string
	DesignID        string
	CardName        string
	CardDescription string
	ImageURL        string
	ArtistName      string
	RarityDetails   []RarityDetail
	BestRarityFound *BestRarity
}

// Rarity returns the rarity detail with the given id.
func (d *CardDesign) Rarity(rarityID string) (RarityDetail, bool) {
	for _, r := range d.RarityDetails {
		if r.RarityID == rarityID {
			return r, true
		}
	}
	return RarityDetail{}, false
}

type TradeRecord struct {
	TradeID      string
	FromUserID   string
	FromUsername string
	ToUserID     string
	ToUsername   string
	CompletedAt  time.Time
}

type CardInstance struct {
	DesignID        string
	InstanceID      string
	SeasonID        string
	CardName        string
	CardDescription string
	ImageURL        string
	ArtistName      string
	RarityID        string
	RarityName      string
	FrameURL        string
	RarityColor     string
	RarityClass     RarityClass
	IsLowestTier    bool
	CardNumber      int
	TotalOfType     int
	UserID          string
	Username        string
	MinterID        string
	MinterUsername  string
	PackID          string
	OpenedAt        *time.Time
	MintedAt        time.Time
	TradeHistory    []TradeRecord
	Stamps          []string
}

// Opened reports whether the card has left its pack.
func (c *CardInstance) Opened() bool {
	return c.OpenedAt != nil
}

// PackCard is the lightweight summary of an instance stored inside a pack.
type PackCard struct {
	DesignID     string
	InstanceID   string
	CardName     string
	RarityID     string
	RarityName   string
	FrameURL     string
	RarityColor  string
	IsLowestTier bool
	CardNumber   int
	TotalOfType  int
	Opened       bool
	Stamps       []string
}

type Pack struct {
	PackID      string
	PackTypeID  string
	UserID      string
	Username    string
	CardDetails []PackCard
	Version     int
	CreatedAt   time.Time
}

// Assigned reports whether the pack has an owner.
func (p *Pack) Assigned() bool {
	return p.UserID != ""
}

// Entry returns the index of the card with the given instance id, or -1.
func (p *Pack) Entry(instanceID string) int {
	for i, c := range p.CardDetails {
		if c.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// AllOpened reports whether every entry in the pack is opened.
func (p *Pack) AllOpened() bool {
	for _, c := range p.CardDetails {
		if !c.Opened {
			return false
		}
	}
	return true
}

type User struct {
	UserID    string
	Username  string
	CardCount int
	PackCount int
	CreatedAt time.Time
}

// PackType describes which designs a pack draws from.
type PackType struct {
	PackTypeID string
	Name       string
	Category   PackCategory
	SeasonID   string
	DesignIDs  []string
	CardCount  int
}

// Candidate is one not-yet-issued (design, rarity, serial) slot.
type Candidate struct {
	DesignID    string
	RarityID    string
	CardNumber  int
	TotalOfType int
}

// CardPool is a read-time snapshot of designs and issued instances for a pack type.
type CardPool struct {
	Designs   []CardDesign
	Instances []CardInstance
}

// RarityRank is one row of the site-wide rarity ordering used for display.
type RarityRank struct {
	RarityID string
	Rank     int
}

// ParseRarityClass is the inverse of RarityClass.String. Empty means standard.
func ParseRarityClass(s string) (RarityClass, error) {
	switch s {
	case "", "standard":
		return RarityClassStandard, nil
	case "legacy":
		return RarityClassLegacy, nil
	case "full-art":
		return RarityClassFullArt, nil
	default:
		return RarityClassStandard, fmt.Errorf("unknown rarity class %q", s)
	}
}
