package packs

// RarityCandidate is the part of an opened instance the best-rarity comparison needs.
type RarityCandidate struct {
	RarityID    string
	TotalOfType int
	Class       RarityClass
}

// IsBetter reports whether candidate should replace current as a design's best rarity.
// Lower totalOfType wins; on equal totals the higher class wins (full-art, then legacy).
// A nil or not-found current is always beaten.
func IsBetter(candidate RarityCandidate, current *BestRarity) bool {
	if !current.Found() {
		return true
	}
	if candidate.RarityID == current.RarityID && candidate.TotalOfType == current.TotalOfType {
		return false
	}
	if candidate.TotalOfType != current.TotalOfType {
		return candidate.TotalOfType < current.TotalOfType
	}
	return candidate.Class > current.Class
}

// BestOf recomputes the best rarity over a design's opened instances.
// It returns nil if none of them has been opened.
func BestOf(instances []CardInstance) *BestRarity {
	var best *BestRarity
	for i := range instances {
		inst := &instances[i]
		if !inst.Opened() {
			continue
		}
		if IsBetter(inst.rarityCandidate(), best) {
			b := inst.bestRarity()
			best = &b
		}
	}
	return best
}

func (c *CardInstance) rarityCandidate() RarityCandidate {
	return RarityCandidate{
		RarityID:    c.RarityID,
		TotalOfType: c.TotalOfType,
		Class:       c.RarityClass,
	}
}

func (c *CardInstance) bestRarity() BestRarity {
	return BestRarity{
		RarityID:    c.RarityID,
		RarityName:  c.RarityName,
		FrameURL:    c.FrameURL,
		Color:       c.RarityColor,
		TotalOfType: c.TotalOfType,
		Class:       c.RarityClass,
	}
}
