package packs

import "fmt"

// InstanceID names a card instance. It is the uniqueness key of a serial within a design's rarity.
func InstanceID(seasonID, designID, rarityID string, cardNumber int) string {
	return fmt.Sprintf("%s-%s-%s-%d", seasonID, designID, rarityID, cardNumber)
}

// PackID names a new pack. Unassigned packs use "none" as the owner part.
func PackID(userID string, timestamp int64) string {
	if userID == "" {
		userID = "none"
	}
	return fmt.Sprintf("pack-%s-%d", userID, timestamp)
}
