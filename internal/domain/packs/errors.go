package packs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a pack, instance, design or user does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyOpened indicates the card was opened before. Idempotent callers may ignore it.
	ErrAlreadyOpened = errors.New("card already opened")

	// ErrConflict indicates a conditional write lost against a concurrent writer.
	ErrConflict = errors.New("conflicting write")

	// ErrConfiguration indicates an invalid pack type descriptor.
	ErrConfiguration = errors.New("invalid pack type configuration")

	// ErrInvalidCount indicates a card or pack count below one.
	ErrInvalidCount = errors.New("count must be at least 1")

	// ErrOutOfCards matches every *PackTypeIsOutOfCardsError.
	ErrOutOfCards = errors.New("pack type is out of cards")

	// ErrAlreadyAssigned indicates a pack already has an owner.
	ErrAlreadyAssigned = errors.New("pack already assigned")

	// ErrUnassigned indicates a pack has no owner and cannot be opened yet.
	ErrUnassigned = errors.New("pack has no owner")

	// ErrPackIDTaken indicates a new pack's id already exists. It matches ErrConflict.
	ErrPackIDTaken = fmt.Errorf("%w: pack id taken", ErrConflict)
)

// Exhaustion reasons.
const (
	ReasonNoDesigns      = "no designs found"
	ReasonNoCardsLeft    = "no cards remaining"
	ReasonNotEnoughCards = "not enough cards remaining"
	ReasonRarityNotFound = "no rarity found"
	ReasonDesignNotFound = "no design found"
)

// PackTypeIsOutOfCardsError is returned when the pool cannot satisfy a draw.
type PackTypeIsOutOfCardsError struct {
	PackTypeID  string
	Reason      string
	FailedCount int
}

func (e *PackTypeIsOutOfCardsError) Error() string {
	if e.FailedCount > 1 {
		return fmt.Sprintf("pack type %q is out of cards: %s (%d packs failed)", e.PackTypeID, e.Reason, e.FailedCount)
	}
	return fmt.Sprintf("pack type %q is out of cards: %s", e.PackTypeID, e.Reason)
}

func (e *PackTypeIsOutOfCardsError) Is(target error) bool {
	return target == ErrOutOfCards
}

func outOfCards(packTypeID, reason string) error {
	return &PackTypeIsOutOfCardsError{PackTypeID: packTypeID, Reason: reason, FailedCount: 1}
}

// IsAlreadyOpened reports whether err means the card had been opened earlier.
func IsAlreadyOpened(err error) bool {
	return errors.Is(err, ErrAlreadyOpened)
}
