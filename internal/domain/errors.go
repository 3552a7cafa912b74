package domain

import "errors"

var (
	ErrMatchFull      = errors.New("match full")
	ErrAlreadyJoined  = errors.New("player already joined")
	ErrUnknownPlayer  = errors.New("player not found")
	ErrInvalidCard    = errors.New("invalid card")
	ErrEmptyDiscard   = errors.New("discard pile is empty")
	ErrDeckExhausted  = errors.New("deck and discard pile exhausted")
	ErrNoStartingCard = errors.New("no non-wild card available to start")
	// ErrCompositionViolated means cards were created or lost; it indicates a defect.
	ErrCompositionViolated = errors.New("deck composition violated")
)
