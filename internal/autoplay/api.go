package autoplay

import (
	"github.com/tech-vista/UnoGame/internal/domain"
)

// Move is the forced action chosen for a player whose turn timed out.
type Move struct {
	Draw  bool
	Index int
	Card  domain.Card
	// Color is the color to declare when Card is a wild.
	Color domain.Color
}

// Brain picks a forced move from a hand and the card in force.
type Brain interface {
	Decide(hand []domain.Card, top domain.Card) Move
}
