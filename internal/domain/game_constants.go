package domain

import "time"

const (
	// MaxPlayers is the number of seats in an UNO match.
	MaxPlayers = 2
	// DefaultHandSize is the number of cards dealt to each player at game start.
	DefaultHandSize = 7
	// DefaultTurnTimeLimit is how long a player may hold the turn before a move is forced.
	DefaultTurnTimeLimit = 15 * time.Second
	// DefaultWinScore is the base score awarded to a winner, before opponents' hand values are added.
	DefaultWinScore = 100

	// DrawTwoPenalty and WildDrawFourPenalty are the forced-draw sizes of the penalty cards.
	DrawTwoPenalty      = 2
	WildDrawFourPenalty = 4

	// DeckSize is the size of the canonical UNO deck.
	DeckSize = 108
)
