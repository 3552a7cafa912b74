package domain

import (
	"fmt"
	"time"
)

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseWaiting is the pre-game state where players can join.
	PhaseWaiting Phase = "waiting"
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseFinished is the terminal state after a win or forfeit.
	PhaseFinished Phase = "finished"
)

// Result tags a player's final outcome.
type Result string

const (
	ResultWinner Result = "winner"
	ResultLoser  Result = "loser"
)

// Reasons attached to final score records.
const (
	ReasonEmptyHand    = "empty_hand"
	ReasonOpponentLeft = "opponent_left"
)

// Player holds the domain state for a participant in the match.
type Player struct {
	UserID      string
	DisplayName string
	Hand        []Card
	CalledUno   bool
	Score       int
}

// ScoreRecord is the final result for a single player.
type ScoreRecord struct {
	UserID      string
	DisplayName string
	Score       int
	Result      Result
	Reason      string
}

// MatchState is the single mutable aggregate for one match.
//
// It is not safe for concurrent use. The host delivers events for a match
// one at a time, so callers must never mutate the same MatchState from two
// goroutines.
type MatchState struct {
	Phase   Phase
	GameID  string
	Players map[string]*Player
	// Order holds user ids in join order and defines turn order.
	Order []string

	// Deck is a draw stack; the top is the last element.
	Deck []Card
	// DiscardPile ends with TopCard while the game is active.
	DiscardPile []Card
	TopCard     Card
	// ActiveColor is the color in force: the top card's color, or the color
	// declared by whoever played a wild.
	ActiveColor Color
	// DeclaredColors makes a wild on top match its declared color.
	DeclaredColors bool

	Direction   int
	CurrentTurn string

	TurnStartedAt time.Time
	TurnTimeLimit time.Duration
	// LastAnnouncedSecond is the remaining-seconds value last reported by the timer, or -1.
	LastAnnouncedSecond int

	WinnerID    string
	FinalScores []ScoreRecord
}

// NewMatchState returns an empty match in the waiting phase.
func NewMatchState(turnTimeLimit time.Duration) *MatchState {
	if turnTimeLimit <= 0 {
		turnTimeLimit = DefaultTurnTimeLimit
	}
	return &MatchState{
		Phase:               PhaseWaiting,
		Players:             make(map[string]*Player, MaxPlayers),
		Direction:           1,
		TurnTimeLimit:       turnTimeLimit,
		LastAnnouncedSecond: -1,
	}
}

// ActiveTop is the card legality is checked against: the top card, recolored
// to the declared color when it is a wild and declared colors are enabled.
func (s *MatchState) ActiveTop() Card {
	top := s.TopCard
	if s.DeclaredColors && top.IsWild() && isSuitColor(s.ActiveColor) {
		top.Color = s.ActiveColor
	}
	return top
}

// DeclareColor sets the color in force after a wild.
func (s *MatchState) DeclareColor(color Color) error {
	if !isSuitColor(color) {
		return fmt.Errorf("%w: cannot declare color %q", ErrInvalidCard, color)
	}
	s.ActiveColor = color
	return nil
}

// CurrentPlayer returns the player holding the turn, or nil before the game starts.
func (s *MatchState) CurrentPlayer() *Player {
	if s.CurrentTurn == "" {
		return nil
	}
	return s.Players[s.CurrentTurn]
}
