package app

import (
	"time"

	"github.com/tech-vista/UnoGame/internal/domain"
)

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventPlayerJoined    EventKind = "player_joined"
	EventPlayerLeft      EventKind = "player_left"
	EventGameStarted     EventKind = "game_started"
	EventGameState       EventKind = "game_state"
	EventPlayerHand      EventKind = "player_hand"
	EventCardPlayed      EventKind = "card_played"
	EventCardDrawn       EventKind = "card_drawn"
	EventPlayerCalledUno EventKind = "player_called_uno"
	EventAutoPlay        EventKind = "auto_play"
	EventAutoDraw        EventKind = "auto_draw"
	EventTimerUpdate     EventKind = "timer_update"
	EventGameEnded       EventKind = "game_ended"
	EventPlayCardError   EventKind = "play_card_error"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// PlayerJoinedPayload announces a newly registered player.
type PlayerJoinedPayload struct {
	UserID      string
	DisplayName string
	PlayerCount int
}

// PlayerLeftPayload announces a player leaving the match.
type PlayerLeftPayload struct {
	UserID      string
	DisplayName string
	PlayerCount int
}

// GameStartedPayload is sent once when both seats are filled and the cards are dealt.
type GameStartedPayload struct {
	GameID          string
	FirstTurnUserID string
	TopCard         domain.Card
	PlayerOrder     []string
}

// PlayerView is one player's slice of a full state snapshot.
type PlayerView struct {
	UserID      string
	DisplayName string
	Hand        []domain.Card
	CalledUno   bool
	Score       int
	LegalMoves  []int
}

// GameStatePayload is the full match snapshot, every hand included.
type GameStatePayload struct {
	GameID        string
	Phase         domain.Phase
	TopCard       domain.Card
	ActiveColor   domain.Color
	HasTopCard    bool
	Direction     int
	CurrentTurn   string
	DeckCount     int
	DiscardCount  int
	TurnTimeLimit time.Duration
	TurnStartedAt time.Time
	Players       []PlayerView
	WinnerID      string
	FinalScores   []domain.ScoreRecord
}

// PlayerHandPayload is one player's own hand and legal moves, sent only to that player.
type PlayerHandPayload struct {
	UserID     string
	Hand       []domain.Card
	LegalMoves []int
}

// CardPlayedPayload describes a card leaving a hand for the discard pile and any penalty it caused.
type CardPlayedPayload struct {
	UserID         string
	Card           domain.Card
	ActiveColor    domain.Color
	HandSize       int
	NextTurnUserID string
	PenaltyUserID  string
	PenaltyCount   int
}

// CardDrawnPayload reports a voluntary or forced single-card draw.
type CardDrawnPayload struct {
	UserID         string
	HandSize       int
	NextTurnUserID string
}

// PlayerCalledUnoPayload reports an uno call.
type PlayerCalledUnoPayload struct {
	UserID   string
	HandSize int
}

// AutoPlayPayload precedes the card_played of a move forced by the turn timer.
type AutoPlayPayload struct {
	UserID string
	Card   domain.Card
}

// AutoDrawPayload precedes the card_drawn of a draw forced by the turn timer.
type AutoDrawPayload struct {
	UserID string
}

// TimerUpdatePayload carries the whole seconds left in the current turn.
type TimerUpdatePayload struct {
	UserID           string
	SecondsRemaining int
}

// GameEndedPayload carries the winner and the final score records.
type GameEndedPayload struct {
	GameID     string
	WinnerID   string
	WinnerName string
	Reason     string
	Scores     []domain.ScoreRecord
}

// PlayCardErrorPayload tells a player why their play was rejected.
type PlayCardErrorPayload struct {
	Code    string
	Message string
}
