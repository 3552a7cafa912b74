package nakama

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tech-vista/UnoGame/internal/app"
	"github.com/tech-vista/UnoGame/internal/domain"
)

// ErrMalformedMessage marks an inbound payload that could not be decoded into an action.
var ErrMalformedMessage = errors.New("malformed message")

// Inbound message types.
const (
	ActionPlayCard = "play_card"
	ActionDrawCard = "draw_card"
	ActionCallUno  = "call_uno"
	ActionPassTurn = "pass_turn"
)

// Action is a validated inbound client action.
type Action interface {
	Type() string
}

// PlayCardAction plays Card; ChosenColor is only read for wilds.
type PlayCardAction struct {
	Card        domain.Card
	ChosenColor domain.Color
}

// DrawCardAction draws one card and passes the turn.
type DrawCardAction struct{}

// CallUnoAction flags the sender as having called uno.
type CallUnoAction struct{}

// PassTurnAction hands the turn to the next player.
type PassTurnAction struct{}

func (PlayCardAction) Type() string { return ActionPlayCard }
func (DrawCardAction) Type() string { return ActionDrawCard }
func (CallUnoAction) Type() string  { return ActionCallUno }
func (PassTurnAction) Type() string { return ActionPassTurn }

// wireCard is the JSON form of a card. Value is present for number cards only.
type wireCard struct {
	Color string `json:"color"`
	Kind  string `json:"kind"`
	Value *int   `json:"value,omitempty"`
}

type inboundEnvelope struct {
	Type        string    `json:"type"`
	Card        *wireCard `json:"card,omitempty"`
	ChosenColor string    `json:"chosen_color,omitempty"`
}

// DecodeAction parses and validates an inbound message. Every failure wraps ErrMalformedMessage.
func DecodeAction(data []byte) (Action, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch env.Type {
	case ActionPlayCard:
		if env.Card == nil {
			return nil, fmt.Errorf("%w: play_card without card", ErrMalformedMessage)
		}
		card, err := cardFromWire(*env.Card)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		return PlayCardAction{Card: card, ChosenColor: domain.Color(env.ChosenColor)}, nil
	case ActionDrawCard:
		return DrawCardAction{}, nil
	case ActionCallUno:
		return CallUnoAction{}, nil
	case ActionPassTurn:
		return PassTurnAction{}, nil
	case "":
		return nil, fmt.Errorf("%w: missing type", ErrMalformedMessage)
	}
	return nil, fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, env.Type)
}

func cardFromWire(w wireCard) (domain.Card, error) {
	card := domain.Card{Color: domain.Color(w.Color), Kind: domain.Kind(w.Kind)}
	if card.Kind == domain.KindNumber {
		if w.Value == nil {
			return domain.Card{}, errors.New("number card without value")
		}
		card.Value = *w.Value
	} else if w.Value != nil {
		return domain.Card{}, fmt.Errorf("%s card with value", card.Kind)
	}
	if err := card.Validate(); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

func cardToWire(c domain.Card) wireCard {
	w := wireCard{Color: string(c.Color), Kind: string(c.Kind)}
	if c.Kind == domain.KindNumber {
		v := c.Value
		w.Value = &v
	}
	return w
}

func cardsToWire(cards []domain.Card) []wireCard {
	out := make([]wireCard, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToWire(c))
	}
	return out
}

func movesToWire(moves []int) []int {
	if moves == nil {
		return []int{}
	}
	return moves
}

type wirePlayer struct {
	UserID      string     `json:"user_id"`
	DisplayName string     `json:"display_name"`
	Hand        []wireCard `json:"hand"`
	HandSize    int        `json:"hand_size"`
	CalledUno   bool       `json:"called_uno"`
	Score       int        `json:"score"`
	LegalMoves  []int      `json:"legal_moves"`
}

type wireScore struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Result      string `json:"result"`
	Reason      string `json:"reason"`
}

func scoresToWire(records []domain.ScoreRecord) []wireScore {
	out := make([]wireScore, 0, len(records))
	for _, r := range records {
		out = append(out, wireScore{
			UserID:      r.UserID,
			DisplayName: r.DisplayName,
			Score:       r.Score,
			Result:      string(r.Result),
			Reason:      r.Reason,
		})
	}
	return out
}

type playerCountMessage struct {
	Type        string `json:"type"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	PlayerCount int    `json:"player_count"`
}

type gameStartedMessage struct {
	Type        string   `json:"type"`
	GameID      string   `json:"game_id"`
	FirstTurn   string   `json:"first_turn"`
	TopCard     wireCard `json:"top_card"`
	PlayerOrder []string `json:"player_order"`
}

type gameStateMessage struct {
	Type          string       `json:"type"`
	GameID        string       `json:"game_id"`
	Phase         string       `json:"phase"`
	TopCard       *wireCard    `json:"top_card"`
	ActiveColor   string       `json:"active_color"`
	Direction     int          `json:"direction"`
	CurrentTurn   string       `json:"current_turn"`
	DeckCount     int          `json:"deck_count"`
	DiscardCount  int          `json:"discard_count"`
	TurnTimeLimit int          `json:"turn_time_limit"`
	TurnStartedAt int64        `json:"turn_started_at"`
	Players       []wirePlayer `json:"players"`
	WinnerID      string       `json:"winner_id,omitempty"`
	FinalScores   []wireScore  `json:"final_scores"`
}

type playerHandMessage struct {
	Type       string     `json:"type"`
	UserID     string     `json:"user_id"`
	Hand       []wireCard `json:"hand"`
	LegalMoves []int      `json:"legal_moves"`
}

type cardPlayedMessage struct {
	Type          string   `json:"type"`
	UserID        string   `json:"user_id"`
	Card          wireCard `json:"card"`
	ActiveColor   string   `json:"active_color"`
	HandSize      int      `json:"hand_size"`
	NextTurn      string   `json:"next_turn,omitempty"`
	PenaltyUserID string   `json:"penalty_user_id,omitempty"`
	PenaltyCount  int      `json:"penalty_count,omitempty"`
}

type cardDrawnMessage struct {
	Type     string `json:"type"`
	UserID   string `json:"user_id"`
	HandSize int    `json:"hand_size"`
	NextTurn string `json:"next_turn"`
}

type calledUnoMessage struct {
	Type     string `json:"type"`
	UserID   string `json:"user_id"`
	HandSize int    `json:"hand_size"`
}

type autoMoveMessage struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	Card   *wireCard `json:"card,omitempty"`
}

type timerUpdateMessage struct {
	Type             string `json:"type"`
	UserID           string `json:"user_id"`
	SecondsRemaining int    `json:"seconds_remaining"`
}

type gameEndedMessage struct {
	Type       string      `json:"type"`
	GameID     string      `json:"game_id"`
	WinnerID   string      `json:"winner_id"`
	WinnerName string      `json:"winner_name"`
	Reason     string      `json:"reason"`
	Scores     []wireScore `json:"scores"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EncodeEvent renders an app event as its outbound JSON message.
func EncodeEvent(ev app.Event) ([]byte, error) {
	msg, err := eventMessage(ev)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

func eventMessage(ev app.Event) (any, error) {
	kind := string(ev.Kind)
	switch p := ev.Payload.(type) {
	case app.PlayerJoinedPayload:
		return playerCountMessage{Type: kind, UserID: p.UserID, DisplayName: p.DisplayName, PlayerCount: p.PlayerCount}, nil
	case app.PlayerLeftPayload:
		return playerCountMessage{Type: kind, UserID: p.UserID, DisplayName: p.DisplayName, PlayerCount: p.PlayerCount}, nil
	case app.GameStartedPayload:
		return gameStartedMessage{
			Type:        kind,
			GameID:      p.GameID,
			FirstTurn:   p.FirstTurnUserID,
			TopCard:     cardToWire(p.TopCard),
			PlayerOrder: p.PlayerOrder,
		}, nil
	case app.GameStatePayload:
		return gameStateToWire(kind, p), nil
	case app.PlayerHandPayload:
		return playerHandMessage{Type: kind, UserID: p.UserID, Hand: cardsToWire(p.Hand), LegalMoves: movesToWire(p.LegalMoves)}, nil
	case app.CardPlayedPayload:
		return cardPlayedMessage{
			Type:          kind,
			UserID:        p.UserID,
			Card:          cardToWire(p.Card),
			ActiveColor:   string(p.ActiveColor),
			HandSize:      p.HandSize,
			NextTurn:      p.NextTurnUserID,
			PenaltyUserID: p.PenaltyUserID,
			PenaltyCount:  p.PenaltyCount,
		}, nil
	case app.CardDrawnPayload:
		return cardDrawnMessage{Type: kind, UserID: p.UserID, HandSize: p.HandSize, NextTurn: p.NextTurnUserID}, nil
	case app.PlayerCalledUnoPayload:
		return calledUnoMessage{Type: kind, UserID: p.UserID, HandSize: p.HandSize}, nil
	case app.AutoPlayPayload:
		card := cardToWire(p.Card)
		return autoMoveMessage{Type: kind, UserID: p.UserID, Card: &card}, nil
	case app.AutoDrawPayload:
		return autoMoveMessage{Type: kind, UserID: p.UserID}, nil
	case app.TimerUpdatePayload:
		return timerUpdateMessage{Type: kind, UserID: p.UserID, SecondsRemaining: p.SecondsRemaining}, nil
	case app.GameEndedPayload:
		return gameEndedMessage{
			Type:       kind,
			GameID:     p.GameID,
			WinnerID:   p.WinnerID,
			WinnerName: p.WinnerName,
			Reason:     p.Reason,
			Scores:     scoresToWire(p.Scores),
		}, nil
	case app.PlayCardErrorPayload:
		return errorMessage{Type: kind, Code: p.Code, Message: p.Message}, nil
	}
	return nil, fmt.Errorf("unsupported event %s with payload %T", ev.Kind, ev.Payload)
}

func gameStateToWire(kind string, p app.GameStatePayload) gameStateMessage {
	players := make([]wirePlayer, 0, len(p.Players))
	for _, pv := range p.Players {
		players = append(players, wirePlayer{
			UserID:      pv.UserID,
			DisplayName: pv.DisplayName,
			Hand:        cardsToWire(pv.Hand),
			HandSize:    len(pv.Hand),
			CalledUno:   pv.CalledUno,
			Score:       pv.Score,
			LegalMoves:  movesToWire(pv.LegalMoves),
		})
	}
	msg := gameStateMessage{
		Type:          kind,
		GameID:        p.GameID,
		Phase:         string(p.Phase),
		ActiveColor:   string(p.ActiveColor),
		Direction:     p.Direction,
		CurrentTurn:   p.CurrentTurn,
		DeckCount:     p.DeckCount,
		DiscardCount:  p.DiscardCount,
		TurnTimeLimit: int(p.TurnTimeLimit.Seconds()),
		Players:       players,
		WinnerID:      p.WinnerID,
		FinalScores:   scoresToWire(p.FinalScores),
	}
	if p.HasTopCard {
		top := cardToWire(p.TopCard)
		msg.TopCard = &top
	}
	if !p.TurnStartedAt.IsZero() {
		msg.TurnStartedAt = p.TurnStartedAt.UnixMilli()
	}
	return msg
}
