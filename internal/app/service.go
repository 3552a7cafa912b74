package app

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/tech-vista/UnoGame/internal/autoplay"
	"github.com/tech-vista/UnoGame/internal/domain"
	"github.com/tech-vista/UnoGame/internal/ports"
)

var (
	ErrMatchFull     = domain.ErrMatchFull
	ErrUnknownPlayer = domain.ErrUnknownPlayer
	ErrNotWaiting    = errors.New("match not waiting for players")
	ErrNotPlaying    = errors.New("match not in playing phase")
	ErrOutOfTurn     = errors.New("not your turn")
	ErrCardNotOwned  = errors.New("card not in hand")
	ErrIllegalPlay   = errors.New("card cannot be played on the top card")
)

// Options configures a Service. Zero fields fall back to the domain defaults.
type Options struct {
	TurnTimeLimit time.Duration
	HandSize      int
	WinScore      int
	ForfeitScore  int
	// DeclareWildColor lets a wild on top take the color its player declares.
	// When false legality is checked against the wild itself.
	DeclareWildColor bool
}

func (o Options) withDefaults() Options {
	if o.TurnTimeLimit <= 0 {
		o.TurnTimeLimit = domain.DefaultTurnTimeLimit
	}
	if o.HandSize <= 0 {
		o.HandSize = domain.DefaultHandSize
	}
	if o.WinScore <= 0 {
		o.WinScore = domain.DefaultWinScore
	}
	if o.ForfeitScore <= 0 {
		o.ForfeitScore = domain.DefaultWinScore
	}
	return o
}

// Service contains UNO use-cases operating on a match's domain state.
//
// A Service holds no per-match state, but its rng is not safe for concurrent
// use; give every match its own Service.
type Service struct {
	opts      Options
	clock     ports.Clock
	rng       *rand.Rand
	brain     autoplay.Brain
	newGameID func() string
}

// NewService constructs a Service. clock and rng may be nil to use the wall
// clock and a time-seeded rng.
func NewService(opts Options, clock ports.Clock, rng *rand.Rand) *Service {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		opts:      opts.withDefaults(),
		clock:     clock,
		rng:       rng,
		brain:     autoplay.FirstLegal{},
		newGameID: uuid.NewString,
	}
}

// Options returns the effective options after defaults.
func (s *Service) Options() Options {
	return s.opts
}

// NewMatch returns an empty match waiting for players.
func (s *Service) NewMatch() *domain.MatchState {
	game := domain.NewMatchState(s.opts.TurnTimeLimit)
	game.DeclaredColors = s.opts.DeclareWildColor
	return game
}

// Join registers a player and starts the game once both seats are taken.
// A player who is already registered is accepted without any events.
func (s *Service) Join(game *domain.MatchState, userID, displayName string) ([]Event, error) {
	if _, ok := game.Players[userID]; ok {
		return nil, nil
	}
	if len(game.Players) >= domain.MaxPlayers {
		return nil, ErrMatchFull
	}
	if game.Phase != domain.PhaseWaiting {
		return nil, ErrNotWaiting
	}
	p, err := game.AddPlayer(userID, displayName)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventPlayerJoined,
		Payload: PlayerJoinedPayload{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			PlayerCount: len(game.Players),
		},
	}}

	if len(game.Players) == domain.MaxPlayers {
		started, err := s.startGame(game)
		if err != nil {
			return events, err
		}
		events = append(events, started...)
	}
	return events, nil
}

func (s *Service) startGame(game *domain.MatchState) ([]Event, error) {
	if err := game.Deal(s.rng, s.opts.HandSize, s.clock.Now()); err != nil {
		return nil, err
	}
	game.GameID = s.newGameID()
	game.Phase = domain.PhasePlaying

	events := []Event{{
		Kind: EventGameStarted,
		Payload: GameStartedPayload{
			GameID:          game.GameID,
			FirstTurnUserID: game.CurrentTurn,
			TopCard:         game.TopCard,
			PlayerOrder:     append([]string(nil), game.Order...),
		},
	}}
	return append(events, s.stateEvents(game)...), nil
}

// Leave unregisters a player. Leaving mid-game hands the remaining player a forfeit win.
func (s *Service) Leave(game *domain.MatchState, userID string) ([]Event, error) {
	p, err := game.RemovePlayer(userID)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventPlayerLeft,
		Payload: PlayerLeftPayload{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			PlayerCount: len(game.Players),
		},
	}}

	if game.Phase != domain.PhasePlaying || len(game.Players) >= domain.MaxPlayers {
		return events, nil
	}
	if len(game.Order) == 0 {
		game.Phase = domain.PhaseFinished
		game.CurrentTurn = ""
		return events, nil
	}

	winner := game.Players[game.Order[0]]
	scores := game.ScoreForfeit(winner.UserID, s.opts.ForfeitScore)
	events = append(events, Event{
		Kind: EventGameEnded,
		Payload: GameEndedPayload{
			GameID:     game.GameID,
			WinnerID:   winner.UserID,
			WinnerName: winner.DisplayName,
			Reason:     domain.ReasonOpponentLeft,
			Scores:     scores,
		},
	})
	return append(events, s.stateEvents(game)...), nil
}

// actor checks that userID may act right now.
func (s *Service) actor(game *domain.MatchState, userID string) (*domain.Player, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, ErrNotPlaying
	}
	p, ok := game.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if game.CurrentTurn != userID {
		return nil, ErrOutOfTurn
	}
	return p, nil
}

// PlayCard plays a card from the actor's hand. chosen is the color declared
// for a wild when declared colors are enabled; an empty or invalid color falls
// back to the color the actor holds most.
func (s *Service) PlayCard(game *domain.MatchState, userID string, card domain.Card, chosen domain.Color) ([]Event, error) {
	p, err := s.actor(game, userID)
	if err != nil {
		return nil, err
	}
	return s.playCard(game, p, card, chosen, nil)
}

func (s *Service) playCard(game *domain.MatchState, p *domain.Player, card domain.Card, chosen domain.Color, prefix []Event) ([]Event, error) {
	idx := domain.FindCard(p.Hand, card)
	if idx < 0 {
		return nil, ErrCardNotOwned
	}
	if !domain.IsLegal(card, game.ActiveTop()) {
		return nil, ErrIllegalPlay
	}

	p.Hand = domain.RemoveCardAt(p.Hand, idx)
	game.Discard(card)
	if card.IsWild() && game.DeclaredColors {
		if !domain.IsSuitColor(chosen) {
			chosen = autoplay.ChooseColor(p.Hand)
		}
		if err := game.DeclareColor(chosen); err != nil {
			return nil, err
		}
	}

	played := CardPlayedPayload{
		UserID:      p.UserID,
		Card:        card,
		ActiveColor: game.ActiveColor,
		HandSize:    len(p.Hand),
	}
	events := prefix

	if len(p.Hand) == 0 {
		scores := game.ScoreWin(p.UserID, s.opts.WinScore)
		events = append(events,
			Event{Kind: EventCardPlayed, Payload: played},
			Event{Kind: EventGameEnded, Payload: GameEndedPayload{
				GameID:     game.GameID,
				WinnerID:   p.UserID,
				WinnerName: p.DisplayName,
				Reason:     domain.ReasonEmptyHand,
				Scores:     scores,
			}},
		)
		return append(events, s.stateEvents(game)...), nil
	}

	now := s.clock.Now()
	penalty, err := game.ApplyEffects(card, s.rng, now)
	if err != nil {
		return nil, err
	}
	game.Advance(now)

	played.NextTurnUserID = game.CurrentTurn
	if penalty != nil {
		played.PenaltyUserID = penalty.UserID
		played.PenaltyCount = len(penalty.Cards)
	}
	events = append(events, Event{Kind: EventCardPlayed, Payload: played})
	return append(events, s.stateEvents(game)...), nil
}

// DrawCard draws one card for the actor and passes the turn. With deck and
// discard pile exhausted the turn passes without a card.
func (s *Service) DrawCard(game *domain.MatchState, userID string) ([]Event, error) {
	p, err := s.actor(game, userID)
	if err != nil {
		return nil, err
	}
	return s.drawCard(game, p, nil)
}

func (s *Service) drawCard(game *domain.MatchState, p *domain.Player, prefix []Event) ([]Event, error) {
	if _, err := game.DrawAvailable(s.rng, p, 1); err != nil {
		return nil, err
	}
	game.Advance(s.clock.Now())

	events := append(prefix, Event{
		Kind: EventCardDrawn,
		Payload: CardDrawnPayload{
			UserID:         p.UserID,
			HandSize:       len(p.Hand),
			NextTurnUserID: game.CurrentTurn,
		},
	})
	return append(events, s.stateEvents(game)...), nil
}

// CallUno records that the actor called uno. It has no effect on turn order.
func (s *Service) CallUno(game *domain.MatchState, userID string) ([]Event, error) {
	p, err := s.actor(game, userID)
	if err != nil {
		return nil, err
	}
	p.CalledUno = true
	return []Event{{
		Kind:    EventPlayerCalledUno,
		Payload: PlayerCalledUnoPayload{UserID: p.UserID, HandSize: len(p.Hand)},
	}}, nil
}

// PassTurn hands the turn to the next player.
func (s *Service) PassTurn(game *domain.MatchState, userID string) ([]Event, error) {
	if _, err := s.actor(game, userID); err != nil {
		return nil, err
	}
	game.Advance(s.clock.Now())
	return s.stateEvents(game), nil
}

// Verify reports a broken card composition once the game has been dealt.
func (s *Service) Verify(game *domain.MatchState) error {
	if game.Phase == domain.PhaseWaiting {
		return nil
	}
	return game.CheckComposition()
}

// stateEvents builds the full snapshot broadcast plus a private hand for every player.
func (s *Service) stateEvents(game *domain.MatchState) []Event {
	events := make([]Event, 0, len(game.Order)+1)
	events = append(events, Event{Kind: EventGameState, Payload: Snapshot(game)})
	for _, id := range game.Order {
		p := game.Players[id]
		events = append(events, Event{
			Kind: EventPlayerHand,
			Payload: PlayerHandPayload{
				UserID:     p.UserID,
				Hand:       append([]domain.Card(nil), p.Hand...),
				LegalMoves: legalMoves(game, p),
			},
			Recipients: []string{p.UserID},
		})
	}
	return events
}

// Snapshot captures the full match state, including every hand.
func Snapshot(game *domain.MatchState) GameStatePayload {
	players := make([]PlayerView, 0, len(game.Order))
	for _, id := range game.Order {
		p := game.Players[id]
		players = append(players, PlayerView{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Hand:        append([]domain.Card(nil), p.Hand...),
			CalledUno:   p.CalledUno,
			Score:       p.Score,
			LegalMoves:  legalMoves(game, p),
		})
	}
	return GameStatePayload{
		GameID:        game.GameID,
		Phase:         game.Phase,
		TopCard:       game.TopCard,
		ActiveColor:   game.ActiveColor,
		HasTopCard:    len(game.DiscardPile) > 0,
		Direction:     game.Direction,
		CurrentTurn:   game.CurrentTurn,
		DeckCount:     len(game.Deck),
		DiscardCount:  len(game.DiscardPile),
		TurnTimeLimit: game.TurnTimeLimit,
		TurnStartedAt: game.TurnStartedAt,
		Players:       players,
		WinnerID:      game.WinnerID,
		FinalScores:   append([]domain.ScoreRecord(nil), game.FinalScores...),
	}
}

func legalMoves(game *domain.MatchState, p *domain.Player) []int {
	if game.Phase != domain.PhasePlaying {
		return []int{}
	}
	return domain.LegalMoves(p.Hand, game.ActiveTop())
}

// ErrorCode maps a rejected action onto its play_card_error code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrOutOfTurn):
		return ErrorCodeOutOfTurn
	case errors.Is(err, ErrCardNotOwned):
		return ErrorCodeCardNotOwned
	case errors.Is(err, ErrIllegalPlay):
		return ErrorCodeIllegalPlay
	case errors.Is(err, ErrNotPlaying):
		return ErrorCodeNotPlaying
	case errors.Is(err, ErrUnknownPlayer):
		return ErrorCodeUnknown
	}
	return ErrorCodeInternal
}

// ErrorEvent converts a rejected action into a play_card_error for the offending player.
func ErrorEvent(userID string, err error) Event {
	return Event{
		Kind:       EventPlayCardError,
		Payload:    PlayCardErrorPayload{Code: ErrorCode(err), Message: err.Error()},
		Recipients: []string{userID},
	}
}
