package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/heroiclabs/nakama-common/runtime"

	"github.com/tech-vista/UnoGame/internal/app"
	"github.com/tech-vista/UnoGame/internal/config"
	"github.com/tech-vista/UnoGame/internal/domain"
	"github.com/tech-vista/UnoGame/internal/metrics"
	"github.com/tech-vista/UnoGame/internal/ports"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
//
// Nakama invokes the match callbacks for one match sequentially, so nothing
// here is guarded by a lock.
type MatchState struct {
	Tick          int64                       `json:"tick"`
	LeaderboardID string                      `json:"leaderboard_id"`
	Presences     map[string]runtime.Presence `json:"-"` // Map UserId -> Presence for targeted messaging
	PendingNames  map[string]string           `json:"-"` // Display names accepted in MatchJoinAttempt
	App           *app.Service                `json:"-"`
	Game          *domain.MatchState          `json:"-"`
	FinishedTick  int64                       `json:"finished_tick"` // Tick the game ended on, -1 while running
	EmptySince    int64                       `json:"empty_since"`   // Tick the match became empty, -1 while occupied
	LingerTicks   int64                       `json:"linger_ticks"`
	closed        bool
}

type matchHandler struct {
	cfg     *config.GameConfig
	scores  ports.ScoreSink
	metrics *metrics.Recorder
	clock   ports.Clock
	// runAsync runs score writes off the match loop.
	runAsync func(func())
}

func newMatchHandler(cfg *config.GameConfig, scores ports.ScoreSink, recorder *metrics.Recorder) *matchHandler {
	if cfg == nil {
		cfg = config.Default()
	}
	return &matchHandler{
		cfg:      cfg,
		scores:   scores,
		metrics:  recorder,
		clock:    ports.SystemClock{},
		runAsync: func(f func()) { go f() },
	}
}

func matchLogger(ctx context.Context, logger runtime.Logger) runtime.Logger {
	if matchID, ok := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string); ok && matchID != "" {
		return logger.WithField("match_id", matchID)
	}
	return logger
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger = matchLogger(ctx, logger)

	svc := app.NewService(app.Options{
		TurnTimeLimit: mh.cfg.TurnTimeLimit(),
		HandSize:      mh.cfg.HandSize,
		WinScore:      mh.cfg.WinScore,
		ForfeitScore:  mh.cfg.ForfeitScore,

		DeclareWildColor: mh.cfg.WildDeclaresColor,
	}, mh.clock, nil)

	state := &MatchState{
		LeaderboardID: mh.cfg.LeaderboardID,
		Presences:     make(map[string]runtime.Presence),
		PendingNames:  make(map[string]string),
		App:           svc,
		Game:          svc.NewMatch(),
		FinishedTick:  -1,
		EmptySince:    -1,
		LingerTicks:   int64(mh.cfg.FinishedLingerSeconds * mh.cfg.TickRate),
	}

	label, err := matchLabel(state.Game)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	mh.metrics.MatchOpened()
	logger.Debug("MatchInit: UNO match created (turn limit %s, tick rate %d).", svc.Options().TurnTimeLimit, mh.cfg.TickRate)
	return state, mh.cfg.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	userID := presence.GetUserId()
	if _, ok := matchState.Game.Players[userID]; ok {
		return matchState, true, ""
	}
	seats := len(matchState.Game.Players)
	for pendingID := range matchState.PendingNames {
		if pendingID != userID {
			seats++
		}
	}
	if seats >= domain.MaxPlayers {
		return matchState, false, RejectMatchFull
	}
	if matchState.Game.Phase != domain.PhaseWaiting {
		return matchState, false, RejectMatchInProgress
	}

	name := metadata[JoinMetadataDisplayName]
	if name == "" {
		name = presence.GetUsername()
	}
	matchState.PendingNames[userID] = name
	return matchState, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	logger = matchLogger(ctx, logger)
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}
	matchState.Tick = tick

	for _, p := range presences {
		userID := p.GetUserId()
		name, ok := matchState.PendingNames[userID]
		if !ok {
			name = p.GetUsername()
		}
		delete(matchState.PendingNames, userID)

		events, err := matchState.App.Join(matchState.Game, userID, name)
		if err != nil {
			logger.Warn("MatchJoin: Rejecting user %s: %v", userID, err)
			if kickErr := dispatcher.MatchKick([]runtime.Presence{p}); kickErr != nil {
				logger.Error("MatchJoin: Failed to kick user %s: %v", userID, kickErr)
			}
			continue
		}

		matchState.Presences[userID] = p
		matchState.EmptySince = -1
		logger.Info("MatchJoin: User %s joined as %q (%d/%d).", userID, name, len(matchState.Game.Players), domain.MaxPlayers)
		mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	logger = matchLogger(ctx, logger)
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}
	matchState.Tick = tick

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)
		delete(matchState.PendingNames, userID)

		events, err := matchState.App.Leave(matchState.Game, userID)
		if err != nil {
			logger.Debug("MatchLeave: User %s was not registered: %v", userID, err)
			continue
		}
		logger.Info("MatchLeave: User %s left (%d remaining).", userID, len(matchState.Game.Players))
		mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)
	}

	if len(matchState.Game.Players) == 0 && matchState.Game.Phase != domain.PhaseWaiting {
		logger.Info("MatchLeave: Terminating match with no players.")
		mh.close(matchState)
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	logger = matchLogger(ctx, logger)
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}
	matchState.Tick = tick

	for _, msg := range messages {
		if msg.GetOpCode() != OpCodeGame {
			logger.Warn("MatchLoop: Unknown opcode received from %s: %d", msg.GetUserId(), msg.GetOpCode())
			continue
		}
		action, err := DecodeAction(msg.GetData())
		if err != nil {
			logger.Warn("MatchLoop: Dropping message from %s: %v", msg.GetUserId(), err)
			continue
		}
		mh.handleAction(ctx, matchState, dispatcher, logger, msg.GetUserId(), action)
	}

	events, err := matchState.App.Tick(matchState.Game)
	if err != nil {
		logger.Error("MatchLoop: Turn timer failed: %v", err)
	}
	mh.broadcastEvents(ctx, matchState, dispatcher, logger, events)

	if err := matchState.App.Verify(matchState.Game); err != nil {
		logger.Error("MatchLoop: Card composition broken at tick %d: %v", tick, err)
	}

	if mh.shouldTerminate(matchState) {
		logger.Info("MatchLoop: Terminating idle match (phase %s, players %d).", matchState.Game.Phase, len(matchState.Game.Players))
		mh.close(matchState)
		return nil
	}
	return matchState
}

// shouldTerminate reports whether a finished or empty match has lingered long enough.
func (mh *matchHandler) shouldTerminate(state *MatchState) bool {
	if state.Game.Phase == domain.PhaseFinished {
		if state.FinishedTick < 0 {
			state.FinishedTick = state.Tick
		}
		return state.Tick-state.FinishedTick >= state.LingerTicks
	}
	if len(state.Game.Players) > 0 {
		state.EmptySince = -1
		return false
	}
	if state.EmptySince < 0 {
		state.EmptySince = state.Tick
	}
	return state.Tick-state.EmptySince >= state.LingerTicks
}

func (mh *matchHandler) close(state *MatchState) {
	if state.closed {
		return
	}
	state.closed = true
	mh.metrics.MatchClosed()
}

func (mh *matchHandler) handleAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, action Action) {
	var (
		events []app.Event
		err    error
	)
	switch a := action.(type) {
	case PlayCardAction:
		events, err = state.App.PlayCard(state.Game, userID, a.Card, a.ChosenColor)
	case DrawCardAction:
		events, err = state.App.DrawCard(state.Game, userID)
	case CallUnoAction:
		events, err = state.App.CallUno(state.Game, userID)
	case PassTurnAction:
		events, err = state.App.PassTurn(state.Game, userID)
	default:
		logger.Warn("handleAction: Unsupported action %T from %s", action, userID)
		return
	}

	if err != nil {
		mh.metrics.ActionRejected(app.ErrorCode(err))
		if play, ok := action.(PlayCardAction); ok {
			logger.Warn("handleAction: User %s failed to play %s: %v", userID, play.Card, err)
			mh.broadcastEvent(ctx, state, dispatcher, logger, app.ErrorEvent(userID, err))
			return
		}
		logger.Debug("handleAction: Ignoring %s from %s: %v", action.Type(), userID, err)
		return
	}
	mh.broadcastEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) broadcastEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	switch ev.Kind {
	case app.EventGameStarted:
		mh.metrics.GameStarted()
		mh.updateLabel(state, dispatcher, logger)
	case app.EventCardPlayed:
		mh.metrics.CardPlayed()
	case app.EventAutoPlay, app.EventAutoDraw:
		mh.metrics.AutoMove(string(ev.Kind))
		if p, ok := ev.Payload.(app.AutoPlayPayload); ok {
			logger.Info("Event: auto_play for %s: %s", p.UserID, p.Card)
		}
	case app.EventGameEnded:
		p := ev.Payload.(app.GameEndedPayload)
		logger.Info("Event: game_ended (winner=%s, reason=%s)", p.WinnerID, p.Reason)
		mh.metrics.GameFinished(p.Reason)
		mh.recordScores(ctx, state, logger, p)
		state.FinishedTick = state.Tick
		mh.updateLabel(state, dispatcher, logger)
	}

	bytes, err := EncodeEvent(ev)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// A targeted event whose recipients are gone must not fall back to a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(OpCodeGame, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

// recordScores hands the final records to the score sink without blocking the match loop.
func (mh *matchHandler) recordScores(ctx context.Context, state *MatchState, logger runtime.Logger, ended app.GameEndedPayload) {
	if mh.scores == nil || len(ended.Scores) == 0 {
		return
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	updates := make([]ports.ScoreUpdate, 0, len(ended.Scores))
	for _, rec := range ended.Scores {
		updates = append(updates, ports.ScoreUpdate{
			LeaderboardID: state.LeaderboardID,
			UserID:        rec.UserID,
			Username:      rec.DisplayName,
			Score:         int64(rec.Score),
			Won:           rec.Result == domain.ResultWinner,
			Metadata: map[string]interface{}{
				"match_id": matchID,
				"game_id":  ended.GameID,
				"result":   string(rec.Result),
				"reason":   rec.Reason,
			},
		})
	}

	writeCtx := context.WithoutCancel(ctx)
	mh.runAsync(func() {
		ctx, cancel := context.WithTimeout(writeCtx, scoreWriteTimeout)
		defer cancel()
		for _, update := range updates {
			err := mh.scores.RecordScore(ctx, update)
			mh.metrics.ScoreWrite(err)
			if err != nil {
				logger.Error("Failed to record score for %s: %v", update.UserID, err)
			}
		}
	})
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state.Game)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger = matchLogger(ctx, logger)
	logger.Debug("MatchTerminate: Match terminating with %d grace seconds", graceSeconds)
	if matchState, ok := state.(*MatchState); ok {
		mh.close(matchState)
	}
	return state
}

// signalReply is the operator view returned from MatchSignal.
type signalReply struct {
	GameID      string   `json:"game_id"`
	Phase       string   `json:"phase"`
	Players     []string `json:"players"`
	CurrentTurn string   `json:"current_turn"`
	DeckCount   int      `json:"deck_count"`
	WinnerID    string   `json:"winner_id,omitempty"`
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, ""
	}
	game := matchState.Game
	reply, err := json.Marshal(signalReply{
		GameID:      game.GameID,
		Phase:       string(game.Phase),
		Players:     append([]string{}, game.Order...),
		CurrentTurn: game.CurrentTurn,
		DeckCount:   len(game.Deck),
		WinnerID:    game.WinnerID,
	})
	if err != nil {
		matchLogger(ctx, logger).Error("MatchSignal: Failed to marshal reply: %v", err)
		return matchState, ""
	}
	return matchState, string(reply)
}
