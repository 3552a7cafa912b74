package app

import (
	"time"

	"github.com/tech-vista/UnoGame/internal/domain"
)

// Tick samples the turn clock. It announces each new whole second remaining
// and, once the limit is reached, forces a move for the current player
// through the same path as a manual play or draw.
func (s *Service) Tick(game *domain.MatchState) ([]Event, error) {
	if game.Phase != domain.PhasePlaying {
		return nil, nil
	}
	p := game.CurrentPlayer()
	if p == nil || len(p.Hand) == 0 {
		return nil, nil
	}

	elapsed := s.clock.Now().Sub(game.TurnStartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed >= game.TurnTimeLimit {
		return s.forceMove(game, p)
	}

	remaining := int((game.TurnTimeLimit - elapsed + time.Second - 1) / time.Second)
	if remaining == game.LastAnnouncedSecond {
		return nil, nil
	}
	game.LastAnnouncedSecond = remaining
	return []Event{{
		Kind:    EventTimerUpdate,
		Payload: TimerUpdatePayload{UserID: p.UserID, SecondsRemaining: remaining},
	}}, nil
}

func (s *Service) forceMove(game *domain.MatchState, p *domain.Player) ([]Event, error) {
	move := s.brain.Decide(p.Hand, game.ActiveTop())
	if move.Draw {
		return s.drawCard(game, p, []Event{{
			Kind:    EventAutoDraw,
			Payload: AutoDrawPayload{UserID: p.UserID},
		}})
	}
	return s.playCard(game, p, move.Card, move.Color, []Event{{
		Kind:    EventAutoPlay,
		Payload: AutoPlayPayload{UserID: p.UserID, Card: move.Card},
	}})
}
