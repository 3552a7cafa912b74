package domain

import "time"

// Advance moves the turn to the next player in registration order, stepping
// by Direction, and restarts the turn clock.
func (s *MatchState) Advance(now time.Time) {
	n := len(s.Order)
	if n == 0 {
		s.CurrentTurn = ""
		return
	}
	idx := s.SeatIndex(s.CurrentTurn)
	if idx < 0 {
		idx = 0
	} else {
		idx = ((idx+s.Direction)%n + n) % n
	}
	s.CurrentTurn = s.Order[idx]
	s.TurnStartedAt = now
	s.LastAnnouncedSecond = -1
}

// Penalty describes a forced draw caused by a played card. Cards holds fewer
// than the penalty size when deck and discard pile ran out.
type Penalty struct {
	UserID string
	Cards  []Card
}

// ApplyEffects runs the played card's special rule. It must run before the
// mandatory post-play Advance; skip and the draw cards add an extra Advance
// here so that, together with the mandatory one, the opponent loses a turn.
func (s *MatchState) ApplyEffects(played Card, rng Shuffler, now time.Time) (*Penalty, error) {
	switch played.Kind {
	case KindSkip:
		s.Advance(now)
	case KindReverse:
		s.Direction = -s.Direction
	case KindDrawTwo:
		return s.penalize(rng, now, DrawTwoPenalty)
	case KindWildDrawFour:
		return s.penalize(rng, now, WildDrawFourPenalty)
	}
	return nil, nil
}

func (s *MatchState) penalize(rng Shuffler, now time.Time, n int) (*Penalty, error) {
	s.Advance(now)
	target := s.CurrentPlayer()
	if target == nil {
		return nil, ErrUnknownPlayer
	}
	drawn, err := s.DrawAvailable(rng, target, n)
	if err != nil {
		return nil, err
	}
	return &Penalty{UserID: target.UserID, Cards: drawn}, nil
}
