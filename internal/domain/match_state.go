package domain

import "time"

// AddPlayer registers a new player with an empty hand. Registration order is turn order.
func (s *MatchState) AddPlayer(userID, displayName string) (*Player, error) {
	if _, ok := s.Players[userID]; ok {
		return nil, ErrAlreadyJoined
	}
	if len(s.Players) >= MaxPlayers {
		return nil, ErrMatchFull
	}
	if displayName == "" {
		displayName = userID
	}
	p := &Player{UserID: userID, DisplayName: displayName, Hand: []Card{}}
	s.Players[userID] = p
	s.Order = append(s.Order, userID)
	return p, nil
}

// RemovePlayer unregisters a player. Their hand returns to the bottom of the
// deck so the match keeps the full card set.
func (s *MatchState) RemovePlayer(userID string) (*Player, error) {
	p, ok := s.Players[userID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	delete(s.Players, userID)
	for i, id := range s.Order {
		if id == userID {
			s.Order = append(s.Order[:i:i], s.Order[i+1:]...)
			break
		}
	}
	if len(p.Hand) > 0 {
		s.Deck = append(append([]Card{}, p.Hand...), s.Deck...)
	}
	if s.CurrentTurn == userID {
		s.CurrentTurn = ""
		if len(s.Order) > 0 {
			s.CurrentTurn = s.Order[0]
		}
	}
	return p, nil
}

// SeatIndex returns the position of the player in turn order, or -1.
func (s *MatchState) SeatIndex(userID string) int {
	for i, id := range s.Order {
		if id == userID {
			return i
		}
	}
	return -1
}

// Deal resets the piles to a freshly shuffled deck, deals handSize cards to
// every player in turn order and flips the starting card.
func (s *MatchState) Deal(rng Shuffler, handSize int, now time.Time) error {
	s.Deck = NewDeck()
	ShuffleDeck(rng, s.Deck)
	s.DiscardPile = nil
	for _, id := range s.Order {
		p := s.Players[id]
		p.Hand = p.Hand[:0]
		p.CalledUno = false
		p.Score = 0
	}
	for round := 0; round < handSize; round++ {
		for _, id := range s.Order {
			if _, err := s.DrawInto(rng, s.Players[id], 1); err != nil {
				return err
			}
		}
	}
	if err := s.FlipStartingCard(rng); err != nil {
		return err
	}
	s.Direction = 1
	s.CurrentTurn = s.Order[0]
	s.TurnStartedAt = now
	s.LastAnnouncedSecond = -1
	return nil
}
