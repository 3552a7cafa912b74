package domain

import (
	"errors"
	"fmt"
	"sort"
)

// Shuffler produces a uniform permutation; *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewDeck returns the canonical 108-card deck in a fixed order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, color := range Colors {
		deck = append(deck, NumberCard(color, 0))
		for copies := 0; copies < 2; copies++ {
			for v := 1; v <= 9; v++ {
				deck = append(deck, NumberCard(color, v))
			}
			deck = append(deck,
				ActionCard(color, KindSkip),
				ActionCard(color, KindReverse),
				ActionCard(color, KindDrawTwo),
			)
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, WildCard(KindWild), WildCard(KindWildDrawFour))
	}
	return deck
}

// ShuffleDeck permutes the deck in place.
func ShuffleDeck(rng Shuffler, deck []Card) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// Draw removes and returns the top card of the deck, reshuffling the discard
// pile underneath the top card when the deck runs out.
func (s *MatchState) Draw(rng Shuffler) (Card, error) {
	if len(s.Deck) == 0 {
		if err := s.Reshuffle(rng); err != nil {
			return Card{}, err
		}
	}
	if len(s.Deck) == 0 {
		return Card{}, ErrDeckExhausted
	}
	top := s.Deck[len(s.Deck)-1]
	s.Deck = s.Deck[:len(s.Deck)-1]
	return top, nil
}

// DrawInto draws n cards into the player's hand. A player who drew past one
// card loses a prior uno call. On error the cards drawn so far stay in the
// hand and are returned.
func (s *MatchState) DrawInto(rng Shuffler, p *Player, n int) ([]Card, error) {
	drawn := make([]Card, 0, n)
	var err error
	for i := 0; i < n; i++ {
		c, drawErr := s.Draw(rng)
		if drawErr != nil {
			err = fmt.Errorf("draw %d of %d for %s: %w", i+1, n, p.UserID, drawErr)
			break
		}
		p.Hand = append(p.Hand, c)
		drawn = append(drawn, c)
	}
	if len(p.Hand) > 1 {
		p.CalledUno = false
	}
	return drawn, err
}

// DrawAvailable is DrawInto for draws that must not fail the turn: once deck
// and discard pile are exhausted it stops short and returns what it drew.
func (s *MatchState) DrawAvailable(rng Shuffler, p *Player, n int) ([]Card, error) {
	drawn, err := s.DrawInto(rng, p, n)
	if errors.Is(err, ErrDeckExhausted) {
		return drawn, nil
	}
	return drawn, err
}

// Reshuffle keeps the top card as the only discard and moves every other
// discarded card into the deck, then shuffles the deck.
func (s *MatchState) Reshuffle(rng Shuffler) error {
	n := len(s.DiscardPile)
	if n == 0 {
		return ErrEmptyDiscard
	}
	top := s.DiscardPile[n-1]
	s.Deck = append(s.Deck, s.DiscardPile[:n-1]...)
	s.DiscardPile = []Card{top}
	ShuffleDeck(rng, s.Deck)
	return nil
}

// FlipStartingCard draws until a non-wild card turns up and makes it the top
// card. Wild cards turned up on the way go to the bottom of the deck.
func (s *MatchState) FlipStartingCard(rng Shuffler) error {
	for attempts := len(s.Deck); attempts > 0; attempts-- {
		c, err := s.Draw(rng)
		if err != nil {
			return err
		}
		if c.IsWild() {
			s.Deck = append([]Card{c}, s.Deck...)
			continue
		}
		s.TopCard = c
		s.ActiveColor = c.Color
		s.DiscardPile = []Card{c}
		return nil
	}
	return ErrNoStartingCard
}

// Discard puts a played card on the pile and makes it the top card.
func (s *MatchState) Discard(c Card) {
	s.DiscardPile = append(s.DiscardPile, c)
	s.TopCard = c
	s.ActiveColor = c.Color
}

// CardCounts tallies every card the match currently holds across deck,
// discard pile and hands.
func (s *MatchState) CardCounts() map[Card]int {
	counts := make(map[Card]int, 54)
	for _, c := range s.Deck {
		counts[c]++
	}
	for _, c := range s.DiscardPile {
		counts[c]++
	}
	for _, p := range s.Players {
		for _, c := range p.Hand {
			counts[c]++
		}
	}
	return counts
}

// CheckComposition verifies that deck, discard pile and hands together form
// exactly the canonical deck.
func (s *MatchState) CheckComposition() error {
	want := make(map[Card]int, 54)
	for _, c := range NewDeck() {
		want[c]++
	}
	got := s.CardCounts()

	var diffs []string
	for c, n := range want {
		if got[c] != n {
			diffs = append(diffs, fmt.Sprintf("%s: have %d want %d", c, got[c], n))
		}
	}
	for c, n := range got {
		if _, ok := want[c]; !ok {
			diffs = append(diffs, fmt.Sprintf("%s: have %d want 0", c, n))
		}
	}
	if len(diffs) > 0 {
		sort.Strings(diffs)
		return fmt.Errorf("%w: %v", ErrCompositionViolated, diffs)
	}
	return nil
}
