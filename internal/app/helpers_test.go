package app

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tech-vista/UnoGame/internal/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(seed int64) (*Service, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)}
	svc := NewService(Options{}, clock, rand.New(rand.NewSource(seed)))
	svc.newGameID = func() string { return "game-1" }
	return svc, clock
}

// newDeclaringService is newTestService with declared wild colors enabled.
func newDeclaringService(seed int64) (*Service, *fakeClock) {
	svc, clock := newTestService(seed)
	svc.opts.DeclareWildColor = true
	return svc, clock
}

// startedGame returns a playing match between "a" (to act) and "b".
func startedGame(t *testing.T, svc *Service) *domain.MatchState {
	t.Helper()
	game := svc.NewMatch()
	if _, err := svc.Join(game, "a", "Alice"); err != nil {
		t.Fatalf("Join(a): %v", err)
	}
	if _, err := svc.Join(game, "b", "Bob"); err != nil {
		t.Fatalf("Join(b): %v", err)
	}
	if game.Phase != domain.PhasePlaying {
		t.Fatalf("phase = %s, want playing", game.Phase)
	}
	return game
}

// rig rearranges an in-progress match so the top card and both hands are
// exactly as given, without creating or losing cards.
func rig(t *testing.T, game *domain.MatchState, top domain.Card, handA, handB []domain.Card) {
	t.Helper()
	for _, p := range game.Players {
		game.Deck = append(game.Deck, p.Hand...)
		p.Hand = nil
	}
	game.Deck = append(game.Deck, game.DiscardPile...)
	game.DiscardPile = nil

	take := func(c domain.Card) domain.Card {
		idx := domain.FindCard(game.Deck, c)
		if idx < 0 {
			t.Fatalf("card %s not available to rig", c)
		}
		game.Deck = domain.RemoveCardAt(game.Deck, idx)
		return c
	}
	game.Discard(take(top))
	for _, c := range handA {
		game.Players["a"].Hand = append(game.Players["a"].Hand, take(c))
	}
	for _, c := range handB {
		game.Players["b"].Hand = append(game.Players["b"].Hand, take(c))
	}
	if err := game.CheckComposition(); err != nil {
		t.Fatalf("rig broke composition: %v", err)
	}
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, 0, len(events))
	for _, ev := range events {
		out = append(out, ev.Kind)
	}
	return out
}

func findEvent(events []Event, kind EventKind) (Event, bool) {
	for _, ev := range events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return Event{}, false
}
