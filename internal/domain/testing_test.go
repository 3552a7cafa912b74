package domain

import (
	"math/rand"
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func newRNG() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

// newTwoPlayerGame returns a dealt match between "a" and "b" with "a" to act.
func newTwoPlayerGame(t *testing.T) *MatchState {
	t.Helper()
	s := NewMatchState(DefaultTurnTimeLimit)
	if _, err := s.AddPlayer("a", "Alice"); err != nil {
		t.Fatalf("AddPlayer(a): %v", err)
	}
	if _, err := s.AddPlayer("b", "Bob"); err != nil {
		t.Fatalf("AddPlayer(b): %v", err)
	}
	if err := s.Deal(newRNG(), DefaultHandSize, testNow); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	s.Phase = PhasePlaying
	return s
}
