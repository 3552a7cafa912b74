package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer(t *testing.T) {
	s := NewMatchState(0)
	assert.Equal(t, PhaseWaiting, s.Phase)
	assert.Equal(t, DefaultTurnTimeLimit, s.TurnTimeLimit)

	p, err := s.AddPlayer("a", "")
	require.NoError(t, err)
	assert.Equal(t, "a", p.DisplayName, "display name falls back to user id")
	assert.Empty(t, p.Hand)

	_, err = s.AddPlayer("a", "again")
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = s.AddPlayer("b", "Bob")
	require.NoError(t, err)

	_, err = s.AddPlayer("c", "Carol")
	assert.ErrorIs(t, err, ErrMatchFull)
	assert.Len(t, s.Players, MaxPlayers)
	assert.Equal(t, []string{"a", "b"}, s.Order)
}

func TestRemovePlayer(t *testing.T) {
	s := newTwoPlayerGame(t)
	deckBefore := len(s.Deck)

	p, err := s.RemovePlayer("a")
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.DisplayName)
	assert.Equal(t, []string{"b"}, s.Order)
	assert.Equal(t, "b", s.CurrentTurn)
	assert.Len(t, s.Deck, deckBefore+DefaultHandSize)
	require.NoError(t, s.CheckComposition())

	_, err = s.RemovePlayer("a")
	assert.ErrorIs(t, err, ErrUnknownPlayer)
}

func TestSeatIndex(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want int
	}{
		{name: "first joined", id: "a", want: 0},
		{name: "second joined", id: "b", want: 1},
		{name: "unknown", id: "z", want: -1},
	}
	s := newTwoPlayerGame(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.SeatIndex(tt.id))
		})
	}
}
