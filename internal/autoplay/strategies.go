package autoplay

import (
	"github.com/tech-vista/UnoGame/internal/domain"
)

// FirstLegal plays the first legal card in hand order, or draws when nothing is playable.
type FirstLegal struct{}

func (FirstLegal) Decide(hand []domain.Card, top domain.Card) Move {
	idx := domain.FirstLegal(hand, top)
	if idx < 0 {
		return Move{Draw: true, Index: -1}
	}
	move := Move{Index: idx, Card: hand[idx]}
	if move.Card.IsWild() {
		move.Color = ChooseColor(domain.RemoveCardAt(hand, idx))
	}
	return move
}

// ChooseColor picks the color held most often in hand, breaking ties by deck
// color order. A hand with no colored cards gets red.
func ChooseColor(hand []domain.Card) domain.Color {
	counts := make(map[domain.Color]int, len(domain.Colors))
	for _, c := range hand {
		if !c.IsWild() {
			counts[c.Color]++
		}
	}
	best := domain.Colors[0]
	for _, color := range domain.Colors[1:] {
		if counts[color] > counts[best] {
			best = color
		}
	}
	return best
}
