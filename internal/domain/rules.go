package domain

// IsLegal reports whether card may be played on top. Wilds are always legal;
// otherwise color or number must match, or both cards must be the same action kind.
func IsLegal(card, top Card) bool {
	if card.IsWild() {
		return true
	}
	if card.Color == top.Color {
		return true
	}
	if card.Kind == KindNumber && top.Kind == KindNumber && card.Value == top.Value {
		return true
	}
	return card.Kind == top.Kind && card.Kind != KindNumber
}

// LegalMoves returns the hand indices that can be played on top, in hand order.
func LegalMoves(hand []Card, top Card) []int {
	moves := make([]int, 0, len(hand))
	for i, c := range hand {
		if IsLegal(c, top) {
			moves = append(moves, i)
		}
	}
	return moves
}

// FirstLegal returns the index of the first playable card, or -1.
func FirstLegal(hand []Card, top Card) int {
	for i, c := range hand {
		if IsLegal(c, top) {
			return i
		}
	}
	return -1
}
