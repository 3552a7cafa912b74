package domain

// FindCard returns the index of the first card in hand equal to card, or -1.
func FindCard(hand []Card, card Card) int {
	for i, c := range hand {
		if c == card {
			return i
		}
	}
	return -1
}

// RemoveCardAt returns hand without the card at index i. The input slice is not reused.
func RemoveCardAt(hand []Card, i int) []Card {
	out := make([]Card, 0, len(hand)-1)
	out = append(out, hand[:i]...)
	return append(out, hand[i+1:]...)
}
