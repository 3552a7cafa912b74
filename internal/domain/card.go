package domain

import (
	"fmt"
	"strconv"
)

// Color is the color of an UNO card. Wild cards carry ColorWild.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorWild   Color = "wild"
)

// Colors lists the four suit colors in canonical deck order.
var Colors = []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// Kind identifies what a card does when played.
type Kind string

const (
	KindNumber       Kind = "number"
	KindSkip         Kind = "skip"
	KindReverse      Kind = "reverse"
	KindDrawTwo      Kind = "draw_two"
	KindWild         Kind = "wild"
	KindWildDrawFour Kind = "wild_draw_four"
)

// Card is an immutable UNO card. Value is meaningful only for KindNumber and
// is always zero otherwise, so cards compare with ==.
type Card struct {
	Color Color
	Kind  Kind
	Value int
}

// NumberCard builds a colored number card.
func NumberCard(color Color, value int) Card {
	return Card{Color: color, Kind: KindNumber, Value: value}
}

// ActionCard builds a colored skip, reverse or draw_two card.
func ActionCard(color Color, kind Kind) Card {
	return Card{Color: color, Kind: kind}
}

// WildCard builds a wild or wild_draw_four card.
func WildCard(kind Kind) Card {
	return Card{Color: ColorWild, Kind: kind}
}

// IsWild reports whether the card is a wild or wild_draw_four.
func (c Card) IsWild() bool {
	return c.Kind == KindWild || c.Kind == KindWildDrawFour
}

// IsAction reports whether the card is anything other than a number card.
func (c Card) IsAction() bool {
	return c.Kind != KindNumber
}

func (c Card) String() string {
	if c.Kind == KindNumber {
		return string(c.Color) + "-" + strconv.Itoa(c.Value)
	}
	if c.IsWild() {
		return string(c.Kind)
	}
	return string(c.Color) + "-" + string(c.Kind)
}

// Validate checks that the card could exist in the canonical deck.
func (c Card) Validate() error {
	switch c.Kind {
	case KindNumber:
		if !isSuitColor(c.Color) {
			return fmt.Errorf("%w: number card with color %q", ErrInvalidCard, c.Color)
		}
		if c.Value < 0 || c.Value > 9 {
			return fmt.Errorf("%w: number card value %d", ErrInvalidCard, c.Value)
		}
	case KindSkip, KindReverse, KindDrawTwo:
		if !isSuitColor(c.Color) {
			return fmt.Errorf("%w: %s with color %q", ErrInvalidCard, c.Kind, c.Color)
		}
		if c.Value != 0 {
			return fmt.Errorf("%w: %s carries a value", ErrInvalidCard, c.Kind)
		}
	case KindWild, KindWildDrawFour:
		if c.Color != ColorWild {
			return fmt.Errorf("%w: %s with color %q", ErrInvalidCard, c.Kind, c.Color)
		}
		if c.Value != 0 {
			return fmt.Errorf("%w: %s carries a value", ErrInvalidCard, c.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCard, c.Kind)
	}
	return nil
}

// IsSuitColor reports whether color is one of the four non-wild colors.
func IsSuitColor(color Color) bool {
	return isSuitColor(color)
}

func isSuitColor(color Color) bool {
	for _, c := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

// HandValue is the scoring value of a set of cards.
func HandValue(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// Points is the scoring value of a single card.
func (c Card) Points() int {
	switch c.Kind {
	case KindNumber:
		return c.Value
	case KindSkip, KindReverse, KindDrawTwo:
		return 20
	case KindWild, KindWildDrawFour:
		return 50
	default:
		return 0
	}
}
