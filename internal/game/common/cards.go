package common

import (
	"fmt"
	"strings"
)

type Suit string

const (
	Spades   Suit = "S"
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
)

// Suits returns the four suits in deck-building order.
func Suits() []Suit {
	return []Suit{Spades, Hearts, Diamonds, Clubs}
}

// Rank is the card rank for the 36-card deck: 6 through ace.
// Numeric values order cards for trick comparison (6 < 7 < ... < A).
type Rank int

const (
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Ranks returns the nine ranks in ascending strength order.
func Ranks() []Rank {
	return []Rank{Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	var r string
	switch c.Rank {
	case Jack:
		r = "J"
	case Queen:
		r = "Q"
	case King:
		r = "K"
	case Ace:
		r = "A"
	default:
		r = fmt.Sprintf("%d", int(c.Rank))
	}
	return r + string(c.Suit)
}

// Valid reports whether the card is one of the 36 playable cards.
func (c Card) Valid() bool {
	switch c.Suit {
	case Spades, Hearts, Diamonds, Clubs:
	default:
		return false
	}
	return c.Rank >= Six && c.Rank <= Ace
}

func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card")
	}
	suit := Suit(s[len(s)-1:])
	rankStr := s[:len(s)-1]
	var r Rank
	switch rankStr {
	case "J":
		r = Jack
	case "Q":
		r = Queen
	case "K":
		r = King
	case "A":
		r = Ace
	default:
		var v int
		_, err := fmt.Sscanf(rankStr, "%d", &v)
		if err != nil || v < 6 || v > 10 {
			return Card{}, fmt.Errorf("invalid rank")
		}
		r = Rank(v)
	}
	switch suit {
	case Spades, Hearts, Diamonds, Clubs:
	default:
		return Card{}, fmt.Errorf("invalid suit")
	}
	return Card{Rank: r, Suit: suit}, nil
}
