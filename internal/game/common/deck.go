package common

import (
	"crypto/rand"
	"math/big"
	"time"
)

// DeckSize is the number of cards in the up-and-down deck (4 suits x 9 ranks).
const DeckSize = 36

// RandSource supplies uniform random integers for shuffling. *math/rand.Rand
// satisfies it, which keeps dealing deterministic under a seeded source in
// tests and simulations.
type RandSource interface {
	Intn(n int) int
}

// NewDeck returns the 36 cards in deterministic suit-major order.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits() {
		for _, r := range Ranks() {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle performs an unbiased Fisher-Yates shuffle in place. Every
// permutation must be equally likely; fair dealing depends on it.
func Shuffle(cards []Card, rng RandSource) {
	if rng == nil {
		rng = CryptoSource()
	}
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// CryptoSource returns a RandSource backed by crypto/rand.
// If crypto/rand fails it falls back to a time-seeded value as a last resort,
// used only to keep live games functioning.
func CryptoSource() RandSource {
	return cryptoSource{}
}

type cryptoSource struct{}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		seed := time.Now().UnixNano()
		seed = (seed*6364136223846793005 + 1) & 0x7fffffffffffffff
		return int(seed % int64(n))
	}
	return int(nBig.Int64())
}
