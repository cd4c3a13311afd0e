package updown

import (
	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

const maxTricks = 9

// nextSeat encodes the physical table seating South(0), West(2), North(1),
// East(3): play proceeds to the left as 0 -> 2 -> 1 -> 3 -> 0. Dealing,
// bidding and trick order all follow this permutation; advancing seats by
// numeric increment is a rules bug, not a style choice.
var nextSeat = [NumSeats]int{2, 3, 1, 0}

// NextSeat returns the seat to the left of the given seat.
func NextSeat(seat int) int {
	return nextSeat[seat]
}

// seatAfter walks the table order the given number of steps from start.
func seatAfter(start, steps int) int {
	seat := start
	for i := 0; i < steps; i++ {
		seat = nextSeat[seat]
	}
	return seat
}

// TricksInDeal returns the number of tricks (= cards per hand) for a deal.
// The arc is: 1..9 ascending, three 9-trick deals on the plateau, descending
// back down to 1, then four 9-trick no-trump deals and four 9-trick dark
// deals. These thresholds are the rules of this specific game; do not adjust.
func TricksInDeal(dealNumber int) int {
	switch {
	case dealNumber <= 9:
		return dealNumber
	case dealNumber <= 12:
		return maxTricks
	case dealNumber <= 20:
		return 21 - dealNumber
	default:
		return maxTricks
	}
}

// DealKindFor classifies a deal: 1-20 normal, 21-24 no-trump, 25-28 dark.
func DealKindFor(dealNumber int) DealKind {
	switch {
	case dealNumber <= 20:
		return DealNormal
	case dealNumber <= 24:
		return DealNoTrump
	case dealNumber <= TotalDeals:
		return DealDark
	default:
		return DealNormal
	}
}

// ValidBidSum enforces the dealer responsibility rule: the final bid may not
// bring the total to exactly the number of tricks in the deal. Nil bids count
// as zero; callers check this once all four bids are in.
func ValidBidSum(bids []*int, tricksInDeal int) bool {
	sum := 0
	for _, b := range bids {
		if b != nil {
			sum += *b
		}
	}
	return sum != tricksInDeal
}

// TrickWinner returns the index within the trick (play order, not seat) of
// the winning card. Trump beats non-trump; among cards of equal trump status
// the lead suit beats off-suit; within a suit higher rank wins. The ordering
// is total, so a four-card trick always has exactly one winner.
func TrickWinner(trick []common.Card, leadSuit common.Suit, trump *common.Suit) int {
	if len(trick) == 0 {
		return -1
	}
	bestIdx := 0
	for i := 1; i < len(trick); i++ {
		c := trick[i]
		best := trick[bestIdx]

		if trump != nil {
			if c.Suit == *trump && best.Suit != *trump {
				bestIdx = i
				continue
			}
			if c.Suit != *trump && best.Suit == *trump {
				continue
			}
		}

		if c.Suit == best.Suit {
			if c.Rank > best.Rank {
				bestIdx = i
			}
			continue
		}

		if best.Suit != leadSuit && c.Suit == leadSuit {
			bestIdx = i
		}
	}
	return bestIdx
}

// ValidPlay enforces follow-suit discipline: follow the lead suit if able;
// if void in the lead suit, trump if holding any; otherwise any card.
// A nil leadSuit means the player leads the trick and any card is legal.
func ValidPlay(card common.Card, hand []common.Card, leadSuit *common.Suit, trump *common.Suit) bool {
	if leadSuit == nil {
		return true
	}
	if hasSuit(hand, *leadSuit) {
		return card.Suit == *leadSuit
	}
	if trump != nil && hasSuit(hand, *trump) {
		return card.Suit == *trump
	}
	return true
}

func hasSuit(hand []common.Card, suit common.Suit) bool {
	for _, c := range hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

func handContains(hand []common.Card, card common.Card) bool {
	for _, c := range hand {
		if c == card {
			return true
		}
	}
	return false
}

func removeCard(hand []common.Card, card common.Card) []common.Card {
	for i, c := range hand {
		if c == card {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}
