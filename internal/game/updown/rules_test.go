package updown

import (
	"testing"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

func TestTableOrderVisitsEverySeat(t *testing.T) {
	// South(0) -> West(2) -> North(1) -> East(3) -> South(0).
	seat := 0
	seen := map[int]bool{0: true}
	order := []int{0}
	for i := 0; i < NumSeats-1; i++ {
		seat = NextSeat(seat)
		if seen[seat] {
			t.Fatalf("seat %d visited twice", seat)
		}
		seen[seat] = true
		order = append(order, seat)
	}
	if NextSeat(seat) != 0 {
		t.Fatalf("table order does not cycle back to seat 0")
	}
	want := []int{0, 2, 1, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("table order %v, want %v", order, want)
		}
	}
}

func TestTricksInDealArc(t *testing.T) {
	cases := map[int]int{
		1: 1, 5: 5, 9: 9,
		10: 9, 11: 9, 12: 9,
		13: 8, 17: 4, 20: 1,
		21: 9, 24: 9,
		25: 9, 28: 9,
	}
	for deal, want := range cases {
		if got := TricksInDeal(deal); got != want {
			t.Errorf("TricksInDeal(%d) = %d, want %d", deal, got, want)
		}
	}
}

func TestDealKindThresholds(t *testing.T) {
	cases := map[int]DealKind{
		1: DealNormal, 20: DealNormal,
		21: DealNoTrump, 24: DealNoTrump,
		25: DealDark, 28: DealDark,
	}
	for deal, want := range cases {
		if got := DealKindFor(deal); got != want {
			t.Errorf("DealKindFor(%d) = %q, want %q", deal, got, want)
		}
	}
}

func TestValidBidSumDealerStuck(t *testing.T) {
	// Bids 3,3,2 are in; the dealer may not bid the 1 that totals 9.
	tricks := 9
	three, two := 3, 2
	for bid := 0; bid <= tricks; bid++ {
		b := bid
		bids := []*int{&three, &three, &two, &b}
		want := bid != 1
		if got := ValidBidSum(bids, tricks); got != want {
			t.Errorf("ValidBidSum with dealer bid %d = %v, want %v", bid, got, want)
		}
	}
}

func TestTrickWinnerTrumpBeatsRank(t *testing.T) {
	trump := common.Hearts
	trick := []common.Card{
		{Rank: common.Six, Suit: common.Spades},
		{Rank: common.Ace, Suit: common.Spades},
		{Rank: common.King, Suit: common.Hearts},
		{Rank: common.Ten, Suit: common.Spades},
	}
	if got := TrickWinner(trick, common.Spades, &trump); got != 2 {
		t.Fatalf("TrickWinner = %d, want 2 (the only trump)", got)
	}
}

func TestTrickWinnerLeadSuitByRank(t *testing.T) {
	trick := []common.Card{
		{Rank: common.Ten, Suit: common.Clubs},
		{Rank: common.Ace, Suit: common.Diamonds},
		{Rank: common.King, Suit: common.Clubs},
		{Rank: common.Six, Suit: common.Clubs},
	}
	if got := TrickWinner(trick, common.Clubs, nil); got != 2 {
		t.Fatalf("TrickWinner = %d, want 2 (highest of lead suit)", got)
	}
}

func TestTrickWinnerHigherTrumpWins(t *testing.T) {
	trump := common.Spades
	trick := []common.Card{
		{Rank: common.Seven, Suit: common.Spades},
		{Rank: common.Ace, Suit: common.Hearts},
		{Rank: common.Jack, Suit: common.Spades},
		{Rank: common.Eight, Suit: common.Spades},
	}
	if got := TrickWinner(trick, common.Spades, &trump); got != 2 {
		t.Fatalf("TrickWinner = %d, want 2 (highest trump)", got)
	}
}

func TestValidPlayFollowSuit(t *testing.T) {
	trump := common.Hearts
	lead := common.Spades
	hand := []common.Card{
		{Rank: common.Six, Suit: common.Spades},
		{Rank: common.Ace, Suit: common.Hearts},
		{Rank: common.King, Suit: common.Clubs},
	}

	if !ValidPlay(hand[0], hand, &lead, &trump) {
		t.Fatalf("following the lead suit must be legal")
	}
	if ValidPlay(hand[1], hand, &lead, &trump) {
		t.Fatalf("playing off-suit while holding the lead suit must be illegal")
	}
}

func TestValidPlayMustTrumpWhenVoid(t *testing.T) {
	trump := common.Hearts
	lead := common.Spades
	hand := []common.Card{
		{Rank: common.Ace, Suit: common.Hearts},
		{Rank: common.King, Suit: common.Clubs},
	}

	if !ValidPlay(hand[0], hand, &lead, &trump) {
		t.Fatalf("trumping when void in the lead suit must be legal")
	}
	if ValidPlay(hand[1], hand, &lead, &trump) {
		t.Fatalf("discarding while holding trump must be illegal")
	}
}

func TestValidPlayAnythingWhenVoidOfBoth(t *testing.T) {
	trump := common.Hearts
	lead := common.Spades
	hand := []common.Card{
		{Rank: common.King, Suit: common.Clubs},
		{Rank: common.Six, Suit: common.Diamonds},
	}
	for _, c := range hand {
		if !ValidPlay(c, hand, &lead, &trump) {
			t.Fatalf("any card must be legal when void of lead suit and trump")
		}
	}
}

func TestValidPlayLeaderUnrestricted(t *testing.T) {
	trump := common.Hearts
	hand := []common.Card{
		{Rank: common.Six, Suit: common.Spades},
		{Rank: common.Ace, Suit: common.Hearts},
	}
	for _, c := range hand {
		if !ValidPlay(c, hand, nil, &trump) {
			t.Fatalf("the first card of a trick is always legal")
		}
	}
}
