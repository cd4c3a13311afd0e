package updown

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

func testMatch() GameState {
	return NewMatch([NumSeats]string{"you", "north", "west", "east"})
}

func TestDealConservation(t *testing.T) {
	deck := common.NewDeck()
	for _, n := range []int{1, 5, 9} {
		s := testMatch()
		s.TricksInDeal = n
		dealHands(&s, deck, n, 0)

		seen := map[common.Card]bool{}
		for i, p := range s.Players {
			if len(p.Hand) != n {
				t.Fatalf("seat %d has %d cards, want %d", i, len(p.Hand), n)
			}
			for _, c := range p.Hand {
				if seen[c] {
					t.Fatalf("card %v dealt twice", c)
				}
				seen[c] = true
			}
		}
		for _, c := range deck[:NumSeats*n] {
			if !seen[c] {
				t.Fatalf("card %v from the dealt prefix missing from hands", c)
			}
		}
	}
}

func TestStartDealNormal(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))
	s := e.StartDeal(testMatch())

	if s.Phase != PhaseBidding {
		t.Fatalf("phase = %q, want bidding", s.Phase)
	}
	if s.TricksInDeal != 1 {
		t.Fatalf("tricks = %d, want 1 for deal 1", s.TricksInDeal)
	}
	if s.Trump == nil || s.TrumpCard == nil {
		t.Fatalf("normal deal must have a trump card turned")
	}
	if s.TrumpCard.Suit != *s.Trump {
		t.Fatalf("trump %q does not match trump card %v", *s.Trump, *s.TrumpCard)
	}
	first := NextSeat(s.DealerIndex)
	if s.CurrentPlayerIndex != first {
		t.Fatalf("first bidder = %d, want seat left of dealer %d", s.CurrentPlayerIndex, first)
	}
	if err := Validate(s); err != nil {
		t.Fatalf("dealt state invalid: %v", err)
	}
}

func TestStartDealNoTrump(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))
	s := testMatch()
	s.DealNumber = 21
	s = e.StartDeal(s)

	if s.Trump != nil || s.TrumpCard != nil {
		t.Fatalf("no-trump deal must not assign trump")
	}
	if s.TricksInDeal != 9 {
		t.Fatalf("tricks = %d, want 9", s.TricksInDeal)
	}
}

func TestDarkDealBidsBeforeCards(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(7)))
	s := testMatch()
	s.DealNumber = 25
	s = e.StartDeal(s)

	if s.Phase != PhaseDarkBidding {
		t.Fatalf("phase = %q, want dark_bidding", s.Phase)
	}
	for i, p := range s.Players {
		if len(p.Hand) != 0 {
			t.Fatalf("seat %d holds cards before dark bids are locked", i)
		}
	}

	for i := 0; i < NumSeats; i++ {
		seat := s.CurrentPlayerIndex
		s = e.PlaceBid(s, seat, ChooseBid(s, seat, BotMedium, nil))
	}

	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %q after dark bids, want playing", s.Phase)
	}
	for i, p := range s.Players {
		if len(p.Hand) != 9 {
			t.Fatalf("seat %d has %d cards after dark deal, want 9", i, len(p.Hand))
		}
	}
	if s.Trump == nil || s.TrumpCard == nil {
		t.Fatalf("dark deal must take trump from the last card")
	}
}

func TestDealerForcedToRebid(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(3)))
	s := testMatch()
	s.DealNumber = 9 // 9 tricks
	s = e.StartDeal(s)

	dealer := s.DealerIndex
	bids := map[int]int{}
	order := []int{}
	seat := s.CurrentPlayerIndex
	for i := 0; i < NumSeats-1; i++ {
		order = append(order, seat)
		bids[seat] = []int{3, 3, 2}[i]
		seat = NextSeat(seat)
	}
	if seat != dealer {
		t.Fatalf("dealer %d is not the last bidder (got %d)", dealer, seat)
	}
	for _, st := range order {
		s = e.PlaceBid(s, st, bids[st])
	}

	// The dealer's 1 would total 9; the engine must clear the dealer's bid
	// and keep the other three.
	s = e.PlaceBid(s, dealer, 1)
	if s.Phase != PhaseBidding {
		t.Fatalf("phase = %q, want still bidding", s.Phase)
	}
	if s.Bids[dealer] != nil {
		t.Fatalf("dealer bid not cleared after forbidden sum")
	}
	if s.CurrentPlayerIndex != dealer {
		t.Fatalf("turn must return to the dealer for the re-bid")
	}
	for _, st := range order {
		if s.Bids[st] == nil || *s.Bids[st] != bids[st] {
			t.Fatalf("non-dealer bid for seat %d was not retained", st)
		}
	}

	s = e.PlaceBid(s, dealer, 2)
	if s.Phase != PhasePlaying {
		t.Fatalf("phase = %q after legal dealer bid, want playing", s.Phase)
	}
}

func TestIllegalPlayIsNoOp(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(11)))
	s := testMatch()
	s.DealNumber = 5
	s = e.StartDeal(s)
	for i := 0; i < NumSeats; i++ {
		seat := s.CurrentPlayerIndex
		s = e.PlaceBid(s, seat, ChooseBid(s, seat, BotMedium, nil))
	}
	if s.Phase != PhasePlaying {
		t.Fatalf("setup failed: phase = %q", s.Phase)
	}

	cur := s.CurrentPlayerIndex
	other := NextSeat(cur)

	// Out of turn.
	out := e.PlayCard(s, other, s.Players[other].Hand[0])
	if !reflect.DeepEqual(out, s) {
		t.Fatalf("out-of-turn play must leave the state unchanged")
	}

	// Card not held.
	notHeld := common.Card{Rank: common.Ace, Suit: common.Spades}
	if handContains(s.Players[cur].Hand, notHeld) {
		notHeld = common.Card{Rank: common.Six, Suit: common.Hearts}
		if handContains(s.Players[cur].Hand, notHeld) {
			t.Skip("unlucky hand for this seed")
		}
	}
	out = e.PlayCard(s, cur, notHeld)
	if !reflect.DeepEqual(out, s) {
		t.Fatalf("playing an unheld card must leave the state unchanged")
	}

	// A card outside GetValidPlays.
	legal := GetValidPlays(s, cur)
	for _, c := range s.Players[cur].Hand {
		if handContains(legal, c) {
			continue
		}
		out = e.PlayCard(s, cur, c)
		if !reflect.DeepEqual(out, s) {
			t.Fatalf("playing outside GetValidPlays must leave the state unchanged")
		}
	}
}

func TestTrickResolutionCreditsWinner(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(2)))
	s := testMatch()
	s.DealNumber = 4
	s = e.StartDeal(s)
	for i := 0; i < NumSeats; i++ {
		seat := s.CurrentPlayerIndex
		s = e.PlaceBid(s, seat, ChooseBid(s, seat, BotMedium, nil))
	}

	leader := s.TrickLeaderIndex
	for i := 0; i < NumSeats; i++ {
		seat := s.CurrentPlayerIndex
		legal := GetValidPlays(s, seat)
		s = e.PlayCard(s, seat, legal[0])
	}

	if s.LastTrick == nil {
		t.Fatalf("completed trick not recorded")
	}
	if s.LastTrick.LeaderIndex != leader {
		t.Fatalf("last trick leader = %d, want %d", s.LastTrick.LeaderIndex, leader)
	}
	winner := s.LastTrick.WinnerIndex
	if s.TrickLeaderIndex != winner || s.CurrentPlayerIndex != winner {
		t.Fatalf("trick winner %d must lead the next trick", winner)
	}
	if s.Players[winner].TricksTaken != 1 {
		t.Fatalf("winner not credited with the trick")
	}
	if len(s.CurrentTrick) != 0 {
		t.Fatalf("current trick not cleared after resolution")
	}
}

// TestFullMatch drives all 28 deals with bots and checks the terminal
// sentinel plus score bookkeeping: every final score must equal the sum of
// that player's per-deal points.
func TestFullMatch(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(42)))
	s := e.StartDeal(testMatch())

	expected := make([]int, NumSeats)
	deals := 0

	for {
		guard := 0
		for s.Phase == PhaseBidding || s.Phase == PhaseDarkBidding {
			seat := s.CurrentPlayerIndex
			s = e.PlaceBid(s, seat, ChooseBid(s, seat, BotMedium, nil))
			if guard++; guard > 100 {
				t.Fatalf("bidding did not terminate (deal %d)", s.DealNumber)
			}
		}

		before := make([]int, NumSeats)
		bids := make([]int, NumSeats)
		taken := make([]int, NumSeats)
		for i := range s.Players {
			before[i] = s.Players[i].Score
			bids[i] = *s.Bids[i]
		}

		guard = 0
		for s.Phase == PhasePlaying {
			seat := s.CurrentPlayerIndex
			card, ok := ChoosePlay(s, seat, BotMedium, nil)
			if !ok {
				t.Fatalf("no legal play for seat %d in deal %d", seat, s.DealNumber)
			}
			s = e.PlayCard(s, seat, card)
			if guard++; guard > 200 {
				t.Fatalf("play did not terminate (deal %d)", s.DealNumber)
			}
		}
		if s.Phase != PhaseDealComplete {
			t.Fatalf("deal %d ended in phase %q", s.DealNumber, s.Phase)
		}
		if err := Validate(s); err != nil {
			t.Fatalf("state invalid after deal %d: %v", s.DealNumber, err)
		}

		totalTaken := 0
		for i := range s.Players {
			taken[i] = s.Players[i].TricksTaken
			totalTaken += taken[i]
			pts := DealPoints(bids[i], taken[i])
			expected[i] += pts
			if s.Players[i].Score != before[i]+pts {
				t.Fatalf("deal %d seat %d: score %d, want %d", s.DealNumber, i, s.Players[i].Score, before[i]+pts)
			}
		}
		if totalTaken != s.TricksInDeal {
			t.Fatalf("deal %d: %d tricks credited, want %d", s.DealNumber, totalTaken, s.TricksInDeal)
		}
		deals++

		ns, ok := e.StartNextDeal(s)
		if !ok {
			break
		}
		s = ns
	}

	if deals != TotalDeals {
		t.Fatalf("played %d deals, want %d", deals, TotalDeals)
	}
	if _, ok := e.StartNextDeal(s); ok {
		t.Fatalf("deal %d must be terminal", TotalDeals)
	}
	for i := range s.Players {
		if s.Players[i].Score != expected[i] {
			t.Fatalf("seat %d final score %d, want %d", i, s.Players[i].Score, expected[i])
		}
	}

	s = FinishMatch(s)
	if s.Phase != PhaseGameComplete {
		t.Fatalf("phase = %q, want game_complete", s.Phase)
	}
}
