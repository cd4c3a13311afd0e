package updown

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

// TestEasyBotDeterministicWithSeed replays one deal twice with the same
// seeded sources; the easy bot's jittered bids and random plays must come out
// identical both times.
func TestEasyBotDeterministicWithSeed(t *testing.T) {
	run := func(seed int64) ([]int, []common.Card) {
		e := NewEngine(rand.New(rand.NewSource(17)))
		rng := rand.New(rand.NewSource(seed))
		s := testMatch()
		s.DealNumber = 7
		s = e.StartDeal(s)

		var bids []int
		for i := 0; i < NumSeats; i++ {
			seat := s.CurrentPlayerIndex
			b := ChooseBid(s, seat, BotEasy, rng)
			bids = append(bids, b)
			s = e.PlaceBid(s, seat, b)
		}
		if s.Phase != PhasePlaying {
			t.Fatalf("phase = %q after four bot bids, want playing", s.Phase)
		}

		var plays []common.Card
		for s.Phase == PhasePlaying {
			seat := s.CurrentPlayerIndex
			c, ok := ChoosePlay(s, seat, BotEasy, rng)
			if !ok {
				t.Fatalf("no legal play for seat %d", seat)
			}
			plays = append(plays, c)
			s = e.PlayCard(s, seat, c)
		}
		return bids, plays
	}

	bids1, plays1 := run(5)
	bids2, plays2 := run(5)
	if !reflect.DeepEqual(bids1, bids2) {
		t.Fatalf("seeded easy bids differ: %v vs %v", bids1, bids2)
	}
	if !reflect.DeepEqual(plays1, plays2) {
		t.Fatalf("seeded easy plays differ: %v vs %v", plays1, plays2)
	}
}

// TestChooseBidNilSourceFallsBack pins the nil-rng path: the easy bot must
// still produce an in-range bid without a source supplied.
func TestChooseBidNilSourceFallsBack(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(23)))
	s := testMatch()
	s.DealNumber = 9
	s = e.StartDeal(s)

	seat := s.CurrentPlayerIndex
	for i := 0; i < 20; i++ {
		b := ChooseBid(s, seat, BotEasy, nil)
		if b < 0 || b > s.TricksInDeal {
			t.Fatalf("bid %d out of range [0,%d]", b, s.TricksInDeal)
		}
	}
}
