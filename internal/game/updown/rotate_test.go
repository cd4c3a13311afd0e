package updown

import (
	"math/rand"
	"reflect"
	"testing"
)

// richState returns a mid-play snapshot where every seat-indexed field is
// populated, so a missed remap in either direction shows up.
func richState(t *testing.T) GameState {
	t.Helper()
	e := NewEngine(rand.New(rand.NewSource(9)))
	s := testMatch()
	s.DealNumber = 6
	s = e.StartDeal(s)
	for i := 0; i < NumSeats; i++ {
		seat := s.CurrentPlayerIndex
		s = e.PlaceBid(s, seat, ChooseBid(s, seat, BotMedium, nil))
	}
	// Finish one trick so LastTrick is set, then open the next.
	for i := 0; i < NumSeats+2; i++ {
		seat := s.CurrentPlayerIndex
		legal := GetValidPlays(s, seat)
		s = e.PlayCard(s, seat, legal[0])
	}
	if s.LastTrick == nil || len(s.CurrentTrick) == 0 {
		t.Fatalf("setup did not produce a mid-trick state with history")
	}
	return s
}

func TestRotateUnrotateInvolution(t *testing.T) {
	s := richState(t)
	for slot := 0; slot < NumSeats; slot++ {
		back := Unrotate(RotateForPlayer(s, slot), slot)
		if !reflect.DeepEqual(back, s) {
			t.Fatalf("Unrotate(Rotate(s, %d), %d) != s", slot, slot)
		}
	}
}

func TestRotateZeroIsIdentity(t *testing.T) {
	s := richState(t)
	if !reflect.DeepEqual(RotateForPlayer(s, 0), s) {
		t.Fatalf("rotating for seat 0 must be the identity")
	}
}

func TestRotatePutsViewerFirst(t *testing.T) {
	s := richState(t)
	for slot := 0; slot < NumSeats; slot++ {
		view := RotateForPlayer(s, slot)
		if view.Players[0].Name != s.Players[slot].Name {
			t.Fatalf("slot %d: viewer is %q at index 0, want %q", slot, view.Players[0].Name, s.Players[slot].Name)
		}
		if (s.Bids[slot] == nil) != (view.Bids[0] == nil) {
			t.Fatalf("slot %d: bid presence not carried to index 0", slot)
		}
	}
}

func TestRotateRemapsScalarSeats(t *testing.T) {
	s := richState(t)
	for slot := 0; slot < NumSeats; slot++ {
		view := RotateForPlayer(s, slot)

		// The player the canonical state says is to act must be the same
		// human after relabeling.
		canon := s.Players[s.CurrentPlayerIndex].Name
		if view.Players[view.CurrentPlayerIndex].Name != canon {
			t.Fatalf("slot %d: current player remapped to %q, want %q",
				slot, view.Players[view.CurrentPlayerIndex].Name, canon)
		}
		dealer := s.Players[s.DealerIndex].Name
		if view.Players[view.DealerIndex].Name != dealer {
			t.Fatalf("slot %d: dealer remapped to %q, want %q",
				slot, view.Players[view.DealerIndex].Name, dealer)
		}
		winner := s.Players[s.LastTrick.WinnerIndex].Name
		if view.Players[view.LastTrick.WinnerIndex].Name != winner {
			t.Fatalf("slot %d: last trick winner remapped to %q, want %q",
				slot, view.Players[view.LastTrick.WinnerIndex].Name, winner)
		}
	}
}

func TestRotateDoesNotTouchCanonical(t *testing.T) {
	s := richState(t)
	snapshot := s.Clone()
	_ = RotateForPlayer(s, 2)
	if !reflect.DeepEqual(s, snapshot) {
		t.Fatalf("rotation mutated the canonical state")
	}
}
