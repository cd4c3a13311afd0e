package handlers

import (
	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
	"github.com/Mateteriya/UpNDown-sub000/internal/game/updown"
)

// viewForSeat projects the canonical snapshot into what one seat may see:
// the state is rotated so the viewer sits at index 0, and every other hand is
// emptied. Hand sizes are reported separately so clients can render card
// backs without receiving card identities.
func viewForSeat(s updown.GameState, seat int) (updown.GameState, []int) {
	view := updown.RotateForPlayer(s, seat)
	counts := make([]int, len(view.Players))
	for i := range view.Players {
		counts[i] = len(view.Players[i].Hand)
		if i != 0 {
			view.Players[i].Hand = []common.Card{}
		}
	}
	return view, counts
}

// publicView hides every hand. Used for spectator-safe broadcasts where no
// single viewer is privileged.
func publicView(s updown.GameState) (updown.GameState, []int) {
	view := s.Clone()
	counts := make([]int, len(view.Players))
	for i := range view.Players {
		counts[i] = len(view.Players[i].Hand)
		view.Players[i].Hand = []common.Card{}
	}
	return view, counts
}
