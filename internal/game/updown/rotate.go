package updown

// Seat rotation lets the server keep one canonical state while each client
// renders itself at seat 0. Rotation is a pure relabeling: the engine always
// runs on canonical state, and views are recomputed per render or per
// outbound message, never persisted.
//
// Every field that encodes a seat index must be remapped here. A field missed
// in either direction is a silent multiplayer desync.

func rotateSeat(seat, slot int) int {
	return (seat - slot + NumSeats) % NumSeats
}

func unrotateSeat(seat, slot int) int {
	return (seat + slot) % NumSeats
}

// RotateForPlayer projects the canonical state into the view where mySlot
// appears at index 0. Array-indexed fields shift cyclically; scalar seat
// references are remapped with (seat - mySlot) mod 4.
func RotateForPlayer(s GameState, mySlot int) GameState {
	mySlot = ((mySlot % NumSeats) + NumSeats) % NumSeats
	out := s.Clone()
	src := s.Clone()

	for i := 0; i < NumSeats; i++ {
		out.Players[i] = src.Players[(i+mySlot)%NumSeats]
		out.Bids[i] = src.Bids[(i+mySlot)%NumSeats]
	}
	out.DealerIndex = rotateSeat(s.DealerIndex, mySlot)
	out.CurrentPlayerIndex = rotateSeat(s.CurrentPlayerIndex, mySlot)
	out.TrickLeaderIndex = rotateSeat(s.TrickLeaderIndex, mySlot)
	if out.LastTrick != nil {
		out.LastTrick.WinnerIndex = rotateSeat(s.LastTrick.WinnerIndex, mySlot)
		out.LastTrick.LeaderIndex = rotateSeat(s.LastTrick.LeaderIndex, mySlot)
	}
	return out
}

// Unrotate is the exact inverse of RotateForPlayer:
// Unrotate(RotateForPlayer(s, k), k) == s for every k in [0,4).
func Unrotate(view GameState, mySlot int) GameState {
	mySlot = ((mySlot % NumSeats) + NumSeats) % NumSeats
	out := view.Clone()
	src := view.Clone()

	for i := 0; i < NumSeats; i++ {
		out.Players[(i+mySlot)%NumSeats] = src.Players[i]
		out.Bids[(i+mySlot)%NumSeats] = src.Bids[i]
	}
	out.DealerIndex = unrotateSeat(view.DealerIndex, mySlot)
	out.CurrentPlayerIndex = unrotateSeat(view.CurrentPlayerIndex, mySlot)
	out.TrickLeaderIndex = unrotateSeat(view.TrickLeaderIndex, mySlot)
	if out.LastTrick != nil {
		out.LastTrick.WinnerIndex = unrotateSeat(view.LastTrick.WinnerIndex, mySlot)
		out.LastTrick.LeaderIndex = unrotateSeat(view.LastTrick.LeaderIndex, mySlot)
	}
	return out
}
