package updown

import (
	"errors"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

// Engine transitions never fail loudly: an illegal action is a silent no-op
// so optimistic UI dispatch needs no error protocol. These query functions
// are the diagnostic side-channel; call them before (or after) a transition
// when the caller wants to know why a move would be rejected.
var (
	ErrWrongPhase   = errors.New("action not valid in this phase")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrSeatRange    = errors.New("seat index out of range")
	ErrAlreadyBid   = errors.New("bid already placed")
	ErrBidRange     = errors.New("bid out of range")
	ErrCardNotHeld  = errors.New("card not in hand")
	ErrSuitRule     = errors.New("play violates follow-suit rules")
)

// BidError reports why PlaceBid would reject the action, or nil.
func BidError(s GameState, seat, bid int) error {
	if s.Phase != PhaseBidding && s.Phase != PhaseDarkBidding {
		return ErrWrongPhase
	}
	if seat < 0 || seat >= NumSeats {
		return ErrSeatRange
	}
	if seat != s.CurrentPlayerIndex {
		return ErrNotYourTurn
	}
	if s.Bids[seat] != nil {
		return ErrAlreadyBid
	}
	if bid < 0 || bid > s.TricksInDeal {
		return ErrBidRange
	}
	return nil
}

// PlayError reports why PlayCard would reject the action, or nil.
func PlayError(s GameState, seat int, card common.Card) error {
	if s.Phase != PhasePlaying {
		return ErrWrongPhase
	}
	if seat < 0 || seat >= NumSeats {
		return ErrSeatRange
	}
	if seat != s.CurrentPlayerIndex {
		return ErrNotYourTurn
	}
	if !handContains(s.Players[seat].Hand, card) {
		return ErrCardNotHeld
	}
	var leadSuit *common.Suit
	if len(s.CurrentTrick) > 0 {
		ls := s.CurrentTrick[0].Suit
		leadSuit = &ls
	}
	if !ValidPlay(card, s.Players[seat].Hand, leadSuit, s.Trump) {
		return ErrSuitRule
	}
	return nil
}
