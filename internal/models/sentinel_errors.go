package models

import "errors"

var (
	ErrInvalidJSON       = errors.New("invalid json")
	ErrInvalidCard       = errors.New("invalid card")
	ErrNotAPlayer        = errors.New("not a player")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrCardNotInHand     = errors.New("card not in hand")
	ErrIllegalPlay       = errors.New("play violates follow-suit rules")
	ErrNotBiddingPhase   = errors.New("not in a bidding phase")
	ErrNotPlayingPhase   = errors.New("not in the playing phase")
	ErrBidRejected       = errors.New("bid rejected")
	ErrDealNotComplete   = errors.New("deal not complete")
	ErrGameNotStarted    = errors.New("game not started")
	ErrMatchComplete     = errors.New("match already complete")
	ErrUnknownMoveType   = errors.New("unknown move type")
	ErrInvalidSeat       = errors.New("invalid seat")
	ErrRoomFull          = errors.New("room full")
	ErrRoomNotJoinable   = errors.New("room not joinable")
	ErrGameStateMissing  = errors.New("persisted game state missing")
	ErrGameStateConflict = errors.New("game state conflict")
	ErrGameNotFound      = errors.New("game not found")
)
