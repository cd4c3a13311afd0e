package updown

import (
	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

// Engine applies state transitions. All transition methods are pure with
// respect to the GameState argument: they return a fresh snapshot and never
// modify the input. Illegal actions return the input unchanged; use BidError
// and PlayError for the reason when one is needed. The only impurity is the
// injected random source consumed when dealing.
type Engine struct {
	rng common.RandSource
}

// NewEngine returns an engine using the given random source, or crypto/rand
// when rng is nil.
func NewEngine(rng common.RandSource) *Engine {
	if rng == nil {
		rng = common.CryptoSource()
	}
	return &Engine{rng: rng}
}

// StartDeal shuffles and deals the current deal number. Normal and no-trump
// deals go straight to bidding with hands dealt; dark deals enter
// dark_bidding with no cards dealt, and hands arrive only once all four bids
// are locked in.
func (e *Engine) StartDeal(s GameState) GameState {
	next := s.Clone()
	tricks := TricksInDeal(next.DealNumber)
	next.TricksInDeal = tricks
	next.Bids = make([]*int, NumSeats)
	next.CurrentTrick = nil
	next.LastTrick = nil
	next.Trump = nil
	next.TrumpCard = nil
	for i := range next.Players {
		next.Players[i].Hand = []common.Card{}
		next.Players[i].TricksTaken = 0
	}

	first := NextSeat(next.DealerIndex)
	next.CurrentPlayerIndex = first
	next.TrickLeaderIndex = first

	if DealKindFor(next.DealNumber) == DealDark {
		next.Phase = PhaseDarkBidding
		return next
	}

	deck := common.NewDeck()
	common.Shuffle(deck, e.rng)
	dealHands(&next, deck, tricks, first)

	if DealKindFor(next.DealNumber) == DealNormal {
		assignTrump(&next, deck, tricks)
	}

	next.Phase = PhaseBidding
	return next
}

// PlaceBid records a bid and advances the turn. When the fourth bid lands,
// the dealer responsibility rule is checked: a forbidden total clears only
// the dealer's bid and hands the turn back to the dealer. A valid total
// starts play, or deals the cards first on a dark deal.
func (e *Engine) PlaceBid(s GameState, seat, bid int) GameState {
	if BidError(s, seat, bid) != nil {
		return s
	}
	next := s.Clone()
	b := bid
	next.Bids[seat] = &b

	for _, pb := range next.Bids {
		if pb == nil {
			next.CurrentPlayerIndex = NextSeat(seat)
			return next
		}
	}

	if !ValidBidSum(next.Bids, next.TricksInDeal) {
		next.Bids[next.DealerIndex] = nil
		next.CurrentPlayerIndex = next.DealerIndex
		return next
	}

	if next.Phase == PhaseDarkBidding {
		e.completeDarkDeal(&next)
	}
	first := NextSeat(next.DealerIndex)
	next.Phase = PhasePlaying
	next.CurrentPlayerIndex = first
	next.TrickLeaderIndex = first
	return next
}

// completeDarkDeal deals the full deck after dark bidding. All 36 cards go
// out, so trump is decided by the very last card dealt.
func (e *Engine) completeDarkDeal(next *GameState) {
	deck := common.NewDeck()
	common.Shuffle(deck, e.rng)
	dealHands(next, deck, next.TricksInDeal, NextSeat(next.DealerIndex))
	assignTrump(next, deck, next.TricksInDeal)
}

// PlayCard plays a card for the given seat. Illegal plays (wrong turn, card
// not held, suit discipline violated) return the input state unchanged; the
// engine revalidates even when callers gate on GetValidPlays, since caller
// gating cannot be trusted across the network.
func (e *Engine) PlayCard(s GameState, seat int, card common.Card) GameState {
	if PlayError(s, seat, card) != nil {
		return s
	}
	next := s.Clone()
	next.Players[seat].Hand = removeCard(next.Players[seat].Hand, card)
	next.CurrentTrick = append(next.CurrentTrick, card)

	if len(next.CurrentTrick) < NumSeats {
		next.CurrentPlayerIndex = NextSeat(seat)
		return next
	}

	leadSuit := next.CurrentTrick[0].Suit
	winnerPos := TrickWinner(next.CurrentTrick, leadSuit, next.Trump)
	winnerSeat := seatAfter(next.TrickLeaderIndex, winnerPos)

	next.Players[winnerSeat].TricksTaken++
	next.LastTrick = &CompletedTrick{
		Cards:       append([]common.Card(nil), next.CurrentTrick...),
		WinnerIndex: winnerSeat,
		LeaderIndex: next.TrickLeaderIndex,
	}
	next.CurrentTrick = nil
	next.TrickLeaderIndex = winnerSeat
	next.CurrentPlayerIndex = winnerSeat

	for i := range next.Players {
		if len(next.Players[i].Hand) > 0 {
			return next
		}
	}

	// Deal over: settle points.
	for i := range next.Players {
		bid := 0
		if next.Bids[i] != nil {
			bid = *next.Bids[i]
		}
		next.Players[i].Score += DealPoints(bid, next.Players[i].TricksTaken)
	}
	next.Phase = PhaseDealComplete
	return next
}

// StartNextDeal advances the dealer and begins the next deal. After deal 28
// there is no further deal; ok is false and the input state is returned
// untouched. Callers must treat ok=false as match complete.
func (e *Engine) StartNextDeal(s GameState) (GameState, bool) {
	if s.DealNumber >= TotalDeals {
		return s, false
	}
	next := s.Clone()
	next.DealerIndex = NextSeat(next.DealerIndex)
	next.DealNumber++
	return e.StartDeal(next), true
}

// FinishMatch marks the terminal phase once StartNextDeal reports no deals
// remain.
func FinishMatch(s GameState) GameState {
	next := s.Clone()
	next.Phase = PhaseGameComplete
	return next
}

// GetValidPlays filters a seat's hand by the follow-suit rules. It returns
// nil when it is not the seat's turn to play. Both the UI (greying out
// cards) and the bots use this; the engine itself revalidates on PlayCard.
func GetValidPlays(s GameState, seat int) []common.Card {
	if s.Phase != PhasePlaying || seat != s.CurrentPlayerIndex {
		return nil
	}
	if seat < 0 || seat >= len(s.Players) {
		return nil
	}
	var leadSuit *common.Suit
	if len(s.CurrentTrick) > 0 {
		ls := s.CurrentTrick[0].Suit
		leadSuit = &ls
	}
	var out []common.Card
	for _, c := range s.Players[seat].Hand {
		if ValidPlay(c, s.Players[seat].Hand, leadSuit, s.Trump) {
			out = append(out, c)
		}
	}
	return out
}

// dealHands distributes cardsPerPlayer*NumSeats cards one at a time in table
// order starting at firstReceiver.
func dealHands(next *GameState, deck []common.Card, cardsPerPlayer, firstReceiver int) {
	idx := 0
	for round := 0; round < cardsPerPlayer; round++ {
		seat := firstReceiver
		for p := 0; p < NumSeats; p++ {
			next.Players[seat].Hand = append(next.Players[seat].Hand, deck[idx])
			idx++
			seat = NextSeat(seat)
		}
	}
}

// assignTrump turns the next undealt card. A 9-trick deal consumes the whole
// deck, in which case the last card dealt decides trump (the dark-deal rule).
func assignTrump(next *GameState, deck []common.Card, tricks int) {
	idx := NumSeats * tricks
	if idx >= len(deck) {
		idx = len(deck) - 1
	}
	card := deck[idx]
	suit := card.Suit
	next.Trump = &suit
	next.TrumpCard = &card
}
