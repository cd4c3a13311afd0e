package updown

import (
	"encoding/json"
	"fmt"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

// NumSeats is fixed: up-and-down is a four-player game.
const NumSeats = 4

// TotalDeals is the length of the full match arc.
const TotalDeals = 28

type Phase string

const (
	PhaseBidding      Phase = "bidding"
	PhaseDarkBidding  Phase = "dark_bidding"
	PhasePlaying      Phase = "playing"
	PhaseDealComplete Phase = "deal_complete"
	PhaseGameComplete Phase = "game_complete"
)

type DealKind string

const (
	DealNormal  DealKind = "normal"
	DealNoTrump DealKind = "no_trump"
	DealDark    DealKind = "dark"
)

type Player struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Hand        []common.Card `json:"hand"`
	TricksTaken int           `json:"tricks_taken"`
	Score       int           `json:"score"`
}

// CompletedTrick is the most recent resolved trick, kept for display only.
// Cards are in play order; seat fields are canonical seat indexes.
type CompletedTrick struct {
	Cards       []common.Card `json:"cards"`
	WinnerIndex int           `json:"winner_index"`
	LeaderIndex int           `json:"leader_index"`
}

// GameState is the whole-game snapshot. Every transition takes a snapshot and
// returns a new one; nothing is shared between input and output, which is what
// makes snapshots safe to persist and broadcast as opaque blobs.
type GameState struct {
	Phase              Phase            `json:"phase"`
	Players            []Player         `json:"players"`
	Bids               []*int           `json:"bids"`
	DealerIndex        int              `json:"dealer_index"`
	CurrentPlayerIndex int              `json:"current_player_index"`
	TrickLeaderIndex   int              `json:"trick_leader_index"`
	Trump              *common.Suit     `json:"trump,omitempty"`
	TrumpCard          *common.Card     `json:"trump_card,omitempty"`
	TricksInDeal       int              `json:"tricks_in_deal"`
	DealNumber         int              `json:"deal_number"`
	CurrentTrick       []common.Card    `json:"current_trick"`
	LastTrick          *CompletedTrick  `json:"last_trick,omitempty"`
}

// NewMatch returns the pre-deal state for deal 1. The dealer starts at seat 3
// so the local player (seat 0) is the first receiver and first bidder.
func NewMatch(names [NumSeats]string) GameState {
	players := make([]Player, NumSeats)
	for i := range players {
		players[i] = Player{ID: int64(i), Name: names[i], Hand: []common.Card{}}
	}
	return GameState{
		Phase:              PhaseBidding,
		Players:            players,
		Bids:               make([]*int, NumSeats),
		DealerIndex:        NumSeats - 1,
		CurrentPlayerIndex: 0,
		TrickLeaderIndex:   0,
		DealNumber:         1,
	}
}

// Clone deep-copies the state. Transitions clone first and mutate the copy.
func (s GameState) Clone() GameState {
	out := s

	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		cp := p
		cp.Hand = append([]common.Card(nil), p.Hand...)
		if cp.Hand == nil {
			cp.Hand = []common.Card{}
		}
		out.Players[i] = cp
	}

	out.Bids = make([]*int, len(s.Bids))
	for i, b := range s.Bids {
		if b != nil {
			v := *b
			out.Bids[i] = &v
		}
	}

	out.CurrentTrick = append([]common.Card(nil), s.CurrentTrick...)

	if s.Trump != nil {
		t := *s.Trump
		out.Trump = &t
	}
	if s.TrumpCard != nil {
		c := *s.TrumpCard
		out.TrumpCard = &c
	}
	if s.LastTrick != nil {
		lt := *s.LastTrick
		lt.Cards = append([]common.Card(nil), s.LastTrick.Cards...)
		out.LastTrick = &lt
	}
	return out
}

// DecodeState is the only supported path from a persisted or received blob to
// a GameState. Blobs are never trusted: the decoded value must pass Validate.
func DecodeState(data []byte) (GameState, error) {
	var s GameState
	if err := json.Unmarshal(data, &s); err != nil {
		return GameState{}, fmt.Errorf("decode game state: %w", err)
	}
	if err := Validate(s); err != nil {
		return GameState{}, fmt.Errorf("decode game state: %w", err)
	}
	return s, nil
}

// Validate performs the structural checks required before a snapshot may be
// handed to engine functions.
func Validate(s GameState) error {
	switch s.Phase {
	case PhaseBidding, PhaseDarkBidding, PhasePlaying, PhaseDealComplete, PhaseGameComplete:
	default:
		return fmt.Errorf("unknown phase %q", s.Phase)
	}
	if len(s.Players) != NumSeats {
		return fmt.Errorf("expected %d players, got %d", NumSeats, len(s.Players))
	}
	if len(s.Bids) != NumSeats {
		return fmt.Errorf("expected %d bid slots, got %d", NumSeats, len(s.Bids))
	}
	if s.DealNumber < 1 || s.DealNumber > TotalDeals {
		return fmt.Errorf("deal number %d out of range", s.DealNumber)
	}
	if s.TricksInDeal < 0 || s.TricksInDeal > maxTricks {
		return fmt.Errorf("tricks in deal %d out of range", s.TricksInDeal)
	}
	for _, seat := range []int{s.DealerIndex, s.CurrentPlayerIndex, s.TrickLeaderIndex} {
		if seat < 0 || seat >= NumSeats {
			return fmt.Errorf("seat index %d out of range", seat)
		}
	}
	if len(s.CurrentTrick) >= NumSeats {
		return fmt.Errorf("current trick has %d cards", len(s.CurrentTrick))
	}
	for _, c := range s.CurrentTrick {
		if !c.Valid() {
			return fmt.Errorf("invalid card %v in current trick", c)
		}
	}
	if s.Trump != nil {
		switch *s.Trump {
		case common.Spades, common.Hearts, common.Diamonds, common.Clubs:
		default:
			return fmt.Errorf("invalid trump suit %q", *s.Trump)
		}
	}
	if s.TrumpCard != nil && !s.TrumpCard.Valid() {
		return fmt.Errorf("invalid trump card %v", *s.TrumpCard)
	}

	tricksTaken := 0
	handCards := 0
	for i, p := range s.Players {
		if p.TricksTaken < 0 || p.TricksTaken > s.TricksInDeal {
			return fmt.Errorf("player %d tricks taken %d out of range", i, p.TricksTaken)
		}
		tricksTaken += p.TricksTaken
		handCards += len(p.Hand)
		for _, c := range p.Hand {
			if !c.Valid() {
				return fmt.Errorf("player %d holds invalid card %v", i, c)
			}
		}
	}
	for i, b := range s.Bids {
		if b != nil && (*b < 0 || *b > s.TricksInDeal) {
			return fmt.Errorf("bid %d for seat %d out of range", *b, i)
		}
	}

	// Card conservation: dealt cards are either in hands, in the open trick,
	// or consumed by completed tricks.
	switch s.Phase {
	case PhasePlaying:
		total := handCards + len(s.CurrentTrick) + NumSeats*tricksTaken
		if total != NumSeats*s.TricksInDeal {
			return fmt.Errorf("card count mismatch: %d accounted, want %d", total, NumSeats*s.TricksInDeal)
		}
	case PhaseBidding:
		if handCards != NumSeats*s.TricksInDeal {
			return fmt.Errorf("bidding phase with %d hand cards, want %d", handCards, NumSeats*s.TricksInDeal)
		}
	case PhaseDarkBidding:
		if handCards != 0 {
			return fmt.Errorf("dark bidding with %d cards already dealt", handCards)
		}
	}
	return nil
}

// LastDealComplete reports whether the match has no deals left after the
// current one.
func (s GameState) LastDealComplete() bool {
	return s.Phase == PhaseDealComplete && s.DealNumber >= TotalDeals
}
