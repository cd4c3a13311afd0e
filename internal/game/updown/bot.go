package updown

import (
	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
)

type BotDifficulty string

const (
	BotEasy   BotDifficulty = "easy"
	BotMedium BotDifficulty = "medium"
	BotHard   BotDifficulty = "hard"
)

// ChooseBid estimates tricks from trump count and high cards, then clamps the
// estimate to the legal range. When the bot is the dealer and the other three
// bids are in, it steers away from the forbidden total so the re-bid loop can
// never trap it. Bots see only their own hand and the public state. The rng
// feeds the easy bot's jitter; nil falls back to crypto/rand, tests pass a
// seeded source.
func ChooseBid(s GameState, seat int, difficulty BotDifficulty, rng common.RandSource) int {
	if seat < 0 || seat >= len(s.Players) {
		return 0
	}
	hand := s.Players[seat].Hand

	est := 0
	if s.Phase == PhaseDarkBidding {
		// No cards to look at; expect an average share of the tricks.
		est = s.TricksInDeal / NumSeats
	} else {
		lowTrump := 0
		for _, c := range hand {
			switch {
			case s.Trump != nil && c.Suit == *s.Trump && c.Rank >= common.Ten:
				est++
			case s.Trump != nil && c.Suit == *s.Trump:
				lowTrump++
			case c.Rank == common.Ace:
				est++
			case c.Rank == common.King && difficulty == BotHard:
				est++
			}
		}
		// Low trumps win roughly every other time.
		est += lowTrump / 2
	}

	if difficulty == BotEasy {
		if rng == nil {
			rng = common.CryptoSource()
		}
		est += rng.Intn(3) - 1
	}

	if est < 0 {
		est = 0
	}
	if est > s.TricksInDeal {
		est = s.TricksInDeal
	}

	if seat == s.DealerIndex && wouldCompleteForbiddenSum(s, seat, est) {
		if est > 0 {
			est--
		} else {
			est++
		}
	}
	return est
}

func wouldCompleteForbiddenSum(s GameState, seat, bid int) bool {
	sum := bid
	for i, b := range s.Bids {
		if i == seat {
			continue
		}
		if b == nil {
			// Not the closing bid; any value is fine.
			return false
		}
		sum += *b
	}
	return sum == s.TricksInDeal
}

// ChoosePlay picks a card from GetValidPlays. Easy plays at random from the
// given rng (nil means crypto/rand). Medium sheds the weakest legal card,
// preferring to follow the lead suit on rank ties. Hard first tries to take
// the trick with the cheapest winning card when it still wants tricks, then
// falls back to shedding.
func ChoosePlay(s GameState, seat int, difficulty BotDifficulty, rng common.RandSource) (common.Card, bool) {
	legal := GetValidPlays(s, seat)
	if len(legal) == 0 {
		return common.Card{}, false
	}

	switch difficulty {
	case BotEasy:
		if rng == nil {
			rng = common.CryptoSource()
		}
		return legal[rng.Intn(len(legal))], true
	case BotHard:
		if wantsTrick(s, seat) {
			if c, ok := cheapestWinning(s, legal); ok {
				return c, true
			}
		}
		return weakestPreferringLead(s, legal), true
	default:
		return weakestPreferringLead(s, legal), true
	}
}

func wantsTrick(s GameState, seat int) bool {
	if s.Bids[seat] == nil {
		return false
	}
	return s.Players[seat].TricksTaken < *s.Bids[seat]
}

func cheapestWinning(s GameState, legal []common.Card) (common.Card, bool) {
	var best common.Card
	found := false
	for _, c := range legal {
		if !winsIfPlayed(s, c) {
			continue
		}
		if !found || cardStrength(s, c) < cardStrength(s, best) {
			best = c
			found = true
		}
	}
	return best, found
}

func winsIfPlayed(s GameState, card common.Card) bool {
	trick := append(append([]common.Card(nil), s.CurrentTrick...), card)
	leadSuit := trick[0].Suit
	return TrickWinner(trick, leadSuit, s.Trump) == len(trick)-1
}

func weakestPreferringLead(s GameState, legal []common.Card) common.Card {
	best := legal[0]
	for _, c := range legal[1:] {
		cs, bs := cardStrength(s, c), cardStrength(s, best)
		if cs < bs {
			best = c
			continue
		}
		if cs == bs && len(s.CurrentTrick) > 0 &&
			c.Suit == s.CurrentTrick[0].Suit && best.Suit != s.CurrentTrick[0].Suit {
			best = c
		}
	}
	return best
}

// cardStrength orders cards for shedding: trumps above everything, then rank.
func cardStrength(s GameState, c common.Card) int {
	strength := int(c.Rank)
	if s.Trump != nil && c.Suit == *s.Trump {
		strength += 100
	}
	return strength
}
