package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sort"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
	"github.com/Mateteriya/UpNDown-sub000/internal/game/updown"
	"github.com/Mateteriya/UpNDown-sub000/internal/models"
)

// gameEngine is the shared transition engine. The nil source means dealing
// uses crypto/rand; tests construct their own engines with seeded sources.
var gameEngine = updown.NewEngine(nil)

type GameSnapshot struct {
	Game       *models.Game        `json:"game"`
	Players    []models.GamePlayer `json:"players"`
	State      updown.GameState    `json:"state"`
	HandCounts []int               `json:"hand_counts"`
	YourSeat   *int64              `json:"your_seat,omitempty"`
	ValidPlays []common.Card       `json:"valid_plays,omitempty"`
}

// BuildGameSnapshotForUser returns the game as one user may see it: rotated
// so they sit at index 0, opponents' hands hidden, plus their legal plays
// when it is their turn.
func BuildGameSnapshotForUser(db *sql.DB, gameID int64, userID int64) (*GameSnapshot, error) {
	g, err := models.GetGameByID(db, gameID)
	if err != nil {
		return nil, err
	}
	players, err := models.ListGamePlayersByGame(db, gameID)
	if err != nil {
		return nil, err
	}
	seat, isPlayer := models.SeatForUser(players, userID)
	if !isPlayer {
		return nil, models.ErrNotAPlayer
	}

	entry, unlock, err := ensureGameStateLocked(db, gameID)
	if err != nil {
		return nil, err
	}
	canonical := entry.State.Clone()
	unlock()

	view, counts := viewForSeat(canonical, int(seat))
	return &GameSnapshot{
		Game:       g,
		Players:    players,
		State:      view,
		HandCounts: counts,
		YourSeat:   &seat,
		ValidPlays: updown.GetValidPlays(canonical, int(seat)),
	}, nil
}

// BuildGameSnapshotPublic returns the spectator-safe snapshot with every
// hand hidden, in canonical seat order. Used for room broadcasts.
func BuildGameSnapshotPublic(db *sql.DB, gameID int64) (*GameSnapshot, error) {
	g, err := models.GetGameByID(db, gameID)
	if err != nil {
		return nil, err
	}
	players, err := models.ListGamePlayersByGame(db, gameID)
	if err != nil {
		return nil, err
	}

	entry, unlock, err := ensureGameStateLocked(db, gameID)
	if err != nil {
		return nil, err
	}
	canonical := entry.State.Clone()
	unlock()

	view, counts := publicView(canonical)
	return &GameSnapshot{Game: g, Players: players, State: view, HandCounts: counts}, nil
}

type moveRequest struct {
	Type string `json:"type"` // place_bid|play_card|next_deal
	Bid  *int   `json:"bid,omitempty"`
	Card string `json:"card,omitempty"`
}

// ApplyMove validates and applies one player action, runs any bot turns that
// follow, and persists the resulting snapshot. The engine treats illegal
// actions as no-ops, so the diagnostic queries are consulted first to give
// the client a reason instead of a silent unchanged state.
func ApplyMove(db *sql.DB, gameID int64, userID int64, req moveRequest) (any, error) {
	g, err := models.GetGameByID(db, gameID)
	if err != nil {
		return nil, err
	}
	players, err := models.ListGamePlayersByGame(db, gameID)
	if err != nil {
		return nil, err
	}
	seat, isPlayer := models.SeatForUser(players, userID)
	if !isPlayer {
		return nil, models.ErrNotAPlayer
	}
	switch g.Status {
	case "waiting":
		return nil, models.ErrGameNotStarted
	case "finished":
		return nil, models.ErrMatchComplete
	}

	entry, unlock, err := ensureGameStateLocked(db, gameID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s := entry.State
	var resp any

	switch req.Type {
	case "place_bid":
		if req.Bid == nil {
			return nil, models.ErrInvalidJSON
		}
		if err := updown.BidError(s, int(seat), *req.Bid); err != nil {
			return nil, mapBidError(err)
		}
		s = gameEngine.PlaceBid(s, int(seat), *req.Bid)
		resp = map[string]any{"ok": true, "phase": s.Phase}
	case "play_card":
		card, err := common.ParseCard(req.Card)
		if err != nil {
			return nil, models.ErrInvalidCard
		}
		if err := updown.PlayError(s, int(seat), card); err != nil {
			return nil, mapPlayError(err)
		}
		s = gameEngine.PlayCard(s, int(seat), card)
		resp = map[string]any{"ok": true, "phase": s.Phase}
	case "next_deal":
		if s.Phase == updown.PhaseGameComplete {
			return nil, models.ErrMatchComplete
		}
		if s.Phase != updown.PhaseDealComplete {
			return nil, models.ErrDealNotComplete
		}
		if s.LastDealComplete() {
			s = updown.FinishMatch(s)
		} else {
			next, ok := gameEngine.StartNextDeal(s)
			if !ok {
				return nil, models.ErrMatchComplete
			}
			s = next
		}
		resp = map[string]any{"deal_number": s.DealNumber, "phase": s.Phase}
	default:
		return nil, models.ErrUnknownMoveType
	}

	s = runBots(s, players)

	if err := persistGameState(db, g, entry, s, players); err != nil {
		return nil, err
	}
	return resp, nil
}

// startMatch deals the first hand once all four seats are filled, seeds the
// engine state with the seat display names, and lets bots act if any sit
// before the first human in bid order.
func startMatch(db *sql.DB, g *models.Game, players []models.GamePlayer) error {
	entry, unlock, err := ensureGameStateLocked(db, g.ID)
	if err != nil {
		return err
	}
	defer unlock()

	// Work on a clone: entry.State shares its Players slice with the cache,
	// and a failed persist must not leave the cache ahead of the DB.
	s := entry.State.Clone()
	if s.Phase != updown.PhaseBidding || s.TricksInDeal != 0 {
		// Already dealt.
		return nil
	}
	for _, p := range players {
		if p.Seat >= 0 && int(p.Seat) < len(s.Players) {
			s.Players[p.Seat].Name = p.DisplayName
		}
	}
	s = gameEngine.StartDeal(s)
	s = runBots(s, players)
	return persistGameState(db, g, entry, s, players)
}

// runBots plays bot turns until a human is to act or the deal settles.
// A completed deal waits for a human to request the next one.
func runBots(s updown.GameState, players []models.GamePlayer) updown.GameState {
	botBySeat := map[int]models.GamePlayer{}
	for _, p := range players {
		if p.IsBot {
			botBySeat[int(p.Seat)] = p
		}
	}

	for guard := 0; guard < 256; guard++ {
		switch s.Phase {
		case updown.PhaseBidding, updown.PhaseDarkBidding, updown.PhasePlaying:
		default:
			return s
		}
		bot, ok := botBySeat[s.CurrentPlayerIndex]
		if !ok {
			return s
		}
		diff := updown.BotMedium
		if bot.BotDifficulty != nil {
			diff = updown.BotDifficulty(*bot.BotDifficulty)
		}

		if s.Phase == updown.PhasePlaying {
			card, ok := updown.ChoosePlay(s, s.CurrentPlayerIndex, diff, nil)
			if !ok {
				return s
			}
			s = gameEngine.PlayCard(s, s.CurrentPlayerIndex, card)
		} else {
			s = gameEngine.PlaceBid(s, s.CurrentPlayerIndex, updown.ChooseBid(s, s.CurrentPlayerIndex, diff, nil))
		}
	}
	return s
}

// persistGameState writes the snapshot with an optimistic version check and,
// in the same transaction, records deal results when a deal just settled and
// final standings when the match just ended. The in-memory entry is updated
// only after a successful commit.
func persistGameState(db *sql.DB, g *models.Game, entry *GameEntry, next updown.GameState, players []models.GamePlayer) error {
	prev := entry.State
	dealSettled := prev.Phase != updown.PhaseDealComplete && next.Phase == updown.PhaseDealComplete
	matchEnded := prev.Phase != updown.PhaseGameComplete && next.Phase == updown.PhaseGameComplete

	blob, err := json.Marshal(next)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	newVersion, err := models.UpdateGameStateTx(tx, g.ID, string(blob), entry.Version)
	if err != nil {
		return err
	}

	if dealSettled {
		if err := recordDealResultsTx(tx, g.ID, next, players); err != nil {
			return err
		}
	}
	if matchEnded {
		if err := finalizeMatchTx(tx, g, next, players); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	entry.State = next
	entry.Version = newVersion
	return nil
}

func recordDealResultsTx(tx *sql.Tx, gameID int64, s updown.GameState, players []models.GamePlayer) error {
	userBySeat := map[int64]*int64{}
	for _, p := range players {
		userBySeat[p.Seat] = p.UserID
	}
	kind := string(updown.DealKindFor(s.DealNumber))
	for seat := range s.Players {
		bid := 0
		if s.Bids[seat] != nil {
			bid = *s.Bids[seat]
		}
		points := updown.DealPoints(bid, s.Players[seat].TricksTaken)
		if err := models.InsertDealResultTx(tx, models.DealResult{
			GameID:     gameID,
			UserID:     userBySeat[int64(seat)],
			Seat:       int64(seat),
			DealNumber: int64(s.DealNumber),
			DealKind:   kind,
			Bid:        int64(bid),
			Points:     int64(points),
		}); err != nil {
			return err
		}
	}
	return nil
}

// finalizeMatchTx records the scoreboard, bumps user stats, and closes the
// game and room rows. Ties share a placement.
func finalizeMatchTx(tx *sql.Tx, g *models.Game, s updown.GameState, players []models.GamePlayer) error {
	type standing struct {
		seat  int
		score int
	}
	standings := make([]standing, len(s.Players))
	for i, p := range s.Players {
		standings[i] = standing{seat: i, score: p.Score}
	}
	sort.SliceStable(standings, func(a, b int) bool {
		return standings[a].score > standings[b].score
	})

	userBySeat := map[int64]*int64{}
	for _, p := range players {
		userBySeat[p.Seat] = p.UserID
	}

	placement := int64(0)
	prevScore := 0
	for i, st := range standings {
		if i == 0 || st.score != prevScore {
			placement = int64(i + 1)
		}
		prevScore = st.score

		userID := userBySeat[int64(st.seat)]
		if err := models.InsertScoreboardEntryTx(tx, userID, g.ID, int64(st.seat), int64(st.score), placement); err != nil {
			return err
		}
		if userID != nil {
			if err := models.IncrementUserMatchStatsTx(tx, *userID, placement == 1); err != nil {
				return err
			}
		}
	}

	if err := models.SetGameStatusTx(tx, g.ID, "finished"); err != nil {
		return err
	}
	return models.SetRoomStatusTx(tx, g.RoomID, "finished")
}

func ensureGameStateLocked(db *sql.DB, gameID int64) (*GameEntry, func(), error) {
	return defaultGameManager.GetOrCreateLocked(gameID, func() (GameEntry, error) {
		blob, version, ok, err := models.GetGameState(db, gameID)
		if err != nil {
			return GameEntry{}, err
		}
		if !ok {
			return GameEntry{}, models.ErrGameStateMissing
		}
		st, err := updown.DecodeState([]byte(blob))
		if err != nil {
			return GameEntry{}, err
		}
		return GameEntry{State: st, Version: version}, nil
	})
}

func mapBidError(err error) error {
	switch {
	case errors.Is(err, updown.ErrWrongPhase):
		return models.ErrNotBiddingPhase
	case errors.Is(err, updown.ErrNotYourTurn):
		return models.ErrNotYourTurn
	case errors.Is(err, updown.ErrSeatRange):
		return models.ErrInvalidSeat
	case errors.Is(err, updown.ErrAlreadyBid), errors.Is(err, updown.ErrBidRange):
		return models.ErrBidRejected
	default:
		return err
	}
}

func mapPlayError(err error) error {
	switch {
	case errors.Is(err, updown.ErrWrongPhase):
		return models.ErrNotPlayingPhase
	case errors.Is(err, updown.ErrNotYourTurn):
		return models.ErrNotYourTurn
	case errors.Is(err, updown.ErrSeatRange):
		return models.ErrInvalidSeat
	case errors.Is(err, updown.ErrCardNotHeld):
		return models.ErrCardNotInHand
	case errors.Is(err, updown.ErrSuitRule):
		return models.ErrIllegalPlay
	default:
		return err
	}
}
