package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GamePlayer is one occupied seat. Bots have a NULL user_id and a display
// name of their own; humans take the username from the users table.
type GamePlayer struct {
	GameID        int64   `json:"game_id"`
	UserID        *int64  `json:"user_id,omitempty"`
	DisplayName   string  `json:"display_name"`
	Seat          int64   `json:"seat"`
	IsBot         bool    `json:"is_bot"`
	BotDifficulty *string `json:"bot_difficulty,omitempty"`
}

func AddGamePlayerTx(tx *sql.Tx, gameID int64, userID *int64, displayName string, seat int64, isBot bool, botDifficulty *string) error {
	_, err := tx.Exec(
		`INSERT INTO game_players(game_id, user_id, display_name, seat, is_bot, bot_difficulty) VALUES (?, ?, ?, ?, ?, ?)`,
		gameID, userID, displayName, seat, boolToInt(isBot), botDifficulty,
	)
	return err
}

// AddGamePlayerAutoSeatTx takes the lowest free seat. A single insert attempt,
// no retries inside the transaction: in SQLite a constraint violation can
// abort the whole tx, so callers retry by starting a fresh one.
func AddGamePlayerAutoSeatTx(tx *sql.Tx, gameID int64, userID *int64, displayName string, isBot bool, botDifficulty *string) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO game_players(game_id, user_id, display_name, seat, is_bot, bot_difficulty)
		 SELECT ?, ?, ?, COALESCE(MAX(seat), -1) + 1, ?, ?
		 FROM game_players WHERE game_id = ?
		 HAVING COALESCE(MAX(seat), -1) + 1 <= ?`,
		gameID, userID, displayName, boolToInt(isBot), botDifficulty, gameID, int64(3),
	)
	if err != nil {
		return 0, err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if ra == 0 {
		return 0, ErrRoomFull
	}

	var seat int64
	err = tx.QueryRow(
		`SELECT MAX(seat) FROM game_players WHERE game_id = ?`, gameID,
	).Scan(&seat)
	if err != nil {
		return 0, err
	}
	if seat < 0 || seat > 3 {
		return 0, errors.New("invalid assigned seat")
	}
	return seat, nil
}

func ListGamePlayersByGame(db *sql.DB, gameID int64) ([]GamePlayer, error) {
	return ListGamePlayersByGameContext(context.Background(), db, gameID)
}

// ListGamePlayersByGameContext returns the seats for a game in seat order,
// joining users for human display names.
func ListGamePlayersByGameContext(ctx context.Context, db *sql.DB, gameID int64) ([]GamePlayer, error) {
	rows, err := db.QueryContext(
		ctx,
		`SELECT gp.game_id, gp.user_id, COALESCE(u.username, gp.display_name) AS display_name, gp.seat, gp.is_bot, gp.bot_difficulty
		 FROM game_players gp
		 LEFT JOIN users u ON u.id = gp.user_id
		 WHERE gp.game_id = ? ORDER BY gp.seat ASC`,
		gameID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GamePlayer
	for rows.Next() {
		var gp GamePlayer
		var userID sql.NullInt64
		var isBotVal any
		var botDiff sql.NullString
		if err := rows.Scan(&gp.GameID, &userID, &gp.DisplayName, &gp.Seat, &isBotVal, &botDiff); err != nil {
			return nil, fmt.Errorf("scan game player (game_id=%d): %w", gameID, err)
		}
		if userID.Valid {
			v := userID.Int64
			gp.UserID = &v
		}
		gp.IsBot = parseSQLiteBool(isBotVal)
		if botDiff.Valid {
			v := botDiff.String
			gp.BotDifficulty = &v
		}
		out = append(out, gp)
	}
	return out, rows.Err()
}

// SeatForUser returns the seat a user occupies in a game.
func SeatForUser(players []GamePlayer, userID int64) (int64, bool) {
	for _, p := range players {
		if p.UserID != nil && *p.UserID == userID {
			return p.Seat, true
		}
	}
	return 0, false
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
