package models

import (
	"database/sql"
	"time"
)

// ScoreboardEntry is one player's final result for a finished match.
// Placement is 1-based: 1 is the match winner.
type ScoreboardEntry struct {
	ID         int64     `json:"id"`
	UserID     *int64    `json:"user_id,omitempty"`
	GameID     int64     `json:"game_id"`
	Seat       int64     `json:"seat"`
	FinalScore int64     `json:"final_score"`
	Placement  int64     `json:"placement"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserStats struct {
	UserID        int64 `json:"user_id"`
	MatchesPlayed int64 `json:"matches_played"`
	MatchesWon    int64 `json:"matches_won"`
}

func InsertScoreboardEntryTx(tx *sql.Tx, userID *int64, gameID, seat, finalScore, placement int64) error {
	_, err := tx.Exec(
		`INSERT INTO scoreboard(user_id, game_id, seat, final_score, placement) VALUES (?, ?, ?, ?, ?)`,
		userID, gameID, seat, finalScore, placement,
	)
	return err
}

func ListScoreboard(db *sql.DB, limit int64) ([]ScoreboardEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT id, user_id, game_id, seat, final_score, placement, created_at
		 FROM scoreboard ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScoreboardEntry
	for rows.Next() {
		var e ScoreboardEntry
		var userID sql.NullInt64
		if err := rows.Scan(&e.ID, &userID, &e.GameID, &e.Seat, &e.FinalScore, &e.Placement, &e.CreatedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			v := userID.Int64
			e.UserID = &v
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func GetUserStats(db *sql.DB, userID int64) (*UserStats, error) {
	var s UserStats
	s.UserID = userID
	if err := db.QueryRow(`SELECT matches_played, matches_won FROM users WHERE id = ?`, userID).Scan(&s.MatchesPlayed, &s.MatchesWon); err != nil {
		return nil, err
	}
	return &s, nil
}
