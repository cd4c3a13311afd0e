package models

import (
	"database/sql"
	"time"
)

// DealResult is one seat's outcome for one completed deal. The rows are the
// raw material for bid-accuracy stats; tricks taken is recoverable from
// (bid, points) so it is not stored separately.
type DealResult struct {
	ID         int64     `json:"id"`
	GameID     int64     `json:"game_id"`
	UserID     *int64    `json:"user_id,omitempty"`
	Seat       int64     `json:"seat"`
	DealNumber int64     `json:"deal_number"`
	DealKind   string    `json:"deal_kind"`
	Bid        int64     `json:"bid"`
	Points     int64     `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

func InsertDealResultTx(tx *sql.Tx, r DealResult) error {
	_, err := tx.Exec(
		`INSERT INTO deal_results(game_id, user_id, seat, deal_number, deal_kind, bid, points)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.UserID, r.Seat, r.DealNumber, r.DealKind, r.Bid, r.Points,
	)
	return err
}

func ListDealResultsByGame(db *sql.DB, gameID int64) ([]DealResult, error) {
	rows, err := db.Query(
		`SELECT id, game_id, user_id, seat, deal_number, deal_kind, bid, points, created_at
		 FROM deal_results
		 WHERE game_id = ?
		 ORDER BY deal_number ASC, seat ASC`,
		gameID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDealResults(rows)
}

// ListDealResultsByUser returns a user's deal history, newest first.
func ListDealResultsByUser(db *sql.DB, userID, limit int64) ([]DealResult, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	rows, err := db.Query(
		`SELECT id, game_id, user_id, seat, deal_number, deal_kind, bid, points, created_at
		 FROM deal_results
		 WHERE user_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDealResults(rows)
}

func scanDealResults(rows *sql.Rows) ([]DealResult, error) {
	var out []DealResult
	for rows.Next() {
		var r DealResult
		var userID sql.NullInt64
		if err := rows.Scan(&r.ID, &r.GameID, &userID, &r.Seat, &r.DealNumber, &r.DealKind, &r.Bid, &r.Points, &r.CreatedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			v := userID.Int64
			r.UserID = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
