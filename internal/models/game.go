package models

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

type Game struct {
	ID           int64      `json:"id"`
	RoomID       int64      `json:"room_id"`
	Status       string     `json:"status"` // waiting|playing|finished
	StateVersion int64      `json:"state_version"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

func CreateGameTx(tx *sql.Tx, roomID int64) (int64, error) {
	res, err := tx.Exec(`INSERT INTO games(room_id, status) VALUES (?, 'waiting')`, roomID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func GetGameByID(db *sql.DB, id int64) (*Game, error) {
	var g Game
	var finished sql.NullTime
	err := db.QueryRow(
		`SELECT id, room_id, status, state_version, created_at, finished_at FROM games WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.RoomID, &g.Status, &g.StateVersion, &g.CreatedAt, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if finished.Valid {
		v := finished.Time
		g.FinishedAt = &v
	}
	return &g, nil
}

func GetGameByRoomID(db *sql.DB, roomID int64) (*Game, error) {
	var id int64
	err := db.QueryRow(`SELECT id FROM games WHERE room_id = ? ORDER BY id DESC LIMIT 1`, roomID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return GetGameByID(db, id)
}

func SetGameStatus(db *sql.DB, gameID int64, status string) error {
	if status != "waiting" && status != "playing" && status != "finished" {
		return errors.New("invalid status")
	}
	if status == "finished" {
		_, err := db.Exec(`UPDATE games SET status = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?`, status, gameID)
		return err
	}
	_, err := db.Exec(`UPDATE games SET status = ? WHERE id = ?`, status, gameID)
	return err
}

func SetGameStatusTx(tx *sql.Tx, gameID int64, status string) error {
	if status != "waiting" && status != "playing" && status != "finished" {
		return errors.New("invalid status")
	}
	if status == "finished" {
		_, err := tx.Exec(`UPDATE games SET status = ?, finished_at = CURRENT_TIMESTAMP WHERE id = ?`, status, gameID)
		return err
	}
	_, err := tx.Exec(`UPDATE games SET status = ? WHERE id = ?`, status, gameID)
	return err
}

// GetGameState returns the persisted snapshot blob and its version.
// ok=false when no snapshot is stored yet.
func GetGameState(db *sql.DB, gameID int64) (stateJSON string, version int64, ok bool, err error) {
	var s sql.NullString
	err = db.QueryRow(`SELECT state_json, state_version FROM games WHERE id = ?`, gameID).Scan(&s, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, false, ErrNotFound
	}
	if err != nil {
		return "", 0, false, err
	}
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return "", version, false, nil
	}
	return s.String, version, true, nil
}

// UpdateGameStateTx writes a new snapshot blob with an optimistic version
// check. The caller passes the version it read; a concurrent writer that got
// there first makes the update miss and the caller must reload.
func UpdateGameStateTx(tx *sql.Tx, gameID int64, stateJSON string, expectedVersion int64) (int64, error) {
	res, err := tx.Exec(
		`UPDATE games SET state_json = ?, state_version = state_version + 1
		 WHERE id = ? AND state_version = ?`,
		stateJSON, gameID, expectedVersion,
	)
	if err != nil {
		return 0, err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if ra == 0 {
		return 0, ErrGameStateConflict
	}
	return expectedVersion + 1, nil
}
