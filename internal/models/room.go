package models

import (
	"database/sql"
	"errors"
	"time"
)

// Room is a four-seat table identified by a short join code the host shares
// out of band. Status moves waiting -> in_progress -> finished.
type Room struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	HostID     int64     `json:"host_id"`
	SeatsTaken int64     `json:"seats_taken"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

const roomSeats = 4

func CreateRoomTx(tx *sql.Tx, code, name string, hostID int64) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO rooms(code, name, host_id, seats_taken, status) VALUES (?, ?, ?, 1, 'waiting')`,
		code, name, hostID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func GetRoomByID(db *sql.DB, id int64) (*Room, error) {
	return scanRoom(db.QueryRow(
		`SELECT id, code, name, host_id, seats_taken, status, created_at FROM rooms WHERE id = ?`, id))
}

func GetRoomByCode(db *sql.DB, code string) (*Room, error) {
	return scanRoom(db.QueryRow(
		`SELECT id, code, name, host_id, seats_taken, status, created_at FROM rooms WHERE code = ?`, code))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*Room, error) {
	var r Room
	err := row.Scan(&r.ID, &r.Code, &r.Name, &r.HostID, &r.SeatsTaken, &r.Status, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func ListRooms(db *sql.DB, limit, offset int64) ([]Room, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := db.Query(
		`SELECT id, code, name, host_id, seats_taken, status, created_at
		 FROM rooms
		 WHERE status = 'waiting'
		 ORDER BY created_at DESC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Room
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.ID, &r.Code, &r.Name, &r.HostID, &r.SeatsTaken, &r.Status, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ClaimRoomSeatTx increments seats_taken if the room is still open. Callers
// roll back the increment by aborting the transaction.
func ClaimRoomSeatTx(tx *sql.Tx, roomID int64) (*Room, error) {
	res, err := tx.Exec(
		`UPDATE rooms SET seats_taken = seats_taken + 1
		 WHERE id = ? AND status = 'waiting' AND seats_taken < ?`,
		roomID, roomSeats,
	)
	if err != nil {
		return nil, err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if ra == 0 {
		// Inspect the room to give a better error.
		var status string
		var taken int64
		err := tx.QueryRow(`SELECT status, seats_taken FROM rooms WHERE id = ?`, roomID).Scan(&status, &taken)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		if status != "waiting" {
			return nil, ErrRoomNotJoinable
		}
		if taken >= roomSeats {
			return nil, ErrRoomFull
		}
		return nil, errors.New("unable to join room")
	}

	var r Room
	err = tx.QueryRow(
		`SELECT id, code, name, host_id, seats_taken, status, created_at FROM rooms WHERE id = ?`,
		roomID,
	).Scan(&r.ID, &r.Code, &r.Name, &r.HostID, &r.SeatsTaken, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func SetRoomStatus(db *sql.DB, roomID int64, status string) error {
	if status != "waiting" && status != "in_progress" && status != "finished" {
		return errors.New("invalid status")
	}
	_, err := db.Exec(`UPDATE rooms SET status = ? WHERE id = ?`, status, roomID)
	return err
}

func SetRoomStatusTx(tx *sql.Tx, roomID int64, status string) error {
	if status != "waiting" && status != "in_progress" && status != "finished" {
		return errors.New("invalid status")
	}
	_, err := tx.Exec(`UPDATE rooms SET status = ? WHERE id = ?`, status, roomID)
	return err
}
