package models

import (
	"database/sql"
	"errors"
	"time"
)

type User struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	MatchesPlayed int64     `json:"matches_played"`
	MatchesWon    int64     `json:"matches_won"`
}

func CreateUser(db *sql.DB, username, passwordHash string) (*User, error) {
	res, err := db.Exec(
		`INSERT INTO users(username, password_hash) VALUES (?, ?)`,
		username, passwordHash,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return GetUserByID(db, id)
}

func GetUserByID(db *sql.DB, id int64) (*User, error) {
	var u User
	err := db.QueryRow(
		`SELECT id, username, password_hash, created_at, matches_played, matches_won FROM users WHERE id = ?`,
		id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.MatchesPlayed, &u.MatchesWon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func GetUserByUsername(db *sql.DB, username string) (*User, error) {
	var u User
	err := db.QueryRow(
		`SELECT id, username, password_hash, created_at, matches_played, matches_won FROM users WHERE username = ?`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.MatchesPlayed, &u.MatchesWon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// IncrementUserMatchStatsTx bumps matches_played, and matches_won when won.
func IncrementUserMatchStatsTx(tx *sql.Tx, userID int64, won bool) error {
	wonInc := 0
	if won {
		wonInc = 1
	}
	_, err := tx.Exec(
		`UPDATE users SET matches_played = matches_played + 1, matches_won = matches_won + ? WHERE id = ?`,
		wonInc, userID,
	)
	return err
}
