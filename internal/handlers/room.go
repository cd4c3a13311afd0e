package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/common"
	"github.com/Mateteriya/UpNDown-sub000/internal/game/updown"
	"github.com/Mateteriya/UpNDown-sub000/internal/models"
	"github.com/Mateteriya/UpNDown-sub000/internal/tracing"

	"github.com/gin-gonic/gin"
)

// Room join codes avoid characters that read ambiguously in chat.
const roomCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const roomCodeLength = 6

func newRoomCode() string {
	rng := common.CryptoSource()
	b := make([]byte, roomCodeLength)
	for i := range b {
		b[i] = roomCodeAlphabet[rng.Intn(len(roomCodeAlphabet))]
	}
	return string(b)
}

type createRoomRequest struct {
	Name string `json:"name"`
}

type createRoomResponse struct {
	Room *models.Room `json:"room"`
	Game *models.Game `json:"game"`
}

func ListRoomsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.ListRoomsHandler")
		defer span.End()

		limit := int64(50)
		offset := int64(0)
		if v := strings.TrimSpace(c.Query("limit")); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = n
		}
		if v := strings.TrimSpace(c.Query("offset")); v != "" {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offset"})
				return
			}
			offset = n
		}
		rooms, err := models.ListRooms(db, limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
	}
}

// CreateRoomHandler creates a room, its game row, and the host's seat 0 in
// one transaction, and persists the pre-deal match snapshot so a restart
// never leaves a game without state.
func CreateRoomHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.CreateRoomHandler")
		defer span.End()

		var req createRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			req.Name = "Table"
		}
		if len(req.Name) > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name must be <= 100 characters"})
			return
		}

		hostID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		hostName := c.GetString("username")

		var roomID, gameID int64
		// Retry on the unlikely join-code collision; each attempt is a fresh
		// transaction since the constraint violation aborts the current one.
		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			roomID, gameID, lastErr = createRoomTx(db, req.Name, hostID, hostName)
			if lastErr == nil {
				break
			}
			if !models.IsUniqueConstraint(lastErr) {
				break
			}
		}
		if lastErr != nil {
			log.Printf("create room failed: host_id=%d err=%v", hostID, lastErr)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		r, err := models.GetRoomByID(db, roomID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		g, err := models.GetGameByID(db, gameID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusCreated, createRoomResponse{Room: r, Game: g})
	}
}

func createRoomTx(db *sql.DB, name string, hostID int64, hostName string) (roomID, gameID int64, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	roomID, err = models.CreateRoomTx(tx, newRoomCode(), name, hostID)
	if err != nil {
		return 0, 0, err
	}
	gameID, err = models.CreateGameTx(tx, roomID)
	if err != nil {
		return 0, 0, err
	}
	if err := models.AddGamePlayerTx(tx, gameID, &hostID, hostName, 0, false, nil); err != nil {
		return 0, 0, err
	}

	// Persist the pre-deal snapshot. Cards are dealt once the table fills.
	st := updown.NewMatch([updown.NumSeats]string{hostName, "", "", ""})
	blob, err := json.Marshal(st)
	if err != nil {
		return 0, 0, err
	}
	version, err := models.UpdateGameStateTx(tx, gameID, string(blob), 0)
	if err != nil {
		return 0, 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, err
	}

	defaultGameManager.Set(gameID, GameEntry{State: st, Version: version})
	return roomID, gameID, nil
}

type joinRoomRequest struct {
	Code string `json:"code"`
}

// JoinRoomHandler seats a user at the room identified by its join code.
// Filling the last seat starts the match.
func JoinRoomHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.JoinRoomHandler")
		defer span.End()

		var req joinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		code := strings.ToUpper(strings.TrimSpace(req.Code))
		if len(code) != roomCodeLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room code"})
			return
		}
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		username := c.GetString("username")

		room, err := models.GetRoomByCode(db, code)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		game, err := models.GetGameByRoomID(db, room.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		// Concurrent joiners can race for the same seat; the unique constraint
		// rejects the loser and a fresh transaction retries.
		roomID := room.ID
		var seat int64
		for attempt := 0; ; attempt++ {
			room, seat, err = claimSeatTx(db, roomID, game.ID, &userID, username, false, nil)
			if err == nil {
				break
			}
			if models.IsUniqueConstraint(err) && attempt < 2 {
				continue
			}
			log.Printf("join room seat failed: room_id=%d user_id=%d err=%v", roomID, userID, err)
			writeAPIError(c, err)
			return
		}

		if err := maybeStartGame(db, room.ID); err != nil {
			log.Printf("start game after join failed: room_id=%d err=%v", room.ID, err)
		}

		c.JSON(http.StatusOK, gin.H{"room": room, "game_id": game.ID, "seat": seat})
	}
}

type addBotRequest struct {
	Difficulty string `json:"difficulty"`
}

// AddBotHandler lets the host fill an empty seat with a bot.
func AddBotHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracing.StartSpan(c.Request.Context(), "handlers.AddBotHandler")
		defer span.End()

		roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
			return
		}
		userID, ok := userIDFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req addBotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}
		difficulty := strings.ToLower(strings.TrimSpace(req.Difficulty))
		switch updown.BotDifficulty(difficulty) {
		case updown.BotEasy, updown.BotMedium, updown.BotHard:
		case "":
			difficulty = string(updown.BotMedium)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid difficulty"})
			return
		}

		room, err := models.GetRoomByID(db, roomID)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if room.HostID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "only the host adds bots"})
			return
		}
		game, err := models.GetGameByRoomID(db, room.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		botName := fmt.Sprintf("Bot %d", room.SeatsTaken+1)
		room, seat, err := claimSeatTx(db, roomID, game.ID, nil, botName, true, &difficulty)
		if err != nil {
			writeAPIError(c, err)
			return
		}

		if err := maybeStartGame(db, room.ID); err != nil {
			log.Printf("start game after add_bot failed: room_id=%d err=%v", room.ID, err)
		}

		c.JSON(http.StatusOK, gin.H{"room": room, "seat": seat, "bot_name": botName})
	}
}

// claimSeatTx takes one seat: the room counter and the game_players row move
// together or not at all.
func claimSeatTx(db *sql.DB, roomID, gameID int64, userID *int64, displayName string, isBot bool, botDifficulty *string) (*models.Room, int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	room, err := models.ClaimRoomSeatTx(tx, roomID)
	if err != nil {
		return nil, 0, err
	}
	seat, err := models.AddGamePlayerAutoSeatTx(tx, gameID, userID, displayName, isBot, botDifficulty)
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return room, seat, nil
}

// maybeStartGame flips the room and game into play once all four seats are
// taken, deals the first hand, and broadcasts the opening snapshot.
func maybeStartGame(db *sql.DB, roomID int64) error {
	room, err := models.GetRoomByID(db, roomID)
	if err != nil {
		return err
	}
	if room.SeatsTaken < updown.NumSeats || room.Status != "waiting" {
		return nil
	}
	game, err := models.GetGameByRoomID(db, roomID)
	if err != nil {
		return err
	}
	players, err := models.ListGamePlayersByGame(db, game.ID)
	if err != nil {
		return err
	}

	if err := models.SetRoomStatus(db, roomID, "in_progress"); err != nil {
		return err
	}
	if err := models.SetGameStatus(db, game.ID, "playing"); err != nil {
		return err
	}
	if err := startMatch(db, game, players); err != nil {
		return err
	}

	broadcastGameUpdate(db, game.ID)
	return nil
}
