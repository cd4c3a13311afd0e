package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Mateteriya/UpNDown-sub000/internal/auth"
	"github.com/Mateteriya/UpNDown-sub000/internal/config"
	ws "github.com/Mateteriya/UpNDown-sub000/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var (
	originMu       sync.RWMutex
	allowedOrigins map[string]bool
	devMode        bool
	devAllowAll    bool
)

// SetWebSocketOriginPolicy installs the origin allow-list used by the
// upgrader's CheckOrigin. Call once at startup before serving /ws.
func SetWebSocketOriginPolicy(cfg config.Config) {
	originMu.Lock()
	defer originMu.Unlock()
	allowedOrigins = map[string]bool{}
	for _, o := range cfg.WSAllowedOrigins {
		allowedOrigins[strings.TrimRight(o, "/")] = true
	}
	devMode = cfg.AppEnv == "development"
	devAllowAll = cfg.DevWebSocketsAllowAll
}

func isAllowedOrigin(origin string) bool {
	if origin == "" {
		// Non-browser clients send no Origin header.
		return true
	}
	originMu.RLock()
	defer originMu.RUnlock()
	if devMode && devAllowAll {
		return true
	}
	if allowedOrigins[strings.TrimRight(origin, "/")] {
		return true
	}
	return devMode && isLocalhostOrigin(origin)
}

func isLocalhostOrigin(origin string) bool {
	for _, scheme := range []string{"http://", "https://"} {
		for _, host := range []string{"localhost", "127.0.0.1"} {
			prefix := scheme + host
			if origin == prefix || strings.HasPrefix(origin, prefix+":") {
				return true
			}
		}
	}
	return false
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return isAllowedOrigin(r.Header.Get("Origin"))
	},
}

// hubProvider resolves the current hub; the indirection survives hub
// restarts after a panic.
var hubProvider func() (*ws.Hub, bool)

func SetHubProvider(p func() (*ws.Hub, bool)) {
	hubProvider = p
}

func currentHub() (*ws.Hub, bool) {
	if hubProvider == nil {
		return nil, false
	}
	return hubProvider()
}

// broadcastGameUpdate pushes the spectator-safe snapshot to everyone in the
// game's room. Seated players refetch their own rotated view over HTTP.
func broadcastGameUpdate(db *sql.DB, gameID int64) {
	hub, ok := currentHub()
	if !ok {
		return
	}
	snap, err := BuildGameSnapshotPublic(db, gameID)
	if err != nil {
		log.Printf("broadcast snapshot failed: game_id=%d err=%v", gameID, err)
		return
	}
	hub.Broadcast(fmt.Sprintf("game:%d", gameID), "game_update", snap)
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type joinRoomPayload struct {
	GameID int64 `json:"game_id"`
}

type movePayload struct {
	GameID int64       `json:"game_id"`
	Move   moveRequest `json:"move"`
}

func tokenFromHeaderOrQuery(c *gin.Context, cfg config.Config) string {
	if v, err := c.Cookie(auth.AuthCookieName); err == nil {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	authz := c.GetHeader("Authorization")
	if authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cfg.WSAllowQueryTokens {
		return strings.TrimSpace(c.Query("token"))
	}
	return ""
}

// WebSocketHandler upgrades the connection, authenticates it, and wires the
// client into the hub. Inbound messages may join a game room or submit moves.
func WebSocketHandler(db *sql.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromHeaderOrQuery(c, cfg)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		claims, err := auth.ParseAndValidateToken(token, cfg)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		hub, ok := currentHub()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "realtime unavailable"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error.
			return
		}

		client := ws.NewClient(conn, hub, "", claims.UserID)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump(func(data []byte) {
			handleWSMessage(db, client, data)
		})
	}
}

func handleWSMessage(db *sql.DB, client *ws.Client, data []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		sendDirect(client, "error", gin.H{"error": "invalid json"})
		return
	}

	switch msg.Type {
	case "join_room":
		var p joinRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.GameID <= 0 {
			sendDirect(client, "error", gin.H{"error": "invalid join_room payload"})
			return
		}
		client.Hub.Join(client, fmt.Sprintf("game:%d", p.GameID))
		sendDirect(client, "joined", gin.H{"game_id": p.GameID})
	case "move":
		var p movePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.GameID <= 0 {
			sendDirect(client, "error", gin.H{"error": "invalid move payload"})
			return
		}
		resp, err := ApplyMove(db, p.GameID, client.UserID, p.Move)
		if err != nil {
			sendDirect(client, "move_rejected", gin.H{"error": err.Error()})
			return
		}
		sendDirect(client, "move_accepted", resp)
		broadcastGameUpdate(db, p.GameID)
	case "ping":
		sendDirect(client, "pong", nil)
	default:
		sendDirect(client, "error", gin.H{"error": "unknown message type"})
	}
}

func sendDirect(client *ws.Client, typ string, payload any) {
	msg := map[string]any{
		"type":      typ,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}
