package websocket

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client is a single websocket connection registered to a room.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Hub  *Hub

	Room   string
	UserID int64

	sendCloseOnce sync.Once
	Send          chan []byte
}

func NewClient(conn *websocket.Conn, hub *Hub, room string, userID int64) *Client {
	return &Client{
		ID:     uuid.NewString(),
		Conn:   conn,
		Hub:    hub,
		Room:   room,
		UserID: userID,
		Send:   make(chan []byte, 256),
	}
}

func (c *Client) closeSend() {
	c.sendCloseOnce.Do(func() { close(c.Send) })
}

func (c *Client) ReadPump(onMessage func([]byte)) {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			// Expected close errors are common.
			return
		}
		if onMessage != nil {
			onMessage(message)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("ws ping error: client=%s err=%v", c.ID, err)
				return
			}
		}
	}
}
