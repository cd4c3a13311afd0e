package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub manages websocket clients and room-based broadcasts. All room state is
// owned by the Run goroutine; the exported methods only send on channels.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	join       chan joinReq
	broadcast  chan Broadcast
	stop       chan struct{}

	stopOnce sync.Once
	stopped  chan struct{}

	rooms map[string]map[*Client]bool
}

type joinReq struct {
	Client *Client
	Room   string
}

type Broadcast struct {
	Room    string
	Type    string
	Payload any
}

const defaultRoom = "lobby:global"

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan joinReq),
		broadcast:  make(chan Broadcast, 256),
		stop:       make(chan struct{}),
		stopped:    make(chan struct{}),
		rooms:      map[string]map[*Client]bool{},
	}
}

func (h *Hub) Run() {
	defer close(h.stopped)
	for {
		select {
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case jr := <-h.join:
			h.moveClientToRoom(jr.Client, jr.Room)
		case b := <-h.broadcast:
			h.broadcastToRoom(b.Room, b.Type, b.Payload)
		case <-h.stop:
			for _, clients := range h.rooms {
				for c := range clients {
					c.closeSend()
				}
			}
			h.rooms = map[string]map[*Client]bool{}
			return
		}
	}
}

// Stop shuts the hub down. After Stop, Register/Join/Unregister/Broadcast
// become no-ops instead of blocking against a dead Run loop.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

func (h *Hub) Join(c *Client, room string) {
	select {
	case h.join <- joinReq{Client: c, Room: room}:
	case <-h.stopped:
	}
}

func (h *Hub) Broadcast(room, typ string, payload any) {
	select {
	case h.broadcast <- Broadcast{Room: room, Type: typ, Payload: payload}:
	case <-h.stopped:
	}
}

func (h *Hub) addClient(c *Client) {
	if c.Room == "" {
		c.Room = defaultRoom
	}
	if h.rooms[c.Room] == nil {
		h.rooms[c.Room] = map[*Client]bool{}
	}
	h.rooms[c.Room][c] = true
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.closeSend()
}

func (h *Hub) moveClientToRoom(c *Client, room string) {
	if c == nil {
		return
	}
	if room == "" {
		room = defaultRoom
	}
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
	c.Room = room
	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]bool{}
	}
	h.rooms[room][c] = true
}

func (h *Hub) broadcastToRoom(room, typ string, payload any) {
	clients := h.rooms[room]
	if len(clients) == 0 {
		return
	}

	msg := map[string]any{
		"type":      typ,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("ws broadcast marshal error: room=%s type=%s err=%v", room, typ, err)
		return
	}

	for c := range clients {
		select {
		case c.Send <- data:
		default:
			// Backpressure / dead client.
			h.removeClient(c)
		}
	}
}
