package handlers

import (
	"sync"

	"github.com/Mateteriya/UpNDown-sub000/internal/game/updown"
)

// GameEntry is the in-memory copy of one game's snapshot plus the persisted
// version it was loaded at. Fields are read and written only while holding
// the entry lock handed out by the manager.
type GameEntry struct {
	State   updown.GameState
	Version int64
}

// GameManager keeps per-game snapshots in memory so move handling does not
// decode the DB blob on every request. The DB remains authoritative: entries
// are lazily restored from the persisted snapshot after a restart.
type GameManager struct {
	mu      sync.Mutex
	entries map[int64]*gameSlot
}

type gameSlot struct {
	mu    sync.Mutex
	entry GameEntry
}

func NewGameManager() *GameManager {
	return &GameManager{entries: map[int64]*gameSlot{}}
}

// GetOrCreateLocked returns the entry for a game with its lock held. When the
// game has no in-memory entry yet, load is called (under the entry lock) to
// restore one. The returned unlock must be called exactly once.
func (m *GameManager) GetOrCreateLocked(gameID int64, load func() (GameEntry, error)) (*GameEntry, func(), error) {
	m.mu.Lock()
	slot, ok := m.entries[gameID]
	if !ok {
		slot = &gameSlot{entry: GameEntry{Version: -1}}
		m.entries[gameID] = slot
	}
	m.mu.Unlock()

	slot.mu.Lock()
	if slot.entry.Version < 0 {
		entry, err := load()
		if err != nil {
			slot.mu.Unlock()
			return nil, nil, err
		}
		slot.entry = entry
	}
	return &slot.entry, slot.mu.Unlock, nil
}

// GetLocked returns the entry with its lock held, or ok=false when the game
// has no in-memory state.
func (m *GameManager) GetLocked(gameID int64) (*GameEntry, func(), bool) {
	m.mu.Lock()
	slot, ok := m.entries[gameID]
	m.mu.Unlock()
	if !ok {
		return nil, nil, false
	}
	slot.mu.Lock()
	if slot.entry.Version < 0 {
		slot.mu.Unlock()
		return nil, nil, false
	}
	return &slot.entry, slot.mu.Unlock, true
}

// Set installs a fresh entry, replacing whatever was in memory.
func (m *GameManager) Set(gameID int64, entry GameEntry) {
	m.mu.Lock()
	slot, ok := m.entries[gameID]
	if !ok {
		slot = &gameSlot{}
		m.entries[gameID] = slot
	}
	m.mu.Unlock()

	slot.mu.Lock()
	slot.entry = entry
	slot.mu.Unlock()
}

var defaultGameManager = NewGameManager()
