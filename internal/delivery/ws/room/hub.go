package ws_room

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/pokerdeck/core/internal/model"
	store_room "github.com/pokerdeck/core/internal/store/room"
)

const (
	EventRoomState = "room_state"
	EventError     = "error"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	ActionVote        = "vote"
	ActionReveal      = "reveal"
	ActionResetVoting = "reset_voting"
)

// Action is what a subscribed client may send back over the wire.
type Action struct {
	Type  string `json:"type"`
	Point *int   `json:"point,omitempty"`
}

// Hub fans the room-state projection out to every subscriber of a
// room's channel, keyed by room code.
type Hub struct {
	rooms *store_room.Store

	logger     *slog.Logger
	clients    map[*Client]bool
	channels   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub(rooms *store_room.Store) *Hub {
	return &Hub{
		rooms:      rooms,
		logger:     slog.Default(),
		clients:    make(map[*Client]bool),
		channels:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.handleUnregister(client)
		}
	}
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if _, exists := h.channels[client.roomCode]; !exists {
		h.channels[client.roomCode] = make(map[*Client]bool)
	}
	h.channels[client.roomCode][client] = true

	h.logger.Info("client registered",
		"participant_id", client.participantID,
		"room", client.roomCode)

	// Fresh subscribers get the current state right away.
	go h.BroadcastRoomState(client.roomCode)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		if subscribers, exists := h.channels[client.roomCode]; exists {
			delete(subscribers, client)
			if len(subscribers) == 0 {
				delete(h.channels, client.roomCode)
			}
		}
	}

	// No roster cleanup: participants stay in the room, only the
	// connection goes away.
	h.logger.Info("client unregistered",
		"participant_id", client.participantID,
		"room", client.roomCode)
}

// BroadcastRoomState reads the projection and pushes it to everyone in
// the room. The store snapshot is taken after the triggering mutation
// committed, so subscribers never observe stale state.
func (h *Hub) BroadcastRoomState(roomCode string) {
	state, err := h.rooms.StateByCode(roomCode)
	if err != nil {
		h.logger.Error("failed to read room state", "error", err, "room", roomCode)
		return
	}

	h.broadcastToRoom(roomCode, Event{
		Type:    EventRoomState,
		Payload: NewStatePayload(state),
	})
}

func (h *Hub) broadcastToRoom(roomCode string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subscribers, exists := h.channels[roomCode]; exists {
		for client := range subscribers {
			select {
			case client.send <- event:
			default:
				// Slow client; it catches up on the next broadcast.
			}
		}
	}
}

// handleAction validates and applies one client action, then
// re-broadcasts the room state. Failures are scoped to the sender.
func (h *Hub) handleAction(client *Client, action Action) {
	switch action.Type {
	case ActionVote:
		if action.Point == nil {
			h.sendError(client, "point required")
			return
		}
		ok, err := h.rooms.Vote(client.roomCode, client.participantID, model.Point(*action.Point))
		if err != nil {
			h.sendError(client, "room not found")
			return
		}
		if !ok {
			// Out-of-set points and unknown ids are everyday client
			// mistakes, not faults. No state changed, nothing to fan out.
			h.sendError(client, "vote rejected")
			return
		}

	case ActionReveal:
		if err := h.rooms.Reveal(client.roomCode, client.participantID); err != nil {
			h.sendAuthError(client, err)
			return
		}

	case ActionResetVoting:
		if err := h.rooms.ResetVoting(client.roomCode, client.participantID); err != nil {
			h.sendAuthError(client, err)
			return
		}

	default:
		h.sendError(client, "unknown action")
		return
	}

	h.BroadcastRoomState(client.roomCode)
}

func (h *Hub) sendAuthError(client *Client, err error) {
	if errors.Is(err, store_room.ErrNotAuthorized) {
		h.sendError(client, "only admin can do that")
		return
	}
	h.sendError(client, "room not found")
}

func (h *Hub) sendError(client *Client, message string) {
	h.logger.Info("client action rejected",
		"participant_id", client.participantID,
		"room", client.roomCode,
		"reason", message)

	select {
	case client.send <- Event{Type: EventError, Payload: map[string]interface{}{"message": message}}:
	default:
	}
}
