package store_room

import (
	"errors"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pokerdeck/core/internal/model"
)

var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrNotAuthorized = errors.New("not authorized")
)

// Store owns every live room, keyed by canonical uppercase code. Rooms
// live until the process stops; there is no delete operation.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*model.Room
}

func New() *Store {
	return &Store{
		rooms: make(map[string]*model.Room),
	}
}

// CreateRoom mints a fresh admin identity and a unique code, then
// inserts the new room atomically. Cannot fail.
func (s *Store) CreateRoom(adminName string) (*model.Room, string) {
	adminID := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	code := s.buildRoomCode()
	room := model.NewRoom(code, adminID, adminName)
	s.rooms[code] = room

	return room, adminID
}

// buildRoomCode samples 6-letter codes until a free one turns up.
// Caller must hold the write lock so the uniqueness check and the
// insert in CreateRoom stay atomic with respect to concurrent creates.
func (s *Store) buildRoomCode() string {
	const codeLen = 6

	for {
		var builder strings.Builder
		builder.Grow(codeLen)
		for i := 0; i < codeLen; i++ {
			builder.WriteByte(byte(rand.Intn(26)) + 'A')
		}
		code := builder.String()
		if _, exists := s.rooms[code]; !exists {
			return code
		}
	}
}

// FindRoom is case-insensitive; codes are stored uppercase.
func (s *Store) FindRoom(code string) (*model.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[strings.ToUpper(code)]
	return room, ok
}

func (s *Store) JoinRoom(code, participantName string) (*model.Room, string, error) {
	room, ok := s.FindRoom(code)
	if !ok {
		return nil, "", ErrRoomNotFound
	}

	participantID := uuid.New().String()
	// A repeated uuid is astronomically unlikely, but the add re-checks
	// instead of assuming.
	if !room.AddParticipant(participantID, participantName) {
		return nil, "", ErrRoomNotFound
	}

	return room, participantID, nil
}

// Vote records the point for the participant. Unknown participants and
// out-of-set points return false without touching the room; voting
// again overwrites the previous vote.
func (s *Store) Vote(roomCode, participantID string, point model.Point) (bool, error) {
	room, ok := s.FindRoom(roomCode)
	if !ok {
		return false, ErrRoomNotFound
	}
	return room.Vote(participantID, point), nil
}

// Reveal makes votes visible. Admin only; idempotent.
func (s *Store) Reveal(roomCode, participantID string) error {
	room, ok := s.FindRoom(roomCode)
	if !ok {
		return ErrRoomNotFound
	}
	if !room.IsAdmin(participantID) {
		return ErrNotAuthorized
	}
	room.Reveal()
	return nil
}

// ResetVoting clears every vote and drops the reveal flag in one step.
// Admin only.
func (s *Store) ResetVoting(roomCode, participantID string) error {
	room, ok := s.FindRoom(roomCode)
	if !ok {
		return ErrRoomNotFound
	}
	if !room.IsAdmin(participantID) {
		return ErrNotAuthorized
	}
	room.ClearVotes()
	return nil
}

// StateByCode reads the current projection for broadcasting. The
// snapshot is taken under the room's lock, so it observes at least the
// mutation the caller just committed.
func (s *Store) StateByCode(code string) (model.RoomState, error) {
	room, ok := s.FindRoom(code)
	if !ok {
		return model.RoomState{}, ErrRoomNotFound
	}
	return room.State(), nil
}
