package model

import (
	"sync"
	"time"
)

// Room holds one session's roster, votes and reveal flag. All mutating
// methods take the room's own lock, so compound updates (clearing votes
// together with the reveal flag) are never observed half-applied.
type Room struct {
	mu sync.Mutex

	code         string
	adminID      string
	participants map[string]*Participant
	revealed     bool
	createdAt    time.Time
}

func NewRoom(code, adminID, adminName string) *Room {
	return &Room{
		code:    code,
		adminID: adminID,
		participants: map[string]*Participant{
			adminID: {Name: adminName},
		},
		createdAt: time.Now(),
	}
}

func (r *Room) Code() string { return r.code }

func (r *Room) AdminID() string { return r.adminID }

// CreatedAt is kept for a future expiry policy, nothing enforces it yet.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// AddParticipant refuses duplicate ids. Identities are minted by the
// store, so a collision here means the generator repeated itself.
func (r *Room) AddParticipant(id, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[id]; ok {
		return false
	}
	r.participants[id] = &Participant{Name: name}
	return true
}

// Vote records the point for id. Unknown ids and points outside the
// fibonacci set leave the room untouched and return false.
func (r *Room) Vote(id string, point Point) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[id]
	if !ok || !point.Valid() {
		return false
	}
	v := point
	p.Vote = &v
	return true
}

func (r *Room) HasParticipant(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.participants[id]
	return ok
}

// EveryoneVoted is evaluated fresh on every call; the roster may have
// grown since the last one.
func (r *Room) EveryoneVoted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.everyoneVoted()
}

func (r *Room) everyoneVoted() bool {
	for _, p := range r.participants {
		if p.Vote == nil {
			return false
		}
	}
	return true
}

func (r *Room) IsAdmin(id string) bool {
	return id == r.adminID
}

func (r *Room) Reveal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revealed = true
}

// ClearVotes resets every vote and the reveal flag as one step.
func (r *Room) ClearVotes() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.participants {
		p.Vote = nil
	}
	r.revealed = false
}

// RoomState is the read-only projection handed to subscribers after
// every mutation. Votes carry their true values; hiding them while the
// room is not revealed is the client's job.
type RoomState struct {
	Code          string
	Participants  map[string]Participant
	Revealed      bool
	EveryoneVoted bool
	Points        []Point
}

// State copies the room under its lock so the snapshot stays consistent
// with concurrent voters.
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()

	participants := make(map[string]Participant, len(r.participants))
	for id, p := range r.participants {
		cp := Participant{Name: p.Name}
		if p.Vote != nil {
			v := *p.Vote
			cp.Vote = &v
		}
		participants[id] = cp
	}

	return RoomState{
		Code:          r.code,
		Participants:  participants,
		Revealed:      r.revealed,
		EveryoneVoted: r.everyoneVoted(),
		Points:        FibonacciPoints,
	}
}
