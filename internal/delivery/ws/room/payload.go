package ws_room

import (
	"github.com/pokerdeck/core/internal/model"
)

type ParticipantPayload struct {
	Name string       `json:"name"`
	Vote *model.Point `json:"vote"`
}

// StatePayload is the room-state shape every subscriber receives. Votes
// always carry their true value next to the revealed flag; clients mask
// them to a "has voted" check mark while the room is not revealed.
type StatePayload struct {
	Code            string                        `json:"code"`
	RoomCode        string                        `json:"room_code"`
	Participants    map[string]ParticipantPayload `json:"participants"`
	Revealed        bool                          `json:"revealed"`
	EveryoneVoted   bool                          `json:"everyone_voted"`
	FibonacciPoints []model.Point                 `json:"fibonacci_points"`
}

func NewStatePayload(state model.RoomState) StatePayload {
	participants := make(map[string]ParticipantPayload, len(state.Participants))
	for id, p := range state.Participants {
		participants[id] = ParticipantPayload{
			Name: p.Name,
			Vote: p.Vote,
		}
	}

	return StatePayload{
		Code:            state.Code,
		RoomCode:        state.Code,
		Participants:    participants,
		Revealed:        state.Revealed,
		EveryoneVoted:   state.EveryoneVoted,
		FibonacciPoints: state.Points,
	}
}
