package ws_room

import (
	"encoding/json"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerdeck/core/internal/model"
)

type StatePayloadSuite struct {
	suite.Suite
}

func (s *StatePayloadSuite) TestWireShape(t provider.T) {
	t.Parallel()

	room := model.NewRoom("ABCDEF", "admin-id", "Alice")
	room.AddParticipant("bob-id", "Bob")
	room.Vote("admin-id", 5)

	payload := NewStatePayload(room.State())

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &wire))

	assert.Equal(t, "ABCDEF", wire["code"])
	assert.Equal(t, "ABCDEF", wire["room_code"])
	assert.Equal(t, false, wire["revealed"])
	assert.Equal(t, false, wire["everyone_voted"])
	assert.Equal(t, []interface{}{1.0, 2.0, 3.0, 5.0, 8.0, 13.0}, wire["fibonacci_points"])

	participants, ok := wire["participants"].(map[string]interface{})
	require.True(t, ok)
	require.Len(t, participants, 2)

	alice := participants["admin-id"].(map[string]interface{})
	assert.Equal(t, "Alice", alice["name"])
	// True vote on the wire even while not revealed; masking is the
	// client's job.
	assert.Equal(t, 5.0, alice["vote"])

	bob := participants["bob-id"].(map[string]interface{})
	assert.Equal(t, "Bob", bob["name"])
	assert.Nil(t, bob["vote"])
}

func (s *StatePayloadSuite) TestEveryoneVotedAfterReveal(t provider.T) {
	t.Parallel()

	room := model.NewRoom("ABCDEF", "admin-id", "Alice")
	room.Vote("admin-id", 13)
	room.Reveal()

	payload := NewStatePayload(room.State())

	assert.True(t, payload.Revealed)
	assert.True(t, payload.EveryoneVoted)
	assert.Equal(t, model.Point(13), *payload.Participants["admin-id"].Vote)
}

func TestStatePayloadSuite(t *testing.T) {
	suite.RunSuite(t, new(StatePayloadSuite))
}
