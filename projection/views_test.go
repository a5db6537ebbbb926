package projection

import (
	"encoding/json"
	"poker-lab/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParticipants_EstimateSerializesToNullWhenAbsent(t *testing.T) {
	req := require.New(t)
	room := domain.NewRoom("42")
	alice := domain.NewParticipant("p1", "A")
	bob := domain.NewParticipant("p2", "B")
	alice.SetEstimate(3)
	room.AddParticipant(alice)
	room.AddParticipant(bob)

	data, err := json.Marshal(Participants(room))

	req.NoError(err)
	req.JSONEq(`[{"id":"p1","name":"A","estimate":3},{"id":"p2","name":"B","estimate":null}]`, string(data))
}

func TestParticipants_EmptyRoomSerializesToEmptyArray(t *testing.T) {
	req := require.New(t)
	room := domain.NewRoom("42")

	data, err := json.Marshal(Participants(room))

	req.NoError(err)
	req.Equal("[]", string(data))
}

func TestSummaries(t *testing.T) {
	req := require.New(t)
	room := domain.NewRoom("42")
	room.AddParticipant(domain.NewParticipant("p1", "Alice"))
	room.AddSpectator(domain.NewSpectator("s1"))

	summaries := Summaries([]*domain.Room{room})

	req.Len(summaries, 1)
	req.Equal(RoomSummary{ID: "42", Size: 2}, summaries[0])
}

func TestSummaries_NoRoomsSerializesToEmptyArray(t *testing.T) {
	req := require.New(t)

	data, err := json.Marshal(Summaries(nil))

	req.NoError(err)
	req.Equal("[]", string(data))
}
