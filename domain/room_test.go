package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoom_JoinOrderIsPreserved(t *testing.T) {
	req := require.New(t)
	room := NewRoom("42")

	// When participants join one after another
	room.AddParticipant(NewParticipant("p1", "Alice"))
	room.AddParticipant(NewParticipant("p2", "Bob"))
	room.AddParticipant(NewParticipant("p3", "Carol"))

	// Then the list keeps join order
	req.Len(room.Participants, 3)
	req.Equal("p1", room.Participants[0].ID)
	req.Equal("p2", room.Participants[1].ID)
	req.Equal("p3", room.Participants[2].ID)
}

func TestRoom_EmptyAndSize(t *testing.T) {
	req := require.New(t)
	room := NewRoom("42")

	// Given a fresh room
	req.True(room.Empty())
	req.Equal(0, room.Size())

	// When a participant and a spectator join
	room.AddParticipant(NewParticipant("p1", "Alice"))
	room.AddSpectator(NewSpectator("s1"))

	// Then the room counts both roles
	req.False(room.Empty())
	req.Equal(2, room.Size())

	// When everyone leaves
	room.RemoveParticipant("p1")
	room.RemoveSpectator("s1")

	// Then the room is empty again
	req.True(room.Empty())
}

func TestRoom_RemoveParticipant_UnknownIDIsNoop(t *testing.T) {
	req := require.New(t)
	room := NewRoom("42")
	room.AddParticipant(NewParticipant("p1", "Alice"))

	room.RemoveParticipant("ghost")

	req.Len(room.Participants, 1)
}

func TestRoom_FindParticipant(t *testing.T) {
	req := require.New(t)
	room := NewRoom("42")
	room.AddParticipant(NewParticipant("p1", "Alice"))

	found, ok := room.FindParticipant("p1")
	req.True(ok)
	req.Equal("Alice", found.Name)

	_, ok = room.FindParticipant("ghost")
	req.False(ok)
}

func TestRoom_ResetEstimates(t *testing.T) {
	req := require.New(t)
	room := NewRoom("42")
	alice := NewParticipant("p1", "Alice")
	bob := NewParticipant("p2", "Bob")
	room.AddParticipant(alice)
	room.AddParticipant(bob)

	// Given one participant has estimated
	alice.SetEstimate(3)
	req.NotNil(alice.Estimate)

	// When the room resets
	room.ResetEstimates()

	// Then nobody has an estimate anymore
	req.Nil(alice.Estimate)
	req.Nil(bob.Estimate)
}
