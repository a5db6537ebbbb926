package runtime

import (
	"poker-lab/domain"
	"poker-lab/projection"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirectory_GetOrCreate_IsIdempotent(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	// When the same id is referenced twice
	first := directory.GetOrCreate("42")
	second := directory.GetOrCreate("42")

	// Then both references point at the same room, no duplicate exists
	req.Same(first, second)
	req.Equal(1, directory.Len())
}

func TestDirectory_DeleteIfEmpty_RemovesOnlyEmptyRooms(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	room := directory.GetOrCreate("42")
	room.AddParticipant(domain.NewParticipant("p1", "Alice"))

	// When the room still has an occupant
	directory.DeleteIfEmpty(room)

	// Then it stays
	req.Equal(1, directory.Len())

	// When the last occupant leaves
	room.RemoveParticipant("p1")
	directory.DeleteIfEmpty(room)

	// Then the room disappears
	req.Zero(directory.Len())
	_, ok := directory.Get("42")
	req.False(ok)
}

func TestDirectory_RoomExistsIffOccupied(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	// A sequence of joins and leaves never leaves an empty room behind
	room := directory.GetOrCreate("42")
	room.AddSpectator(domain.NewSpectator("s1"))
	room.AddParticipant(domain.NewParticipant("p1", "Alice"))

	room.RemoveSpectator("s1")
	directory.DeleteIfEmpty(room)
	req.Equal(1, directory.Len())

	room.RemoveParticipant("p1")
	directory.DeleteIfEmpty(room)
	req.Zero(directory.Len())
}

func TestDirectory_ListAll_KeepsCreationOrder(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()

	roomB := directory.GetOrCreate("b")
	roomB.AddParticipant(domain.NewParticipant("p1", "Alice"))
	roomA := directory.GetOrCreate("a")
	roomA.AddSpectator(domain.NewSpectator("s1"))

	req.Equal([]projection.RoomSummary{
		{ID: "b", Size: 1},
		{ID: "a", Size: 1},
	}, directory.ListAll())
}
