// Package event defines the payloads pushed to subscribers. Each mutating
// operation of the session manager fans one or more of these out; the
// transport adapter decides how they are framed on the wire.
package event

import (
	"poker-lab/domain"
	"poker-lab/projection"
)

type Event interface {
	Name() string
}

// RoomSnapshot is the ordered participant/estimate list of one room, sent
// to that room's spectators after every mutation.
type RoomSnapshot struct {
	Room         domain.RoomID
	Participants []projection.ParticipantView
}

func (RoomSnapshot) Name() string { return "room.snapshot" }

// RoomList is the lobby view, sent to every guest whenever a room appears,
// changes size, or disappears.
type RoomList struct {
	Rooms []projection.RoomSummary
}

func (RoomList) Name() string { return "lobby.rooms" }

// AssignedID carries a participant's own id. It is pushed on join so the
// client can self-identify in estimate submissions, and re-pushed on reset
// as the new-round signal.
type AssignedID struct {
	ID string
}

func (AssignedID) Name() string { return "participant.id" }

// Heartbeat is the keepalive no-op frame. It carries no data and exists
// only to defeat idle-connection timeouts in intermediaries.
type Heartbeat struct{}

func (Heartbeat) Name() string { return "heartbeat" }
