package domain

import "github.com/samber/lo"

// RoomID is the caller-supplied room identifier. It is opaque: any value
// that round-trips through a request path maps back to the same room.
type RoomID string

// Room groups the participants and spectators of one estimation session.
// Both lists preserve join order. Lookups are linear scans, which is fine
// since membership stays at human team size.
type Room struct {
	ID           RoomID
	Participants []*Participant
	Spectators   []*Spectator
}

func NewRoom(id RoomID) *Room {
	return &Room{ID: id}
}

// Empty reports whether the room has no occupants left. An empty room must
// not remain in the directory.
func (r *Room) Empty() bool {
	return len(r.Participants) == 0 && len(r.Spectators) == 0
}

// Size counts every occupant, participants and spectators alike.
func (r *Room) Size() int {
	return len(r.Participants) + len(r.Spectators)
}

func (r *Room) AddParticipant(p *Participant) {
	r.Participants = append(r.Participants, p)
}

func (r *Room) AddSpectator(s *Spectator) {
	r.Spectators = append(r.Spectators, s)
}

func (r *Room) RemoveParticipant(id string) {
	r.Participants = lo.Filter(r.Participants, func(p *Participant, _ int) bool {
		return p.ID != id
	})
}

func (r *Room) RemoveSpectator(id string) {
	r.Spectators = lo.Filter(r.Spectators, func(s *Spectator, _ int) bool {
		return s.ID != id
	})
}

// FindParticipant returns the participant with the given id, if still
// present. Absence is expected when a submission races a disconnect.
func (r *Room) FindParticipant(id string) (*Participant, bool) {
	for _, p := range r.Participants {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// ResetEstimates starts a new estimation round: every participant goes back
// to "has not estimated yet".
func (r *Room) ResetEstimates() {
	for _, p := range r.Participants {
		p.ClearEstimate()
	}
}
