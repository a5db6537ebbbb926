// Package projection holds the JSON-serializable read models pushed to
// subscribers. These are the only shapes that cross the wire; the live
// object graph never leaves the core.
package projection

import (
	"poker-lab/domain"

	"github.com/samber/lo"
)

// ParticipantView is one entry of a room snapshot. Estimate serializes to
// null while the participant has not estimated this round.
type ParticipantView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Estimate *float64 `json:"estimate"`
}

// RoomSummary is the lobby-facing projection of a room: identifier and
// occupant count, nothing more.
type RoomSummary struct {
	ID   string `json:"id"`
	Size int    `json:"size"`
}

// Participants projects a room's participant list in join order. The result
// is never nil so an empty room serializes to [] rather than null.
func Participants(room *domain.Room) []ParticipantView {
	views := lo.Map(room.Participants, func(p *domain.Participant, _ int) ParticipantView {
		return ParticipantView{ID: p.ID, Name: p.Name, Estimate: p.Estimate}
	})
	if views == nil {
		views = []ParticipantView{}
	}
	return views
}

// Summaries projects the directory's rooms in creation order.
func Summaries(rooms []*domain.Room) []RoomSummary {
	summaries := lo.Map(rooms, func(r *domain.Room, _ int) RoomSummary {
		return RoomSummary{ID: string(r.ID), Size: r.Size()}
	})
	if summaries == nil {
		summaries = []RoomSummary{}
	}
	return summaries
}
