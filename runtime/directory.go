// Package runtime orchestrates sessions: room lifecycle, connection
// registry, broadcast decisions, and keepalive scheduling. It contains no
// transport logic.
package runtime

import (
	"poker-lab/domain"
	"poker-lab/projection"

	"github.com/samber/lo"
)

// Directory creates, finds, and destroys rooms. It holds rooms in creation
// order so the lobby list stays stable. The directory carries no lock of
// its own: only the session manager mutates it, one operation at a time.
type Directory struct {
	rooms []*domain.Room
}

func NewDirectory() *Directory {
	return &Directory{}
}

// GetOrCreate returns the room with the given id, constructing and
// registering an empty one on first reference. Never creates duplicates
// for the same id.
func (d *Directory) GetOrCreate(id domain.RoomID) *domain.Room {
	if room, ok := d.Get(id); ok {
		return room
	}
	room := domain.NewRoom(id)
	d.rooms = append(d.rooms, room)
	return room
}

func (d *Directory) Get(id domain.RoomID) (*domain.Room, bool) {
	for _, room := range d.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return nil, false
}

// DeleteIfEmpty removes the room iff it has no occupants left. It must run
// after every leave: it is the sole mechanism preventing room leakage.
func (d *Directory) DeleteIfEmpty(room *domain.Room) {
	if !room.Empty() {
		return
	}
	d.rooms = lo.Filter(d.rooms, func(r *domain.Room, _ int) bool {
		return r.ID != room.ID
	})
}

// ListAll projects every room into its lobby summary.
func (d *Directory) ListAll() []projection.RoomSummary {
	return projection.Summaries(d.rooms)
}

func (d *Directory) Rooms() []*domain.Room {
	return d.rooms
}

func (d *Directory) Len() int {
	return len(d.rooms)
}
