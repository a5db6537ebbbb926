package domain

// Spectator is a read-only observer of a room's live estimates. It never
// mutates state.
type Spectator struct {
	ID string
}

func NewSpectator(id string) *Spectator {
	return &Spectator{ID: id}
}
