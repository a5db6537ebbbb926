package domain

// Guest observes the global list of active rooms. It is not tied to any
// room.
type Guest struct {
	ID string
}

func NewGuest(id string) *Guest {
	return &Guest{ID: id}
}
