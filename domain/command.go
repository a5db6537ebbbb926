package domain

// Command is an intent handed to the session manager. Validation happens in
// the core, not in the transport adapter: the adapter forwards raw values.
type Command interface {
	RoomID() RoomID
}

type JoinParticipantCommand struct {
	Room RoomID
	Name string `validate:"required"`
}

func (c JoinParticipantCommand) RoomID() RoomID {
	return c.Room
}

// SubmitEstimateCommand carries a participant's estimate. Estimate is a
// pointer so "missing" and "zero" stay distinguishable.
type SubmitEstimateCommand struct {
	Room          RoomID
	ParticipantID string   `validate:"required"`
	Estimate      *float64 `validate:"required"`
}

func (c SubmitEstimateCommand) RoomID() RoomID {
	return c.Room
}

type ResetRoomCommand struct {
	Room RoomID
}

func (c ResetRoomCommand) RoomID() RoomID {
	return c.Room
}
