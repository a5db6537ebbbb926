package domain

import "github.com/google/uuid"

// IDGenerator produces subscriber identifiers. It is injected into the
// session manager so tests can supply deterministic ids.
type IDGenerator func() string

// UUIDGenerator is the production generator. Unlike a wall-clock id it
// cannot collide under rapid joins.
func UUIDGenerator() string {
	return uuid.NewString()
}
