//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"poker-lab/domain"
	"poker-lab/domain/event"
	"poker-lab/projection"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// initialization or lifecycle events, avoiding the need for manual naming
// in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is the receiving half of the push primitive: one sink per open
// subscriber connection. Consume must not block the caller beyond ctx.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// IRegistry tracks every open push subscriber, guest, spectator and
// participant alike, keyed by subscriber id.
type IRegistry interface {
	Subscribe(subscriberID string, sink EventSink)
	Unsubscribe(subscriberID string)
	SinksFor(subscriberIDs []string) []EventSink
	All() []EventSink
	Count() int
}

// ISessionService is the seam the transport adapter calls. Join operations
// hand over the connection's sink; leave operations must be invoked exactly
// once when the connection closes.
type ISessionService interface {
	JoinAsGuest(sink EventSink) *domain.Guest
	JoinAsSpectator(sink EventSink, room domain.RoomID) *domain.Spectator
	JoinAsParticipant(sink EventSink, cmd domain.JoinParticipantCommand) (*domain.Participant, error)
	LeaveGuest(guest *domain.Guest)
	LeaveSpectator(spectator *domain.Spectator, room domain.RoomID)
	LeaveParticipant(participant *domain.Participant, room domain.RoomID)
	SubmitEstimate(cmd domain.SubmitEstimateCommand) error
	ResetRoom(room domain.RoomID)
	Rooms() []projection.RoomSummary
	Counts() (rooms, subscribers int)
}
