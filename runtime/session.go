package runtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"poker-lab/contract"
	"poker-lab/domain"
	"poker-lab/domain/event"
	"poker-lab/errors"
	"poker-lab/observability"
	"poker-lab/projection"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

// SessionManager owns the room directory, the connection registry, and the
// guest set. Every mutating operation runs to completion under one mutex,
// so broadcasts triggered by an operation are enqueued to every intended
// recipient before the operation returns. Delivery itself is a
// non-blocking per-sink enqueue: a slow subscriber only loses its own
// frames, never delays the others.
type SessionManager struct {
	mu          sync.Mutex
	log         *slog.Logger
	directory   *Directory
	registry    contract.IRegistry
	keepalive   *Keepalive
	monitor     *observability.Monitor
	guests      []*domain.Guest
	newID       domain.IDGenerator
	sinkTimeout time.Duration
	validate    *validator.Validate
}

func NewSessionManager(log *slog.Logger, registry contract.IRegistry,
	keepalive *Keepalive, monitor *observability.Monitor,
	newID domain.IDGenerator, sinkTimeout time.Duration) *SessionManager {
	return &SessionManager{
		log:         log,
		directory:   NewDirectory(),
		registry:    registry,
		keepalive:   keepalive,
		monitor:     monitor,
		newID:       newID,
		sinkTimeout: sinkTimeout,
		validate:    validator.New(),
	}
}

// JoinAsGuest registers a lobby observer and immediately pushes it the
// current room list.
func (m *SessionManager) JoinAsGuest(sink contract.EventSink) *domain.Guest {
	m.mu.Lock()
	defer m.mu.Unlock()

	guest := domain.NewGuest(m.newID())
	m.guests = append(m.guests, guest)
	m.registry.Subscribe(guest.ID, sink)
	m.push(sink, event.RoomList{Rooms: m.directory.ListAll()})
	m.keepalive.Arm()

	m.log.Info("Guest joined the lobby", "guest_id", guest.ID)
	return guest
}

// JoinAsSpectator resolves or creates the room and registers a read-only
// observer. The spectator receives the room's current snapshot; guests
// receive the updated lobby since the room may be new or have grown.
func (m *SessionManager) JoinAsSpectator(sink contract.EventSink, roomID domain.RoomID) *domain.Spectator {
	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.directory.GetOrCreate(roomID)
	spectator := domain.NewSpectator(m.newID())
	room.AddSpectator(spectator)
	m.registry.Subscribe(spectator.ID, sink)

	m.push(sink, event.RoomSnapshot{Room: room.ID, Participants: projection.Participants(room)})
	m.broadcastRoomList()
	m.keepalive.Arm()

	m.log.Info("Spectator joined", "spectator_id", spectator.ID, "room_id", roomID)
	return spectator
}

// JoinAsParticipant validates the name, creates the participant with no
// estimate, pushes it its own id, and refreshes the room's spectators and
// every guest. A validation failure mutates nothing.
func (m *SessionManager) JoinAsParticipant(sink contract.EventSink, cmd domain.JoinParticipantCommand) (*domain.Participant, error) {
	if err := m.validate.Struct(cmd); err != nil {
		return nil, toValidationError(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	room := m.directory.GetOrCreate(cmd.Room)
	participant := domain.NewParticipant(m.newID(), cmd.Name)
	room.AddParticipant(participant)
	m.registry.Subscribe(participant.ID, sink)

	m.push(sink, event.AssignedID{ID: participant.ID})
	m.broadcastSnapshot(room)
	m.broadcastRoomList()
	m.keepalive.Arm()

	m.log.Info("Participant joined", "participant_id", participant.ID,
		"name", participant.Name, "room_id", cmd.Room)
	return participant, nil
}

// LeaveGuest removes a lobby observer. Nobody else needs to hear about it.
func (m *SessionManager) LeaveGuest(guest *domain.Guest) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.guests = lo.Filter(m.guests, func(g *domain.Guest, _ int) bool {
		return g.ID != guest.ID
	})
	m.registry.Unsubscribe(guest.ID)
	m.log.Info("Guest left the lobby", "guest_id", guest.ID)
}

// LeaveSpectator removes a spectator from its room, deletes the room if it
// emptied, and refreshes the lobby.
func (m *SessionManager) LeaveSpectator(spectator *domain.Spectator, roomID domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.directory.Get(roomID)
	if !ok {
		m.registry.Unsubscribe(spectator.ID)
		return
	}
	room.RemoveSpectator(spectator.ID)
	m.registry.Unsubscribe(spectator.ID)

	m.broadcastSnapshot(room)
	m.directory.DeleteIfEmpty(room)
	m.broadcastRoomList()
	m.log.Info("Spectator left", "spectator_id", spectator.ID, "room_id", roomID)
}

// LeaveParticipant removes a participant from its room, refreshes the
// remaining spectators, deletes the room if it emptied, and refreshes the
// lobby.
func (m *SessionManager) LeaveParticipant(participant *domain.Participant, roomID domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.directory.Get(roomID)
	if !ok {
		m.registry.Unsubscribe(participant.ID)
		return
	}
	room.RemoveParticipant(participant.ID)
	m.registry.Unsubscribe(participant.ID)

	m.broadcastSnapshot(room)
	m.directory.DeleteIfEmpty(room)
	m.broadcastRoomList()
	m.log.Info("Participant left", "participant_id", participant.ID, "room_id", roomID)
}

// SubmitEstimate records a participant's estimate. An id no longer present
// in the room is a benign race with disconnect, not an error: the call is
// a no-op but the snapshot is still broadcast, keeping re-invocation
// idempotent. The room itself is only looked up, never created, so a stray
// submission cannot leak an empty room.
func (m *SessionManager) SubmitEstimate(cmd domain.SubmitEstimateCommand) error {
	if err := m.validate.Struct(cmd); err != nil {
		return toValidationError(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.directory.Get(cmd.Room)
	if !ok {
		m.log.Debug("Estimate for unknown room ignored", "room_id", cmd.Room)
		return nil
	}
	if participant, found := room.FindParticipant(cmd.ParticipantID); found {
		participant.SetEstimate(*cmd.Estimate)
	} else {
		m.log.Debug("Estimate for absent participant ignored",
			"participant_id", cmd.ParticipantID, "room_id", cmd.Room)
	}
	m.broadcastSnapshot(room)
	return nil
}

// ResetRoom starts a new round: every estimate is cleared, spectators get
// the blank snapshot, and each participant is re-pushed its own id as the
// round-start signal.
func (m *SessionManager) ResetRoom(roomID domain.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	room, ok := m.directory.Get(roomID)
	if !ok {
		return
	}
	room.ResetEstimates()
	m.broadcastSnapshot(room)
	for _, p := range room.Participants {
		m.broadcast(m.registry.SinksFor([]string{p.ID}), event.AssignedID{ID: p.ID})
	}
	m.log.Info("Room reset", "room_id", roomID)
}

// Rooms exposes the lobby projection for the debug surface.
func (m *SessionManager) Rooms() []projection.RoomSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.directory.ListAll()
}

// Counts reports the live gauges consumed by the stats worker.
func (m *SessionManager) Counts() (rooms, subscribers int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.directory.Len(), m.registry.Count()
}

func (m *SessionManager) broadcastSnapshot(room *domain.Room) {
	snapshot := event.RoomSnapshot{Room: room.ID, Participants: projection.Participants(room)}
	m.broadcast(m.spectatorSinks(room), snapshot)
}

func (m *SessionManager) broadcastRoomList() {
	m.broadcast(m.guestSinks(), event.RoomList{Rooms: m.directory.ListAll()})
}

// broadcast enqueues the event to each sink in order. Per-sink delivery
// cannot block: a full buffer drops the frame for that subscriber only.
func (m *SessionManager) broadcast(sinks []contract.EventSink, evt event.Event) {
	for _, s := range sinks {
		m.push(s, evt)
	}
}

func (m *SessionManager) push(sink contract.EventSink, evt event.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), m.sinkTimeout)
	defer cancel()
	if err := sink.Consume(ctx, evt); err != nil {
		m.monitor.AddDropped()
		m.log.Debug("Push dropped", "event", evt.Name(), "error", err)
		return
	}
	m.monitor.AddQueued()
}

func (m *SessionManager) spectatorSinks(room *domain.Room) []contract.EventSink {
	ids := lo.Map(room.Spectators, func(s *domain.Spectator, _ int) string { return s.ID })
	return m.registry.SinksFor(ids)
}

func (m *SessionManager) guestSinks() []contract.EventSink {
	ids := lo.Map(m.guests, func(g *domain.Guest, _ int) string { return g.ID })
	return m.registry.SinksFor(ids)
}

// toValidationError maps a validator failure onto the matching sentinel so
// the boundary can translate it into a client error.
func toValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return err
	}
	for _, fe := range fieldErrors {
		switch fe.Field() {
		case "Name":
			return errors.ErrEmptyName
		case "ParticipantID":
			return errors.ErrParticipantRequired
		case "Estimate":
			return errors.ErrEstimateRequired
		}
	}
	return fmt.Errorf("invalid command: %w", err)
}
