package runtime

import (
	"fmt"
	"log/slog"
	"poker-lab/domain"
	"poker-lab/domain/event"
	"poker-lab/errors"
	"poker-lab/mocks"
	"poker-lab/projection"
	"poker-lab/sink"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// sequentialIDs makes assertions on assigned ids deterministic.
func sequentialIDs() domain.IDGenerator {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newManager() *SessionManager {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry()
	keepalive := NewKeepalive(log, time.Hour, registry, nil)
	return NewSessionManager(log, registry, keepalive, nil, sequentialIDs(), 100*time.Millisecond)
}

// drain empties a sink's buffer and returns everything it held.
func drain(s *sink.StreamSink) []event.Event {
	var events []event.Event
	for {
		select {
		case evt := <-s.Events:
			events = append(events, evt)
		default:
			return events
		}
	}
}

func TestJoinAsGuest_ReceivesCurrentRoomList(t *testing.T) {
	req := require.New(t)
	manager := newManager()
	guestSink := sink.NewStreamSink(8)

	// When a guest joins an empty lobby
	guest := manager.JoinAsGuest(guestSink)

	// Then it immediately receives the empty list
	req.NotEmpty(guest.ID)
	req.Equal([]event.Event{event.RoomList{Rooms: []projection.RoomSummary{}}}, drain(guestSink))

	// When a participant joins a room
	_, err := manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)

	// Then the guest hears about the new room and its size
	req.Equal([]event.Event{
		event.RoomList{Rooms: []projection.RoomSummary{{ID: "42", Size: 1}}},
	}, drain(guestSink))
}

func TestJoinAsSpectator_ReceivesSnapshotWithEstimates(t *testing.T) {
	req := require.New(t)
	manager := newManager()

	// Given a room where one participant already estimated
	participant, err := manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)
	req.NoError(manager.SubmitEstimate(domain.SubmitEstimateCommand{
		Room: "42", ParticipantID: participant.ID, Estimate: lo.ToPtr(5.0),
	}))

	// When a spectator joins that room
	spectatorSink := sink.NewStreamSink(8)
	spectator := manager.JoinAsSpectator(spectatorSink, "42")

	// Then it receives the current snapshot, estimate included
	req.NotEmpty(spectator.ID)
	events := drain(spectatorSink)
	req.Len(events, 1)
	req.Equal(event.RoomSnapshot{
		Room: "42",
		Participants: []projection.ParticipantView{
			{ID: participant.ID, Name: "Alice", Estimate: lo.ToPtr(5.0)},
		},
	}, events[0])
}

func TestJoinAsParticipant_AssignsDistinctIDs(t *testing.T) {
	req := require.New(t)
	manager := newManager()
	firstSink := sink.NewStreamSink(8)
	secondSink := sink.NewStreamSink(8)

	// When two participants join the same room
	first, err := manager.JoinAsParticipant(firstSink,
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)
	second, err := manager.JoinAsParticipant(secondSink,
		domain.JoinParticipantCommand{Room: "42", Name: "Bob"})
	req.NoError(err)

	// Then each is told its own id, and the ids differ
	req.NotEqual(first.ID, second.ID)
	firstEvents := drain(firstSink)
	req.Contains(firstEvents, event.AssignedID{ID: first.ID})
	req.Contains(drain(secondSink), event.AssignedID{ID: second.ID})
}

func TestJoinAsParticipant_EmptyNameMutatesNothing(t *testing.T) {
	req := require.New(t)
	manager := newManager()

	// When a join arrives with no name
	participant, err := manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: ""})

	// Then the caller gets the sentinel and no state changed
	req.ErrorIs(err, errors.ErrEmptyName)
	req.Nil(participant)
	rooms, subscribers := manager.Counts()
	req.Zero(rooms)
	req.Zero(subscribers)
}

func TestSubmitEstimate_UpdatesSpectators(t *testing.T) {
	req := require.New(t)
	manager := newManager()
	participant, err := manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)
	spectatorSink := sink.NewStreamSink(8)
	manager.JoinAsSpectator(spectatorSink, "42")
	drain(spectatorSink)

	// When the participant submits an estimate
	req.NoError(manager.SubmitEstimate(domain.SubmitEstimateCommand{
		Room: "42", ParticipantID: participant.ID, Estimate: lo.ToPtr(8.0),
	}))

	// Then the spectator sees the new value in the next snapshot
	events := drain(spectatorSink)
	req.Len(events, 1)
	snapshot, ok := events[0].(event.RoomSnapshot)
	req.True(ok)
	req.Equal(lo.ToPtr(8.0), snapshot.Participants[0].Estimate)
}

func TestSubmitEstimate_AbsentParticipantIsBenign(t *testing.T) {
	req := require.New(t)
	manager := newManager()
	manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})

	// When an estimate races a disconnect and names a gone participant
	err := manager.SubmitEstimate(domain.SubmitEstimateCommand{
		Room: "42", ParticipantID: "gone", Estimate: lo.ToPtr(3.0),
	})

	// Then it is a no-op, not an error
	req.NoError(err)
	rooms, _ := manager.Counts()
	req.Equal(1, rooms)
}

func TestSubmitEstimate_UnknownRoomCreatesNothing(t *testing.T) {
	req := require.New(t)
	manager := newManager()

	// When an estimate targets a room nobody occupies
	err := manager.SubmitEstimate(domain.SubmitEstimateCommand{
		Room: "ghost", ParticipantID: "p1", Estimate: lo.ToPtr(1.0),
	})

	// Then no room leaks into the directory
	req.NoError(err)
	rooms, _ := manager.Counts()
	req.Zero(rooms)
}

func TestSubmitEstimate_MissingEstimateIsRejected(t *testing.T) {
	req := require.New(t)
	manager := newManager()

	err := manager.SubmitEstimate(domain.SubmitEstimateCommand{
		Room: "42", ParticipantID: "p1",
	})

	req.ErrorIs(err, errors.ErrEstimateRequired)
}

func TestResetRoom_ClearsEstimatesAndRepushesIDs(t *testing.T) {
	req := require.New(t)
	manager := newManager()
	participantSink := sink.NewStreamSink(8)
	participant, err := manager.JoinAsParticipant(participantSink,
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)
	spectatorSink := sink.NewStreamSink(8)
	manager.JoinAsSpectator(spectatorSink, "42")
	req.NoError(manager.SubmitEstimate(domain.SubmitEstimateCommand{
		Room: "42", ParticipantID: participant.ID, Estimate: lo.ToPtr(13.0),
	}))
	drain(participantSink)
	drain(spectatorSink)

	// When the round is reset
	manager.ResetRoom("42")

	// Then spectators get an all-blank snapshot
	events := drain(spectatorSink)
	req.Len(events, 1)
	snapshot, ok := events[0].(event.RoomSnapshot)
	req.True(ok)
	req.Nil(snapshot.Participants[0].Estimate)

	// And each participant is re-sent its own id as the round-start signal
	req.Equal([]event.Event{event.AssignedID{ID: participant.ID}}, drain(participantSink))
}

func TestLeaveParticipant_DeletesEmptyRoomAndRefreshesLobby(t *testing.T) {
	req := require.New(t)
	manager := newManager()
	guestSink := sink.NewStreamSink(8)
	manager.JoinAsGuest(guestSink)
	participant, err := manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)
	drain(guestSink)

	// When the last occupant leaves
	manager.LeaveParticipant(participant, "42")

	// Then the room is gone and guests see the empty lobby again
	rooms, subscribers := manager.Counts()
	req.Zero(rooms)
	req.Equal(1, subscribers) // the guest itself
	req.Equal([]event.Event{
		event.RoomList{Rooms: []projection.RoomSummary{}},
	}, drain(guestSink))
}

func TestLeaveSpectator_KeepsOccupiedRoom(t *testing.T) {
	req := require.New(t)
	manager := newManager()
	_, err := manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)
	spectator := manager.JoinAsSpectator(sink.NewStreamSink(8), "42")

	// When the spectator leaves but a participant remains
	manager.LeaveSpectator(spectator, "42")

	// Then the room survives
	rooms, subscribers := manager.Counts()
	req.Equal(1, rooms)
	req.Equal(1, subscribers)
}

func TestBroadcast_SlowSubscriberLosesOnlyItsOwnFrames(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	manager := newManager()

	// Given a guest whose sink always refuses delivery
	stuck := mocks.NewMockEventSink(ctrl)
	stuck.EXPECT().Consume(gomock.Any(), gomock.Any()).
		Return(errors.ErrSinkFull).AnyTimes()
	manager.JoinAsGuest(stuck)
	healthySink := sink.NewStreamSink(8)
	manager.JoinAsGuest(healthySink)
	drain(healthySink)

	// When a room appears
	_, err := manager.JoinAsParticipant(sink.NewStreamSink(8),
		domain.JoinParticipantCommand{Room: "42", Name: "Alice"})
	req.NoError(err)

	// Then the healthy guest still receives the lobby update
	req.Equal([]event.Event{
		event.RoomList{Rooms: []projection.RoomSummary{{ID: "42", Size: 1}}},
	}, drain(healthySink))
}
