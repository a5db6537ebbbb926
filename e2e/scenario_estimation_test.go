package e2e

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"poker-lab/projection"
)

type testEstimationSuite struct {
	BaseHTTPSuite
}

func TestEstimationSuite(t *testing.T) {
	suite.Run(t, &testEstimationSuite{})
}

func (s *testEstimationSuite) TestFullEstimationFlow() {
	// A fresh room id keeps runs independent on a shared server
	roomID := uuid.NewString()
	roomPath := "/rooms/" + roomID

	var participantID string
	var snapshot []projection.ParticipantView

	// --- STEP 1: PARTICIPANT JOINS AND LEARNS ITS ID ---
	participant := s.OpenStream("Step 1: Join as participant", roomPath+"/participant?name=Alice")
	s.NextJSON(participant, &participantID)
	s.Require().NotEmpty(participantID)

	// --- STEP 2: SPECTATOR SEES THE BLANK SNAPSHOT ---
	spectator := s.OpenStream("Step 2: Join as spectator", roomPath+"/spectator")
	s.NextJSON(spectator, &snapshot)
	s.Require().Len(snapshot, 1)
	s.Require().Equal("Alice", snapshot[0].Name)
	s.Require().Nil(snapshot[0].Estimate)

	// --- STEP 3: ESTIMATE SHOWS UP FOR THE SPECTATOR ---
	s.PostJSON("Step 3: Submit estimate", roomPath+"/estimation",
		map[string]any{"id": participantID, "estimate": 8}, http.StatusNoContent)
	s.NextJSON(spectator, &snapshot)
	s.Require().NotNil(snapshot[0].Estimate)
	s.Require().Equal(8.0, *snapshot[0].Estimate)

	// --- STEP 4: RESET BLANKS THE ROUND ---
	s.PostJSON("Step 4: Reset the round", roomPath+"/reset", nil, http.StatusNoContent)
	s.NextJSON(spectator, &snapshot)
	s.Require().Nil(snapshot[0].Estimate)

	// The participant is re-sent its own id as the round-start signal
	var resentID string
	s.NextJSON(participant, &resentID)
	s.Require().Equal(participantID, resentID)

	// --- STEP 5: MISSING ESTIMATE IS REJECTED ---
	s.PostJSON("Step 5: Reject submission without estimate", roomPath+"/estimation",
		map[string]any{"id": participantID}, http.StatusBadRequest)
}

func (s *testEstimationSuite) TestLobbyTracksRoomLifecycle() {
	roomID := uuid.NewString()
	var rooms []projection.RoomSummary

	// --- STEP 1: GUEST WATCHES THE LOBBY ---
	lobby := s.OpenStream("Step 1: Watch the lobby", "/lobby")
	s.NextJSON(lobby, &rooms)

	// --- STEP 2: A NEW ROOM APPEARS ON FIRST JOIN ---
	spectator := s.OpenStream("Step 2: Spectate a fresh room", "/rooms/"+roomID+"/spectator")
	s.NextJSON(lobby, &rooms)
	s.Require().Contains(rooms, projection.RoomSummary{ID: roomID, Size: 1})

	// --- STEP 3: THE ROOM VANISHES WITH ITS LAST OCCUPANT ---
	spectator.Close()
	s.NextJSON(lobby, &rooms)
	s.Require().NotContains(rooms, projection.RoomSummary{ID: roomID, Size: 1})
}
