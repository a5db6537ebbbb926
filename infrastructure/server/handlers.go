package server

import (
	"net/http"
	"poker-lab/domain"
	"poker-lab/errors"
	"poker-lab/sink"

	"github.com/gin-gonic/gin"
)

// estimationRequest is the raw submission body. Estimate stays a pointer
// so the core, not the adapter, decides that a missing value is invalid.
type estimationRequest struct {
	ID       string   `json:"id"`
	Estimate *float64 `json:"estimate"`
}

// HandleGuest opens the lobby stream. The guest lives exactly as long as
// the connection.
func (s *Server) HandleGuest(c *gin.Context) {
	streamSink := sink.NewStreamSink(s.bufferSize)
	guest := s.service.JoinAsGuest(streamSink)
	defer s.service.LeaveGuest(guest)

	s.stream(c, streamSink)
}

// HandleSpectator opens a read-only stream on one room.
func (s *Server) HandleSpectator(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))
	streamSink := sink.NewStreamSink(s.bufferSize)
	spectator := s.service.JoinAsSpectator(streamSink, roomID)
	defer s.service.LeaveSpectator(spectator, roomID)

	s.stream(c, streamSink)
}

// HandleParticipant opens a participant stream. The name travels as a raw
// query value; the core rejects the join when it is empty.
func (s *Server) HandleParticipant(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))
	streamSink := sink.NewStreamSink(s.bufferSize)

	participant, err := s.service.JoinAsParticipant(streamSink, domain.JoinParticipantCommand{
		Room: roomID,
		Name: c.Query("name"),
	})
	if err != nil {
		c.JSON(errors.MapToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	defer s.service.LeaveParticipant(participant, roomID)

	s.stream(c, streamSink)
}

// HandleEstimation accepts an estimate submission and acknowledges with an
// empty body. A malformed body never reaches the core.
func (s *Server) HandleEstimation(c *gin.Context) {
	roomID := domain.RoomID(c.Param("roomId"))

	var req estimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.Warn("Malformed estimation body", "room_id", roomID, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrEstimateRequired.Error()})
		return
	}

	err := s.service.SubmitEstimate(domain.SubmitEstimateCommand{
		Room:          roomID,
		ParticipantID: req.ID,
		Estimate:      req.Estimate,
	})
	if err != nil {
		c.JSON(errors.MapToHTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleReset starts a new estimation round for the room.
func (s *Server) HandleReset(c *gin.Context) {
	s.service.ResetRoom(domain.RoomID(c.Param("roomId")))
	c.Status(http.StatusNoContent)
}
