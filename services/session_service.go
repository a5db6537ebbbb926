// Package services exposes the orchestrator behind thin facades so the
// transport adapters depend on contracts, not on runtime internals.
package services

import (
	"poker-lab/contract"
	"poker-lab/domain"
	"poker-lab/projection"
	"poker-lab/runtime"
)

type SessionService struct {
	manager *runtime.SessionManager
}

func NewSessionService(manager *runtime.SessionManager) *SessionService {
	return &SessionService{manager: manager}
}

func (s *SessionService) JoinAsGuest(sink contract.EventSink) *domain.Guest {
	return s.manager.JoinAsGuest(sink)
}

func (s *SessionService) JoinAsSpectator(sink contract.EventSink, room domain.RoomID) *domain.Spectator {
	return s.manager.JoinAsSpectator(sink, room)
}

func (s *SessionService) JoinAsParticipant(sink contract.EventSink, cmd domain.JoinParticipantCommand) (*domain.Participant, error) {
	return s.manager.JoinAsParticipant(sink, cmd)
}

func (s *SessionService) LeaveGuest(guest *domain.Guest) {
	s.manager.LeaveGuest(guest)
}

func (s *SessionService) LeaveSpectator(spectator *domain.Spectator, room domain.RoomID) {
	s.manager.LeaveSpectator(spectator, room)
}

func (s *SessionService) LeaveParticipant(participant *domain.Participant, room domain.RoomID) {
	s.manager.LeaveParticipant(participant, room)
}

func (s *SessionService) SubmitEstimate(cmd domain.SubmitEstimateCommand) error {
	return s.manager.SubmitEstimate(cmd)
}

func (s *SessionService) ResetRoom(room domain.RoomID) {
	s.manager.ResetRoom(room)
}

func (s *SessionService) Rooms() []projection.RoomSummary {
	return s.manager.Rooms()
}

func (s *SessionService) Counts() (rooms, subscribers int) {
	return s.manager.Counts()
}
