// Package domain contains core concepts of the estimation system.
// This file defines the Participant entity and its invariants.
// No runtime, network, or UI logic should be added here.
package domain

// Participant is the role that submits numeric estimates. A nil Estimate
// means the participant has not estimated yet in the current round.
type Participant struct {
	ID       string
	Name     string
	Estimate *float64
}

func NewParticipant(id, name string) *Participant {
	return &Participant{ID: id, Name: name}
}

func (p *Participant) SetEstimate(value float64) {
	p.Estimate = &value
}

// ClearEstimate marks the participant as not having estimated this round.
func (p *Participant) ClearEstimate() {
	p.Estimate = nil
}
