package runtime

import (
	"poker-lab/contract"
	"sync"
)

// Registry tracks the open push channel of every subscriber, keyed by
// subscriber id. It keeps subscribe order so broadcasts iterate
// deterministically. Reads happen from the keepalive timer goroutine, so
// the registry guards itself with a RWMutex even though mutations all come
// from the session manager.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]contract.EventSink)}
}

// Subscribe registers a subscriber's active connection. Ids are unique per
// connection, so a duplicate subscribe for the same id replaces the sink
// without duplicating the order entry.
func (r *Registry) Subscribe(subscriberID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[subscriberID]; !exists {
		r.order = append(r.order, subscriberID)
	}
	r.sessions[subscriberID] = sink
}

// Unsubscribe removes a subscriber. Safe to call for an id that was
// already removed.
func (r *Registry) Unsubscribe(subscriberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[subscriberID]; !exists {
		return
	}
	delete(r.sessions, subscriberID)
	for i, id := range r.order {
		if id == subscriberID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// SinksFor resolves subscriber ids into their active sinks, preserving the
// order of the input. Ids without a live session are skipped: a push to a
// subscriber that just vanished is a silent no-op.
func (r *Registry) SinksFor(subscriberIDs []string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sinks []contract.EventSink
	for _, id := range subscriberIDs {
		if sink, exists := r.sessions[id]; exists {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

// All returns every registered sink in subscribe order. Used by the
// keepalive scheduler to reach guests and room members alike.
func (r *Registry) All() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.order))
	for _, id := range r.order {
		sinks = append(sinks, r.sessions[id])
	}
	return sinks
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
