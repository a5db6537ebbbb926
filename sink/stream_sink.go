// Package sink bridges the orchestrator to individual push connections.
package sink

import (
	"context"
	"poker-lab/domain/event"
	"poker-lab/errors"
)

// StreamSink is the channel-backed sink behind one SSE connection. The
// session manager enqueues events through Consume; the HTTP handler
// goroutine drains Events and writes frames.
type StreamSink struct {
	Events chan event.Event
}

func NewStreamSink(bufferSize int) *StreamSink {
	return &StreamSink{Events: make(chan event.Event, bufferSize)}
}

// Consume hands the event to the connection's writer without blocking the
// broadcast: a full buffer drops the event rather than stalling delivery
// to other subscribers. The disconnect handler, not a failed push, owns
// cleanup.
func (s *StreamSink) Consume(ctx context.Context, e event.Event) error {
	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return errors.ErrSinkFull
	}
}
