package server

import (
	"encoding/json"
	"io"
	"poker-lab/domain/event"
	"poker-lab/sink"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
)

// stream drains the connection's sink into SSE frames until the client
// disconnects. The deferred leave in the calling handler is the one and
// only cleanup path; a failed write is logged and swallowed because the
// request context cancels right after a disconnect anyway.
func (s *Server) stream(c *gin.Context, streamSink *sink.StreamSink) {
	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-streamSink.Events:
			if err := writeFrame(c.Writer, evt); err != nil {
				s.log.Debug("Stream write failed", "event", evt.Name(), "error", err)
				continue
			}
			c.Writer.Flush()
		}
	}
}

// writeFrame encodes one event as a line-delimited SSE frame. Heartbeats
// are comment frames, invisible to EventSource clients; everything else is
// a data frame carrying pre-marshalled JSON.
func writeFrame(w io.Writer, evt event.Event) error {
	switch e := evt.(type) {
	case event.Heartbeat:
		_, err := io.WriteString(w, ":\n\n")
		return err
	case event.RoomSnapshot:
		return writeData(w, e.Participants)
	case event.RoomList:
		return writeData(w, e.Rooms)
	case event.AssignedID:
		return writeData(w, e.ID)
	default:
		return nil
	}
}

func writeData(w io.Writer, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return sse.Encode(w, sse.Event{Data: string(data)})
}
