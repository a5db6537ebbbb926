// Package client is a minimal Server-Sent Events reader used by the lobby
// viewer and the e2e suite. It surfaces data frames as raw JSON strings
// and silently skips comment (heartbeat) frames.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Stream struct {
	frames chan string
	cancel context.CancelFunc
}

// Connect opens a long-lived push stream and starts draining it. The
// stream lives until the context is canceled, Close is called, or the
// server ends the response.
func Connect(ctx context.Context, url string) (*Stream, error) {
	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("join refused with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	s := &Stream{frames: make(chan string, 32), cancel: cancel}
	go s.read(resp.Body)
	return s, nil
}

// Frames yields the data payload of every received frame. The channel
// closes when the stream ends.
func (s *Stream) Frames() <-chan string {
	return s.frames
}

// Next waits for the next data frame or fails after the timeout.
func (s *Stream) Next(timeout time.Duration) (string, error) {
	select {
	case frame, ok := <-s.frames:
		if !ok {
			return "", fmt.Errorf("stream closed")
		}
		return frame, nil
	case <-time.After(timeout):
		return "", fmt.Errorf("no frame received within %s", timeout)
	}
}

// Close tears the connection down. The server observes a disconnect and
// cleans up the matching subscriber.
func (s *Stream) Close() {
	s.cancel()
}

func (s *Stream) read(body io.ReadCloser) {
	defer close(s.frames)
	defer func() { _ = body.Close() }()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		// Comment frames (heartbeats) start with ':' and carry no data.
		if payload, ok := strings.CutPrefix(line, "data:"); ok {
			s.frames <- strings.TrimSpace(payload)
		}
	}
}
