package workers

import (
	"context"
	"io"
	"log/slog"
	"poker-lab/observability"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fixedCounts struct {
	rooms       int
	subscribers int
}

func (f fixedCounts) Counts() (int, int) {
	return f.rooms, f.subscribers
}

func TestStatsWorker_RefreshesMonitorEachTick(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	monitor := observability.NewMonitor()
	worker := NewStatsWorker(logger, fixedCounts{rooms: 3, subscribers: 7}, monitor, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// Then a snapshot shows up carrying the session gauges
	req.Eventually(func() bool {
		return monitor.GetLatest().Rooms == 3
	}, time.Second, 10*time.Millisecond)
	stats := monitor.GetLatest()
	req.Equal(7, stats.Subscribers)
	req.False(stats.UpdatedAt.IsZero())
	req.Positive(stats.Goroutines)

	// When the context is canceled, the loop returns its error
	cancel()
	select {
	case err := <-done:
		req.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		req.FailNow("worker did not stop on cancellation")
	}
}
