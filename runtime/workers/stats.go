package workers

import (
	"context"
	"log/slog"
	"os"
	"poker-lab/observability"
	"time"

	"github.com/shirou/gopsutil/process"
)

// SessionCounter is the slice of the session manager the stats worker
// needs: live room and subscriber gauges.
type SessionCounter interface {
	Counts() (rooms, subscribers int)
}

// StatsWorker periodically samples the process (RSS, CPU) and the session
// gauges into the monitor. Purely observational; skipping a tick is
// harmless.
type StatsWorker struct {
	log      *slog.Logger
	sessions SessionCounter
	monitor  *observability.Monitor
	interval time.Duration
}

func NewStatsWorker(log *slog.Logger, sessions SessionCounter,
	monitor *observability.Monitor, interval time.Duration) *StatsWorker {
	return &StatsWorker{
		log:      log,
		sessions: sessions,
		monitor:  monitor,
		interval: interval,
	}
}

// Run executes the sampling loop until the context is canceled.
func (w *StatsWorker) Run(ctx context.Context) error {
	w.log.Info("Starting stats worker", "interval", w.interval)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			rooms, subscribers := w.sessions.Counts()
			w.monitor.Refresh(rooms, subscribers, cpu, rss)
			w.log.Debug("Stats refreshed",
				"rooms", rooms,
				"subscribers", subscribers,
				"cpu_percent", cpu,
				"ram_bytes", rss)
		}
	}
}

// selfStats retrieves memory and CPU usage for the given process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
