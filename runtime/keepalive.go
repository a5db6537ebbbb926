package runtime

import (
	"context"
	"log/slog"
	"poker-lab/contract"
	"poker-lab/domain/event"
	"poker-lab/observability"
	"sync"
	"time"
)

// Keepalive pushes a no-op heartbeat to every open subscriber at a fixed
// interval so intermediaries never see an idle connection. It is armed on
// demand by joins and disarms itself once no subscribers remain; the next
// join re-arms it. This is the only recurring background activity that
// touches subscribers.
type Keepalive struct {
	mu       sync.Mutex
	log      *slog.Logger
	interval time.Duration
	registry contract.IRegistry
	monitor  *observability.Monitor
	timer    *time.Timer
}

func NewKeepalive(log *slog.Logger, interval time.Duration,
	registry contract.IRegistry, monitor *observability.Monitor) *Keepalive {
	return &Keepalive{
		log:      log,
		interval: interval,
		registry: registry,
		monitor:  monitor,
	}
}

// Arm schedules the next heartbeat unless one is already pending.
// Idempotent: joins call it unconditionally.
func (k *Keepalive) Arm() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.timer != nil {
		return
	}
	k.timer = time.AfterFunc(k.interval, k.fire)
}

// IsIdle reports whether no heartbeat is scheduled.
func (k *Keepalive) IsIdle() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.timer == nil
}

// Stop cancels any pending heartbeat. Used on shutdown only; the normal
// disarm path is firing with zero subscribers.
func (k *Keepalive) Stop() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.timer != nil {
		k.timer.Stop()
		k.timer = nil
	}
}

// fire runs on the timer goroutine. With no subscribers left it disarms
// and does not reschedule; otherwise it pushes a heartbeat to everyone and
// re-arms for another interval.
func (k *Keepalive) fire() {
	k.mu.Lock()
	k.timer = nil
	k.mu.Unlock()

	sinks := k.registry.All()
	if len(sinks) == 0 {
		k.log.Debug("No subscribers left, keepalive disarmed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), k.interval)
	defer cancel()
	for _, s := range sinks {
		if err := s.Consume(ctx, event.Heartbeat{}); err != nil {
			k.log.Debug("Heartbeat dropped", "error", err)
			continue
		}
		k.monitor.AddHeartbeat()
	}
	k.Arm()
}
