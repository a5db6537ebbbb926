// Package observability aggregates runtime telemetry for the stats
// endpoint and the debug dashboard. It observes; it never drives behavior.
package observability

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Stats is the snapshot served on /stats and rendered by the inspector.
type Stats struct {
	Rooms          int       `json:"rooms"`
	Subscribers    int       `json:"subscribers"`
	EventsQueued   uint64    `json:"events_queued"`
	EventsDropped  uint64    `json:"events_dropped"`
	HeartbeatsSent uint64    `json:"heartbeats_sent"`
	CPUPercent     float64   `json:"cpu_percent"`
	RAMBytes       uint64    `json:"ram_bytes"`
	AllocMemMb     uint64    `json:"alloc_mem_mb"`
	NumGC          uint32    `json:"num_gc"`
	Goroutines     int       `json:"goroutines"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Monitor collects counters from the hot path (atomics, no lock) and
// gauges from the stats worker (mutex-guarded snapshot). A nil Monitor is
// a valid no-op collector.
type Monitor struct {
	mu     sync.RWMutex
	latest Stats

	eventsQueued   atomic.Uint64
	eventsDropped  atomic.Uint64
	heartbeatsSent atomic.Uint64
}

func NewMonitor() *Monitor {
	return &Monitor{}
}

func (m *Monitor) AddQueued() {
	if m == nil {
		return
	}
	m.eventsQueued.Add(1)
}

func (m *Monitor) AddDropped() {
	if m == nil {
		return
	}
	m.eventsDropped.Add(1)
}

func (m *Monitor) AddHeartbeat() {
	if m == nil {
		return
	}
	m.heartbeatsSent.Add(1)
}

// Refresh merges the provided gauges with the hot-path counters and the Go
// runtime's own numbers into a new snapshot.
func (m *Monitor) Refresh(rooms, subscribers int, cpuPercent float64, ramBytes uint64) {
	if m == nil {
		return
	}
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest = Stats{
		Rooms:          rooms,
		Subscribers:    subscribers,
		EventsQueued:   m.eventsQueued.Load(),
		EventsDropped:  m.eventsDropped.Load(),
		HeartbeatsSent: m.heartbeatsSent.Load(),
		CPUPercent:     cpuPercent,
		RAMBytes:       ramBytes,
		AllocMemMb:     mem.Alloc / 1024 / 1024,
		NumGC:          mem.NumGC,
		Goroutines:     runtime.NumGoroutine(),
		UpdatedAt:      time.Now().UTC(),
	}
}

// GetLatest returns the last snapshot taken by the stats worker. Counters
// are re-read so they stay fresh between refreshes.
func (m *Monitor) GetLatest() Stats {
	if m == nil {
		return Stats{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := m.latest
	stats.EventsQueued = m.eventsQueued.Load()
	stats.EventsDropped = m.eventsDropped.Load()
	stats.HeartbeatsSent = m.heartbeatsSent.Load()
	return stats
}
