package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"poker-lab/domain"
	"poker-lab/infrastructure/server"
	"poker-lab/internal"
	"poker-lab/observability"
	"poker-lab/runtime"
	"poker-lab/runtime/workers"
	"poker-lab/services"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting, so defers execute and exit codes stay in
// one place.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Core wiring: registry, keepalive, session manager
	monitor := observability.NewMonitor()
	registry := runtime.NewRegistry()
	keepalive := runtime.NewKeepalive(log, config.KeepaliveInterval, registry, monitor)
	manager := runtime.NewSessionManager(log, registry, keepalive, monitor,
		domain.UUIDGenerator, config.SinkTimeout)
	service := services.NewSessionService(manager)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Supervised background workers
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(workers.NewStatsWorker(log, service, monitor, config.StatsInterval))
	go sup.Run(ctx)

	// 5. Optional debug dashboard
	if config.DebugPort > 0 {
		internal.StartDebugServer(config.DebugPort, service.Rooms, func() map[string]any {
			stats := monitor.GetLatest()
			return map[string]any{
				"Subscribers":     stats.Subscribers,
				"Events queued":   stats.EventsQueued,
				"Events dropped":  stats.EventsDropped,
				"Heartbeats sent": stats.HeartbeatsSent,
				"Goroutines":      stats.Goroutines,
				"Updated at":      stats.UpdatedAt.Format(time.RFC822),
			}
		})
		log.Info("Debug inspector started", "url",
			fmt.Sprintf("http://localhost:%d/inspect", config.DebugPort))
	}

	// 6. HTTP Server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	srv := &http.Server{
		Addr:    address,
		Handler: server.New(log, service, monitor, config.ConnectionBufferSize).Router(),
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	sup.Stop()
	keepalive.Stop()
	log.Info("Program stopped cleanly")

	return nil
}
