// Package server is the HTTP boundary of the broadcaster. It translates
// requests into session operations and session events into Server-Sent
// Event frames; every rule about who sees what lives in the core, not
// here.
package server

import (
	"log/slog"
	"net/http"
	"poker-lab/contract"
	"poker-lab/observability"

	"github.com/gin-gonic/gin"
)

type Server struct {
	log        *slog.Logger
	service    contract.ISessionService
	monitor    *observability.Monitor
	bufferSize int
}

func New(log *slog.Logger, service contract.ISessionService,
	monitor *observability.Monitor, bufferSize int) *Server {
	return &Server{
		log:        log,
		service:    service,
		monitor:    monitor,
		bufferSize: bufferSize,
	}
}

// Router wires all routes. Join routes hold the connection open
// indefinitely; submission routes acknowledge with an empty body.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.Health)
	r.GET("/stats", s.Stats)
	r.GET("/lobby", s.HandleGuest)

	rooms := r.Group("/rooms/:roomId")
	{
		rooms.GET("/spectator", s.HandleSpectator)
		rooms.GET("/participant", s.HandleParticipant)
		rooms.POST("/estimation", s.HandleEstimation)
		rooms.POST("/reset", s.HandleReset)
	}
	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.GetLatest())
}
