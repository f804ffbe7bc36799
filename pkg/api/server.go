// Package api exposes the chat service over HTTP with gin.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/metrics"
	"github.com/thundertactical/thunder-ai-backend/pkg/services"
)

// ChatReplier answers a single chat message.
type ChatReplier interface {
	Reply(ctx context.Context, message string) (*services.Reply, error)
}

// Server is the HTTP API server.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	cfg        *config.Config
	chat       ChatReplier
	metrics    *metrics.Metrics
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg *config.Config, chat ChatReplier, m *metrics.Metrics) *Server {
	router := gin.New()

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			// Covers one order lookup plus one completion.
			WriteTimeout: 90 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		cfg:     cfg,
		chat:    chat,
		metrics: m,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(
		requestID(),
		recovery(),
		requestLogger(s.metrics),
		securityHeaders(),
		corsMiddleware(s.cfg.Server),
	)

	s.router.GET("/", s.rootHandler)
	s.router.GET("/health", s.healthHandler)
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	s.router.POST("/ai/chat", s.chatHandler)
}

// Handler returns the root HTTP handler (used by tests and Start).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server on the given address. Blocks until the server
// stops; returns http.ErrServerClosed after Shutdown, including a Shutdown
// that happened before Start.
func (s *Server) Start(addr string) error {
	s.httpServer.Addr = addr
	return s.httpServer.ListenAndServe()
}

// StartWithListener serves on an already-bound listener.
func (s *Server) StartWithListener(ln net.Listener) error {
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
