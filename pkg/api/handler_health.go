package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thundertactical/thunder-ai-backend/pkg/version"
)

// healthHandler handles GET /health.
// Reports configuration only; no outbound calls are made, so an order platform
// or provider outage never marks this process unhealthy.
func (s *Server) healthHandler(c *gin.Context) {
	stats := s.cfg.Stats()
	c.JSON(http.StatusOK, &HealthResponse{
		Status:                "healthy",
		Version:               version.GitCommit,
		OrderLookupConfigured: stats.OrderLookupConfigured,
		LLMConfigured:         stats.LLMConfigured,
	})
}
