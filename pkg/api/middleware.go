package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thundertactical/thunder-ai-backend/pkg/config"
	"github.com/thundertactical/thunder-ai-backend/pkg/metrics"
)

const (
	headerRequestID     = "X-Request-ID"
	ctxKeyRequestID     = "request_id"
	ctxKeyReplyPath     = "reply_path"
	ctxKeyLookupOutcome = "lookup_outcome"
	maxRequestIDLength  = 128
)

// requestID preserves a caller-supplied X-Request-ID or generates one, and
// echoes it on the response.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// recovery turns a handler panic into the standard 500 reply.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		slog.Error("Panic while handling request",
			"request_id", c.GetString(ctxKeyRequestID),
			"path", c.Request.URL.Path,
			"panic", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, &ChatResponse{Reply: replyInternal})
	})
}

// requestLogger logs one line per request and records HTTP metrics.
// Message bodies are never logged.
func requestLogger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		m.ObserveRequest(c.Request.Method, route, status, latency)

		attrs := []any{
			"request_id", c.GetString(ctxKeyRequestID),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
		}
		if path := c.GetString(ctxKeyReplyPath); path != "" {
			attrs = append(attrs, "reply_path", path, "lookup_outcome", c.GetString(ctxKeyLookupOutcome))
		}

		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("Request completed", attrs...)
		case route == "/health" || route == "/metrics":
			slog.Debug("Request completed", attrs...)
		default:
			slog.Info("Request completed", attrs...)
		}
	}
}

// securityHeaders returns middleware that sets standard security response headers.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Next()
	}
}

// corsMiddleware allows every origin unless server.allowed_origins narrows it.
func corsMiddleware(cfg *config.ServerConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", headerRequestID},
		ExposeHeaders: []string{headerRequestID},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowsAllOrigins() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsCfg)
}
