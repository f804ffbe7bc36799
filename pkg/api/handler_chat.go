package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxRequestBodyBytes = 64 << 10

// rootHandler handles GET /.
func (s *Server) rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Thunder Tactical AI Backend is running!")
}

// chatHandler handles POST /ai/chat.
func (s *Server) chatHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodyBytes)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			// Empty body is treated as an empty message
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusBadRequest, &ChatResponse{Reply: replyTooLong})
			return
		default:
			c.JSON(http.StatusBadRequest, &ChatResponse{Reply: replyInvalidRequest})
			return
		}
	}

	result, err := s.chat.Reply(c.Request.Context(), req.Message)
	if err != nil {
		status, reply := mapServiceError(err)
		c.JSON(status, &ChatResponse{Reply: reply})
		return
	}

	c.Set(ctxKeyReplyPath, string(result.Path))
	c.Set(ctxKeyLookupOutcome, string(result.Outcome))
	c.JSON(http.StatusOK, &ChatResponse{Reply: result.Text})
}
