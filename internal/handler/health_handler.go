package handler

import (
	"context"
	"net/http"

	"advisor-api/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// Pinger is anything /health can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

func (h *HealthHandler) Health(c *gin.Context) {
	for name, check := range h.checks {
		if err := check.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(name+" unavailable"))
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
