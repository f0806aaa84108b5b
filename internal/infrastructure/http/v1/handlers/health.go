package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
)

// Version is reported by /health/info.
const Version = "1.0.0"

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	// pool is nil when serving from memory
	pool *postgres.Pool
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(pool *postgres.Pool) *HealthHandler {
	return &HealthHandler{pool: pool}
}

func (h *HealthHandler) mode() storage.Mode {
	if h.pool == nil {
		return storage.ModeMemory
	}
	return storage.ModePostgres
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (is the service ready to accept traffic?).
// GET /health/ready
//
// Memory mode is ready but reported as degraded when it replaced an
// unreachable database.
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.pool == nil {
		status := "ok"
		if storage.Degraded() {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"storage": h.mode(),
		})
		return
	}

	if err := h.pool.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"storage": h.mode(),
			"checks": map[string]string{
				"database": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"storage": h.mode(),
		"checks": map[string]string{
			"database": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	body := gin.H{
		"app":      "boxfactory",
		"version":  Version,
		"storage":  h.mode(),
		"degraded": storage.Degraded(),
	}
	if h.pool != nil {
		body["database"] = h.pool.Stats()
	}
	c.JSON(http.StatusOK, body)
}
