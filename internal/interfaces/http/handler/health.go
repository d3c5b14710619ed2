package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping() error
}

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	version string
	db      Pinger
	redis   *redis.Client
}

// NewHealthHandler creates a new HealthHandler. db and redis may be nil
// in stripped-down deployments; readiness then only reports what exists.
func NewHealthHandler(version string, db Pinger, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{version: version, db: db, redis: redisClient}
}

// Register registers the probe routes directly on the engine, outside
// the versioned API group.
func (h *HealthHandler) Register(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}

// Health is the liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}

// Ready is the readiness probe; it checks the backing stores
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "down"
			healthy = false
		} else {
			checks["database"] = "up"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": checks, "ready": healthy})
}
