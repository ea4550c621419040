// Package handlers holds the operational HTTP endpoints that sit outside the
// authenticated API surface.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const probeTimeout = 3 * time.Second

// HealthHandler answers the liveness probe. It carries no dependencies on
// purpose: a hung database must not make the orchestrator restart the process.
type HealthHandler struct {
	started time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}

// HealthDependenciesHandler answers the readiness probe by pinging MongoDB
// and Redis. Either failing yields 503 so the instance is pulled from
// rotation until its backends recover.
type HealthDependenciesHandler struct {
	db  *mongo.Database
	rdb *redis.Client
}

func NewHealthDependenciesHandler(db *mongo.Database, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{db: db, rdb: rdb}
}

type probeResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
	defer cancel()

	checks := map[string]func(context.Context) error{
		"mongodb": func(ctx context.Context) error { return h.db.Client().Ping(ctx, nil) },
		"redis":   func(ctx context.Context) error { return h.rdb.Ping(ctx).Err() },
	}

	results := make(map[string]probeResult, len(checks))
	ready := true
	for name, check := range checks {
		if err := check(ctx); err != nil {
			results[name] = probeResult{Status: "unhealthy", Error: err.Error()}
			ready = false
			continue
		}
		results[name] = probeResult{Status: "ok"}
	}

	status, code := "ok", http.StatusOK
	if !ready {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]any{
		"status":       status,
		"dependencies": results,
	})
}
