package http

import (
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// HealthHandler reports liveness of the service and its backing stores.
type HealthHandler struct {
	db    *sql.DB
	redis *redis.Client
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Check handles GET /healthz.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}
	healthy := true

	if err := h.db.PingContext(r.Context()); err != nil {
		status["database"] = "unreachable"
		healthy = false
	}
	if err := h.redis.Ping(r.Context()).Err(); err != nil {
		status["redis"] = "unreachable"
		healthy = false
	}

	if !healthy {
		writeJSON(w, http.StatusServiceUnavailable, envelope{Success: false, Data: status, Message: "degraded"})
		return
	}
	respondData(w, http.StatusOK, status)
}
