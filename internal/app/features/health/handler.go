// internal/app/features/health/handler.go
package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/TurtleTaco/lead-explorer/internal/app/system/timeouts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Handler holds the connections probed by the health check.
type Handler struct {
	PG    *pgxpool.Pool
	Redis *redis.Client
	Log   *zap.Logger
}

func NewHandler(pg *pgxpool.Pool, rdb *redis.Client, logger *zap.Logger) *Handler {
	return &Handler{PG: pg, Redis: rdb, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 {"status":"ok","database":"connected","cache":"connected"}.
// On DB failure: 503 with the error. A broken cache degrades the
// response but does not fail it.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{Status: "ok", Database: "connected"}

	if err := h.PG.Ping(ctx); err != nil {
		h.Log.Error("health check: postgres ping failed", zap.Error(err))
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Error = err.Error()
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	if h.Redis != nil {
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			h.Log.Warn("health check: redis ping failed", zap.Error(err))
			resp.Cache = "disconnected"
		} else {
			resp.Cache = "connected"
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
