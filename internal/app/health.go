package app

import (
	"context"
	"time"

	"github.com/shandysiswandi/talentflow/internal/pkg/router"
)

// HealthResponse reports reachability of the backing stores.
type HealthResponse struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

func (a *App) health(r *router.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{Database: "ok", Redis: "ok"}
	if err := a.dbConn.Ping(ctx); err != nil {
		resp.Database = "unavailable"
	}
	if err := a.cacheConn.Ping(ctx).Err(); err != nil {
		resp.Redis = "unavailable"
	}

	return resp, nil
}
