package handler

import (
	"context"
	"time"

	"github.com/donorlink/backend/internal/infrastructure/config"
	"github.com/donorlink/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// pingTimeout bounds the live database check on /api/db-status
const pingTimeout = 2 * time.Second

// HealthResponse is the body of the health endpoints
type HealthResponse struct {
	Status string `json:"status"`
	Mode   string `json:"mode"`
}

// SupabaseStatus reports the hosted backend's last connectivity probe
type SupabaseStatus struct {
	Enabled   bool       `json:"enabled"`
	Connected bool       `json:"connected"`
	Error     string     `json:"error,omitempty"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
}

// DatabaseStatus reports a live ping of the relational backend
type DatabaseStatus struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

// DBStatusResponse is the body of /api/db-status
type DBStatusResponse struct {
	Mode     string          `json:"mode"`
	Supabase SupabaseStatus  `json:"supabase"`
	Database *DatabaseStatus `json:"database,omitempty"`
}

// SystemHandler serves health and backend status
type SystemHandler struct {
	BaseHandler
	store persistence.Store
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(store persistence.Store) *SystemHandler {
	return &SystemHandler{store: store}
}

// Health godoc
// @Summary      Liveness check
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{Status: "ok", Mode: string(h.store.Mode())})
}

// DBStatus godoc
// @Summary      Persistence backend status
// @Tags         system
// @Produce      json
// @Success      200 {object} DBStatusResponse
// @Router       /db-status [get]
func (h *SystemHandler) DBStatus(c *gin.Context) {
	mode := h.store.Mode()
	resp := DBStatusResponse{
		Mode:     string(mode),
		Supabase: SupabaseStatus{Enabled: mode == config.StoreModeSupabase},
	}

	if prober, ok := h.store.(persistence.Prober); ok {
		if probe, done := prober.LastProbe(); done {
			checkedAt := probe.CheckedAt
			resp.Supabase.Connected = probe.Connected
			resp.Supabase.Error = probe.Error
			resp.Supabase.CheckedAt = &checkedAt
		}
	}

	if mode == config.StoreModeSQL {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		status := &DatabaseStatus{Connected: true}
		if err := h.store.Ping(ctx); err != nil {
			status.Connected = false
			if gin.Mode() != gin.ReleaseMode {
				status.Error = err.Error()
			}
		}
		resp.Database = status
	}

	h.Success(c, resp)
}
