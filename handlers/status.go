package handlers

import (
	"net/http"
	"time"

	"github.com/akinalp/filo/pkg"
)

// StatusHandler, auth gerektirmeyen liveness endpoint'lerini yönetir.
// Load balancer health check'leri buraya vurur.
type StatusHandler struct {
	startedAt time.Time
}

// NewStatusHandler, constructor. startedAt main'den enjekte edilir —
// uptime hesabı process başlangıcına göre yapılır.
func NewStatusHandler(startedAt time.Time) *StatusHandler {
	return &StatusHandler{startedAt: startedAt}
}

// GetStatus godoc
// GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, map[string]int{"status": 200})
}

// GetUptime godoc
// GET /api/uptime
func (h *StatusHandler) GetUptime(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startedAt)
	pkg.JSON(w, http.StatusOK, map[string]any{
		"uptime_seconds": int64(uptime.Seconds()),
		"started_at":     h.startedAt.UTC().Format(time.RFC3339),
	})
}
