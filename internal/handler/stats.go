package handler

import (
	"log/slog"
	"net/http"

	"github.com/bistroboss/bistroboss/internal/service"
)

// StatsHandler exposes the reporting engine (admin only).
type StatsHandler struct {
	svc    *service.Reporting
	logger *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(svc *service.Reporting, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, logger: logger}
}

// AdminStats handles GET /admin-stats.
func (h *StatsHandler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.AdminStats(r.Context())
	if err != nil {
		h.logger.Error("admin stats failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not compute stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// OrderStats handles GET /order-stats.
func (h *StatsHandler) OrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.OrderStats(r.Context())
	if err != nil {
		h.logger.Error("order stats failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "PERSISTENCE", "Could not compute order stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
