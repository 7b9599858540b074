package handler

import (
	"fmt"
	"net/http"

	"github.com/bistroboss/bistroboss/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
// GET /metrics (admin only)
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "bistroboss_payment_intents_created_total %d\n", snap.PaymentIntents)
	writeMetric(w, "bistroboss_payments_recorded_total %d\n", snap.PaymentsRecorded)
	writeMetric(w, "bistroboss_reconciliation_gaps_total %d\n", snap.ReconciliationGaps)

	writeMetric(w, "bistroboss_menu_items_created_total %d\n", snap.MenuItemsCreated)
	writeMetric(w, "bistroboss_menu_items_deleted_total %d\n", snap.MenuItemsDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
