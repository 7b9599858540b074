package metrics

import "sync/atomic"

// InMemoryRecorder implements Recorder with process-local counters.
// Useful for tests and for the metrics exposition endpoint.
type InMemoryRecorder struct {
	paymentIntents     atomic.Int64
	paymentsRecorded   atomic.Int64
	reconciliationGaps atomic.Int64
	menuItemsCreated   atomic.Int64
	menuItemsDeleted   atomic.Int64
}

// NewInMemory returns a Recorder backed by atomic counters.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

func (m *InMemoryRecorder) IncPaymentIntentCreated() { m.paymentIntents.Add(1) }
func (m *InMemoryRecorder) IncPaymentRecorded()      { m.paymentsRecorded.Add(1) }
func (m *InMemoryRecorder) IncReconciliationGap()    { m.reconciliationGaps.Add(1) }
func (m *InMemoryRecorder) IncMenuItemCreated()      { m.menuItemsCreated.Add(1) }
func (m *InMemoryRecorder) IncMenuItemDeleted()      { m.menuItemsDeleted.Add(1) }

// Snapshotter exposes a point-in-time view of collected counters.
type Snapshotter interface {
	Snapshot() Snapshot
}

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	PaymentIntents     int64 `json:"payment_intents"`
	PaymentsRecorded   int64 `json:"payments_recorded"`
	ReconciliationGaps int64 `json:"reconciliation_gaps"`
	MenuItemsCreated   int64 `json:"menu_items_created"`
	MenuItemsDeleted   int64 `json:"menu_items_deleted"`
}

// Snapshot returns the current counter values.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		PaymentIntents:     m.paymentIntents.Load(),
		PaymentsRecorded:   m.paymentsRecorded.Load(),
		ReconciliationGaps: m.reconciliationGaps.Load(),
		MenuItemsCreated:   m.menuItemsCreated.Load(),
		MenuItemsDeleted:   m.menuItemsDeleted.Load(),
	}
}
