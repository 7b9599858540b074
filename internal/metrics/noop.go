package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncPaymentIntentCreated is a no-op.
func (n *NoopRecorder) IncPaymentIntentCreated() {}

// IncPaymentRecorded is a no-op.
func (n *NoopRecorder) IncPaymentRecorded() {}

// IncReconciliationGap is a no-op.
func (n *NoopRecorder) IncReconciliationGap() {}

// IncMenuItemCreated is a no-op.
func (n *NoopRecorder) IncMenuItemCreated() {}

// IncMenuItemDeleted is a no-op.
func (n *NoopRecorder) IncMenuItemDeleted() {}
