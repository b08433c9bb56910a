package storage

import "github.com/neuroplay/arena/internal/telemetry"

// Sink accepts finished session summaries. *Store is the canonical
// implementation; PendingQueue wraps any Sink with local retry.
type Sink interface {
	Submit(summary telemetry.SessionSummary) error
}
