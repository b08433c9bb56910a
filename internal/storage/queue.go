package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/neuroplay/arena/internal/telemetry"
)

// ErrQueued is returned by PendingQueue.Submit when the sink was
// unavailable and the summary was cached locally instead. Callers can
// treat it as a soft failure.
var ErrQueued = errors.New("storage: sink unavailable, summary queued locally")

// DefaultPendingLimit bounds the number of cached summaries.
const DefaultPendingLimit = 64

// PendingQueue wraps a Sink with a local spill cache. A summary that
// cannot be delivered is written to the spill directory (or kept in
// memory when no directory is configured) and retried by Flush. The
// cache is a bounded FIFO: once full, the oldest entry is evicted.
type PendingQueue struct {
	sink   Sink
	dir    string
	limit  int
	mem    []telemetry.SessionSummary
	logger *log.Logger
}

// NewPendingQueue builds a queue in front of sink. dir may be empty, in
// which case undelivered summaries survive only for the process lifetime.
// A nil sink means every Submit goes straight to the cache.
func NewPendingQueue(sink Sink, dir string, limit int, logger *log.Logger) *PendingQueue {
	if limit <= 0 {
		limit = DefaultPendingLimit
	}
	if logger == nil {
		logger = log.Default()
	}
	return &PendingQueue{sink: sink, dir: dir, limit: limit, logger: logger}
}

// Submit attempts delivery and falls back to the local cache. It returns
// nil on delivery, ErrQueued when the summary was cached, or a hard error
// when both paths failed.
func (q *PendingQueue) Submit(sum telemetry.SessionSummary) error {
	if q.sink != nil {
		err := q.sink.Submit(sum)
		if err == nil {
			return nil
		}
		q.logger.Warn("session submit failed, caching locally", "session", sum.SessionID, "err", err)
	}

	if err := q.cache(sum); err != nil {
		return err
	}
	return ErrQueued
}

// Flush retries every cached summary against the sink. Entries that
// deliver are removed; the rest stay cached. Returns the number delivered.
func (q *PendingQueue) Flush() (int, error) {
	if q.sink == nil {
		return 0, nil
	}

	delivered := 0

	var kept []telemetry.SessionSummary
	for _, sum := range q.mem {
		if err := q.sink.Submit(sum); err != nil {
			kept = append(kept, sum)
			continue
		}
		delivered++
	}
	q.mem = kept

	if q.dir == "" {
		return delivered, nil
	}

	paths, err := q.spillFiles()
	if err != nil {
		return delivered, err
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			q.logger.Warn("cannot read cached session", "path", path, "err", err)
			continue
		}
		var sum telemetry.SessionSummary
		if err := json.Unmarshal(data, &sum); err != nil {
			// Corrupt entry, drop it rather than retry forever.
			q.logger.Warn("dropping corrupt cached session", "path", path, "err", err)
			os.Remove(path)
			continue
		}
		if err := q.sink.Submit(sum); err != nil {
			continue
		}
		os.Remove(path)
		delivered++
	}

	if delivered > 0 {
		q.logger.Info("flushed cached sessions", "delivered", delivered)
	}
	return delivered, nil
}

// Pending reports how many summaries are waiting in the cache.
func (q *PendingQueue) Pending() int {
	n := len(q.mem)
	if q.dir != "" {
		if paths, err := q.spillFiles(); err == nil {
			n += len(paths)
		}
	}
	return n
}

func (q *PendingQueue) cache(sum telemetry.SessionSummary) error {
	if q.dir == "" {
		q.mem = append(q.mem, sum)
		if len(q.mem) > q.limit {
			q.mem = q.mem[len(q.mem)-q.limit:]
		}
		return nil
	}

	if err := os.MkdirAll(q.dir, 0o755); err != nil {
		return fmt.Errorf("storage: cannot create pending directory: %w", err)
	}

	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("storage: cannot encode pending summary: %w", err)
	}

	path := filepath.Join(q.dir, sum.SessionID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("storage: cannot write pending summary: %w", err)
	}

	return q.evictOver()
}

// evictOver drops the oldest spill files beyond the limit.
func (q *PendingQueue) evictOver() error {
	paths, err := q.spillFiles()
	if err != nil {
		return err
	}
	for len(paths) > q.limit {
		os.Remove(paths[0])
		paths = paths[1:]
	}
	return nil
}

// spillFiles lists cached summary files, oldest first.
func (q *PendingQueue) spillFiles() ([]string, error) {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: cannot list pending directory: %w", err)
	}

	type stamped struct {
		path string
		mod  int64
	}
	var files []stamped
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, stamped{
			path: filepath.Join(q.dir, e.Name()),
			mod:  info.ModTime().UnixNano(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].mod < files[j].mod })

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}
