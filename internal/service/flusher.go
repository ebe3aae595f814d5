package service

import (
	"context"
	"sync"
	"time"

	"github.com/rizkylsmp/portfolio-server/internal/models"
	"go.uber.org/zap"
)

// SnapshotSink receives the latest portfolio snapshot on each flush.
type SnapshotSink interface {
	Persist(ctx context.Context, snap *models.Snapshot) error
}

// FlushScheduler triggers a deferred persistence write. The content store
// calls it after every mutation.
type FlushScheduler interface {
	Schedule()
}

// Flusher debounces persistence: rapid successive edits collapse into one
// write after a quiet period. Schedule cancels and restarts the pending timer,
// so at most one timer exists and only the newest accumulated state ever
// reaches the sink. The snapshot is built when the timer fires, not when the
// flush was scheduled.
type Flusher struct {
	delay  time.Duration
	sink   SnapshotSink
	source func() *models.Snapshot
	log    *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewFlusher constructs a Flusher. source must return the snapshot to persist
// and is called on the timer goroutine.
func NewFlusher(delay time.Duration, sink SnapshotSink, source func() *models.Snapshot, log *zap.Logger) *Flusher {
	return &Flusher{delay: delay, sink: sink, source: source, log: log}
}

// Schedule (re)starts the debounce timer.
func (f *Flusher) Schedule() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.delay, f.flush)
}

// Cancel drops any pending flush without writing.
func (f *Flusher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}

// FlushNow cancels the pending timer and writes immediately.
func (f *Flusher) FlushNow() {
	f.Cancel()
	f.flush()
}

// flush sends the current snapshot to the sink. Failures are logged, never
// surfaced: the in-memory state stays authoritative either way.
func (f *Flusher) flush() {
	if err := f.sink.Persist(context.Background(), f.source()); err != nil {
		f.log.Error("failed to persist portfolio data", zap.Error(err))
	}
}
