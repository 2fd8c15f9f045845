package aggregate

import (
	"time"

	"sra/internal/domain"
)

// SpecTimer records per-spec start times keyed by spec id. The table is
// owned by one aggregator and discarded with it; entries are removed as
// their spec completes so long runs don't accumulate stale ids.
type SpecTimer struct {
	starts map[string]time.Time
	now    func() time.Time
}

// NewSpecTimer creates an empty SpecTimer.
func NewSpecTimer() *SpecTimer {
	return &SpecTimer{
		starts: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Start records "now" for id, overwriting any stale entry for a reused
// id.
func (t *SpecTimer) Start(id string) {
	t.starts[id] = t.now()
}

// Stop returns the elapsed milliseconds since Start(id), or nil when no
// start was recorded or the spec never ran (pending/skipped). A clock
// that stepped backwards yields 0, never a negative duration.
func (t *SpecTimer) Stop(id string, status domain.Status) *int64 {
	started, ok := t.starts[id]
	if ok {
		delete(t.starts, id)
	}
	if !ok || status == domain.StatusPending || status == domain.StatusSkipped {
		return nil
	}
	ms := t.now().Sub(started).Milliseconds()
	if ms < 0 {
		ms = 0
	}
	return &ms
}
