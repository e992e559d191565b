package param

import (
	"time"

	"github.com/google/uuid"
)

// DefaultHistoryCap is the default maximum number of retained history
// entries. Configurable via WithHistoryCap.
const DefaultHistoryCap = 100

// HistoryOp identifies what a history entry records.
type HistoryOp string

// History operations.
const (
	HistoryAdd    HistoryOp = "add"
	HistoryModify HistoryOp = "modify"
	HistoryRemove HistoryOp = "remove"
)

// HistoryEntry is one record of the constraint timeline: which constraint
// changed, how, and its snapshots before and after. Before is nil for
// adds; After is nil for removes.
type HistoryEntry struct {
	ID           string
	Timestamp    time.Time
	ConstraintID string
	Op           HistoryOp
	Before       *Constraint
	After        *Constraint
}

// appendHistory records an operation, dropping the oldest entry once the
// cap is reached.
func (e *Engine) appendHistory(op HistoryOp, constraintID string, before, after *Constraint) {
	entry := HistoryEntry{
		ID:           uuid.NewString(),
		Timestamp:    time.Now(),
		ConstraintID: constraintID,
		Op:           op,
	}
	if before != nil {
		b := before.clone()
		entry.Before = &b
	}
	if after != nil {
		a := after.clone()
		entry.After = &a
	}

	e.history = append(e.history, entry)
	if len(e.history) > e.historyCap {
		e.history = e.history[len(e.history)-e.historyCap:]
	}
}

// History returns a copy of the retained history, oldest first.
func (e *Engine) History() []HistoryEntry {
	out := make([]HistoryEntry, len(e.history))
	copy(out, e.history)
	return out
}

// CompactHistory drops the oldest half of the retained history and
// returns the number of entries removed. Unlike the automatic cap, which
// drops entries silently as new ones arrive, compaction makes the data
// loss explicit to the caller.
func (e *Engine) CompactHistory() int {
	if len(e.history) < 2 {
		return 0
	}
	drop := len(e.history) / 2
	e.history = append(e.history[:0:0], e.history[drop:]...)
	return drop
}
