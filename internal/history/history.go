package history

import (
	"billcraft-cli/internal/model"
)

// MaxEntries caps the undo log; the oldest snapshot is evicted first.
const MaxEntries = 50

// Snapshot is a deep copy of the undoable fields. Title, invoice number,
// date and currency deliberately do not participate in undo/redo.
type Snapshot struct {
	Items           []model.LineItem
	TaxPercent      float64
	DiscountPercent float64
}

// Log is a bounded ordered log of snapshots plus a cursor pointing at the
// currently active one. Invariant: cursor ∈ [-1, len(entries)-1], and after
// Record the cursor always indexes the last entry.
//
// The log is owned by a single UI event loop; it is not safe for concurrent
// use and does not need to be.
type Log struct {
	entries []Snapshot
	cursor  int
}

func NewLog() *Log {
	return &Log{cursor: -1}
}

func (l *Log) Len() int    { return len(l.entries) }
func (l *Log) Cursor() int { return l.cursor }

func (l *Log) CanUndo() bool { return l.cursor > 0 }
func (l *Log) CanRedo() bool { return l.cursor < len(l.entries)-1 }

// Record appends a snapshot of the given state. Any redo branch (entries
// after the cursor) is discarded first; eviction keeps the newest
// MaxEntries.
func (l *Log) Record(items []model.LineItem, taxPercent, discountPercent float64) {
	l.entries = l.entries[:l.cursor+1]
	l.entries = append(l.entries, Snapshot{
		Items:           model.CloneItems(items),
		TaxPercent:      taxPercent,
		DiscountPercent: discountPercent,
	})
	if len(l.entries) > MaxEntries {
		// Evict oldest. Copy down instead of re-slicing so the backing
		// array doesn't grow without bound.
		n := copy(l.entries, l.entries[len(l.entries)-MaxEntries:])
		l.entries = l.entries[:n]
	}
	l.cursor = len(l.entries) - 1
}

// Undo steps the cursor back and returns the snapshot now at the cursor.
// At the start of the log it is a no-op.
func (l *Log) Undo() (Snapshot, bool) {
	if l.cursor <= 0 {
		return Snapshot{}, false
	}
	l.cursor--
	return l.current(), true
}

// Redo steps the cursor forward; at the end of the log it is a no-op.
func (l *Log) Redo() (Snapshot, bool) {
	if l.cursor >= len(l.entries)-1 {
		return Snapshot{}, false
	}
	l.cursor++
	return l.current(), true
}

func (l *Log) current() Snapshot {
	s := l.entries[l.cursor]
	// Hand out a copy; callers install the snapshot as live state and may
	// mutate it afterwards.
	return Snapshot{
		Items:           model.CloneItems(s.Items),
		TaxPercent:      s.TaxPercent,
		DiscountPercent: s.DiscountPercent,
	}
}
