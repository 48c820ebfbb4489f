// Package history keeps the undo stack of an editor. Entries are snapshots
// of the whole content, taken after each change, with the selection as it
// was at that point.
package history

import (
	"errors"
	"sync"
	"time"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// DefaultMaxEntries is used when NewHistory is given no positive limit.
const DefaultMaxEntries = 100

// Entry is the state of the editor at one point in time.
type Entry struct {
	HTML string

	// Selected tells whether Start and End hold a selection.
	Selected   bool
	Start, End Bookmark

	Timestamp time.Time
}

// History is a list of entries with a cursor on the current one. Undo and
// Redo move the cursor; Push drops everything after it.
type History struct {
	mu sync.Mutex

	entries []*Entry
	pos     int

	maxEntries int
}

// NewHistory creates an empty history keeping at most maxEntries entries.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{pos: -1, maxEntries: maxEntries}
}

// Push records e as the current state. It returns false, and records
// nothing, when the content did not change since the current entry.
func (h *History) Push(e *Entry) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pos >= 0 && h.entries[h.pos].HTML == e.HTML {
		return false
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	h.entries = append(h.entries[:h.pos+1], e)

	// Enforce max entries
	if excess := len(h.entries) - h.maxEntries; excess > 0 {
		h.entries = h.entries[excess:]
	}
	h.pos = len(h.entries) - 1
	return true
}

// Undo steps back and returns the entry to restore.
func (h *History) Undo() (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pos <= 0 {
		return nil, ErrNothingToUndo
	}
	h.pos--
	return h.entries[h.pos], nil
}

// Redo steps forward and returns the entry to restore.
func (h *History) Redo() (*Entry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pos >= len(h.entries)-1 {
		return nil, ErrNothingToRedo
	}
	h.pos++
	return h.entries[h.pos], nil
}

// Current returns the current entry, or nil for an empty history.
func (h *History) Current() *Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.pos < 0 {
		return nil
	}
	return h.entries[h.pos]
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pos < len(h.entries)-1
}

// Len returns the number of entries kept.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear removes all entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = nil
	h.pos = -1
}
