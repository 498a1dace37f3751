// Package library holds the in-memory collection of day sheets and the
// active sheet position, and applies all sheet mutations.
package library

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wordsheet/wordsheet/internal/vocab"
)

// ErrNoEntries is returned when an import produces nothing usable.
var ErrNoEntries = errors.New("library: no entries to import")

// Stopper halts any in-flight audio playback. The library calls it
// synchronously before removing a sheet, since the sheet's entries may
// include the one currently sounding.
type Stopper interface {
	Stop()
}

// ConfirmFunc is the yes/no gate consulted before a destructive
// operation. It may block on user interaction.
type ConfirmFunc func(prompt string) bool

// Library is the word/sheet store. The active index always refers to a
// valid sheet while any sheets exist.
type Library struct {
	mu      sync.Mutex
	sheets  []*vocab.DaySheet
	active  int
	stopper Stopper
	confirm ConfirmFunc
}

// New creates a library over the given sheets. stopper and confirm may
// be nil, in which case deletion proceeds without stopping playback or
// asking.
func New(sheets []*vocab.DaySheet, stopper Stopper, confirm ConfirmFunc) *Library {
	return &Library{
		sheets:  sheets,
		stopper: stopper,
		confirm: confirm,
	}
}

// Len returns the number of sheets.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sheets)
}

// Sheets returns the sheet list in order.
func (l *Library) Sheets() []*vocab.DaySheet {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*vocab.DaySheet, len(l.sheets))
	copy(out, l.sheets)
	return out
}

// Sheet returns the sheet at index i.
func (l *Library) Sheet(i int) (*vocab.DaySheet, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.sheets) {
		return nil, false
	}
	return l.sheets[i], true
}

// Active returns the active sheet index, or -1 when the library is
// empty.
func (l *Library) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.sheets) == 0 {
		return -1
	}
	return l.active
}

// ActiveSheet returns the active sheet, if any.
func (l *Library) ActiveSheet() (*vocab.DaySheet, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.sheets) == 0 {
		return nil, false
	}
	return l.sheets[l.active], true
}

// SetActive selects the sheet at index i, clamped to the valid range.
func (l *Library) SetActive(i int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.sheets) == 0 {
		l.active = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(l.sheets) {
		i = len(l.sheets) - 1
	}
	l.active = i
}

// ToggleLearned flips the learned flag of the entry matching wordID on
// the sheet at sheetIndex. Misses are silently ignored.
func (l *Library) ToggleLearned(sheetIndex int, wordID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if sheetIndex < 0 || sheetIndex >= len(l.sheets) {
		return
	}
	entries := l.sheets[sheetIndex].Entries
	for i := range entries {
		if entries[i].ID == wordID {
			entries[i].Learned = !entries[i].Learned
			return
		}
	}
}

// ImportSheet appends a new day sheet built from parsed entries and
// makes it the active sheet. The sheet is named after its position
// ("Day N"). Importing nothing is an error and mutates nothing.
func (l *Library) ImportSheet(entries []vocab.WordEntry) (*vocab.DaySheet, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	sheet := vocab.NewDaySheet(fmt.Sprintf("Day %d", len(l.sheets)+1), entries)
	l.sheets = append(l.sheets, sheet)
	l.active = len(l.sheets) - 1
	return sheet, nil
}

// DeleteSheet removes the sheet matching sheetID after the confirm gate
// approves. Playback is stopped before anything is mutated. It reports
// whether a sheet was actually removed; unknown ids are ignored.
func (l *Library) DeleteSheet(sheetID string) bool {
	l.mu.Lock()
	idx := l.indexOfLocked(sheetID)
	var name string
	if idx >= 0 {
		name = l.sheets[idx].Name
	}
	l.mu.Unlock()
	if idx < 0 {
		return false
	}

	// The confirm gate can block on user input, so it runs outside the
	// lock. The index is looked up again afterwards.
	if l.confirm != nil && !l.confirm(fmt.Sprintf("Delete %s?", name)) {
		return false
	}

	if l.stopper != nil {
		l.stopper.Stop()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	idx = l.indexOfLocked(sheetID)
	if idx < 0 {
		return false
	}

	l.sheets = append(l.sheets[:idx], l.sheets[idx+1:]...)
	switch {
	case len(l.sheets) == 0:
		l.active = 0
	case idx == l.active:
		l.active = max(0, idx-1)
	case idx < l.active:
		l.active--
	}
	return true
}

// Stats summarizes the whole library for the status line.
type Stats struct {
	Sheets  int
	Words   int
	Learned int
}

// Stats totals sheets, words, and learned words across the library.
func (l *Library) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	st := Stats{Sheets: len(l.sheets)}
	for _, s := range l.sheets {
		st.Words += len(s.Entries)
		st.Learned += s.LearnedCount()
	}
	return st
}

func (l *Library) indexOfLocked(sheetID string) int {
	for i, s := range l.sheets {
		if s.ID == sheetID {
			return i
		}
	}
	return -1
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
