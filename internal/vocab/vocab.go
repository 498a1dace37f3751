// Package vocab defines the word entry and day sheet domain types and
// the tab-separated import format used to create new sheets.
package vocab

import (
	"strings"

	"github.com/google/uuid"
)

// WordEntry is a single vocabulary item on a day sheet. Everything but
// the Learned flag is immutable after creation.
type WordEntry struct {
	ID          string
	Headword    string
	Pos         string
	Synonyms    string
	Translation string
	Learned     bool
}

// DaySheet is a named, ordered list of word entries. Entry order is
// fixed at import time and defines both display and playback order.
type DaySheet struct {
	ID      string
	Name    string
	Entries []WordEntry
}

// NewDaySheet creates a sheet with a fresh identity.
func NewDaySheet(name string, entries []WordEntry) *DaySheet {
	return &DaySheet{
		ID:      uuid.NewString(),
		Name:    name,
		Entries: entries,
	}
}

// LearnedCount returns how many entries on the sheet are marked learned.
func (s *DaySheet) LearnedCount() int {
	var n int
	for _, e := range s.Entries {
		if e.Learned {
			n++
		}
	}
	return n
}

// Progress returns the learned ratio in [0, 1]. An empty sheet counts
// as fully learned so progress displays don't divide by zero.
func (s *DaySheet) Progress() float64 {
	if len(s.Entries) == 0 {
		return 1
	}
	return float64(s.LearnedCount()) / float64(len(s.Entries))
}

// SpeakText builds the phrase sent to the speech endpoint for an entry:
// the headword, followed by its synonyms when present.
func SpeakText(e WordEntry) string {
	if strings.TrimSpace(e.Synonyms) == "" {
		return e.Headword
	}
	return e.Headword + ", " + e.Synonyms
}
