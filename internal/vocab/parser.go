package vocab

import (
	"strings"

	"github.com/google/uuid"
)

// Import column order. Only the headword is required; missing trailing
// columns default to empty.
const (
	colHeadword = iota
	colPos
	colSynonyms
	colTranslation
	colCount
)

// ParseSheet turns raw tab-separated text into word entries, one per
// non-blank line. Lines whose first column is empty after trimming are
// skipped without error. Input line order is preserved and duplicates
// are kept; every entry gets a fresh identity and starts unlearned.
//
// encoding/csv is deliberately not used here: it rejects ragged rows
// and bare quotes, and pasted vocabulary lists contain both.
func ParseSheet(text string) []WordEntry {
	var entries []WordEntry
	for _, line := range strings.Split(text, "\n") {
		fields := strings.SplitN(strings.TrimSuffix(line, "\r"), "\t", colCount)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if fields[colHeadword] == "" {
			continue
		}
		e := WordEntry{
			ID:       uuid.NewString(),
			Headword: fields[colHeadword],
		}
		if len(fields) > colPos {
			e.Pos = fields[colPos]
		}
		if len(fields) > colSynonyms {
			e.Synonyms = fields[colSynonyms]
		}
		if len(fields) > colTranslation {
			e.Translation = fields[colTranslation]
		}
		entries = append(entries, e)
	}
	return entries
}
