package vocab

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed seed.tsv
var seedTSV string

// SeedSheets parses the embedded starter sheets so a first launch has
// something to study. Blank-line-separated blocks become separate day
// sheets, run through the same parser as pasted imports.
func SeedSheets() []*DaySheet {
	var sheets []*DaySheet
	for _, block := range strings.Split(seedTSV, "\n\n") {
		entries := ParseSheet(block)
		if len(entries) == 0 {
			continue
		}
		sheets = append(sheets, NewDaySheet(fmt.Sprintf("Day %d", len(sheets)+1), entries))
	}
	return sheets
}
