package library

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/wordsheet/wordsheet/internal/vocab"
)

// recordingStopper records whether and when Stop was called.
type recordingStopper struct {
	calls   int
	onStop  func()
	stopped bool
}

func (s *recordingStopper) Stop() {
	s.calls++
	s.stopped = true
	if s.onStop != nil {
		s.onStop()
	}
}

func alwaysYes(string) bool { return true }
func alwaysNo(string) bool  { return false }

func testSheets(n int) []*vocab.DaySheet {
	sheets := make([]*vocab.DaySheet, 0, n)
	for i := 0; i < n; i++ {
		entries := vocab.ParseSheet(fmt.Sprintf("word%d-a\tn.\nword%d-b\tv.\nword%d-c", i, i, i))
		sheets = append(sheets, vocab.NewDaySheet(fmt.Sprintf("Day %d", i+1), entries))
	}
	return sheets
}

func TestToggleLearned(t *testing.T) {
	lib := New(testSheets(1), nil, nil)
	sheet, _ := lib.Sheet(0)
	id := sheet.Entries[1].ID

	lib.ToggleLearned(0, id)
	if !sheet.Entries[1].Learned {
		t.Error("entry should be learned after one toggle")
	}
	if sheet.Entries[0].Learned || sheet.Entries[2].Learned {
		t.Error("toggle must touch exactly one entry")
	}

	lib.ToggleLearned(0, id)
	if sheet.Entries[1].Learned {
		t.Error("toggling twice must be a no-op overall")
	}
}

func TestToggleLearnedMisses(t *testing.T) {
	lib := New(testSheets(1), nil, nil)

	// None of these should panic or change anything.
	lib.ToggleLearned(0, "no-such-id")
	lib.ToggleLearned(5, "anything")
	lib.ToggleLearned(-1, "anything")

	sheet, _ := lib.Sheet(0)
	if sheet.LearnedCount() != 0 {
		t.Error("lookup misses must not mutate state")
	}
}

func TestLearnedCountAfterToggleSet(t *testing.T) {
	lib := New(testSheets(1), nil, nil)
	sheet, _ := lib.Sheet(0)

	// Toggle a set of ids in shuffled order, some twice.
	toggled := map[string]int{
		sheet.Entries[0].ID: 1,
		sheet.Entries[1].ID: 2,
		sheet.Entries[2].ID: 1,
	}
	var calls []string
	for id, n := range toggled {
		for i := 0; i < n; i++ {
			calls = append(calls, id)
		}
	}
	rand.Shuffle(len(calls), func(i, j int) { calls[i], calls[j] = calls[j], calls[i] })
	for _, id := range calls {
		lib.ToggleLearned(0, id)
	}

	wantLearned := 0
	for _, n := range toggled {
		if n%2 == 1 {
			wantLearned++
		}
	}
	if got := sheet.LearnedCount(); got != wantLearned {
		t.Errorf("LearnedCount() = %d, want %d", got, wantLearned)
	}
}

func TestImportSheet(t *testing.T) {
	lib := New(testSheets(2), nil, nil)
	entries := vocab.ParseSheet("resilience\tn.\telasticity, recovery\t弹性；恢复力\nnew\tadj.")

	sheet, err := lib.ImportSheet(entries)
	if err != nil {
		t.Fatalf("ImportSheet() error: %v", err)
	}
	if sheet.Name != "Day 3" {
		t.Errorf("sheet name = %q, want %q", sheet.Name, "Day 3")
	}
	if lib.Len() != 3 {
		t.Errorf("Len() = %d, want 3", lib.Len())
	}
	if lib.Active() != 2 {
		t.Errorf("Active() = %d, want 2 (newly imported sheet)", lib.Active())
	}
}

func TestImportSheetEmpty(t *testing.T) {
	lib := New(testSheets(1), nil, nil)

	_, err := lib.ImportSheet(nil)
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("ImportSheet(nil) error = %v, want ErrNoEntries", err)
	}
	if lib.Len() != 1 {
		t.Error("failed import must leave the library unchanged")
	}

	_, err = lib.ImportSheet(vocab.ParseSheet("\t\t\n   \n"))
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("all-blank import error = %v, want ErrNoEntries", err)
	}
	if lib.Len() != 1 {
		t.Error("all-blank import must leave the library unchanged")
	}
}

func TestDeleteSheetActiveRecompute(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		deleteIdx  int
		wantActive int
		wantLen    int
	}{
		{"delete active in middle", 1, 1, 0, 2},
		{"delete active at head", 0, 0, 0, 2},
		{"delete before active", 2, 0, 1, 2},
		{"delete after active", 0, 2, 0, 2},
		{"delete active at tail", 2, 2, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib := New(testSheets(3), nil, alwaysYes)
			lib.SetActive(tt.active)

			sheet, _ := lib.Sheet(tt.deleteIdx)
			if !lib.DeleteSheet(sheet.ID) {
				t.Fatal("DeleteSheet() = false, want true")
			}
			if lib.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", lib.Len(), tt.wantLen)
			}
			if lib.Active() != tt.wantActive {
				t.Errorf("Active() = %d, want %d", lib.Active(), tt.wantActive)
			}
		})
	}
}

func TestDeleteSheetToEmpty(t *testing.T) {
	lib := New(testSheets(1), nil, alwaysYes)
	sheet, _ := lib.Sheet(0)

	if !lib.DeleteSheet(sheet.ID) {
		t.Fatal("DeleteSheet() = false, want true")
	}
	if lib.Len() != 0 {
		t.Errorf("Len() = %d, want 0", lib.Len())
	}
	if lib.Active() != -1 {
		t.Errorf("Active() = %d, want -1 for empty library", lib.Active())
	}
	if _, ok := lib.ActiveSheet(); ok {
		t.Error("ActiveSheet() must report no sheet when empty")
	}
}

func TestDeleteSheetRandomizedInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	lib := New(testSheets(8), nil, alwaysYes)

	for lib.Len() > 0 {
		lib.SetActive(r.Intn(lib.Len()))
		victim := r.Intn(lib.Len())
		sheet, _ := lib.Sheet(victim)
		lib.DeleteSheet(sheet.ID)

		active := lib.Active()
		switch n := lib.Len(); {
		case n == 0:
			if active != -1 {
				t.Fatalf("empty library Active() = %d, want -1", active)
			}
		case active < 0 || active >= n:
			t.Fatalf("Active() = %d out of range [0,%d)", active, n)
		}
	}
}

func TestDeleteSheetDeclined(t *testing.T) {
	stopper := &recordingStopper{}
	lib := New(testSheets(2), stopper, alwaysNo)
	sheet, _ := lib.Sheet(0)

	if lib.DeleteSheet(sheet.ID) {
		t.Fatal("DeleteSheet() = true despite declined confirmation")
	}
	if lib.Len() != 2 {
		t.Error("declined delete must not mutate the library")
	}
	if stopper.calls != 0 {
		t.Error("declined delete must not stop playback")
	}
}

func TestDeleteSheetStopsPlaybackBeforeMutation(t *testing.T) {
	stopper := &recordingStopper{}
	lib := New(testSheets(2), stopper, alwaysYes)

	// Observe the library length at the moment Stop is called; the
	// sheet must still be present.
	var lenAtStop int
	stopper.onStop = func() { lenAtStop = lib.Len() }

	sheet, _ := lib.Sheet(1)
	lib.DeleteSheet(sheet.ID)

	if stopper.calls != 1 {
		t.Fatalf("Stop called %d times, want 1", stopper.calls)
	}
	if lenAtStop != 2 {
		t.Errorf("library mutated before Stop: len was %d, want 2", lenAtStop)
	}
}

func TestDeleteSheetUnknownID(t *testing.T) {
	stopper := &recordingStopper{}
	lib := New(testSheets(2), stopper, alwaysYes)

	if lib.DeleteSheet("no-such-sheet") {
		t.Fatal("DeleteSheet() = true for unknown id")
	}
	if lib.Len() != 2 || stopper.calls != 0 {
		t.Error("unknown id must be silently ignored")
	}
}

func TestStats(t *testing.T) {
	lib := New(testSheets(2), nil, nil)
	sheet, _ := lib.Sheet(0)
	lib.ToggleLearned(0, sheet.Entries[0].ID)
	lib.ToggleLearned(0, sheet.Entries[2].ID)

	st := lib.Stats()
	if st.Sheets != 2 || st.Words != 6 || st.Learned != 2 {
		t.Errorf("Stats() = %+v, want 2 sheets, 6 words, 2 learned", st)
	}

	empty := New(nil, nil, nil)
	if st := empty.Stats(); st != (Stats{}) {
		t.Errorf("empty Stats() = %+v, want zero value", st)
	}
}

func TestSetActiveClamps(t *testing.T) {
	lib := New(testSheets(3), nil, nil)

	lib.SetActive(99)
	if lib.Active() != 2 {
		t.Errorf("Active() = %d, want 2 after over-range SetActive", lib.Active())
	}
	lib.SetActive(-4)
	if lib.Active() != 0 {
		t.Errorf("Active() = %d, want 0 after under-range SetActive", lib.Active())
	}
}
