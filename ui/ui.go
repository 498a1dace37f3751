// Package ui provides the terminal interface for wordsheet: day-sheet
// tabs, the word list, the import overlay, and the delete confirmation
// gate. All playback logic lives in internal/playback; the ui only
// calls into it and renders what it reports.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	runewidth "github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/wordsheet/wordsheet/internal/library"
	"github.com/wordsheet/wordsheet/internal/playback"
	"github.com/wordsheet/wordsheet/internal/vocab"
	"github.com/wordsheet/wordsheet/internal/watch"
)

// statusTimeout is how long transient status messages stay visible.
const statusTimeout = 3 * time.Second

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayImport
	overlayConfirm
)

type (
	playbackMsg      playback.Event
	watchImportMsg   []vocab.WordEntry
	sheetDeletedMsg  struct{ deleted bool }
	statusTimeoutMsg struct{}
)

type model struct {
	cfg     Config
	lib     *library.Library
	ctrl    *playback.Controller
	watcher *watch.Watcher

	confirmCh      chan confirmRequest
	pendingConfirm *confirmRequest

	width  int
	height int

	cursor  int
	overlay overlayKind

	importBox   textarea.Model
	filterInput textinput.Model
	filtering   bool // the filter input has focus
	filter      string

	status  string
	alert   bool
	keys    keyMap
	help    help.Model
}

// NewProgram builds the Bubble Tea program. The library is constructed
// here so its confirm gate can be wired to the confirm overlay.
func NewProgram(cfg Config, sheets []*vocab.DaySheet, ctrl *playback.Controller, watcher *watch.Watcher) *tea.Program {
	log.Debug("starting wordsheet", "sheets", len(sheets), "language", cfg.Language, "watch", cfg.WatchDir)

	confirmCh := make(chan confirmRequest)
	m := &model{
		cfg:         cfg,
		lib:         library.New(sheets, ctrl, confirmViaOverlay(confirmCh)),
		ctrl:        ctrl,
		watcher:     watcher,
		confirmCh:   confirmCh,
		importBox:   newImportBox(),
		filterInput: newFilterInput(),
		keys:        defaultKeyMap(),
		help:        help.New(),
	}

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(m, opts...)
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.CharLimit = 64
	return ti
}

func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForPlayback(m.ctrl.Events()),
		waitForConfirm(m.confirmCh),
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForWatch(m.watcher.Imports()))
	}
	return tea.Batch(cmds...)
}

func waitForPlayback(ch <-chan playback.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return playbackMsg(ev)
	}
}

func waitForWatch(ch <-chan []vocab.WordEntry) tea.Cmd {
	return func() tea.Msg {
		entries, ok := <-ch
		if !ok {
			return nil
		}
		return watchImportMsg(entries)
	}
}

// deleteSheetCmd runs the delete off the update loop: the library's
// confirm gate blocks until the overlay answers.
func deleteSheetCmd(lib *library.Library, sheetID string) tea.Cmd {
	return func() tea.Msg {
		return sheetDeletedMsg{deleted: lib.DeleteSheet(sheetID)}
	}
}

func statusTimeoutCmd() tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return statusTimeoutMsg{}
	})
}

func (m *model) setStatus(s string) {
	m.status = s
	m.alert = false
}

func (m *model) setAlert(s string) {
	m.status = s
	m.alert = true
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.importBox.SetWidth(max(20, msg.Width-12))
		m.importBox.SetHeight(max(3, msg.Height/3))
		return m, nil

	case playbackMsg:
		return m.handlePlayback(playback.Event(msg))

	case confirmRequestMsg:
		req := confirmRequest(msg)
		m.pendingConfirm = &req
		m.overlay = overlayConfirm
		return m, waitForConfirm(m.confirmCh)

	case watchImportMsg:
		cmds := []tea.Cmd{waitForWatch(m.watcher.Imports())}
		sheet, err := m.lib.ImportSheet(msg)
		if err != nil {
			m.setAlert("watched file had no valid entries")
		} else {
			m.cursor = 0
			m.setStatus("imported " + sheet.Name + " from watch dir")
		}
		return m, tea.Batch(append(cmds, statusTimeoutCmd())...)

	case sheetDeletedMsg:
		if msg.deleted {
			m.cursor = 0
			m.setStatus("sheet deleted")
		}
		return m, statusTimeoutCmd()

	case statusTimeoutMsg:
		m.status = ""
		m.alert = false
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handlePlayback(ev playback.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{waitForPlayback(m.ctrl.Events())}

	switch ev.Kind {
	case playback.EventEntryActive:
		// Scroll-into-view hint: move the cursor to the entry now
		// sounding. Purely presentational.
		if sheet, ok := m.lib.ActiveSheet(); ok {
			for i, e := range sheet.Entries {
				if e.ID == ev.Entry.ID {
					m.cursor = i
					break
				}
			}
		}
	case playback.EventStopped:
		if ev.Reason == playback.ReasonComplete {
			m.setStatus("playback finished")
			cmds = append(cmds, statusTimeoutCmd())
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays capture all input first.
	switch m.overlay {
	case overlayImport:
		return m.updateImport(msg)
	case overlayConfirm:
		switch msg.String() {
		case "y", "Y":
			m.answerConfirm(true)
			m.overlay = overlayNone
		case "n", "N", "esc":
			m.answerConfirm(false)
			m.overlay = overlayNone
		}
		return m, nil
	}

	// The filter input, while focused, also captures input.
	if m.filtering {
		switch msg.String() {
		case "esc":
			m.filtering = false
			m.filter = ""
			m.filterInput.Reset()
			m.cursor = 0
			return m, nil
		case "enter":
			m.filtering = false
			m.filter = m.filterInput.Value()
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.filter = m.filterInput.Value()
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Stop()
		if m.watcher != nil {
			_ = m.watcher.Close()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visibleEntries())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevSheet):
		m.lib.SetActive(m.lib.Active() - 1)
		m.resetView()
		return m, nil

	case key.Matches(msg, m.keys.NextSheet):
		m.lib.SetActive(m.lib.Active() + 1)
		m.resetView()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if e, ok := m.entryUnderCursor(); ok {
			m.lib.ToggleLearned(m.lib.Active(), e.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Play):
		if e, ok := m.entryUnderCursor(); ok {
			m.ctrl.PlayOne(e)
		}
		return m, nil

	case key.Matches(msg, m.keys.PlayAll):
		if sheet, ok := m.lib.ActiveSheet(); ok {
			m.ctrl.PlayAll(sheet.Entries)
		}
		return m, nil

	case key.Matches(msg, m.keys.Stop):
		m.ctrl.Stop()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if sheet, ok := m.lib.ActiveSheet(); ok {
			return m, deleteSheetCmd(m.lib, sheet.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Import):
		m.overlay = overlayImport
		m.importBox.Reset()
		return m, m.importBox.Focus()

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.Reset()
		return m, m.filterInput.Focus()
	}

	return m, nil
}

func (m *model) resetView() {
	m.cursor = 0
	m.filter = ""
	m.filterInput.Reset()
	m.filtering = false
}

// visibleEntries returns the active sheet's entries, fuzzy-filtered by
// the current filter query.
func (m *model) visibleEntries() []vocab.WordEntry {
	sheet, ok := m.lib.ActiveSheet()
	if !ok {
		return nil
	}
	if m.filter == "" {
		return sheet.Entries
	}

	haystack := make([]string, len(sheet.Entries))
	for i, e := range sheet.Entries {
		haystack[i] = e.Headword + " " + e.Synonyms + " " + e.Translation
	}
	matches := fuzzy.Find(m.filter, haystack)
	out := make([]vocab.WordEntry, 0, len(matches))
	for _, match := range matches {
		out = append(out, sheet.Entries[match.Index])
	}
	return out
}

func (m *model) entryUnderCursor() (vocab.WordEntry, bool) {
	entries := m.visibleEntries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return vocab.WordEntry{}, false
	}
	return entries[m.cursor], true
}

func (m *model) View() string {
	if m.width == 0 {
		return ""
	}

	switch m.overlay {
	case overlayImport:
		return m.importView()
	case overlayConfirm:
		return m.confirmView()
	}

	var b strings.Builder
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m *model) tabsView() string {
	sheets := m.lib.Sheets()
	if len(sheets) == 0 {
		return dimStyle.Render(" no sheets — press i to import one")
	}

	active := m.lib.Active()
	tabs := make([]string, len(sheets))
	for i, s := range sheets {
		label := fmt.Sprintf("%s %d/%d", s.Name, s.LearnedCount(), len(s.Entries))
		if i == active {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return strings.Join(tabs, " ")
}

func (m *model) listView() string {
	entries := m.visibleEntries()
	if len(entries) == 0 {
		if m.filter != "" {
			return dimStyle.Render(" nothing matches " + m.filter)
		}
		return dimStyle.Render(" this sheet is empty")
	}

	sounding, soundingOK := m.ctrl.Sounding()

	// Keep the cursor row inside the viewport.
	rows := max(1, m.height-6)
	offset := 0
	if m.cursor >= rows {
		offset = m.cursor - rows + 1
	}

	var b strings.Builder
	for i := offset; i < len(entries) && i < offset+rows; i++ {
		e := entries[i]

		mark := "  "
		if e.Learned {
			mark = learnedStyle.Render("✓ ")
		}
		note := "  "
		if soundingOK && sounding.ID == e.ID {
			note = soundingStyle.Render("♪ ")
		}

		head := runewidth.Truncate(e.Headword, 24, "…")
		row := fmt.Sprintf("%s%s%-24s %s", note, mark, head, posStyle.Render(e.Pos))
		if e.Synonyms != "" {
			row += "  " + dimStyle.Render(runewidth.Truncate(e.Synonyms, 32, "…"))
		}
		if e.Translation != "" {
			row += "  " + runewidth.Truncate(e.Translation, 24, "…")
		}

		if i == m.cursor {
			row = cursorRowStyle.Render("> ") + row
		} else {
			row = "  " + row
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m *model) statusView() string {
	if m.filtering {
		return m.filterInput.View()
	}
	if m.status != "" {
		if m.alert {
			return alertStyle.Render(m.status)
		}
		return statusBarStyle.Render(m.status)
	}
	if m.ctrl.SequenceRunning() {
		return soundingStyle.Render("♪ playing all, a or s stops") + "  " + m.help.View(m.keys)
	}
	stats := m.lib.Stats()
	learned := dimStyle.Render(fmt.Sprintf("%d/%d learned", stats.Learned, stats.Words))
	return learned + "  " + m.help.View(m.keys)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
