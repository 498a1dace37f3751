package ui

import (
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/muesli/reflow/wordwrap"

	"github.com/wordsheet/wordsheet/internal/vocab"
)

const importHint = "Paste tab-separated lines: headword, part of speech, synonyms, translation. " +
	"ctrl+v pastes the clipboard, ctrl+d imports, esc cancels."

func newImportBox() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "resilience\tn.\telasticity, recovery\t弹性；恢复力"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	return ta
}

// updateImport handles keys while the import overlay is open.
func (m *model) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.overlay = overlayNone
		m.importBox.Reset()
		return m, nil

	case "ctrl+v":
		text, err := clipboard.ReadAll()
		if err != nil {
			log.Warn("clipboard read failed", "err", err)
			m.setAlert("couldn't read the clipboard")
			return m, nil
		}
		m.importBox.InsertString(text)
		return m, nil

	case "ctrl+d":
		entries := vocab.ParseSheet(m.importBox.Value())
		sheet, err := m.lib.ImportSheet(entries)
		if err != nil {
			// Parse produced nothing usable; keep the overlay open so
			// the text can be fixed.
			m.setAlert("no valid entries: every line needs a headword")
			return m, nil
		}
		m.overlay = overlayNone
		m.importBox.Reset()
		m.cursor = 0
		m.setStatus("imported " + sheet.Name)
		return m, nil
	}

	var cmd tea.Cmd
	m.importBox, cmd = m.importBox.Update(msg)
	return m, cmd
}

func (m *model) importView() string {
	hint := wordwrap.String(importHint, max(20, m.width-8))
	body := promptStyle.Render("Import a new day sheet") + "\n\n" +
		m.importBox.View() + "\n\n" +
		dimStyle.Render(hint)
	return overlayStyle.Render(body)
}
