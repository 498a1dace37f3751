package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wordsheet/wordsheet/internal/library"
)

// confirmRequest is a blocking yes/no question, usually raised by the
// library's delete gate. The asker blocks on reply until the user
// answers the overlay.
type confirmRequest struct {
	prompt string
	reply  chan bool
}

type confirmRequestMsg confirmRequest

// confirmViaOverlay adapts the confirm overlay into the synchronous
// ConfirmFunc the library expects. It must only be called off the
// update loop (the library's delete runs inside a tea.Cmd).
func confirmViaOverlay(ch chan<- confirmRequest) library.ConfirmFunc {
	return func(prompt string) bool {
		req := confirmRequest{prompt: prompt, reply: make(chan bool, 1)}
		ch <- req
		return <-req.reply
	}
}

// waitForConfirm relays confirm requests into the update loop.
func waitForConfirm(ch <-chan confirmRequest) tea.Cmd {
	return func() tea.Msg {
		req, ok := <-ch
		if !ok {
			return nil
		}
		return confirmRequestMsg(req)
	}
}

func (m *model) confirmView() string {
	body := promptStyle.Render(m.pendingConfirm.prompt) +
		"\n\n" + dimStyle.Render("y: delete   n/esc: keep")
	return overlayStyle.Render(body)
}

func (m *model) answerConfirm(yes bool) {
	if m.pendingConfirm == nil {
		return
	}
	m.pendingConfirm.reply <- yes
	m.pendingConfirm = nil
}
