package playback

import "github.com/wordsheet/wordsheet/internal/vocab"

// EventKind identifies a playback notification.
type EventKind int

const (
	// EventStarted fires when a single entry starts sounding.
	EventStarted EventKind = iota
	// EventEntryActive fires as a sequence advances to an entry. The
	// view may use it to scroll the entry into the viewport; nothing
	// depends on that happening.
	EventEntryActive
	// EventStopped fires when playback ends for any reason.
	EventStopped
)

// Stop reasons carried by EventStopped.
const (
	ReasonUser     = "user"
	ReasonComplete = "complete"
)

// Event is a playback notification for the view layer. Delivery is
// best-effort; a slow consumer loses events, never playback.
type Event struct {
	Kind   EventKind
	Entry  vocab.WordEntry // set for Started and EntryActive
	Reason string          // set for Stopped
}
