// Package playback drives text-to-speech playback of word entries,
// either one at a time or as an auto-advancing sequence over a whole
// day sheet. At most one entry is ever sounding system-wide: every new
// request supersedes whatever is in flight, and a stop request wins
// over everything.
package playback

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wordsheet/wordsheet/internal/audio"
	"github.com/wordsheet/wordsheet/internal/speech"
	"github.com/wordsheet/wordsheet/internal/vocab"
)

// DefaultPause is the gap between items during sequence playback.
const DefaultPause = time.Second

// Controller owns the single audio handle and the "currently sounding"
// reference. Nothing else reads or writes them.
type Controller struct {
	synth  speech.Synthesizer
	player audio.Player
	pause  time.Duration

	mu       sync.Mutex
	gen      uint64             // bumped on every supersession; stale completions carry an old value
	cancel   context.CancelFunc // cancellation token for the active playback
	sounding *vocab.WordEntry   // entry currently sounding, nil when idle
	sequence bool               // whole-sheet sequence in flight

	events chan Event
}

// Option configures a Controller.
type Option func(*Controller)

// WithPause overrides the inter-item pause used during sequence
// playback. Tests shorten it.
func WithPause(d time.Duration) Option {
	return func(c *Controller) { c.pause = d }
}

// New creates a controller over the given synthesizer and player.
func New(synth speech.Synthesizer, player audio.Player, opts ...Option) *Controller {
	c := &Controller{
		synth:  synth,
		player: player,
		pause:  DefaultPause,
		events: make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Events returns the channel playback notifications are delivered on.
func (c *Controller) Events() <-chan Event { return c.events }

// Sounding reports the entry currently sounding, if any.
func (c *Controller) Sounding() (vocab.WordEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sounding == nil {
		return vocab.WordEntry{}, false
	}
	return *c.sounding, true
}

// SequenceRunning reports whether a whole-sheet sequence is in flight.
func (c *Controller) SequenceRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sequence
}

// PlayOne speaks a single entry, superseding any playback in flight —
// including a running sequence, and including the same entry, which
// restarts it. It returns immediately; completion is reported on
// Events. Entries without a headword are ignored.
func (c *Controller) PlayOne(entry vocab.WordEntry) {
	if strings.TrimSpace(entry.Headword) == "" {
		return
	}

	c.mu.Lock()
	c.supersedeLocked()
	gen := c.gen
	ctx := c.newTokenLocked()
	e := entry
	c.sounding = &e
	c.sequence = false
	c.mu.Unlock()

	c.emit(Event{Kind: EventStarted, Entry: entry})
	go func() {
		c.speak(ctx, entry)
		c.finish(gen, ReasonComplete)
	}()
}

// PlayAll plays the given entries strictly in order with a pause
// between items. A PlayAll while a sequence is already running is a
// toggle: it stops the sequence and starts nothing. Item failures are
// soft; the sequence always advances.
func (c *Controller) PlayAll(entries []vocab.WordEntry) {
	c.mu.Lock()
	if c.sequence {
		c.mu.Unlock()
		c.Stop()
		return
	}
	if len(entries) == 0 {
		c.mu.Unlock()
		return
	}
	c.supersedeLocked()
	gen := c.gen
	ctx := c.newTokenLocked()
	c.sequence = true
	queue := make([]vocab.WordEntry, len(entries))
	copy(queue, entries)
	c.mu.Unlock()

	go c.runSequence(ctx, gen, queue)
}

// Stop halts any in-flight playback, discards any remaining sequence
// queue, and clears the sounding reference. It is idempotent and takes
// effect before any further network request can be issued.
func (c *Controller) Stop() {
	c.mu.Lock()
	active := c.sounding != nil || c.sequence
	c.supersedeLocked()
	c.sounding = nil
	c.sequence = false
	c.mu.Unlock()

	if active {
		c.emit(Event{Kind: EventStopped, Reason: ReasonUser})
	}
}

// runSequence is the sequence playback loop. It owns nothing the
// controller state doesn't hand it: the cancellation token and its
// generation decide whether it may still touch shared state.
func (c *Controller) runSequence(ctx context.Context, gen uint64, queue []vocab.WordEntry) {
	for i, entry := range queue {
		if ctx.Err() != nil {
			return
		}
		if !c.setSounding(gen, entry) {
			return
		}
		c.emit(Event{Kind: EventEntryActive, Entry: entry})
		c.speak(ctx, entry)
		if ctx.Err() != nil {
			return
		}
		if i < len(queue)-1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(c.pause):
			}
		}
	}
	c.finish(gen, ReasonComplete)
}

// speak synthesizes and plays one entry, returning once audio has
// finished, failed, or been cancelled. All three mean "move on" to the
// caller; failures are logged, never propagated.
func (c *Controller) speak(ctx context.Context, entry vocab.WordEntry) {
	if ctx.Err() != nil {
		return
	}
	body, err := c.synth.Synthesize(ctx, vocab.SpeakText(entry))
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Warn("speech synthesis failed", "headword", entry.Headword, "err", err)
		}
		return
	}
	defer body.Close()

	if err := c.player.Play(ctx, body); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn("audio playback failed", "headword", entry.Headword, "err", err)
	}
}

// supersedeLocked invalidates the current playback: the generation
// moves on and the token is cancelled, so any completion still in
// flight becomes stale and will not touch state set after this point.
func (c *Controller) supersedeLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) newTokenLocked() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	return ctx
}

// setSounding publishes entry as currently sounding, unless gen is
// stale.
func (c *Controller) setSounding(gen uint64, entry vocab.WordEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	e := entry
	c.sounding = &e
	return true
}

// finish clears playback state for the generation that just completed.
// A stale generation means the playback was superseded and its state
// belongs to someone else now.
func (c *Controller) finish(gen uint64, reason string) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.sounding = nil
	c.sequence = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	c.emit(Event{Kind: EventStopped, Reason: reason})
}

// emit delivers an event without ever blocking playback.
func (c *Controller) emit(ev Event) {
	select {
	case c.events <- ev:
	default:
	}
}
