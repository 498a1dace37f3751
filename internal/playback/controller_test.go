package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/wordsheet/wordsheet/internal/audio"
	"github.com/wordsheet/wordsheet/internal/speech"
	"github.com/wordsheet/wordsheet/internal/vocab"
)

const testPause = 20 * time.Millisecond

func testEntries() []vocab.WordEntry {
	return []vocab.WordEntry{
		{ID: "w1", Headword: "resilience", Synonyms: "elasticity, recovery"},
		{ID: "w2", Headword: "candid"},
		{ID: "w3", Headword: "alleviate", Synonyms: "ease, relieve"},
	}
}

func newTestController() (*Controller, *speech.Mock, *audio.MockPlayer) {
	synth := speech.NewMock()
	player := audio.NewMockPlayer()
	return New(synth, player, WithPause(testPause)), synth, player
}

// waitFor polls cond until it holds or the test deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestPlayOneSpeaksHeadwordAndSynonyms(t *testing.T) {
	c, synth, player := newTestController()

	c.PlayOne(testEntries()[0])
	waitFor(t, "playback to finish", func() bool {
		_, ok := c.Sounding()
		return !ok && len(player.Played()) == 1
	})

	reqs := synth.Requests()
	if len(reqs) != 1 || reqs[0] != "resilience, elasticity, recovery" {
		t.Errorf("Requests() = %v, want the headword plus synonyms", reqs)
	}
}

func TestPlayOneSetsSoundingBeforeRequest(t *testing.T) {
	c, _, player := newTestController()
	release := player.Hold()
	defer release()

	entry := testEntries()[1]
	c.PlayOne(entry)

	// The sounding reference is published synchronously, before any
	// network activity.
	got, ok := c.Sounding()
	if !ok || got.ID != entry.ID {
		t.Fatalf("Sounding() = %v, %v immediately after PlayOne, want the entry", got, ok)
	}
}

func TestPlayOneIgnoresEmptyHeadword(t *testing.T) {
	c, synth, _ := newTestController()

	c.PlayOne(vocab.WordEntry{ID: "x", Headword: "   "})
	time.Sleep(30 * time.Millisecond)

	if len(synth.Requests()) != 0 {
		t.Error("an entry without a headword must not be requested")
	}
	if _, ok := c.Sounding(); ok {
		t.Error("nothing should be sounding")
	}
}

func TestPlayOneSupersedesPlayOne(t *testing.T) {
	c, _, player := newTestController()
	release := player.Hold()
	defer release()

	entries := testEntries()
	c.PlayOne(entries[0])
	waitFor(t, "first playback to reach the player", func() bool {
		return len(player.Played()) == 1
	})

	c.PlayOne(entries[1])
	waitFor(t, "second playback to reach the player", func() bool {
		return len(player.Played()) == 2
	})

	// Only the newer entry is sounding; the superseded completion must
	// not clear it.
	got, ok := c.Sounding()
	if !ok || got.ID != entries[1].ID {
		t.Fatalf("Sounding() = %v, %v, want entry %s", got, ok, entries[1].ID)
	}
	time.Sleep(50 * time.Millisecond)
	got, ok = c.Sounding()
	if !ok || got.ID != entries[1].ID {
		t.Fatalf("stale completion clobbered the sounding reference: %v, %v", got, ok)
	}
}

func TestPlayOneRestartsSameEntry(t *testing.T) {
	c, synth, player := newTestController()
	release := player.Hold()
	defer release()

	entry := testEntries()[1]
	c.PlayOne(entry)
	waitFor(t, "first playback", func() bool { return len(player.Played()) == 1 })

	// Re-clicking the sounding entry restarts it rather than being a
	// no-op: a second request is issued for the same phrase.
	c.PlayOne(entry)
	waitFor(t, "restarted playback", func() bool { return len(player.Played()) == 2 })

	reqs := synth.Requests()
	if len(reqs) != 2 || reqs[0] != reqs[1] {
		t.Errorf("Requests() = %v, want the same phrase twice", reqs)
	}
	if got, ok := c.Sounding(); !ok || got.ID != entry.ID {
		t.Errorf("Sounding() = %v, %v, want the restarted entry", got, ok)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	c, _, player := newTestController()
	release := player.Hold()
	defer release()

	c.PlayOne(testEntries()[0])
	waitFor(t, "playback to start", func() bool { return len(player.Played()) == 1 })

	c.Stop()
	if _, ok := c.Sounding(); ok {
		t.Fatal("Sounding() reports an entry after Stop")
	}

	// Stopping twice is a no-op.
	c.Stop()
	if _, ok := c.Sounding(); ok {
		t.Fatal("second Stop changed state")
	}
	if c.SequenceRunning() {
		t.Fatal("SequenceRunning() after Stop")
	}
}

func TestStopWithoutPlayback(t *testing.T) {
	c, _, _ := newTestController()
	c.Stop() // must not panic or emit
	select {
	case ev := <-c.Events():
		t.Fatalf("unexpected event %+v from stopping an idle controller", ev)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestPlayAllOrderAndCompletion(t *testing.T) {
	c, synth, player := newTestController()

	entries := testEntries()
	c.PlayAll(entries)
	waitFor(t, "sequence to finish", func() bool { return !c.SequenceRunning() && len(player.Played()) == 3 })

	want := []string{
		"resilience, elasticity, recovery",
		"candid",
		"alleviate, ease, relieve",
	}
	reqs := synth.Requests()
	if len(reqs) != len(want) {
		t.Fatalf("Requests() = %v, want %v", reqs, want)
	}
	for i := range want {
		if reqs[i] != want[i] {
			t.Errorf("request %d = %q, want %q (strict list order)", i, reqs[i], want[i])
		}
	}
	if _, ok := c.Sounding(); ok {
		t.Error("Sounding() reports an entry after natural completion")
	}
}

func TestPlayAllPausesBetweenItems(t *testing.T) {
	c, _, player := newTestController()

	start := time.Now()
	c.PlayAll(testEntries())
	waitFor(t, "sequence to finish", func() bool { return !c.SequenceRunning() && len(player.Played()) == 3 })

	// Three items means two inter-item pauses.
	if elapsed := time.Since(start); elapsed < 2*testPause {
		t.Errorf("sequence finished in %v, want at least %v of inter-item pauses", elapsed, 2*testPause)
	}
}

func TestPlayAllStopAfterFirstItem(t *testing.T) {
	c, synth, player := newTestController()
	player.SetDelay(30 * time.Millisecond)

	c.PlayAll(testEntries())
	waitFor(t, "first item to start", func() bool { return len(player.Played()) == 1 })

	c.Stop()
	if _, ok := c.Sounding(); ok {
		t.Fatal("Sounding() reports an entry after Stop")
	}
	if c.SequenceRunning() {
		t.Fatal("SequenceRunning() after Stop")
	}

	// No ghost playback: nothing further is ever requested.
	time.Sleep(4 * testPause)
	if reqs := synth.Requests(); len(reqs) != 1 {
		t.Errorf("Requests() = %v, want only the first item", reqs)
	}
}

func TestPlayAllToggle(t *testing.T) {
	c, synth, player := newTestController()
	release := player.Hold()
	defer release()

	entries := testEntries()
	c.PlayAll(entries)
	waitFor(t, "sequence to start", func() bool { return c.SequenceRunning() && len(player.Played()) == 1 })

	// A second play-all is a stop, not a restart.
	c.PlayAll(entries)
	if c.SequenceRunning() {
		t.Fatal("SequenceRunning() after toggle")
	}
	if _, ok := c.Sounding(); ok {
		t.Fatal("Sounding() reports an entry after toggle")
	}

	time.Sleep(4 * testPause)
	if reqs := synth.Requests(); len(reqs) != 1 {
		t.Errorf("Requests() = %v, want no items after the toggle", reqs)
	}
}

func TestPlayAllEmptyList(t *testing.T) {
	c, synth, _ := newTestController()
	c.PlayAll(nil)
	time.Sleep(30 * time.Millisecond)
	if c.SequenceRunning() || len(synth.Requests()) != 0 {
		t.Error("playing an empty list must do nothing")
	}
}

func TestPlayAllSurvivesSynthesisErrors(t *testing.T) {
	c, synth, player := newTestController()
	synth.SetErr(errors.New("endpoint unreachable"))

	c.PlayAll(testEntries())
	waitFor(t, "sequence to finish", func() bool { return !c.SequenceRunning() && len(synth.Requests()) == 3 })

	// Every item was attempted despite every attempt failing; nothing
	// reached the player.
	if len(player.Played()) != 0 {
		t.Errorf("Played() = %v, want none", player.Played())
	}
	if _, ok := c.Sounding(); ok {
		t.Error("Sounding() reports an entry after an all-error sequence")
	}
}

func TestPlayAllSurvivesPlayerErrors(t *testing.T) {
	c, synth, player := newTestController()
	player.SetErr(errors.New("decode failure"))

	c.PlayAll(testEntries())
	waitFor(t, "sequence to finish", func() bool { return !c.SequenceRunning() && len(synth.Requests()) == 3 })

	if len(player.Played()) != 3 {
		t.Errorf("Played() recorded %d items, want 3", len(player.Played()))
	}
}

func TestPlayOneSupersedesSequence(t *testing.T) {
	c, _, player := newTestController()
	player.SetDelay(30 * time.Millisecond)

	entries := testEntries()
	c.PlayAll(entries)
	waitFor(t, "sequence to start", func() bool { return len(player.Played()) == 1 })

	c.PlayOne(entries[2])
	if c.SequenceRunning() {
		t.Fatal("SequenceRunning() after a single-item request")
	}
	got, ok := c.Sounding()
	if !ok || got.ID != entries[2].ID {
		t.Fatalf("Sounding() = %v, %v, want the single entry", got, ok)
	}
}

func TestSequenceEvents(t *testing.T) {
	c, _, _ := newTestController()

	entries := testEntries()
	c.PlayAll(entries)
	waitFor(t, "sequence to finish", func() bool { return !c.SequenceRunning() })

	var active []string
	var stopped *Event
	drain := true
	for drain {
		select {
		case ev := <-c.Events():
			switch ev.Kind {
			case EventEntryActive:
				active = append(active, ev.Entry.ID)
			case EventStopped:
				e := ev
				stopped = &e
			}
		case <-time.After(50 * time.Millisecond):
			drain = false
		}
	}

	if len(active) != len(entries) {
		t.Fatalf("got %d EntryActive events, want %d", len(active), len(entries))
	}
	for i, e := range entries {
		if active[i] != e.ID {
			t.Errorf("EntryActive %d = %s, want %s", i, active[i], e.ID)
		}
	}
	if stopped == nil || stopped.Reason != ReasonComplete {
		t.Errorf("final event = %+v, want Stopped/%s", stopped, ReasonComplete)
	}
}
