package audio

import (
	"context"
	"io"
	"sync"
	"time"
)

// MockPlayer is a Player for tests. It records every stream it is
// handed and can fail, delay, or block until explicitly released so
// tests can interrupt playback mid-flight.
type MockPlayer struct {
	mu      sync.Mutex
	played  []string
	err     error
	delay   time.Duration
	release chan struct{}
	closed  bool
}

// NewMockPlayer creates a mock player.
func NewMockPlayer() *MockPlayer { return &MockPlayer{} }

// SetErr makes every following Play call return err after consuming
// its stream.
func (m *MockPlayer) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetDelay makes Play take d to "sound", honoring ctx.
func (m *MockPlayer) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Hold makes following Play calls block until the returned release
// function is called (or their context is cancelled).
func (m *MockPlayer) Hold() (release func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.release = ch
	var once sync.Once
	return func() {
		once.Do(func() {
			close(ch)
			m.mu.Lock()
			if m.release == ch {
				m.release = nil
			}
			m.mu.Unlock()
		})
	}
}

// Played returns the contents of every stream played so far, in order.
func (m *MockPlayer) Played() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.played))
	copy(out, m.played)
	return out
}

// Play records the stream, then waits out any configured hold or delay
// before returning the configured error.
func (m *MockPlayer) Play(ctx context.Context, r io.Reader) error {
	data, _ := io.ReadAll(r)

	m.mu.Lock()
	m.played = append(m.played, string(data))
	err := m.err
	delay := m.delay
	release := m.release
	m.mu.Unlock()

	if release != nil {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-release:
		}
	}
	if delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Close marks the player closed.
func (m *MockPlayer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (m *MockPlayer) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

var _ Player = (*MockPlayer)(nil)
