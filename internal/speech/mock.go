package speech

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

// Mock is a Synthesizer for tests. It records requested phrases and can
// fail or delay on demand.
type Mock struct {
	mu       sync.Mutex
	requests []string
	err      error
	delay    time.Duration
}

// NewMock creates a mock synthesizer.
func NewMock() *Mock { return &Mock{} }

// SetErr makes every following Synthesize call fail with err.
func (m *Mock) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetDelay makes Synthesize wait before returning, honoring ctx.
func (m *Mock) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// Requests returns every phrase synthesized so far, in order.
func (m *Mock) Requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.requests))
	copy(out, m.requests)
	return out
}

// Synthesize records the phrase and returns it as a fake audio stream.
func (m *Mock) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	m.mu.Lock()
	m.requests = append(m.requests, text)
	err := m.err
	delay := m.delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return io.NopCloser(strings.NewReader(text)), nil
}

var _ Synthesizer = (*Mock)(nil)
