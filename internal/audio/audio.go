// Package audio plays synthesized speech through the system audio
// device.
package audio

import (
	"context"
	"io"
)

// Player consumes one MP3 stream and blocks until playback finishes
// naturally, fails to decode or start, or ctx is cancelled.
// Cancellation halts the device immediately and returns ctx.Err().
// Implementations hold at most one active stream; a second Play while
// one is running is a caller bug, not something the player arbitrates.
type Player interface {
	Play(ctx context.Context, r io.Reader) error
	Close() error
}
