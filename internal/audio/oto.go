package audio

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// pollInterval is how often playback completion is checked. oto has no
// completion callback; polling IsPlaying is the supported approach.
const pollInterval = 20 * time.Millisecond

// OtoPlayer plays MP3 streams through ebitengine/oto. The oto context
// is created once on first use and reused for the process lifetime;
// the library does not support opening the device twice.
type OtoPlayer struct {
	mu     sync.Mutex
	ctx    *oto.Context
	rate   int
	closed bool
}

// NewOtoPlayer creates a player. The audio device is not opened until
// the first Play call, so construction never touches hardware.
func NewOtoPlayer() *OtoPlayer {
	return &OtoPlayer{}
}

// Play decodes the MP3 stream and plays it to completion, error, or
// cancellation. The device is always released before returning.
func (p *OtoPlayer) Play(ctx context.Context, r io.Reader) error {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return fmt.Errorf("audio: decode: %w", err)
	}

	octx, err := p.context(dec.SampleRate())
	if err != nil {
		return err
	}

	player := octx.NewPlayer(dec)
	defer player.Close()
	player.Play()

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			player.Pause()
			return ctx.Err()
		case <-tick.C:
			if !player.IsPlaying() {
				if err := player.Err(); err != nil {
					return fmt.Errorf("audio: playback: %w", err)
				}
				return nil
			}
		}
	}
}

// context returns the shared oto context, opening the device on first
// use. go-mp3 always decodes to 16-bit stereo at the stream's sample
// rate, so the context is fixed to the first stream's rate.
func (p *OtoPlayer) context(sampleRate int) (*oto.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, fmt.Errorf("audio: player is closed")
	}
	if p.ctx != nil {
		return p.ctx, nil
	}

	octx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("audio: open device: %w", err)
	}
	<-ready

	p.ctx = octx
	p.rate = sampleRate
	return p.ctx, nil
}

// Close marks the player unusable. oto v3 contexts have no Close; the
// device is released when the process exits.
func (p *OtoPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.ctx = nil
	return nil
}

var _ Player = (*OtoPlayer)(nil)
