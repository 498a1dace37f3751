// Package speech turns text into audio streams via an external
// text-to-speech endpoint.
package speech

import (
	"context"
	"io"
)

// Synthesizer converts a phrase into a playable MP3 stream. The caller
// owns the returned ReadCloser. Implementations must honor ctx
// cancellation, including while waiting on the network.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (io.ReadCloser, error)
}
