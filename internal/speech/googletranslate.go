package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultEndpoint = "https://translate.google.com/translate_tts"

	// The endpoint rejects long phrases; day-sheet entries are a few
	// words, so truncation here is a safety net, not a feature.
	maxTextLen = 200

	// Requests per minute. Conservative so the unauthenticated
	// endpoint doesn't start serving captchas.
	requestsPerMinute = 50
)

// GoogleTranslate synthesizes speech through the public Google
// Translate TTS endpoint. No authentication is involved; failures are
// expected and callers must treat them as soft.
type GoogleTranslate struct {
	endpoint string
	lang     string
	client   *http.Client
	limiter  *rate.Limiter
}

// GoogleTranslateOption configures a GoogleTranslate synthesizer.
type GoogleTranslateOption func(*GoogleTranslate)

// WithEndpoint overrides the endpoint URL. Used by tests.
func WithEndpoint(u string) GoogleTranslateOption {
	return func(g *GoogleTranslate) { g.endpoint = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) GoogleTranslateOption {
	return func(g *GoogleTranslate) { g.client = c }
}

// NewGoogleTranslate creates a synthesizer speaking the given language
// code ("en", "es", ...).
func NewGoogleTranslate(lang string, opts ...GoogleTranslateOption) *GoogleTranslate {
	if lang == "" {
		lang = "en"
	}
	g := &GoogleTranslate{
		endpoint: defaultEndpoint,
		lang:     lang,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(time.Minute/requestsPerMinute), 1),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Language returns the configured target-language code.
func (g *GoogleTranslate) Language() string { return g.lang }

// Synthesize requests audio for text and returns the MP3 response body.
func (g *GoogleTranslate) Synthesize(ctx context.Context, text string) (io.ReadCloser, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("speech: empty text")
	}
	if runes := []rune(text); len(runes) > maxTextLen {
		text = string(runes[:maxTextLen])
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("speech: rate limit wait: %w", err)
	}

	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", g.lang)
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("speech: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech: request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("speech: endpoint returned %s", resp.Status)
	}
	return resp.Body, nil
}

var _ Synthesizer = (*GoogleTranslate)(nil)
