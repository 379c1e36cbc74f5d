// Package deepgram streams recognition passes to Deepgram's live listen API.
package deepgram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"pranik/internal/ports"
)

const defaultAPIBaseURL = "https://api.deepgram.com/v1"

// ErrMissingAPIKey is returned when no Deepgram credential is configured.
var ErrMissingAPIKey = errors.New("DEEPGRAM_API_KEY is not configured")

// Config controls Deepgram websocket settings. Language is only a fallback;
// the locale chosen for a recognition pass wins.
type Config struct {
	APIKey      string
	APIBaseURL  string
	Model       string
	Language    string
	SmartFormat bool
	Endpointing int
}

// Provider opens one live stream per recognition pass.
type Provider struct {
	cfg    Config
	dialer *websocket.Dialer
}

func NewProvider(cfg Config) *Provider {
	cfg.APIBaseURL = strings.TrimSpace(cfg.APIBaseURL)
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "nova-2"
	}
	return &Provider{cfg: cfg, dialer: websocket.DefaultDialer}
}

// CheckAvailable implements ports.CapabilityChecker.
func (p *Provider) CheckAvailable() error {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// StartStreaming dials the listen endpoint for one pass. Cancelling ctx drops
// the connection.
func (p *Provider) StartStreaming(ctx context.Context, cfg ports.StreamingConfig) (ports.StreamingSession, error) {
	if err := p.CheckAvailable(); err != nil {
		return nil, err
	}

	endpoint, err := listenEndpoint(p.cfg, cfg)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Authorization", "Token "+p.cfg.APIKey)
	conn, resp, err := p.dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("deepgram: listen handshake failed with HTTP %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("deepgram: listen dial failed: %w", err)
	}

	stream := newLiveStream(conn)
	stream.start(ctx)
	return stream, nil
}

// listenEndpoint builds the websocket URL for a pass. The pass locale
// overrides the provider-wide language.
func listenEndpoint(providerCfg Config, pass ports.StreamingConfig) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(providerCfg.APIBaseURL), "/")
	if base == "" {
		base = defaultAPIBaseURL
	}
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}

	endpoint, err := url.Parse(base + "/listen")
	if err != nil {
		return "", fmt.Errorf("invalid Deepgram API base URL: %w", err)
	}

	encoding := pass.Encoding
	if encoding == "" {
		encoding = "linear16"
	}
	sampleRate := pass.SampleRate
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	channels := pass.Channels
	if channels <= 0 {
		channels = 1
	}

	query := url.Values{}
	query.Set("model", providerCfg.Model)
	query.Set("encoding", encoding)
	query.Set("sample_rate", strconv.Itoa(sampleRate))
	query.Set("channels", strconv.Itoa(channels))
	query.Set("interim_results", strconv.FormatBool(pass.InterimResults))
	query.Set("smart_format", strconv.FormatBool(providerCfg.SmartFormat))
	if providerCfg.Endpointing > 0 {
		query.Set("endpointing", strconv.Itoa(providerCfg.Endpointing))
	}
	if language := firstNonEmpty(pass.Language, providerCfg.Language); language != "" {
		query.Set("language", language)
	}
	endpoint.RawQuery = query.Encode()
	return endpoint.String(), nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var _ ports.TranscriptionProvider = (*Provider)(nil)
