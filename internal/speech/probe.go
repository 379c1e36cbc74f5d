package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"pranik/internal/ports"
)

// Probe checks platform capabilities once and returns either a live Source or
// an Unavailable recognizer. Callers branch on Available().
func Probe(
	capture ports.AudioCapture,
	provider ports.TranscriptionProvider,
	log logger.Logger,
	cfg Config,
	checks ...ports.CapabilityChecker,
) ports.Recognizer {
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check.CheckAvailable(); err != nil {
			log.Warning(fmt.Sprintf("speech recognition unavailable: %v", err))
			return Unavailable{Reason: err.Error()}
		}
	}
	return NewSource(capture, provider, log, cfg)
}

// Unavailable is the recognizer used when speech capture cannot run.
// Every operation is a no-op.
type Unavailable struct {
	Reason string
}

func (Unavailable) Available() bool                                       { return false }
func (Unavailable) Configure(string)                                      {}
func (Unavailable) Start(context.Context, ports.RecognitionHandler) error { return nil }
func (Unavailable) Pause() error                                          { return nil }
func (Unavailable) Resume(context.Context) error                          { return nil }
func (Unavailable) Stop() error                                           { return nil }
func (Unavailable) Elapsed() time.Duration                                { return 0 }

var _ ports.Recognizer = Unavailable{}
