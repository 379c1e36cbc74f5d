package ports

import (
	"context"
	"io"
	"time"

	"pranik/internal/domain"
)

// AudioConfig describes how the microphone should be captured.
type AudioConfig struct {
	SampleRate  int
	Channels    int
	InputFormat string
	InputDevice string
}

// AudioSession is a live capture session.
type AudioSession interface {
	io.ReadCloser
	Stop() error
}

// AudioCapture creates microphone capture sessions.
type AudioCapture interface {
	Start(ctx context.Context, cfg AudioConfig) (AudioSession, error)
}

// StreamingConfig describes provider-agnostic streaming settings.
type StreamingConfig struct {
	SampleRate     int
	Channels       int
	Encoding       string
	Language       string
	InterimResults bool
}

// StreamingSession is an active provider websocket session.
type StreamingSession interface {
	SendAudio(chunk []byte) error
	CloseSend() error
	Events() <-chan domain.TranscriptEvent
	Wait() error
	Close() error
}

// TranscriptionProvider starts streaming transcription sessions.
type TranscriptionProvider interface {
	StartStreaming(ctx context.Context, cfg StreamingConfig) (StreamingSession, error)
}

// CapabilityChecker reports whether a platform dependency can be used.
type CapabilityChecker interface {
	CheckAvailable() error
}

// RecognitionHandler receives recognition callbacks. Calls for one recording
// arrive in order and never after Pause or Stop has returned.
type RecognitionHandler interface {
	OnSegment(segment domain.TranscriptSegment)
	OnTick(elapsed time.Duration)
	OnError(err error)
}

// Recognizer is a continuous speech recognition capability.
type Recognizer interface {
	Available() bool
	Configure(locale string)
	Start(ctx context.Context, handler RecognitionHandler) error
	Pause() error
	Resume(ctx context.Context) error
	Stop() error
	Elapsed() time.Duration
}

// TextGenerator is a single-shot generative text service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Analyzer turns a transcript into a report. It never fails.
type Analyzer interface {
	Analyze(ctx context.Context, transcript string) domain.Analysis
}

// EventSink emits backend state/events to the UI.
type EventSink interface {
	SessionStateChanged(state domain.Phase, reason domain.SessionStateReason)
	TranscriptChanged(text string)
	RecordingTick(elapsed time.Duration)
	AnalysisFinished(analysis domain.Analysis)
	SessionError(code domain.ErrorCode, detail string)
}
