package speech

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"golang.org/x/sync/errgroup"

	"pranik/internal/ports"
)

var (
	ErrAlreadyListening = errors.New("recognition is already running")
	ErrNotListening     = errors.New("recognition is not running")
	ErrNotPaused        = errors.New("recognition is not paused")
	ErrRecognitionEnded = errors.New("recognition ended unexpectedly")
)

// Config controls capture, streaming and timing of recognition passes.
type Config struct {
	Audio          ports.AudioConfig
	Streaming      ports.StreamingConfig
	ChunkSize      int
	StreamingGrace time.Duration
	CloseTimeout   time.Duration
	TickInterval   time.Duration
}

type sourceState int

const (
	stateStopped sourceState = iota
	stateListening
	statePaused
)

// Source is a continuous recognizer built from a microphone capture and a
// streaming transcription provider. Every Start or Resume opens a fresh pass.
type Source struct {
	capture  ports.AudioCapture
	provider ports.TranscriptionProvider
	log      logger.Logger
	cfg      Config
	clock    *recordingClock

	// opMu serializes Start/Pause/Resume/Stop; mu guards the fields below.
	opMu sync.Mutex

	mu      sync.Mutex
	locale  string
	state   sourceState
	handler ports.RecognitionHandler
	pass    *recognitionPass
}

type recognitionPass struct {
	cancel context.CancelFunc
	audio  ports.AudioSession
	stream ports.StreamingSession
	window *utteranceWindow

	halted atomic.Bool
	// pumpDone closes once no SendAudio call can start or be in flight.
	pumpDone chan struct{}
	done     chan struct{}
}

func NewSource(capture ports.AudioCapture, provider ports.TranscriptionProvider, log logger.Logger, cfg Config) *Source {
	if cfg.ChunkSize < 256 {
		cfg.ChunkSize = 4096
	}
	if cfg.CloseTimeout <= 0 {
		cfg.CloseTimeout = 4 * time.Second
	}
	cfg.Streaming.InterimResults = true
	return &Source{
		capture:  capture,
		provider: provider,
		log:      log,
		cfg:      cfg,
		clock:    newRecordingClock(cfg.TickInterval),
		locale:   cfg.Streaming.Language,
	}
}

// Available implements ports.Recognizer.
func (s *Source) Available() bool { return true }

// Configure sets the locale used by the next Start or Resume.
func (s *Source) Configure(locale string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = locale
}

// Start begins a new recording; elapsed time restarts from zero.
func (s *Source) Start(ctx context.Context, handler ports.RecognitionHandler) error {
	if handler == nil {
		return errors.New("recognition handler is required")
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state != stateStopped {
		s.mu.Unlock()
		return ErrAlreadyListening
	}
	locale := s.locale
	s.mu.Unlock()

	pass, err := s.openPass(ctx, locale)
	if err != nil {
		return err
	}

	s.clock.reset()
	s.mu.Lock()
	s.handler = handler
	s.pass = pass
	s.state = stateListening
	s.mu.Unlock()

	s.runPass(pass, handler)
	s.clock.start(handler.OnTick)
	s.log.Info(fmt.Sprintf("recognition started (locale %s)", localeOrDefault(locale)))
	return nil
}

// Pause fully halts the current pass and the clock.
func (s *Source) Pause() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state != stateListening {
		s.mu.Unlock()
		return ErrNotListening
	}
	pass := s.pass
	s.pass = nil
	s.state = statePaused
	s.mu.Unlock()

	s.clock.stop()
	err := s.halt(pass)
	s.log.Info("recognition paused")
	return err
}

// Resume opens a fresh pass with the currently configured locale.
func (s *Source) Resume(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state != statePaused {
		s.mu.Unlock()
		return ErrNotPaused
	}
	locale := s.locale
	handler := s.handler
	s.mu.Unlock()

	pass, err := s.openPass(ctx, locale)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.pass = pass
	s.state = stateListening
	s.mu.Unlock()

	s.runPass(pass, handler)
	s.clock.start(handler.OnTick)
	s.log.Info(fmt.Sprintf("recognition resumed (locale %s)", localeOrDefault(locale)))
	return nil
}

// Stop terminates recognition and the clock. Stopping twice is a no-op.
func (s *Source) Stop() error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.state == stateStopped {
		s.mu.Unlock()
		return nil
	}
	pass := s.pass
	s.pass = nil
	s.state = stateStopped
	s.mu.Unlock()

	s.clock.stop()
	var err error
	if pass != nil {
		err = s.halt(pass)
	}
	s.log.Info("recognition stopped")
	return err
}

// Elapsed returns the recording time accumulated since the last Start.
func (s *Source) Elapsed() time.Duration {
	return s.clock.Elapsed()
}

func (s *Source) openPass(ctx context.Context, locale string) (*recognitionPass, error) {
	passCtx, cancel := context.WithCancel(ctx)

	streaming := s.cfg.Streaming
	streaming.Language = locale
	stream, err := s.provider.StartStreaming(passCtx, streaming)
	if err != nil {
		cancel()
		return nil, err
	}

	audio, err := s.capture.Start(passCtx, s.cfg.Audio)
	if err != nil {
		_ = stream.Close()
		cancel()
		return nil, err
	}

	return &recognitionPass{
		cancel:   cancel,
		audio:    audio,
		stream:   stream,
		window:   newUtteranceWindow(),
		pumpDone: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

func (s *Source) runPass(pass *recognitionPass, handler ports.RecognitionHandler) {
	var group errgroup.Group
	group.Go(func() error {
		defer close(pass.pumpDone)
		err := pumpAudioChunks(pass.audio, pass.stream, s.cfg.ChunkSize)
		if !pass.halted.Load() {
			// Capture ended on its own; let the provider drain and close.
			_ = pass.stream.CloseSend()
		}
		return err
	})
	group.Go(func() error {
		for event := range pass.stream.Events() {
			if segment, ok := pass.window.Add(event); ok {
				handler.OnSegment(segment)
			}
		}
		return nil
	})

	go func() {
		err := group.Wait()
		// The provider's error explains a dead pump better than the pump does.
		if streamErr := pass.stream.Wait(); streamErr != nil {
			err = streamErr
		}
		close(pass.done)
		if !pass.halted.Load() {
			s.fail(pass, err)
		}
	}()
}

func (s *Source) halt(pass *recognitionPass) error {
	pass.halted.Store(true)

	var stopErr error
	if err := pass.audio.Stop(); err != nil {
		stopErr = fmt.Errorf("failed to stop audio capture cleanly: %w", err)
	}

	s.awaitPump(pass)

	if s.cfg.StreamingGrace > 0 {
		timer := time.NewTimer(s.cfg.StreamingGrace)
		select {
		case <-timer.C:
		case <-pass.done:
			timer.Stop()
		}
	}

	// Only now is the stream's input side free of senders.
	_ = pass.stream.CloseSend()
	_ = waitForStream(pass.stream, s.cfg.CloseTimeout)
	<-pass.done
	pass.cancel()
	return stopErr
}

// awaitPump waits for the pump to leave SendAudio after capture stopped. A
// provider that stopped accepting audio is dropped so the pump can return.
func (s *Source) awaitPump(pass *recognitionPass) {
	timer := time.NewTimer(s.cfg.CloseTimeout)
	defer timer.Stop()

	select {
	case <-pass.pumpDone:
		return
	case <-timer.C:
	}

	s.log.Warning(fmt.Sprintf("audio pump still blocked after %s; dropping the stream", s.cfg.CloseTimeout))
	_ = pass.stream.Close()
	<-pass.pumpDone
}

func (s *Source) fail(pass *recognitionPass, err error) {
	s.mu.Lock()
	if s.pass != pass {
		s.mu.Unlock()
		return
	}
	s.pass = nil
	s.state = stateStopped
	handler := s.handler
	// Stopped under mu so a concurrent Start cannot reuse the old ticker.
	s.clock.stop()
	s.mu.Unlock()

	_ = pass.audio.Stop()
	pass.cancel()

	if err == nil {
		err = ErrRecognitionEnded
	}
	s.log.Error(fmt.Sprintf("recognition error: %v", err))
	handler.OnError(err)
}

func localeOrDefault(locale string) string {
	if locale == "" {
		return "provider default"
	}
	return locale
}

var _ ports.Recognizer = (*Source)(nil)
