package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"pranik/internal/domain"
	"pranik/internal/language"
	"pranik/internal/ports"
)

var (
	ErrUnknownLanguage   = errors.New("unknown language")
	ErrAlreadyRecording  = errors.New("recording is already active")
	ErrNoActiveRecording = errors.New("no active recording")
	ErrInvalidTransition = errors.New("invalid recording transition")
	ErrEmptyTranscript   = errors.New("transcript is empty")
	ErrAnalysisInFlight  = errors.New("analysis is already running")
)

// Config holds controller defaults.
type Config struct {
	DefaultLanguage string
}

// SessionController owns the session state and orchestrates recording and
// analysis for one user.
type SessionController struct {
	recognizer ports.Recognizer
	analyzer   ports.Analyzer
	languages  *language.Registry
	events     ports.EventSink
	log        logger.Logger

	// opMu serializes recording control; recognizer calls happen under opMu
	// only, never under mu, so recognizer callbacks can always take mu.
	opMu sync.Mutex

	mu    sync.Mutex
	state sessionState
}

func NewSessionController(
	recognizer ports.Recognizer,
	analyzer ports.Analyzer,
	languages *language.Registry,
	events ports.EventSink,
	log logger.Logger,
	cfg Config,
) *SessionController {
	if languages == nil {
		languages = language.Default()
	}
	code := languages.Default().Code
	if _, ok := languages.Lookup(cfg.DefaultLanguage); ok {
		code = cfg.DefaultLanguage
	}
	recognizer.Configure(languages.LocaleFor(code))

	return &SessionController{
		recognizer: recognizer,
		analyzer:   analyzer,
		languages:  languages,
		events:     events,
		log:        log,
		state: sessionState{
			sessionID: uuid.NewString(),
			language:  code,
		},
	}
}

// Languages returns the supported languages in display order.
func (c *SessionController) Languages() []domain.Language {
	return c.languages.List()
}

// SpeechAvailable reports whether recording controls do anything.
func (c *SessionController) SpeechAvailable() bool {
	return c.recognizer.Available()
}

// SelectLanguage changes the recognition locale for future passes.
func (c *SessionController) SelectLanguage(code string) error {
	lang, ok := c.languages.Lookup(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}

	c.mu.Lock()
	c.state.language = lang.Code
	phase := c.state.phase()
	c.mu.Unlock()

	c.recognizer.Configure(lang.LocaleTag)
	c.log.Info(fmt.Sprintf("language set to %s (%s)", lang.DisplayName, lang.LocaleTag))
	c.events.SessionStateChanged(phase, domain.SessionReasonLanguageChanged)
	return nil
}

// StartRecording begins a new recording that appends to the transcript.
func (c *SessionController) StartRecording(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if !c.recognizer.Available() {
		c.log.Warning("start ignored: speech recognition is not available")
		c.events.SessionError(domain.ErrorCodeCapability, "speech recognition is not available on this system")
		return nil
	}

	c.mu.Lock()
	if c.state.analyzing {
		c.mu.Unlock()
		return ErrAnalysisInFlight
	}
	if c.state.recording {
		c.mu.Unlock()
		return ErrAlreadyRecording
	}
	c.state.generation++
	generation := c.state.generation
	c.state.recording = true
	c.state.paused = false
	c.state.elapsed = 0
	c.state.aggregator.begin(c.state.transcript)
	locale := c.languages.LocaleFor(c.state.language)
	c.mu.Unlock()

	c.recognizer.Configure(locale)
	if err := c.recognizer.Start(ctx, recordingHandler{controller: c, generation: generation}); err != nil {
		c.mu.Lock()
		if c.state.generation == generation {
			c.state.recording = false
		}
		phase := c.state.phase()
		c.mu.Unlock()

		c.log.Error(fmt.Sprintf("failed to start recording: %v", err))
		c.events.SessionError(domain.ErrorCodeRecognition, err.Error())
		c.events.SessionStateChanged(phase, domain.SessionReasonRecognitionFailed)
		return fmt.Errorf("start recording: %w", err)
	}

	c.events.RecordingTick(0)
	c.events.SessionStateChanged(domain.PhaseRecording, domain.SessionReasonRecordingStarted)
	return nil
}

// PauseRecording halts recognition and the clock, keeping the transcript.
func (c *SessionController) PauseRecording() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if !c.state.recording {
		c.mu.Unlock()
		return ErrNoActiveRecording
	}
	if c.state.paused {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	generation := c.state.generation
	c.mu.Unlock()

	if err := c.recognizer.Pause(); err != nil {
		return fmt.Errorf("pause recording: %w", err)
	}

	c.mu.Lock()
	if c.state.generation == generation && c.state.recording {
		c.state.paused = true
	}
	phase := c.state.phase()
	c.mu.Unlock()

	c.events.SessionStateChanged(phase, domain.SessionReasonRecordingPaused)
	return nil
}

// ResumeRecording starts a fresh pass with the selected language. The elapsed
// clock continues from where it paused.
func (c *SessionController) ResumeRecording(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if !c.state.recording {
		c.mu.Unlock()
		return ErrNoActiveRecording
	}
	if !c.state.paused {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.state.aggregator.begin(c.state.transcript)
	c.state.paused = false
	locale := c.languages.LocaleFor(c.state.language)
	c.mu.Unlock()

	c.recognizer.Configure(locale)
	if err := c.recognizer.Resume(ctx); err != nil {
		c.mu.Lock()
		c.state.paused = true
		c.mu.Unlock()
		c.log.Error(fmt.Sprintf("failed to resume recording: %v", err))
		c.events.SessionError(domain.ErrorCodeRecognition, err.Error())
		return fmt.Errorf("resume recording: %w", err)
	}

	c.events.SessionStateChanged(domain.PhaseRecording, domain.SessionReasonRecordingResumed)
	return nil
}

// StopRecording ends the recording. The transcript is kept.
func (c *SessionController) StopRecording() error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.mu.Lock()
	if !c.state.recording {
		c.mu.Unlock()
		return ErrNoActiveRecording
	}
	c.mu.Unlock()

	stopErr := c.recognizer.Stop()

	c.mu.Lock()
	c.state.generation++
	c.state.recording = false
	c.state.paused = false
	phase := c.state.phase()
	c.mu.Unlock()

	if stopErr != nil {
		c.log.Warning(fmt.Sprintf("recording stopped with error: %v", stopErr))
		c.events.SessionError(domain.ErrorCodeAudioStop, stopErr.Error())
	}
	c.events.SessionStateChanged(phase, domain.SessionReasonRecordingStopped)
	return nil
}

// SetTranscript replaces the transcript with a manual edit. During a live
// pass the edit becomes the new base for recognized text.
func (c *SessionController) SetTranscript(text string) {
	c.mu.Lock()
	c.state.transcript = text
	if c.state.recording && !c.state.paused {
		c.state.aggregator.rebase(text)
	}
	c.mu.Unlock()

	c.events.TranscriptChanged(text)
}

// Analyze sends the transcript to the analyzer and stores the result. At most
// one analysis runs at a time; an empty transcript makes no call.
func (c *SessionController) Analyze(ctx context.Context) (domain.Analysis, error) {
	c.mu.Lock()
	transcript := c.state.transcript
	if strings.TrimSpace(transcript) == "" {
		c.mu.Unlock()
		return domain.Analysis{}, ErrEmptyTranscript
	}
	if c.state.analyzing {
		c.mu.Unlock()
		return domain.Analysis{}, ErrAnalysisInFlight
	}
	c.state.analyzing = true
	c.mu.Unlock()

	c.events.SessionStateChanged(domain.PhaseAnalyzing, domain.SessionReasonAnalysisStarted)

	// The caller cannot cancel an analysis once it has started.
	analysis := c.analyzer.Analyze(context.WithoutCancel(ctx), transcript)

	c.mu.Lock()
	result := analysis.Result.Clone()
	c.state.result = &result
	c.state.source = analysis.Source
	c.state.analyzing = false
	phase := c.state.phase()
	c.mu.Unlock()

	reason := domain.SessionReasonAnalysisCompleted
	if analysis.IsFallback() {
		reason = domain.SessionReasonAnalysisFallback
		c.events.SessionError(domain.ErrorCodeAnalysis, fallbackDetail(analysis))
	}
	c.events.AnalysisFinished(analysis)
	c.events.SessionStateChanged(phase, reason)
	return analysis, nil
}

// Reset clears the transcript and result and starts a new session ID.
func (c *SessionController) Reset() error {
	c.mu.Lock()
	if c.state.recording || c.state.analyzing {
		c.mu.Unlock()
		return ErrInvalidTransition
	}
	c.state.sessionID = uuid.NewString()
	c.state.transcript = ""
	c.state.result = nil
	c.state.source = ""
	c.state.elapsed = 0
	c.state.aggregator.begin("")
	c.mu.Unlock()

	c.events.TranscriptChanged("")
	c.events.SessionStateChanged(domain.PhaseIdle, domain.SessionReasonSessionReset)
	return nil
}

// Snapshot returns a copy of the session state.
func (c *SessionController) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := domain.Snapshot{
		SessionID:       c.state.sessionID,
		Language:        c.state.language,
		Transcript:      c.state.transcript,
		ResultSource:    c.state.source,
		Analyzing:       c.state.analyzing,
		Recording:       c.state.recording,
		Paused:          c.state.paused,
		ElapsedSeconds:  int(c.state.elapsed / time.Second),
		SpeechAvailable: c.recognizer.Available(),
		Phase:           c.state.phase(),
	}
	if c.state.result != nil {
		result := c.state.result.Clone()
		snapshot.Result = &result
	}
	return snapshot
}

func (c *SessionController) onSegment(generation uint64, segment domain.TranscriptSegment) {
	c.mu.Lock()
	if generation != c.state.generation || !c.state.recording {
		c.mu.Unlock()
		return
	}
	transcript := c.state.aggregator.Apply(segment)
	c.state.transcript = transcript
	c.mu.Unlock()

	c.events.TranscriptChanged(transcript)
}

func (c *SessionController) onTick(generation uint64, elapsed time.Duration) {
	c.mu.Lock()
	if generation != c.state.generation || !c.state.recording {
		c.mu.Unlock()
		return
	}
	c.state.elapsed = elapsed
	c.mu.Unlock()

	c.events.RecordingTick(elapsed)
}

func (c *SessionController) onRecognitionError(generation uint64, err error) {
	c.mu.Lock()
	if generation != c.state.generation || !c.state.recording {
		c.mu.Unlock()
		return
	}
	c.state.generation++
	c.state.recording = false
	c.state.paused = false
	phase := c.state.phase()
	c.mu.Unlock()

	code := domain.ErrorCodeRecognition
	if errors.Is(err, domain.ErrAudioStream) {
		code = domain.ErrorCodeAudioStream
	}
	c.log.Error(fmt.Sprintf("recognition failed: %v", err))
	c.events.SessionError(code, err.Error())
	c.events.SessionStateChanged(phase, domain.SessionReasonRecognitionFailed)
}

func fallbackDetail(analysis domain.Analysis) string {
	switch {
	case analysis.Failure != domain.AnalysisFailureNone && analysis.Detail != "":
		return fmt.Sprintf("%s failure: %s", analysis.Failure, analysis.Detail)
	case analysis.Failure != domain.AnalysisFailureNone:
		return fmt.Sprintf("%s failure", analysis.Failure)
	case analysis.Detail != "":
		return analysis.Detail
	default:
		return "the analysis service returned no usable report"
	}
}
