package usecase

import (
	"context"
	"sync"
	"time"

	"pranik/internal/domain"
	"pranik/internal/ports"
)

type fakeRecognizer struct {
	unavailable bool
	startErr    error
	resumeErr   error
	stopErr     error

	mu      sync.Mutex
	locales []string
	handler ports.RecognitionHandler
	calls   []string
}

func (f *fakeRecognizer) Available() bool { return !f.unavailable }

func (f *fakeRecognizer) Configure(locale string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locales = append(f.locales, locale)
}

func (f *fakeRecognizer) Start(_ context.Context, handler ports.RecognitionHandler) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "start")
	if f.startErr != nil {
		return f.startErr
	}
	f.handler = handler
	return nil
}

func (f *fakeRecognizer) Pause() error {
	f.record("pause")
	return nil
}

func (f *fakeRecognizer) Resume(_ context.Context) error {
	f.record("resume")
	return f.resumeErr
}

func (f *fakeRecognizer) Stop() error {
	f.record("stop")
	return f.stopErr
}

func (f *fakeRecognizer) Elapsed() time.Duration { return 0 }

func (f *fakeRecognizer) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeRecognizer) lastLocale() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.locales) == 0 {
		return ""
	}
	return f.locales[len(f.locales)-1]
}

func (f *fakeRecognizer) currentHandler() ports.RecognitionHandler {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler
}

func (f *fakeRecognizer) segment(text string, final bool) {
	f.currentHandler().OnSegment(domain.TranscriptSegment{Text: text, IsFinal: final})
}

type fakeAnalyzer struct {
	analysis domain.Analysis
	started  chan struct{}
	release  chan struct{}

	mu          sync.Mutex
	transcripts []string
	ctxErrs     []error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, transcript string) domain.Analysis {
	f.mu.Lock()
	f.transcripts = append(f.transcripts, transcript)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.mu.Unlock()
	return f.analysis
}

func (f *fakeAnalyzer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.transcripts)
}

type stateEvent struct {
	phase  domain.Phase
	reason domain.SessionStateReason
}

type errEvent struct {
	code   domain.ErrorCode
	detail string
}

type fakeEventSink struct {
	mu          sync.Mutex
	states      []stateEvent
	transcripts []string
	ticks       []time.Duration
	analyses    []domain.Analysis
	errors      []errEvent
}

func (f *fakeEventSink) SessionStateChanged(phase domain.Phase, reason domain.SessionStateReason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, stateEvent{phase: phase, reason: reason})
}

func (f *fakeEventSink) TranscriptChanged(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcripts = append(f.transcripts, text)
}

func (f *fakeEventSink) RecordingTick(elapsed time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks = append(f.ticks, elapsed)
}

func (f *fakeEventSink) AnalysisFinished(analysis domain.Analysis) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.analyses = append(f.analyses, analysis)
}

func (f *fakeEventSink) SessionError(code domain.ErrorCode, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, errEvent{code: code, detail: detail})
}

func (f *fakeEventSink) lastState() stateEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.states) == 0 {
		return stateEvent{}
	}
	return f.states[len(f.states)-1]
}

func (f *fakeEventSink) snapshotErrors() []errEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]errEvent, len(f.errors))
	copy(out, f.errors)
	return out
}

type fakeLogger struct{}

func (fakeLogger) Print(string)   {}
func (fakeLogger) Trace(string)   {}
func (fakeLogger) Debug(string)   {}
func (fakeLogger) Info(string)    {}
func (fakeLogger) Warning(string) {}
func (fakeLogger) Error(string)   {}
func (fakeLogger) Fatal(string)   {}
