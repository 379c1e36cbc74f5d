package speech

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"pranik/internal/domain"
	"pranik/internal/ports"
)

type fakeAudioCapture struct {
	mu       sync.Mutex
	sessions []*fakeAudioSession
	err      error
	calls    int
}

func (f *fakeAudioCapture) Start(_ context.Context, _ ports.AudioConfig) (ports.AudioSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.calls >= len(f.sessions) {
		return nil, errors.New("no audio session configured")
	}
	session := f.sessions[f.calls]
	f.calls++
	return session, nil
}

// fakeAudioSession behaves like a live microphone: it yields a chunk every
// couple of milliseconds until stopped.
type fakeAudioSession struct {
	mu        sync.Mutex
	stopped   bool
	stopCalls int
	stopErr   error
	readErr   error
}

func newFakeAudioSession() *fakeAudioSession {
	return &fakeAudioSession{}
}

func (f *fakeAudioSession) Read(p []byte) (int, error) {
	time.Sleep(2 * time.Millisecond)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return 0, io.EOF
	}
	if f.readErr != nil {
		return 0, f.readErr
	}
	return copy(p, []byte("pcm")), nil
}

func (f *fakeAudioSession) Close() error { return f.Stop() }

func (f *fakeAudioSession) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	f.stopCalls++
	return f.stopErr
}

func (f *fakeAudioSession) stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopCalls
}

type fakeProvider struct {
	mu       sync.Mutex
	sessions []*fakeStreamingSession
	configs  []ports.StreamingConfig
	err      error
}

func (f *fakeProvider) StartStreaming(_ context.Context, cfg ports.StreamingConfig) (ports.StreamingSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if len(f.configs) >= len(f.sessions) {
		return nil, errors.New("no stream session configured")
	}
	session := f.sessions[len(f.configs)]
	f.configs = append(f.configs, cfg)
	return session, nil
}

func (f *fakeProvider) snapshotConfigs() []ports.StreamingConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ports.StreamingConfig, len(f.configs))
	copy(out, f.configs)
	return out
}

type fakeStreamingSession struct {
	mu         sync.Mutex
	events     chan domain.TranscriptEvent
	closed     chan struct{}
	isClosed   bool
	waitErr    error
	sent       int
	closeCalls int
}

func newFakeStreamingSession() *fakeStreamingSession {
	return &fakeStreamingSession{
		events: make(chan domain.TranscriptEvent, 64),
		closed: make(chan struct{}),
	}
}

func (f *fakeStreamingSession) SendAudio(_ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.isClosed {
		return errors.New("session closed")
	}
	f.sent++
	return nil
}

func (f *fakeStreamingSession) emit(kind domain.TranscriptKind, text string) {
	f.events <- domain.TranscriptEvent{Kind: kind, Text: text}
}

func (f *fakeStreamingSession) fail(err error) {
	f.mu.Lock()
	f.waitErr = err
	f.mu.Unlock()
	_ = f.CloseSend()
}

func (f *fakeStreamingSession) CloseSend() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.isClosed {
		f.isClosed = true
		close(f.events)
		close(f.closed)
	}
	return nil
}

func (f *fakeStreamingSession) Events() <-chan domain.TranscriptEvent { return f.events }

func (f *fakeStreamingSession) Wait() error {
	<-f.closed
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.waitErr
}

func (f *fakeStreamingSession) Close() error {
	f.mu.Lock()
	f.closeCalls++
	f.mu.Unlock()
	return f.CloseSend()
}

func (f *fakeStreamingSession) isDone() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.isClosed
}

type fakeHandler struct {
	segments chan domain.TranscriptSegment
	errs     chan error

	mu    sync.Mutex
	ticks []time.Duration
}

func newFakeHandler() *fakeHandler {
	return &fakeHandler{
		segments: make(chan domain.TranscriptSegment, 64),
		errs:     make(chan error, 4),
	}
}

func (h *fakeHandler) OnSegment(segment domain.TranscriptSegment) { h.segments <- segment }
func (h *fakeHandler) OnError(err error)                          { h.errs <- err }

func (h *fakeHandler) OnTick(elapsed time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ticks = append(h.ticks, elapsed)
}

func (h *fakeHandler) tickCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.ticks)
}

func (h *fakeHandler) nextSegment(t *testing.T) domain.TranscriptSegment {
	t.Helper()
	select {
	case segment := <-h.segments:
		return segment
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for segment")
		return domain.TranscriptSegment{}
	}
}

func (h *fakeHandler) nextError(t *testing.T) error {
	t.Helper()
	select {
	case err := <-h.errs:
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for recognition error")
		return nil
	}
}

type fakeLogger struct{}

func (fakeLogger) Print(string)   {}
func (fakeLogger) Trace(string)   {}
func (fakeLogger) Debug(string)   {}
func (fakeLogger) Info(string)    {}
func (fakeLogger) Warning(string) {}
func (fakeLogger) Error(string)   {}
func (fakeLogger) Fatal(string)   {}

type fakeCheck struct{ err error }

func (f fakeCheck) CheckAvailable() error { return f.err }

// stalledStream accepts the first chunk and then blocks every send until
// Close, like a provider that stopped reading audio. It records any CloseSend
// that lands while a send is in flight.
type stalledStream struct {
	mu         sync.Mutex
	inFlight   int
	accepted   int
	overlapped bool
	closeCalls int

	released  chan struct{}
	events    chan domain.TranscriptEvent
	closeOnce sync.Once
}

func newStalledStream() *stalledStream {
	return &stalledStream{
		released: make(chan struct{}),
		events:   make(chan domain.TranscriptEvent),
	}
}

func (f *stalledStream) SendAudio(_ []byte) error {
	f.mu.Lock()
	if f.accepted == 0 {
		f.accepted++
		f.mu.Unlock()
		return nil
	}
	f.inFlight++
	f.mu.Unlock()

	<-f.released

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
	return errors.New("stream dropped")
}

func (f *stalledStream) CloseSend() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight > 0 {
		f.overlapped = true
	}
	return nil
}

func (f *stalledStream) Events() <-chan domain.TranscriptEvent { return f.events }

func (f *stalledStream) Wait() error {
	<-f.released
	return nil
}

func (f *stalledStream) Close() error {
	f.mu.Lock()
	f.closeCalls++
	f.mu.Unlock()
	f.closeOnce.Do(func() {
		close(f.released)
		close(f.events)
	})
	return nil
}

func (f *stalledStream) snapshot() (overlapped bool, closeCalls int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlapped, f.closeCalls
}

type singleStreamProvider struct {
	stream ports.StreamingSession
}

func (p singleStreamProvider) StartStreaming(context.Context, ports.StreamingConfig) (ports.StreamingSession, error) {
	return p.stream, nil
}
