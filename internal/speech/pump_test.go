package speech

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"pranik/internal/domain"
)

func TestPumpAudioChunksForwardsUntilEOF(t *testing.T) {
	t.Parallel()

	audio := &scriptedAudioSession{chunks: [][]byte{[]byte("abc"), []byte("def")}}
	stream := &recordingStream{}

	if err := pumpAudioChunks(audio, stream, 256); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := stream.chunks(); len(got) != 2 || got[0] != "abc" || got[1] != "def" {
		t.Fatalf("unexpected chunks: %v", got)
	}
}

func TestPumpAudioChunksReportsSendError(t *testing.T) {
	t.Parallel()

	audio := &scriptedAudioSession{chunks: [][]byte{[]byte("abc")}}
	stream := &recordingStream{sendErr: errors.New("send failed")}

	err := pumpAudioChunks(audio, stream, 256)
	if !errors.Is(err, stream.sendErr) || !errors.Is(err, domain.ErrAudioStream) {
		t.Fatalf("expected send error, got %v", err)
	}
}

func TestPumpAudioChunksReportsReadError(t *testing.T) {
	t.Parallel()

	readErr := errors.New("read failed")
	audio := &scriptedAudioSession{err: readErr}

	err := pumpAudioChunks(audio, &recordingStream{}, 256)
	if !errors.Is(err, readErr) || !errors.Is(err, domain.ErrAudioStream) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestWaitForStreamTimeoutClosesSession(t *testing.T) {
	t.Parallel()

	stream := &blockingWaitStream{done: make(chan struct{}), waitErr: errors.New("closed")}
	err := waitForStream(stream, 10*time.Millisecond)
	if err == nil || err.Error() != "closed" {
		t.Fatalf("expected closed error, got %v", err)
	}
	if stream.closeCalls == 0 {
		t.Fatalf("expected close to be called on timeout")
	}
}

type scriptedAudioSession struct {
	chunks [][]byte
	err    error
}

func (s *scriptedAudioSession) Read(p []byte) (int, error) {
	if len(s.chunks) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	n := copy(p, s.chunks[0])
	s.chunks = s.chunks[1:]
	return n, nil
}

func (s *scriptedAudioSession) Close() error { return nil }
func (s *scriptedAudioSession) Stop() error  { return nil }

type recordingStream struct {
	mu      sync.Mutex
	sent    []string
	sendErr error
}

func (s *recordingStream) SendAudio(chunk []byte) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, string(chunk))
	return nil
}

func (s *recordingStream) chunks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

func (s *recordingStream) CloseSend() error { return nil }
func (s *recordingStream) Events() <-chan domain.TranscriptEvent {
	ch := make(chan domain.TranscriptEvent)
	close(ch)
	return ch
}
func (s *recordingStream) Wait() error  { return nil }
func (s *recordingStream) Close() error { return nil }

type blockingWaitStream struct {
	done       chan struct{}
	waitErr    error
	closeCalls int
}

func (s *blockingWaitStream) SendAudio(_ []byte) error { return nil }
func (s *blockingWaitStream) CloseSend() error         { return nil }
func (s *blockingWaitStream) Events() <-chan domain.TranscriptEvent {
	ch := make(chan domain.TranscriptEvent)
	close(ch)
	return ch
}

func (s *blockingWaitStream) Wait() error {
	<-s.done
	return s.waitErr
}

func (s *blockingWaitStream) Close() error {
	s.closeCalls++
	close(s.done)
	return nil
}
