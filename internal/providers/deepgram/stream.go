package deepgram

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"pranik/internal/domain"
	"pranik/internal/ports"
)

const (
	audioQueueSize = 32
	eventQueueSize = 64
)

var (
	errInputClosed = errors.New("deepgram: audio input is closed")
	errStreamEnded = errors.New("deepgram: stream has ended")
)

var closeStreamFrame = []byte(`{"type":"CloseStream"}`)

// liveStream is one listen connection serving a single recognition pass.
//
// Audio goes in through SendAudio until CloseSend. CloseSend flushes the
// queued audio and asks the provider to finalize; the provider then closes
// and Events is closed after the last transcript. Close drops the connection
// at once. The audio queue is never closed, so SendAudio and CloseSend may
// race freely.
type liveStream struct {
	conn   *websocket.Conn
	audio  chan []byte
	events chan domain.TranscriptEvent

	inputClosed chan struct{}
	aborted     chan struct{}
	readerDone  chan struct{}
	done        chan struct{}

	// err is written once, before done is closed.
	err error

	closeInputOnce sync.Once
	abortOnce      sync.Once
}

func newLiveStream(conn *websocket.Conn) *liveStream {
	return &liveStream{
		conn:        conn,
		audio:       make(chan []byte, audioQueueSize),
		events:      make(chan domain.TranscriptEvent, eventQueueSize),
		inputClosed: make(chan struct{}),
		aborted:     make(chan struct{}),
		readerDone:  make(chan struct{}),
		done:        make(chan struct{}),
	}
}

func (s *liveStream) start(ctx context.Context) {
	go s.run()
	go func() {
		select {
		case <-ctx.Done():
			s.abort()
		case <-s.done:
		}
	}()
}

func (s *liveStream) run() {
	group, groupCtx := errgroup.WithContext(context.Background())
	group.Go(s.writeAudio)
	group.Go(s.readEvents)

	// The first failure, an abort, or the end of both loops drops the socket,
	// which unblocks whichever loop is still inside conn I/O.
	go func() {
		select {
		case <-groupCtx.Done():
		case <-s.aborted:
		}
		_ = s.conn.Close()
	}()

	err := group.Wait()
	close(s.events)
	s.err = err
	close(s.done)
}

func (s *liveStream) SendAudio(chunk []byte) error {
	if len(chunk) == 0 {
		return nil
	}
	select {
	case <-s.inputClosed:
		return errInputClosed
	case <-s.done:
		return s.endErr()
	default:
	}

	queued := append([]byte(nil), chunk...)
	select {
	case s.audio <- queued:
		return nil
	case <-s.inputClosed:
		return errInputClosed
	case <-s.done:
		return s.endErr()
	}
}

func (s *liveStream) CloseSend() error {
	s.closeInputOnce.Do(func() { close(s.inputClosed) })
	return nil
}

func (s *liveStream) Events() <-chan domain.TranscriptEvent {
	return s.events
}

func (s *liveStream) Wait() error {
	<-s.done
	return s.err
}

func (s *liveStream) Close() error {
	s.abort()
	<-s.done
	return s.err
}

func (s *liveStream) abort() {
	s.abortOnce.Do(func() { close(s.aborted) })
}

func (s *liveStream) isAborted() bool {
	select {
	case <-s.aborted:
		return true
	default:
		return false
	}
}

func (s *liveStream) endErr() error {
	if s.err != nil {
		return s.err
	}
	return errStreamEnded
}

func (s *liveStream) writeAudio() error {
	for {
		select {
		case chunk := <-s.audio:
			if err := s.write(websocket.BinaryMessage, chunk); err != nil {
				return err
			}
		case <-s.inputClosed:
			return s.finishInput()
		case <-s.readerDone:
			return nil
		case <-s.aborted:
			return nil
		}
	}
}

// finishInput sends whatever audio is still queued, then asks the provider
// to flush its last results and close.
func (s *liveStream) finishInput() error {
	for {
		select {
		case chunk := <-s.audio:
			if err := s.write(websocket.BinaryMessage, chunk); err != nil {
				return err
			}
		default:
			return s.write(websocket.TextMessage, closeStreamFrame)
		}
	}
}

func (s *liveStream) write(kind int, payload []byte) error {
	if err := s.conn.WriteMessage(kind, payload); err != nil {
		select {
		case <-s.aborted:
			return nil
		case <-s.readerDone:
			// The provider already hung up; the reader owns the outcome.
			return nil
		default:
		}
		return fmt.Errorf("deepgram: write failed: %w", err)
	}
	return nil
}

func (s *liveStream) readEvents() error {
	defer close(s.readerDone)

	for {
		_, payload, err := s.conn.ReadMessage()
		if err != nil {
			if s.isAborted() || isNormalClose(err) {
				return nil
			}
			return fmt.Errorf("deepgram: read failed: %w", err)
		}

		event, ok, err := decodeListenMessage(payload)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		// No event is ever dropped: a slow consumer slows the reader.
		select {
		case s.events <- event:
		case <-s.aborted:
			return nil
		}
	}
}

func isNormalClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	)
}

var _ ports.StreamingSession = (*liveStream)(nil)
