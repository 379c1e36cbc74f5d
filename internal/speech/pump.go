package speech

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"pranik/internal/domain"
	"pranik/internal/ports"
)

func pumpAudioChunks(audio ports.AudioSession, stream ports.StreamingSession, chunkSize int) error {
	if chunkSize < 256 {
		chunkSize = 4096
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := audio.Read(buf)
		if n > 0 {
			if sendErr := stream.SendAudio(buf[:n]); sendErr != nil {
				return fmt.Errorf("%w: failed to send audio: %w", domain.ErrAudioStream, sendErr)
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("%w: capture failed: %w", domain.ErrAudioStream, err)
		}
	}
}

func waitForStream(session ports.StreamingSession, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		_ = session.Close()
		return <-done
	}
}
