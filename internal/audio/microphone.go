// Package audio captures raw microphone PCM through an ffmpeg child process.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"pranik/internal/ports"
)

const (
	defaultStartupWindow = 250 * time.Millisecond
	defaultStopGrace     = 1200 * time.Millisecond
	stderrTailLimit      = 4 << 10
)

// Microphone records 16-bit little-endian PCM from the host's default input.
type Microphone struct {
	command string

	// startupWindow is how long a fresh recorder must stay alive before the
	// capture counts as started.
	startupWindow time.Duration
	stopGrace     time.Duration
}

func NewMicrophone(command string) *Microphone {
	if strings.TrimSpace(command) == "" {
		command = "ffmpeg"
	}
	return &Microphone{
		command:       command,
		startupWindow: defaultStartupWindow,
		stopGrace:     defaultStopGrace,
	}
}

// CheckAvailable implements ports.CapabilityChecker.
func (m *Microphone) CheckAvailable() error {
	if _, err := exec.LookPath(m.command); err != nil {
		return fmt.Errorf("microphone capture unavailable: %w", err)
	}
	return nil
}

func defaultInput(goos string) (format, device string) {
	switch goos {
	case "darwin":
		return "avfoundation", ":0"
	case "windows":
		return "dshow", "audio=default"
	default:
		return "pulse", "default"
	}
}

// recorderArgs fills in capture defaults for goos and renders the ffmpeg
// command line that writes raw PCM to stdout.
func recorderArgs(cfg ports.AudioConfig, goos string) []string {
	format, device := defaultInput(goos)
	if cfg.InputFormat != "" {
		format = cfg.InputFormat
	}
	if cfg.InputDevice != "" {
		device = cfg.InputDevice
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	channels := cfg.Channels
	if channels <= 0 {
		channels = 1
	}

	return []string{
		"-nostdin", "-hide_banner",
		"-loglevel", "warning",
		"-f", format, "-i", device,
		"-ac", strconv.Itoa(channels),
		"-ar", strconv.Itoa(sampleRate),
		"-f", "s16le", "-",
	}
}

// Start launches the recorder. It fails if the recorder exits inside the
// startup window, which is how a missing or busy device shows up.
func (m *Microphone) Start(ctx context.Context, cfg ports.AudioConfig) (ports.AudioSession, error) {
	cmd := exec.CommandContext(ctx, m.command, recorderArgs(cfg, runtime.GOOS)...)
	stderr := &tailBuffer{limit: stderrTailLimit}
	cmd.Stderr = stderr
	// Bounds how long Wait lingers on pipes held open by recorder children.
	cmd.WaitDelay = m.stopGrace

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open recorder output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start recorder: %w", err)
	}

	session := &micSession{
		cmd:       cmd,
		stdout:    stdout,
		stderr:    stderr,
		stopGrace: m.stopGrace,
		exited:    make(chan struct{}),
	}
	go session.reap()

	window := time.NewTimer(m.startupWindow)
	defer window.Stop()

	select {
	case <-session.exited:
		return nil, session.startupFailure()
	case <-ctx.Done():
		_ = session.Stop()
		return nil, ctx.Err()
	case <-window.C:
		return session, nil
	}
}

type micSession struct {
	cmd       *exec.Cmd
	stdout    io.Reader
	stderr    *tailBuffer
	stopGrace time.Duration

	// exitErr is written once, before exited is closed.
	exited  chan struct{}
	exitErr error

	stopOnce sync.Once
	stopErr  error
}

func (s *micSession) reap() {
	s.exitErr = s.cmd.Wait()
	close(s.exited)
}

// Read returns PCM until the recorder exits; after Stop it reports io.EOF or
// os.ErrClosed.
func (s *micSession) Read(p []byte) (int, error) {
	return s.stdout.Read(p)
}

func (s *micSession) Close() error {
	return s.Stop()
}

// Stop asks the recorder to finish, then kills it if it does not exit within
// the stop grace. A recorder that exits non-zero on interrupt is not an error.
func (s *micSession) Stop() error {
	s.stopOnce.Do(func() {
		s.stopErr = s.shutdown()
	})
	return s.stopErr
}

func (s *micSession) shutdown() error {
	select {
	case <-s.exited:
	default:
		if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
			// Interrupt is not deliverable on every platform.
			_ = s.cmd.Process.Kill()
		}
		grace := time.NewTimer(s.stopGrace)
		select {
		case <-s.exited:
		case <-grace.C:
			_ = s.cmd.Process.Kill()
			<-s.exited
		}
		grace.Stop()
	}

	err := ignoreExitStatus(s.exitErr)
	if err != nil {
		if tail := s.stderr.String(); tail != "" {
			err = fmt.Errorf("%w: %s", err, tail)
		}
	}
	return err
}

func (s *micSession) startupFailure() error {
	reason := s.stderr.String()
	switch {
	case s.exitErr != nil && reason != "":
		return fmt.Errorf("recorder exited before capture started: %w: %s", s.exitErr, reason)
	case s.exitErr != nil:
		return fmt.Errorf("recorder exited before capture started: %w", s.exitErr)
	default:
		return errors.New("recorder exited before capture started")
	}
}

func ignoreExitStatus(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

// tailBuffer keeps the last limit bytes written to it. A long recording can
// emit unbounded warnings; only the most recent ones explain a failure.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	data  []byte
}

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append(b.data, p...)
	if overflow := len(b.data) - b.limit; overflow > 0 {
		b.data = append(b.data[:0], b.data[overflow:]...)
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.TrimSpace(string(b.data))
}

var (
	_ ports.AudioCapture      = (*Microphone)(nil)
	_ ports.CapabilityChecker = (*Microphone)(nil)
)
