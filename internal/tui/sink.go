package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pranik/internal/domain"
)

// Sender delivers messages into a running program. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Sink forwards controller events to the terminal program. Events sent
// before Attach are dropped.
type Sink struct {
	mu     sync.Mutex
	sender Sender
}

func NewSink() *Sink {
	return &Sink{}
}

// Attach sets the program that receives events.
func (s *Sink) Attach(sender Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sender = sender
}

func (s *Sink) send(msg tea.Msg) {
	s.mu.Lock()
	sender := s.sender
	s.mu.Unlock()
	if sender == nil {
		return
	}
	sender.Send(msg)
}

func (s *Sink) SessionStateChanged(phase domain.Phase, reason domain.SessionStateReason) {
	s.send(SessionMsg{Phase: phase, Reason: reason})
}

func (s *Sink) TranscriptChanged(text string) {
	s.send(TranscriptMsg{Text: text})
}

func (s *Sink) RecordingTick(elapsed time.Duration) {
	s.send(TickMsg{Elapsed: elapsed})
}

func (s *Sink) AnalysisFinished(analysis domain.Analysis) {
	s.send(AnalysisMsg{Analysis: analysis})
}

func (s *Sink) SessionError(code domain.ErrorCode, detail string) {
	s.send(ErrorMsg{Code: code, Detail: detail})
}
