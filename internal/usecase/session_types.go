package usecase

import (
	"time"

	"pranik/internal/domain"
)

// sessionState is the controller's mutable state. Guarded by SessionController.mu.
type sessionState struct {
	sessionID  string
	language   string
	transcript string
	result     *domain.AnalysisResult
	source     domain.ResultSource
	analyzing  bool
	recording  bool
	paused     bool
	elapsed    time.Duration

	// generation identifies the current recording; callbacks from an older
	// recording are dropped.
	generation uint64
	aggregator transcriptAggregator
}

func (s *sessionState) phase() domain.Phase {
	switch {
	case s.analyzing:
		return domain.PhaseAnalyzing
	case s.recording:
		return domain.PhaseRecording
	case s.result != nil:
		return domain.PhaseDisplaying
	default:
		return domain.PhaseIdle
	}
}

// recordingHandler routes recognizer callbacks for one recording.
type recordingHandler struct {
	controller *SessionController
	generation uint64
}

func (h recordingHandler) OnSegment(segment domain.TranscriptSegment) {
	h.controller.onSegment(h.generation, segment)
}

func (h recordingHandler) OnTick(elapsed time.Duration) {
	h.controller.onTick(h.generation, elapsed)
}

func (h recordingHandler) OnError(err error) {
	h.controller.onRecognitionError(h.generation, err)
}
