package tui

import (
	"time"

	"pranik/internal/domain"
)

// SessionMsg carries a session phase change.
type SessionMsg struct {
	Phase  domain.Phase
	Reason domain.SessionStateReason
}

// TranscriptMsg carries the whole transcript after a change.
type TranscriptMsg struct {
	Text string
}

// TickMsg carries the recording clock.
type TickMsg struct {
	Elapsed time.Duration
}

// AnalysisMsg carries a finished analysis.
type AnalysisMsg struct {
	Analysis domain.Analysis
}

// ErrorMsg carries a backend error.
type ErrorMsg struct {
	Code   domain.ErrorCode
	Detail string
}

// SnapshotMsg carries a fresh copy of the session state.
type SnapshotMsg struct {
	Snapshot domain.Snapshot
}

// ActionDoneMsg reports the outcome of a controller call.
type ActionDoneMsg struct {
	Action string
	Err    error
}

// ClearTransientErrorMsg clears a transient error after a timeout.
type ClearTransientErrorMsg struct{}
