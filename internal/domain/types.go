package domain

import "errors"

// ErrAudioStream marks a recognition failure that started on the audio path
// (capture or upload) rather than in the provider.
var ErrAudioStream = errors.New("audio stream interrupted")

// Phase models the session lifecycle as seen by the UI.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseRecording  Phase = "recording"
	PhaseAnalyzing  Phase = "analyzing"
	PhaseDisplaying Phase = "displaying"
)

// SessionStateReason provides a structured reason for state transitions.
type SessionStateReason string

const (
	SessionReasonReady             SessionStateReason = "ready"
	SessionReasonRecordingStarted  SessionStateReason = "recording_started"
	SessionReasonRecordingPaused   SessionStateReason = "recording_paused"
	SessionReasonRecordingResumed  SessionStateReason = "recording_resumed"
	SessionReasonRecordingStopped  SessionStateReason = "recording_stopped"
	SessionReasonRecognitionFailed SessionStateReason = "recognition_failed"
	SessionReasonAnalysisStarted   SessionStateReason = "analysis_started"
	SessionReasonAnalysisCompleted SessionStateReason = "analysis_completed"
	SessionReasonAnalysisFallback  SessionStateReason = "analysis_fallback"
	SessionReasonLanguageChanged   SessionStateReason = "language_changed"
	SessionReasonSessionReset      SessionStateReason = "session_reset"
	SessionReasonSpeechUnavailable SessionStateReason = "speech_unavailable"
)

// ErrorCode identifies non-fatal and fatal backend errors.
type ErrorCode string

const (
	ErrorCodeStartup     ErrorCode = "startup"
	ErrorCodeCapability  ErrorCode = "capability"
	ErrorCodeRecognition ErrorCode = "recognition"
	ErrorCodeAudioStop   ErrorCode = "audio_stop"
	ErrorCodeAudioStream ErrorCode = "audio_stream"
	ErrorCodeAnalysis    ErrorCode = "analysis"
)

// TranscriptKind identifies whether a stream event is partial or final text.
type TranscriptKind string

const (
	TranscriptKindPartial TranscriptKind = "partial"
	TranscriptKindFinal   TranscriptKind = "final"
)

// TranscriptEvent represents incremental transcription output from a provider.
type TranscriptEvent struct {
	Kind          TranscriptKind `json:"kind"`
	Text          string         `json:"text"`
	IsSpeechFinal bool           `json:"isSpeechFinal"`
}

// TranscriptSegment is one recognition update for the current utterance window.
// Text always holds the whole window, not a delta.
type TranscriptSegment struct {
	Text    string `json:"text"`
	IsFinal bool   `json:"isFinal"`
}

// Language is a supported recognition language.
type Language struct {
	Code        string `json:"code"`
	DisplayName string `json:"displayName"`
	NativeName  string `json:"nativeName"`
	LocaleTag   string `json:"localeTag"`
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	SessionID       string          `json:"sessionId"`
	Language        string          `json:"language"`
	Transcript      string          `json:"transcript"`
	Result          *AnalysisResult `json:"result,omitempty"`
	ResultSource    ResultSource    `json:"resultSource,omitempty"`
	Analyzing       bool            `json:"analyzing"`
	Recording       bool            `json:"recording"`
	Paused          bool            `json:"paused"`
	ElapsedSeconds  int             `json:"elapsedSeconds"`
	SpeechAvailable bool            `json:"speechAvailable"`
	Phase           Phase           `json:"phase"`
}
