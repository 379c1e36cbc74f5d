package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"pranik/internal/bootstrap"
	"pranik/internal/config"
	"pranik/internal/domain"
	"pranik/internal/language"
	"pranik/internal/resultview"
	"pranik/internal/usecase"
)

const (
	eventSession    = "pranik:session"
	eventTranscript = "pranik:transcript"
	eventTick       = "pranik:tick"
	eventAnalysis   = "pranik:analysis"
	eventView       = "pranik:view"
	eventError      = "pranik:error"
)

type emitFunc func(ctx context.Context, name string, data ...interface{})

// App is the Wails application root.
type App struct {
	ctx  context.Context
	emit emitFunc

	controller *usecase.SessionController
	cfg        config.Config
	log        logger.Logger
	bootErr    error
}

func NewApp(cfg config.Config, log logger.Logger) *App {
	return &App{cfg: cfg, log: log, emit: runtime.EventsEmit}
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	services, err := bootstrap.Build(a.cfg, a, a.log)
	if err != nil {
		a.bootErr = err
		a.log.Error(fmt.Sprintf("startup failed: %v", err))
		a.SessionError(domain.ErrorCodeStartup, err.Error())
		return
	}

	a.controller = services.Controller
	reason := domain.SessionReasonReady
	if !a.controller.SpeechAvailable() {
		reason = domain.SessionReasonSpeechUnavailable
	}
	a.SessionStateChanged(domain.PhaseIdle, reason)
}

func (a *App) shutdown(_ context.Context) {
	if a.controller == nil {
		return
	}
	if err := a.controller.StopRecording(); err != nil && !errors.Is(err, usecase.ErrNoActiveRecording) {
		a.log.Warning(fmt.Sprintf("shutdown: %v", err))
	}
}

// GetLanguages returns the supported recognition languages in display order.
func (a *App) GetLanguages() []domain.Language {
	if a.controller == nil {
		return language.Default().List()
	}
	return a.controller.Languages()
}

// SelectLanguage sets the language used by the next recording pass.
func (a *App) SelectLanguage(code string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.controller.SelectLanguage(code)
}

// StartRecording begins a recording that appends to the transcript.
func (a *App) StartRecording() (domain.Snapshot, error) {
	if err := a.requireReady(); err != nil {
		return domain.Snapshot{}, err
	}
	if err := a.controller.StartRecording(a.ctx); err != nil {
		return a.controller.Snapshot(), err
	}
	return a.controller.Snapshot(), nil
}

// PauseRecording halts recognition and the clock.
func (a *App) PauseRecording() (domain.Snapshot, error) {
	if err := a.requireReady(); err != nil {
		return domain.Snapshot{}, err
	}
	err := a.controller.PauseRecording()
	return a.controller.Snapshot(), err
}

// ResumeRecording continues a paused recording.
func (a *App) ResumeRecording() (domain.Snapshot, error) {
	if err := a.requireReady(); err != nil {
		return domain.Snapshot{}, err
	}
	err := a.controller.ResumeRecording(a.ctx)
	return a.controller.Snapshot(), err
}

// StopRecording ends the recording and keeps the transcript.
func (a *App) StopRecording() (domain.Snapshot, error) {
	if err := a.requireReady(); err != nil {
		return domain.Snapshot{}, err
	}
	err := a.controller.StopRecording()
	return a.controller.Snapshot(), err
}

// SetTranscript stores a manual edit of the transcript.
func (a *App) SetTranscript(text string) error {
	if err := a.requireReady(); err != nil {
		return err
	}
	a.controller.SetTranscript(text)
	return nil
}

// Analyze runs the analysis for the current transcript.
func (a *App) Analyze() (domain.Analysis, error) {
	if err := a.requireReady(); err != nil {
		return domain.Analysis{}, err
	}
	return a.controller.Analyze(a.ctx)
}

// Reset clears the transcript and the result.
func (a *App) Reset() error {
	if err := a.requireReady(); err != nil {
		return err
	}
	return a.controller.Reset()
}

// GetSnapshot returns the current session state.
func (a *App) GetSnapshot() domain.Snapshot {
	if a.controller == nil {
		return domain.Snapshot{Phase: domain.PhaseIdle, Language: language.Default().Default().Code}
	}
	return a.controller.Snapshot()
}

// GetView returns the derived result panel.
func (a *App) GetView() domain.View {
	return resultview.Derive(resultview.InputFromSnapshot(a.GetSnapshot()))
}

// GetRuntimeInfo returns non-sensitive config for the UI.
func (a *App) GetRuntimeInfo() map[string]string {
	if a.bootErr != nil {
		return map[string]string{"error": a.bootErr.Error()}
	}

	speechAvailable := false
	if a.controller != nil {
		speechAvailable = a.controller.SpeechAvailable()
	}

	return map[string]string{
		"speechProvider":   "Deepgram",
		"speechModel":      a.cfg.Deepgram.Model,
		"speechAvailable":  strconv.FormatBool(speechAvailable),
		"analysisModel":    a.cfg.LLM.Model,
		"analysisEndpoint": endpointHost(a.cfg.LLM.BaseURL),
		"analysisKeySet":   strconv.FormatBool(a.cfg.LLM.APIKey != ""),
		"audioInput":       a.cfg.Audio.InputDevice,
		"audioInputFormat": a.cfg.Audio.InputFormat,
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

func (a *App) send(name string, data interface{}) {
	if a.ctx == nil || a.emit == nil {
		return
	}
	a.emit(a.ctx, name, data)
}

func (a *App) emitView() {
	if a.controller == nil {
		return
	}
	a.send(eventView, a.GetView())
}

// SessionStateChanged emits session lifecycle updates to the frontend.
func (a *App) SessionStateChanged(phase domain.Phase, reason domain.SessionStateReason) {
	a.send(eventSession, map[string]string{
		"state":   string(phase),
		"reason":  string(reason),
		"message": sessionReasonMessage(reason),
	})
	a.emitView()
}

// TranscriptChanged emits the whole transcript after every change.
func (a *App) TranscriptChanged(text string) {
	a.send(eventTranscript, map[string]string{"text": text})
	a.emitView()
}

// RecordingTick emits the recording clock.
func (a *App) RecordingTick(elapsed time.Duration) {
	a.send(eventTick, map[string]interface{}{
		"elapsedSeconds": int(elapsed / time.Second),
		"display":        resultview.FormatElapsed(elapsed),
	})
}

// AnalysisFinished emits the analysis outcome.
func (a *App) AnalysisFinished(analysis domain.Analysis) {
	a.send(eventAnalysis, analysis)
}

// SessionError emits backend errors to the UI.
func (a *App) SessionError(code domain.ErrorCode, detail string) {
	a.send(eventError, map[string]string{
		"code":    string(code),
		"message": errorMessage(code, detail),
		"detail":  detail,
	})
}

func sessionReasonMessage(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonReady:
		return "Ready to record"
	case domain.SessionReasonRecordingStarted:
		return "Recording..."
	case domain.SessionReasonRecordingPaused:
		return "Paused"
	case domain.SessionReasonRecordingResumed:
		return "Recording..."
	case domain.SessionReasonRecordingStopped:
		return "Recording stopped"
	case domain.SessionReasonRecognitionFailed:
		return "Recording stopped by a recognition error"
	case domain.SessionReasonAnalysisStarted:
		return "Analyzing..."
	case domain.SessionReasonAnalysisCompleted:
		return "Analysis complete"
	case domain.SessionReasonAnalysisFallback:
		return "Analysis failed - please try again"
	case domain.SessionReasonLanguageChanged:
		return "Language changed"
	case domain.SessionReasonSessionReset:
		return "Session cleared"
	case domain.SessionReasonSpeechUnavailable:
		return "Speech recognition is not available"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeCapability:
		return "Speech recognition is not supported here"
	case domain.ErrorCodeRecognition:
		return "Speech recognition error"
	case domain.ErrorCodeAudioStop:
		return "Audio stop issue"
	case domain.ErrorCodeAudioStream:
		return "Audio streaming issue"
	case domain.ErrorCodeAnalysis:
		return "Analysis failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}

// endpointHost keeps only the host of the analysis endpoint for display.
func endpointHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return parsed.Host
}
