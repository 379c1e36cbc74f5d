// Package tui is the terminal front end: a bubbletea model over the session
// controller. Controller calls run inside commands, never inside Update, so
// events the controller emits can always reach the program.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"pranik/internal/domain"
	"pranik/internal/resultview"
	"pranik/internal/ui"
)

// Controller is the part of the session controller the terminal drives.
type Controller interface {
	Languages() []domain.Language
	SelectLanguage(code string) error
	StartRecording(ctx context.Context) error
	PauseRecording() error
	ResumeRecording(ctx context.Context) error
	StopRecording() error
	Analyze(ctx context.Context) (domain.Analysis, error)
	Reset() error
	Snapshot() domain.Snapshot
}

// Model is the root bubbletea model for the pranik terminal.
type Model struct {
	ctx        context.Context
	controller Controller
	languages  []domain.Language

	// Session state
	snapshot   domain.Snapshot
	view       domain.View
	elapsed    time.Duration
	statusText string

	// Errors
	errorMessage   string
	errorTransient bool

	// UI state
	width        int
	height       int
	resultScroll int
}

// New creates a Model showing the controller's current state.
func New(ctx context.Context, controller Controller) Model {
	snapshot := controller.Snapshot()
	m := Model{
		ctx:        ctx,
		controller: controller,
		languages:  controller.Languages(),
		statusText: "Ready",
	}
	m.applySnapshot(snapshot)
	if !snapshot.SpeechAvailable {
		m.statusText = "Speech recognition is not available"
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func snapshotCmd(controller Controller) tea.Cmd {
	return func() tea.Msg {
		return SnapshotMsg{Snapshot: controller.Snapshot()}
	}
}

func actionCmd(action string, fn func() error) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Action: action, Err: fn()}
	}
}

func analyzeCmd(ctx context.Context, controller Controller) tea.Cmd {
	return func() tea.Msg {
		_, err := controller.Analyze(ctx)
		return ActionDoneMsg{Action: "analyze", Err: err}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return ClearTransientErrorMsg{}
	})
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case SessionMsg:
		m.statusText = reasonText(msg.Reason)
		return m, snapshotCmd(m.controller)

	case TranscriptMsg:
		m.snapshot.Transcript = msg.Text
		m.view = resultview.Derive(resultview.InputFromSnapshot(m.snapshot))
		return m, nil

	case TickMsg:
		m.elapsed = msg.Elapsed
		return m, nil

	case AnalysisMsg:
		if msg.Analysis.IsFallback() {
			m.errorMessage = "Analysis failed, showing the fallback report"
			m.errorTransient = true
			return m, tea.Batch(snapshotCmd(m.controller), clearTransientErrorCmd())
		}
		return m, snapshotCmd(m.controller)

	case ErrorMsg:
		m.errorMessage = errorText(msg.Code, msg.Detail)
		m.errorTransient = true
		return m, tea.Batch(snapshotCmd(m.controller), clearTransientErrorCmd())

	case SnapshotMsg:
		m.applySnapshot(msg.Snapshot)
		return m, nil

	case ActionDoneMsg:
		if msg.Err != nil {
			m.errorMessage = fmt.Sprintf("%s: %v", msg.Action, msg.Err)
			m.errorTransient = true
			return m, tea.Batch(snapshotCmd(m.controller), clearTransientErrorCmd())
		}
		return m, snapshotCmd(m.controller)

	case ClearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) applySnapshot(snapshot domain.Snapshot) {
	previous := m.view.Kind
	m.snapshot = snapshot
	m.view = resultview.Derive(resultview.InputFromSnapshot(snapshot))
	if m.view.Kind != previous {
		m.resultScroll = 0
	}
	if !snapshot.Recording {
		m.elapsed = time.Duration(snapshot.ElapsedSeconds) * time.Second
	}
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitUpper, KeyCtrlC:
		return m, tea.Quit

	case KeySpace:
		if m.snapshot.Recording {
			return m, actionCmd("stop", m.controller.StopRecording)
		}
		ctx, controller := m.ctx, m.controller
		return m, actionCmd("start", func() error { return controller.StartRecording(ctx) })

	case KeyPause:
		if !m.snapshot.Recording {
			return m, nil
		}
		if m.snapshot.Paused {
			ctx, controller := m.ctx, m.controller
			return m, actionCmd("resume", func() error { return controller.ResumeRecording(ctx) })
		}
		return m, actionCmd("pause", m.controller.PauseRecording)

	case KeyAnalyze:
		if m.snapshot.Analyzing || strings.TrimSpace(m.snapshot.Transcript) == "" {
			return m, nil
		}
		return m, analyzeCmd(m.ctx, m.controller)

	case KeyLanguage:
		next, ok := m.nextLanguage()
		if !ok {
			return m, nil
		}
		controller := m.controller
		return m, actionCmd("language", func() error { return controller.SelectLanguage(next) })

	case KeyReset:
		if m.snapshot.Recording || m.snapshot.Analyzing {
			return m, nil
		}
		return m, actionCmd("reset", m.controller.Reset)

	case KeyScrollDown, KeyArrowDown:
		if m.resultScroll < m.maxResultScroll() {
			m.resultScroll++
		}
		return m, nil

	case KeyScrollUp, KeyArrowUp:
		if m.resultScroll > 0 {
			m.resultScroll--
		}
		return m, nil
	}

	return m, nil
}

func (m Model) nextLanguage() (string, bool) {
	if len(m.languages) == 0 {
		return "", false
	}
	for i, lang := range m.languages {
		if lang.Code == m.snapshot.Language {
			return m.languages[(i+1)%len(m.languages)].Code, true
		}
	}
	return m.languages[0].Code, true
}

func (m Model) currentLanguage() domain.Language {
	for _, lang := range m.languages {
		if lang.Code == m.snapshot.Language {
			return lang
		}
	}
	return domain.Language{Code: m.snapshot.Language, DisplayName: m.snapshot.Language}
}

func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// header, status, two dividers, error bar, footer
	return max(5, m.height-6)
}

func (m Model) transcriptPanelWidth() int {
	if m.width == 0 {
		return 40
	}
	return max(24, m.width*45/100)
}

func (m Model) resultPanelWidth() int {
	if m.width == 0 {
		return 50
	}
	return max(24, m.width-m.transcriptPanelWidth()-3)
}

func (m Model) resultLines() []string {
	return strings.Split(resultview.Render(m.view, m.resultPanelWidth()), "\n")
}

func (m Model) maxResultScroll() int {
	return max(0, len(m.resultLines())-m.contentHeight())
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderMainContent())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	if m.errorMessage != "" {
		sections = append(sections, m.renderErrorBar())
	}
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	lang := m.currentLanguage()
	title := ui.TitleStyle.Render("PRANIK")
	info := ui.DimStyle.Render(" · Medical Voice Assistant · " + lang.DisplayName)
	if lang.NativeName != "" && lang.NativeName != lang.DisplayName {
		info += ui.DimStyle.Render(" (" + lang.NativeName + ")")
	}
	return title + info
}

func (m Model) renderStatusBar() string {
	var dot string
	switch {
	case m.snapshot.Recording && m.snapshot.Paused:
		dot = ui.PausedDotStyle.Render("‖ PAUSED")
	case m.snapshot.Recording:
		dot = ui.RecordingDotStyle.Render("● REC")
	default:
		dot = ui.IdleDotStyle.Render("○ IDLE")
	}

	status := dot + "  " + ui.ValueStyle.Render(resultview.FormatElapsed(m.elapsed))
	if m.snapshot.Analyzing {
		status += "  " + ui.SpinnerStyle.Render("⟳ Analyzing")
	}
	if m.statusText != "" {
		status += "  " + ui.DimStyle.Render(m.statusText)
	}
	return status
}

func (m Model) renderMainContent() string {
	leftW := m.transcriptPanelWidth()
	height := m.contentHeight()

	left := m.renderTranscriptPanel(leftW, height)
	right := m.renderResultPanel(height)
	divider := ui.DividerStyle.Render("│")

	rows := make([]string, 0, height)
	for i := 0; i < height; i++ {
		rows = append(rows, padRight(left[i], leftW)+" "+divider+" "+right[i])
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderTranscriptPanel(width, height int) []string {
	lines := []string{ui.PanelTitleStyle.Render("TRANSCRIPT")}
	contentHeight := height - 1

	transcript := m.snapshot.Transcript
	switch {
	case strings.TrimSpace(transcript) == "" && !m.snapshot.SpeechAvailable:
		lines = append(lines, "", ui.ErrorTextStyle.Render("  Speech recognition is not available."))
	case strings.TrimSpace(transcript) == "" && !m.snapshot.Recording:
		lines = append(lines, "", ui.DimStyle.Render("  Press Space to start recording"))
	default:
		if m.snapshot.Recording && !m.snapshot.Paused {
			transcript += "▌"
		}
		wrapped := resultview.WrapText(transcript, max(10, width-2))
		start := max(0, len(wrapped)-contentHeight)
		for _, l := range wrapped[start:] {
			lines = append(lines, "  "+l)
		}
	}

	return fitHeight(lines, height)
}

func (m Model) renderResultPanel(height int) []string {
	lines := m.resultLines()
	start := min(m.resultScroll, max(0, len(lines)-height))
	return fitHeight(lines[start:], height)
}

func (m Model) renderErrorBar() string {
	return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
}

func (m Model) renderFooter() string {
	var parts []string

	if m.snapshot.Recording {
		parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Stop"))
		if m.snapshot.Paused {
			parts = append(parts, ui.FooterKeyStyle.Render("p")+ui.FooterDescStyle.Render(" Resume"))
		} else {
			parts = append(parts, ui.FooterKeyStyle.Render("p")+ui.FooterDescStyle.Render(" Pause"))
		}
	} else {
		parts = append(parts, ui.FooterKeyStyle.Render("Space")+ui.FooterDescStyle.Render(" Record"))
	}
	parts = append(parts, ui.FooterKeyStyle.Render("Enter")+ui.FooterDescStyle.Render(" Analyze"))
	parts = append(parts, ui.FooterKeyStyle.Render("l")+ui.FooterDescStyle.Render(" Language"))
	parts = append(parts, ui.FooterKeyStyle.Render("x")+ui.FooterDescStyle.Render(" Clear"))
	parts = append(parts, ui.FooterKeyStyle.Render("j/k")+ui.FooterDescStyle.Render(" Scroll"))
	parts = append(parts, ui.FooterKeyStyle.Render("q")+ui.FooterDescStyle.Render(" Quit"))

	return strings.Join(parts, "  ")
}

func reasonText(reason domain.SessionStateReason) string {
	switch reason {
	case domain.SessionReasonReady:
		return "Ready"
	case domain.SessionReasonRecordingStarted, domain.SessionReasonRecordingResumed:
		return "Listening..."
	case domain.SessionReasonAnalysisStarted:
		return "Analyzing medical content..."
	case domain.SessionReasonAnalysisFallback:
		return "Analysis failed"
	default:
		text := strings.ReplaceAll(string(reason), "_", " ")
		if text == "" {
			return ""
		}
		return strings.ToUpper(text[:1]) + text[1:]
	}
}

func errorText(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeCapability:
		return "Speech recognition is not supported here"
	case domain.ErrorCodeRecognition:
		return "Speech recognition stopped: " + detail
	case domain.ErrorCodeAudioStop:
		return "Audio stop issue: " + detail
	case domain.ErrorCodeAudioStream:
		return "Microphone stream lost: " + detail
	case domain.ErrorCodeAnalysis:
		return "Analysis fell back to the default report: " + detail
	default:
		if detail == "" {
			return string(code)
		}
		return detail
	}
}

// Helpers

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func fitHeight(lines []string, height int) []string {
	out := append([]string{}, lines...)
	for len(out) < height {
		out = append(out, "")
	}
	return out[:height]
}
