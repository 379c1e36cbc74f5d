package speech

import (
	"strings"
	"sync"

	"pranik/internal/domain"
)

// utteranceWindow accumulates provider events for one recognition pass.
// Finals are locked in; the interim is replaced by every partial revision.
type utteranceWindow struct {
	mu      sync.Mutex
	finals  []string
	interim string
}

func newUtteranceWindow() *utteranceWindow {
	return &utteranceWindow{}
}

// Add applies an event and returns the whole window text when it changed.
func (w *utteranceWindow) Add(event domain.TranscriptEvent) (domain.TranscriptSegment, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	text := strings.TrimSpace(event.Text)
	if event.Kind == domain.TranscriptKindFinal {
		if text == "" {
			return domain.TranscriptSegment{}, false
		}
		w.finals = append(w.finals, text)
		w.interim = ""
		return domain.TranscriptSegment{Text: w.textLocked(), IsFinal: true}, true
	}

	if text == "" || text == w.interim {
		return domain.TranscriptSegment{}, false
	}
	w.interim = text
	return domain.TranscriptSegment{Text: w.textLocked(), IsFinal: false}, true
}

func (w *utteranceWindow) textLocked() string {
	parts := w.finals
	if w.interim != "" {
		parts = append(parts[:len(parts):len(parts)], w.interim)
	}
	return strings.Join(parts, " ")
}
