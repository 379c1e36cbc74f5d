package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"pranik/internal/domain"
)

// transcriptAggregator folds recognition windows into the editable transcript.
// Each pass starts from a base (the transcript when the pass began); the
// visible transcript is always join(base, window).
type transcriptAggregator struct {
	base string

	window      string
	windowFinal string

	// Window text already folded into base by a manual edit.
	skip      string
	skipFinal string
}

func (a *transcriptAggregator) begin(base string) {
	*a = transcriptAggregator{base: base}
}

// Apply records a window update and returns the merged transcript.
func (a *transcriptAggregator) Apply(segment domain.TranscriptSegment) string {
	a.window = segment.Text
	if segment.IsFinal {
		a.windowFinal = segment.Text
	}
	return joinTranscript(a.base, a.visible(segment.Text))
}

// rebase makes an edited transcript the new base. Window text seen so far is
// considered part of the edit and is not appended again.
func (a *transcriptAggregator) rebase(text string) {
	a.base = text
	a.skip = a.window
	a.skipFinal = a.windowFinal
}

func (a *transcriptAggregator) visible(window string) string {
	switch {
	case a.skip == "":
		return window
	case strings.HasPrefix(window, a.skip):
		return strings.TrimSpace(window[len(a.skip):])
	case a.skipFinal != "" && strings.HasPrefix(window, a.skipFinal):
		// The interim was revised; only the locked finals are known to be in base.
		return strings.TrimSpace(window[len(a.skipFinal):])
	default:
		return window
	}
}

func joinTranscript(base, window string) string {
	if base == "" {
		return window
	}
	if window == "" {
		return base
	}
	if last, _ := utf8.DecodeLastRuneInString(base); unicode.IsSpace(last) {
		return base + window
	}
	return base + " " + window
}
