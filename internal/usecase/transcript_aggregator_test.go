package usecase

import (
	"testing"

	"pranik/internal/domain"
)

func TestJoinTranscript(t *testing.T) {
	t.Parallel()

	cases := []struct {
		base, window, want string
	}{
		{"", "", ""},
		{"", "hello", "hello"},
		{"hello", "", "hello"},
		{"hello", "world", "hello world"},
		{"hello ", "world", "hello world"},
		{"hello\n", "world", "hello\nworld"},
		{"నమస్కారం", "doctor", "నమస్కారం doctor"},
	}
	for _, tc := range cases {
		if got := joinTranscript(tc.base, tc.window); got != tc.want {
			t.Fatalf("join(%q, %q) = %q, want %q", tc.base, tc.window, got, tc.want)
		}
	}
}

func TestTranscriptAggregatorKeepsBaseAcrossPasses(t *testing.T) {
	t.Parallel()

	var agg transcriptAggregator
	agg.begin("")
	agg.Apply(domain.TranscriptSegment{Text: "patient has"})
	first := agg.Apply(domain.TranscriptSegment{Text: "patient has fever", IsFinal: true})
	if first != "patient has fever" {
		t.Fatalf("unexpected first pass transcript: %q", first)
	}

	agg.begin(first)
	if got := agg.Apply(domain.TranscriptSegment{Text: "since monday"}); got != "patient has fever since monday" {
		t.Fatalf("unexpected second pass transcript: %q", got)
	}
}

func TestTranscriptAggregatorRebaseSkipsEditedWindow(t *testing.T) {
	t.Parallel()

	var agg transcriptAggregator
	agg.begin("")
	agg.Apply(domain.TranscriptSegment{Text: "patient has fever", IsFinal: true})

	agg.rebase("Patient has a high fever.")
	if got := agg.Apply(domain.TranscriptSegment{Text: "patient has fever and"}); got != "Patient has a high fever. and" {
		t.Fatalf("unexpected transcript after rebase: %q", got)
	}
}

func TestTranscriptAggregatorRebaseWithRevisedInterim(t *testing.T) {
	t.Parallel()

	var agg transcriptAggregator
	agg.begin("")
	agg.Apply(domain.TranscriptSegment{Text: "cough", IsFinal: true})
	agg.Apply(domain.TranscriptSegment{Text: "cough for too"})

	agg.rebase("dry cough")
	if got := agg.Apply(domain.TranscriptSegment{Text: "cough for two days", IsFinal: true}); got != "dry cough for two days" {
		t.Fatalf("unexpected transcript: %q", got)
	}
}
