package resultview

import (
	"fmt"
	"strings"
	"time"

	"pranik/internal/domain"
	"pranik/internal/ui"
)

// Render draws a view as styled terminal text wrapped to width.
func Render(v domain.View, width int) string {
	if width <= 0 {
		width = 60
	}
	textWidth := max(10, width-2)

	var lines []string
	switch v.Kind {
	case domain.ViewAnalyzing:
		lines = append(lines, ui.SpinnerStyle.Render("⟳ ")+ui.PanelTitleStyle.Render(v.Title))
		lines = append(lines, dimWrapped(v.Message, textWidth)...)

	case domain.ViewPreview:
		lines = append(lines, ui.PanelTitleStyle.Render(v.Title), "")
		transcript := v.Transcript
		if strings.TrimSpace(transcript) == "" {
			transcript = NoTranscription
		}
		lines = append(lines, WrapText(transcript, textWidth)...)
		lines = append(lines, "")
		lines = append(lines, dimWrapped(v.Message, textWidth)...)

	case domain.ViewResult:
		lines = append(lines, renderResult(v, textWidth)...)

	default:
		lines = append(lines, ui.PanelTitleStyle.Render(v.Title))
		lines = append(lines, dimWrapped(v.Message, textWidth)...)
	}

	return strings.Join(lines, "\n")
}

func renderResult(v domain.View, width int) []string {
	lines := []string{ui.PanelTitleStyle.Render("Patient Information")}
	for _, f := range v.Patient {
		lines = append(lines, "  "+ui.LabelStyle.Render(f.Label+":")+" "+ui.ValueStyle.Render(f.Value))
	}

	lines = append(lines, "", ui.PanelTitleStyle.Render("Symptoms Identified"))
	if len(v.Symptoms) > 0 {
		lines = append(lines, renderBadges(v.Symptoms, width)...)
	}

	for _, s := range v.Sections {
		lines = append(lines, "", ui.SectionStyle(s.Key).Render(s.Title))
		lines = append(lines, WrapText(s.Body, width)...)
	}

	lines = append(lines, "", ui.SectionStyle("followUp").Render("Follow-up Instructions"))
	lines = append(lines, WrapText(v.FollowUp, width)...)

	if v.Disclaimer != "" {
		lines = append(lines, "")
		for _, l := range WrapText("⚠ "+v.Disclaimer, width) {
			lines = append(lines, ui.DisclaimerStyle.Render(l))
		}
	}
	return lines
}

// renderBadges lays symptom badges out in rows no wider than width.
func renderBadges(symptoms []string, width int) []string {
	var rows []string
	var row string
	rowWidth := 0
	for _, s := range symptoms {
		badge := ui.SymptomBadgeStyle.Render(s)
		w := len([]rune(s)) + 2
		if rowWidth > 0 && rowWidth+1+w > width {
			rows = append(rows, row)
			row, rowWidth = "", 0
		}
		if rowWidth > 0 {
			row += " "
			rowWidth++
		}
		row += badge
		rowWidth += w
	}
	if row != "" {
		rows = append(rows, row)
	}
	return rows
}

func dimWrapped(text string, width int) []string {
	wrapped := WrapText(text, width)
	for i, l := range wrapped {
		wrapped[i] = ui.DimStyle.Render(l)
	}
	return wrapped
}

// FormatElapsed renders a recording duration as mm:ss.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// WrapText splits text into lines of at most width runes, keeping paragraphs.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len([]rune(current))+1+len([]rune(word)) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
