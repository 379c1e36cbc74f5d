package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the terminal views.
var (
	ColorRed     = lipgloss.Color("#FF5F5F")
	ColorGreen   = lipgloss.Color("#5FD787")
	ColorYellow  = lipgloss.Color("#FFD75F")
	ColorBlue    = lipgloss.Color("#5FAFFF")
	ColorPurple  = lipgloss.Color("#AF87FF")
	ColorPink    = lipgloss.Color("#FF87D7")
	ColorCyan    = lipgloss.Color("#00FFFF")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#FFFFFF")
)

// Base styles reused by terminal components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	RecordingDotStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	PausedDotStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	IdleDotStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	SymptomBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorWhite).
				Background(ColorRed).
				Padding(0, 1)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDimGray)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorPurple)

	DisclaimerStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Italic(true)
)

// SectionStyle returns the accent style for a result section key.
func SectionStyle(key string) lipgloss.Style {
	color := ColorWhite
	switch key {
	case "possibleCauses":
		color = ColorPurple
	case "medications":
		color = ColorGreen
	case "prescriptions":
		color = ColorBlue
	case "lifestyle":
		color = ColorPink
	case "followUp":
		color = ColorYellow
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}
