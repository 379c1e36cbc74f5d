package domain

// ViewKind is one of the four mutually exclusive result panel renderings.
type ViewKind string

const (
	ViewEmpty     ViewKind = "empty"
	ViewAnalyzing ViewKind = "analyzing"
	ViewPreview   ViewKind = "preview"
	ViewResult    ViewKind = "result"
)

// ViewField is a labelled single-line value.
type ViewField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ViewSection is a titled block of long-form text.
type ViewSection struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// View is the derived, render-ready state of the result panel.
type View struct {
	Kind       ViewKind      `json:"kind"`
	Title      string        `json:"title"`
	Message    string        `json:"message,omitempty"`
	Transcript string        `json:"transcript,omitempty"`
	Patient    []ViewField   `json:"patient,omitempty"`
	Symptoms   []string      `json:"symptoms,omitempty"`
	Sections   []ViewSection `json:"sections,omitempty"`
	FollowUp   string        `json:"followUp,omitempty"`
	Disclaimer string        `json:"disclaimer,omitempty"`
}
