// Package resultview derives what the result panel shows from the session
// state. Derive is pure; both front ends render its output.
package resultview

import "pranik/internal/domain"

const (
	EmptyTitle      = "No Analysis Yet"
	EmptyMessage    = `Record your voice and click "Analyze Recording" to see Patient and Doctor Conversation.`
	AnalyzingTitle  = "Analyzing Medical Content"
	AnalyzingMsg    = "AI is extracting comprehensive medical insights and recommendations..."
	PreviewTitle    = "Transcription Preview"
	PreviewHint     = `Click "Analyze Recording" to extract detailed medical insights`
	NoTranscription = "No transcription available yet."
	ResultTitle     = "Medical Analysis"
	Disclaimer      = "This analysis is generated for educational purposes only and is not a medical diagnosis. " +
		"Always consult a qualified healthcare professional before taking any medication."
)

// Input is everything the result panel depends on.
type Input struct {
	Transcript string
	Result     *domain.AnalysisResult
	Analyzing  bool
}

// InputFromSnapshot adapts a session snapshot.
func InputFromSnapshot(s domain.Snapshot) Input {
	return Input{Transcript: s.Transcript, Result: s.Result, Analyzing: s.Analyzing}
}

// Derive picks the rendering by precedence: analyzing, result, preview, empty.
func Derive(in Input) domain.View {
	switch {
	case in.Analyzing:
		return domain.View{Kind: domain.ViewAnalyzing, Title: AnalyzingTitle, Message: AnalyzingMsg}
	case in.Result != nil:
		return resultView(*in.Result)
	case in.Transcript != "":
		return domain.View{
			Kind:       domain.ViewPreview,
			Title:      PreviewTitle,
			Message:    PreviewHint,
			Transcript: in.Transcript,
		}
	default:
		return domain.View{Kind: domain.ViewEmpty, Title: EmptyTitle, Message: EmptyMessage}
	}
}

func resultView(r domain.AnalysisResult) domain.View {
	return domain.View{
		Kind:  domain.ViewResult,
		Title: ResultTitle,
		Patient: []domain.ViewField{
			{Label: "Name", Value: r.PatientInfo.Name},
			{Label: "Age", Value: r.PatientInfo.Age},
			{Label: "Gender", Value: r.PatientInfo.Gender},
		},
		Symptoms: append([]string{}, r.Symptoms...),
		Sections: []domain.ViewSection{
			{Key: "possibleCauses", Title: "Possible Causes", Body: r.DetailedAnalysis.PossibleCauses},
			{Key: "medications", Title: "Medication Recommendations", Body: r.DetailedAnalysis.Medications},
			{Key: "prescriptions", Title: "Prescription Details", Body: r.DetailedAnalysis.Prescriptions},
			{Key: "lifestyle", Title: "Lifestyle Recommendations", Body: r.DetailedAnalysis.Lifestyle},
		},
		FollowUp:   r.FollowUp,
		Disclaimer: Disclaimer,
	}
}
