package analysis

import "pranik/internal/domain"

// FailedSymptom is the sentinel symptom carried by the fallback result.
const FailedSymptom = "Analysis failed - please try again"

// NotSpecified is the placeholder for unknown patient details.
const NotSpecified = "Not specified"

// Fallback returns the fixed result substituted when analysis cannot be produced.
func Fallback() domain.AnalysisResult {
	return domain.AnalysisResult{
		PatientInfo: domain.PatientInfo{
			Name:   NotSpecified,
			Age:    NotSpecified,
			Gender: NotSpecified,
		},
		Symptoms: []string{FailedSymptom},
		DetailedAnalysis: domain.DetailedAnalysis{
			PossibleCauses: "Unable to analyze possible causes due to API error. Please consult a healthcare provider for proper medical evaluation.",
			Medications:    "Unable to provide medication recommendations due to analysis failure. Please seek professional medical advice.",
			Prescriptions:  "Unable to generate prescription recommendations. Consult with a qualified healthcare provider for proper medication guidance.",
			Lifestyle:      "General advice: Maintain good hygiene, adequate rest, and proper nutrition. Consult a healthcare provider for specific recommendations.",
		},
		FollowUp: "Please consult with a qualified healthcare provider for proper medical analysis and treatment recommendations.",
	}
}
