package domain

// PatientInfo holds free-text patient details. "Not specified" is allowed.
type PatientInfo struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender string `json:"gender"`
}

// DetailedAnalysis holds the long-form sections of a report.
type DetailedAnalysis struct {
	PossibleCauses string `json:"possibleCauses"`
	Medications    string `json:"medications"`
	Prescriptions  string `json:"prescriptions"`
	Lifestyle      string `json:"lifestyle"`
}

// AnalysisResult is the structured report produced for a transcript.
type AnalysisResult struct {
	PatientInfo      PatientInfo      `json:"patientInfo"`
	Symptoms         []string         `json:"symptoms"`
	DetailedAnalysis DetailedAnalysis `json:"detailedAnalysis"`
	FollowUp         string           `json:"followUp"`
}

// Clone returns a deep copy so callers cannot mutate shared state.
func (r AnalysisResult) Clone() AnalysisResult {
	out := r
	out.Symptoms = append([]string{}, r.Symptoms...)
	return out
}

// ResultSource tells whether a result came from the model or the fallback.
type ResultSource string

const (
	ResultSourceModel    ResultSource = "model"
	ResultSourceFallback ResultSource = "fallback"
)

// AnalysisFailure classifies why the fallback result was used.
type AnalysisFailure string

const (
	AnalysisFailureNone      AnalysisFailure = ""
	AnalysisFailureTransport AnalysisFailure = "transport"
	AnalysisFailureParse     AnalysisFailure = "parse"
	AnalysisFailureSchema    AnalysisFailure = "schema"
)

// Analysis is the outcome of one analysis call. Result is always fully populated.
type Analysis struct {
	ID      string          `json:"id"`
	Result  AnalysisResult  `json:"result"`
	Source  ResultSource    `json:"source"`
	Failure AnalysisFailure `json:"failure,omitempty"`
	Detail  string          `json:"detail,omitempty"`
}

// IsFallback reports whether the result is the fixed fallback.
func (a Analysis) IsFallback() bool {
	return a.Source == ResultSourceFallback
}
