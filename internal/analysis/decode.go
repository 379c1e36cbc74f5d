package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"pranik/internal/domain"
)

// ErrSchema reports a response that is valid JSON but not a complete report.
var ErrSchema = errors.New("response does not match analysis schema")

type wirePatient struct {
	Name   *string `json:"name"`
	Age    *string `json:"age"`
	Gender *string `json:"gender"`
}

type wireDetails struct {
	PossibleCauses *string `json:"possibleCauses"`
	Medications    *string `json:"medications"`
	Prescriptions  *string `json:"prescriptions"`
	Lifestyle      *string `json:"lifestyle"`
}

type wireResult struct {
	PatientInfo      *wirePatient `json:"patientInfo"`
	Symptoms         *[]string    `json:"symptoms"`
	DetailedAnalysis *wireDetails `json:"detailedAnalysis"`
	FollowUp         *string      `json:"followUp"`
}

// Decode parses fence-free text into a fully populated result. Unknown keys
// are ignored; missing or null keys fail with ErrSchema.
func Decode(text string) (domain.AnalysisResult, domain.AnalysisFailure, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	var wire wireResult
	if err := dec.Decode(&wire); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.AnalysisResult{}, domain.AnalysisFailureSchema, fmt.Errorf("%w: %v", ErrSchema, err)
		}
		return domain.AnalysisResult{}, domain.AnalysisFailureParse, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.AnalysisResult{}, domain.AnalysisFailureParse, errors.New("invalid JSON: unexpected data after object")
	}

	if missing := wire.missing(); len(missing) > 0 {
		return domain.AnalysisResult{}, domain.AnalysisFailureSchema, fmt.Errorf("%w: missing %s", ErrSchema, strings.Join(missing, ", "))
	}

	return domain.AnalysisResult{
		PatientInfo: domain.PatientInfo{
			Name:   *wire.PatientInfo.Name,
			Age:    *wire.PatientInfo.Age,
			Gender: *wire.PatientInfo.Gender,
		},
		Symptoms: append([]string{}, (*wire.Symptoms)...),
		DetailedAnalysis: domain.DetailedAnalysis{
			PossibleCauses: *wire.DetailedAnalysis.PossibleCauses,
			Medications:    *wire.DetailedAnalysis.Medications,
			Prescriptions:  *wire.DetailedAnalysis.Prescriptions,
			Lifestyle:      *wire.DetailedAnalysis.Lifestyle,
		},
		FollowUp: *wire.FollowUp,
	}, domain.AnalysisFailureNone, nil
}

func (w wireResult) missing() []string {
	var out []string
	if w.PatientInfo == nil {
		out = append(out, "patientInfo")
	} else {
		if w.PatientInfo.Name == nil {
			out = append(out, "patientInfo.name")
		}
		if w.PatientInfo.Age == nil {
			out = append(out, "patientInfo.age")
		}
		if w.PatientInfo.Gender == nil {
			out = append(out, "patientInfo.gender")
		}
	}
	if w.Symptoms == nil {
		out = append(out, "symptoms")
	}
	if w.DetailedAnalysis == nil {
		out = append(out, "detailedAnalysis")
	} else {
		if w.DetailedAnalysis.PossibleCauses == nil {
			out = append(out, "detailedAnalysis.possibleCauses")
		}
		if w.DetailedAnalysis.Medications == nil {
			out = append(out, "detailedAnalysis.medications")
		}
		if w.DetailedAnalysis.Prescriptions == nil {
			out = append(out, "detailedAnalysis.prescriptions")
		}
		if w.DetailedAnalysis.Lifestyle == nil {
			out = append(out, "detailedAnalysis.lifestyle")
		}
	}
	if w.FollowUp == nil {
		out = append(out, "followUp")
	}
	return out
}
