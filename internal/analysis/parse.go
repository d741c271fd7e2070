package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

const unknown = "Unknown"

// parseExtraction validates the first-phase reply. A reply that does not
// decode, or that carries no document type, is fatal to the analysis.
func parseExtraction(raw json.RawMessage) (types.AnalysisSnapshot, error) {
	var snap types.AnalysisSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return types.AnalysisSnapshot{}, fmt.Errorf("decode extraction reply: %w", err)
	}
	if snap.DocumentType == "" {
		return types.AnalysisSnapshot{}, fmt.Errorf("extraction reply missing documentType")
	}

	if snap.PatientInfo == nil {
		snap.PatientInfo = &types.PatientInfo{}
	}
	fillUnknown(&snap.PatientInfo.Name)
	fillUnknown(&snap.PatientInfo.Age)
	fillUnknown(&snap.PatientInfo.Gender)
	fillUnknown(&snap.PatientInfo.ReportDate)
	fillUnknown(&snap.PatientInfo.Confidence)

	for i := range snap.RadiologyFindings {
		snap.RadiologyFindings[i].BoundingBox = sanitizeBox(snap.RadiologyFindings[i].BoundingBox)
	}
	return snap, nil
}

// parseInsights decodes the second-phase reply. Callers treat a failure
// here as a truncation, never an error.
func parseInsights(raw json.RawMessage) (types.AnalysisSnapshot, error) {
	var snap types.AnalysisSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return types.AnalysisSnapshot{}, fmt.Errorf("decode insight reply: %w", err)
	}
	return snap, nil
}

func fillUnknown(s *string) {
	if *s == "" {
		*s = unknown
	}
}

// sanitizeBox keeps only well-formed boxes and clamps each coordinate to
// the model's 0-1000 grid. The estimates come straight from the model
// with no other guarantee.
func sanitizeBox(box []int) []int {
	if len(box) != 4 {
		return nil
	}
	out := make([]int, 4)
	for i, v := range box {
		if v < 0 {
			v = 0
		}
		if v > 1000 {
			v = 1000
		}
		out[i] = v
	}
	return out
}
