package types

// Merge overlays the insight-phase fields of overlay onto base and returns
// the combined snapshot. Base fields survive whenever overlay omits them;
// a section overlay does populate replaces the base's. Neither input is
// mutated.
func Merge(base, overlay AnalysisSnapshot) AnalysisSnapshot {
	out := base

	if overlay.DocumentType != "" {
		out.DocumentType = overlay.DocumentType
	}
	if overlay.PatientInfo != nil {
		out.PatientInfo = overlay.PatientInfo
	}
	if len(overlay.ExtractedValues) > 0 {
		out.ExtractedValues = overlay.ExtractedValues
	}
	if len(overlay.Medicines) > 0 {
		out.Medicines = overlay.Medicines
	}
	if len(overlay.RadiologyFindings) > 0 {
		out.RadiologyFindings = overlay.RadiologyFindings
	}
	if len(overlay.Indicators) > 0 {
		out.Indicators = overlay.Indicators
	}
	if overlay.Summary != "" {
		out.Summary = overlay.Summary
	}

	if len(overlay.SimpleExplanations) > 0 {
		out.SimpleExplanations = overlay.SimpleExplanations
	}
	if len(overlay.ComparisonTable) > 0 {
		out.ComparisonTable = overlay.ComparisonTable
	}
	if overlay.ComparisonSummary != "" {
		out.ComparisonSummary = overlay.ComparisonSummary
	}
	if overlay.HealthScore != nil {
		out.HealthScore = overlay.HealthScore
	}
	if overlay.Conclusion != "" {
		out.Conclusion = overlay.Conclusion
	}
	if len(overlay.WellnessSuggestions) > 0 {
		out.WellnessSuggestions = overlay.WellnessSuggestions
	}
	if len(overlay.DoctorQuestions) > 0 {
		out.DoctorQuestions = overlay.DoctorQuestions
	}

	return out
}
