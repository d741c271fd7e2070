package types

// ParameterIndex joins a snapshot's extractedValues, indicators, and
// simpleExplanations by parameter name. The model keys these sections
// loosely by the same string with no guaranteed 1:1 correspondence, so
// every lookup has an explicit Unknown/empty fallback.
type ParameterIndex struct {
	values       map[string]ExtractedValue
	statuses     map[string]IndicatorStatus
	explanations map[string]string
	order        []string
}

// BuildIndex constructs the per-snapshot parameter join. Built once after
// each snapshot update; snapshots are immutable afterwards.
func BuildIndex(s AnalysisSnapshot) *ParameterIndex {
	ix := &ParameterIndex{
		values:       make(map[string]ExtractedValue, len(s.ExtractedValues)),
		statuses:     make(map[string]IndicatorStatus, len(s.Indicators)),
		explanations: make(map[string]string, len(s.SimpleExplanations)),
	}
	for _, v := range s.ExtractedValues {
		if _, seen := ix.values[v.Parameter]; !seen {
			ix.order = append(ix.order, v.Parameter)
		}
		ix.values[v.Parameter] = v
	}
	for _, in := range s.Indicators {
		ix.statuses[in.Parameter] = in.Status
	}
	for _, e := range s.SimpleExplanations {
		ix.explanations[e.Parameter] = e.Text
	}
	return ix
}

// Parameters returns parameter names in extraction order, de-duplicated.
func (ix *ParameterIndex) Parameters() []string { return ix.order }

// StatusOf returns the indicator status for a parameter, StatusUnknown
// when no indicator matched the name.
func (ix *ParameterIndex) StatusOf(parameter string) IndicatorStatus {
	if st, ok := ix.statuses[parameter]; ok {
		return st
	}
	return StatusUnknown
}

// ExplanationOf returns the layperson explanation for a parameter, empty
// when the insight phase produced none for the name.
func (ix *ParameterIndex) ExplanationOf(parameter string) string {
	return ix.explanations[parameter]
}

// ValueOf returns the extracted value row for a parameter.
func (ix *ParameterIndex) ValueOf(parameter string) (ExtractedValue, bool) {
	v, ok := ix.values[parameter]
	return v, ok
}

// AbnormalParameters lists parameters whose indicator is anything other
// than Normal, in extraction order.
func (ix *ParameterIndex) AbnormalParameters() []string {
	var out []string
	for _, p := range ix.order {
		st := ix.StatusOf(p)
		if st != StatusNormal && st != StatusUnknown {
			out = append(out, p)
		}
	}
	return out
}
