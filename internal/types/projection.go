package types

// Section is the category-specific slice of a snapshot, expressed as a
// closed variant so the rendering boundary switches on the concrete type
// instead of probing strings. Adding a category means adding a variant
// here and updating SectionFor.
type Section interface{ isSection() }

type LabSection struct {
	Values []ExtractedValue `json:"values"`
}

type PrescriptionSection struct {
	Medicines []Medicine `json:"medicines"`
}

type RadiologySection struct {
	Findings []RadiologyFinding `json:"findings"`
}

func (LabSection) isSection()          {}
func (PrescriptionSection) isSection() {}
func (RadiologySection) isSection()    {}

// SectionFor projects the snapshot onto its category's section.
func SectionFor(c DocumentCategory, s AnalysisSnapshot) Section {
	switch c {
	case CategoryPrescription:
		return PrescriptionSection{Medicines: s.Medicines}
	case CategoryRadiology:
		return RadiologySection{Findings: s.RadiologyFindings}
	case CategoryLab:
		return LabSection{Values: s.ExtractedValues}
	}
	return LabSection{Values: s.ExtractedValues}
}
