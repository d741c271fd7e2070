package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexStatusFallsBackToUnknown(t *testing.T) {
	ix := BuildIndex(sampleExtraction())

	assert.Equal(t, StatusLow, ix.StatusOf("Hemoglobin"))
	assert.Equal(t, StatusNormal, ix.StatusOf("WBC"))
	// Platelets has a value but no indicator row.
	assert.Equal(t, StatusUnknown, ix.StatusOf("Platelets"))
	// Completely unknown parameter.
	assert.Equal(t, StatusUnknown, ix.StatusOf("Ferritin"))
}

func TestIndexExplanationLookup(t *testing.T) {
	snap := sampleExtraction()
	snap.SimpleExplanations = []Explanation{
		{Parameter: "Hemoglobin", Text: "Carries oxygen."},
	}
	ix := BuildIndex(snap)

	assert.Equal(t, "Carries oxygen.", ix.ExplanationOf("Hemoglobin"))
	assert.Empty(t, ix.ExplanationOf("WBC"))
}

func TestIndexPreservesExtractionOrder(t *testing.T) {
	ix := BuildIndex(sampleExtraction())
	assert.Equal(t, []string{"Hemoglobin", "WBC", "Platelets", "RBC", "Hematocrit"}, ix.Parameters())
}

func TestIndexAbnormalParameters(t *testing.T) {
	ix := BuildIndex(sampleExtraction())
	assert.Equal(t, []string{"Hemoglobin", "Hematocrit"}, ix.AbnormalParameters())
}

func TestSectionForIsCategoryDriven(t *testing.T) {
	snap := AnalysisSnapshot{
		ExtractedValues:   []ExtractedValue{{Parameter: "Hemoglobin"}},
		Medicines:         []Medicine{{Name: "Paracetamol"}},
		RadiologyFindings: []RadiologyFinding{{Location: "Right lower lobe"}},
	}

	lab, ok := SectionFor(CategoryLab, snap).(LabSection)
	assert.True(t, ok)
	assert.Len(t, lab.Values, 1)

	rx, ok := SectionFor(CategoryPrescription, snap).(PrescriptionSection)
	assert.True(t, ok)
	assert.Equal(t, "Paracetamol", rx.Medicines[0].Name)

	scan, ok := SectionFor(CategoryRadiology, snap).(RadiologySection)
	assert.True(t, ok)
	assert.Equal(t, "Right lower lobe", scan.Findings[0].Location)
}

func TestParseCategoryDefaultsToLab(t *testing.T) {
	assert.Equal(t, CategoryLab, ParseCategory("lab"))
	assert.Equal(t, CategoryRadiology, ParseCategory("radiology"))
	assert.Equal(t, CategoryPrescription, ParseCategory("prescription"))
	assert.Equal(t, CategoryLab, ParseCategory(""))
	assert.Equal(t, CategoryLab, ParseCategory("x-ray"))
}
