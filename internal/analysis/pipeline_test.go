package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prince-Tagadiya/MediClarify/internal/llm"
	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

const extractionReply = `{
  "documentType": "Complete Blood Count",
  "patientInfo": {"name": "Jane Doe", "age": "34", "gender": "F", "report_date": "2025-01-02", "confidence": "92%"},
  "extractedValues": [
    {"parameter": "Hemoglobin", "value": "10.9", "unit": "g/dL", "ref_range": "12-15"},
    {"parameter": "WBC", "value": "6.1", "unit": "10^3/uL", "ref_range": "4-11"}
  ],
  "indicators": [
    {"parameter": "Hemoglobin", "status": "Low"},
    {"parameter": "WBC", "status": "Normal"}
  ],
  "summary": "A routine blood count with one low value."
}`

const insightReply = `{
  "simpleExplanations": [
    {"parameter": "Hemoglobin", "text": "Hemoglobin carries oxygen in your blood."}
  ],
  "comparisonTable": [
    {"parameter": "Hemoglobin", "oldValue": "10.1", "newValue": "10.9", "trend": "Increase"}
  ],
  "comparisonSummary": "Hemoglobin moved toward the reference range.",
  "healthScore": {"currentScore": 78, "previousScore": 70, "difference": 8, "status": "Improved"},
  "conclusion": "The overall picture appears to be improving.",
  "wellnessSuggestions": ["Stay hydrated and keep a regular sleep schedule."],
  "doctorQuestions": ["Could my low hemoglobin explain feeling tired?"]
}`

func labRequest(docs int) Request {
	documents := []types.Document{
		{Name: "current.pdf", MIMEType: "application/pdf", Data: []byte("pdf-current")},
		{Name: "previous.pdf", MIMEType: "application/pdf", Data: []byte("pdf-previous")},
	}
	return Request{
		Documents: documents[:docs],
		Notes:     "felt tired",
		Category:  types.CategoryLab,
	}
}

func TestAnalyzeTwoPhases(t *testing.T) {
	fake := llm.NewFakeClient(
		llm.FakeReply{JSON: json.RawMessage(extractionReply)},
		llm.FakeReply{JSON: json.RawMessage(insightReply)},
	)
	stream := (&Pipeline{LLM: fake}).Analyze(labRequest(2))
	assert.Equal(t, PhaseNotStarted, stream.Phase())

	first, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, PhaseExtracted, stream.Phase())
	assert.Equal(t, "Complete Blood Count", first.DocumentType)
	assert.NotEmpty(t, first.ExtractedValues)
	assert.Nil(t, first.HealthScore)
	assert.Empty(t, first.DoctorQuestions)

	second, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, PhaseComplete, stream.Phase())

	// Merged: extraction fields intact, insight fields overlaid.
	assert.Equal(t, "Complete Blood Count", second.DocumentType)
	assert.Len(t, second.ExtractedValues, 2)
	require.NotNil(t, second.HealthScore)
	assert.Equal(t, 78, second.HealthScore.CurrentScore)
	require.NotNil(t, second.HealthScore.PreviousScore)
	assert.Equal(t, 70, *second.HealthScore.PreviousScore)
	assert.Contains(t, []types.ScoreStatus{types.ScoreImproved, types.ScoreDeclined, types.ScoreStable}, second.HealthScore.Status)
	assert.NotEmpty(t, second.ComparisonTable)
	assert.NotEmpty(t, second.ComparisonSummary)

	// Sequence over.
	third, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, third)

	require.Equal(t, 2, fake.Calls())
	// Both calls carry the documents for visual grounding.
	assert.Len(t, fake.Request(0).Attachments, 2)
	assert.Len(t, fake.Request(1).Attachments, 2)
	// The insight prompt is grounded in the extraction, not a re-read.
	assert.Contains(t, fake.Request(1).Prompt, "Complete Blood Count")
	assert.Contains(t, fake.Request(1).Prompt, "Hemoglobin")
}

func TestAnalyzeStepTwoNotIssuedUntilPulled(t *testing.T) {
	fake := llm.NewFakeClient(
		llm.FakeReply{JSON: json.RawMessage(extractionReply)},
		llm.FakeReply{JSON: json.RawMessage(insightReply)},
	)
	stream := (&Pipeline{LLM: fake}).Analyze(labRequest(1))

	_, err := stream.Next(context.Background())
	require.NoError(t, err)

	// The consumer has not pulled again; no insight request may exist.
	assert.Equal(t, 1, fake.Calls())
}

func TestAnalyzeExtractionFailureIsFatal(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeReply{Err: errors.New("service unavailable")})
	stream := (&Pipeline{LLM: fake}).Analyze(labRequest(1))

	snap, err := stream.Next(context.Background())
	assert.Nil(t, snap)
	require.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, PhaseExtractionFailed, stream.Phase())
	assert.True(t, stream.Phase().Terminal())

	// The stream is over; no insight request follows.
	snap, err = stream.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
	assert.Equal(t, 1, fake.Calls())
}

func TestAnalyzeUnparseableExtractionIsFatal(t *testing.T) {
	fake := llm.NewFakeClient(llm.FakeReply{JSON: json.RawMessage(`{"patientInfo": {}}`)})
	stream := (&Pipeline{LLM: fake}).Analyze(labRequest(1))

	_, err := stream.Next(context.Background())
	require.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, 1, fake.Calls())
}

func TestAnalyzeInsightFailureTruncates(t *testing.T) {
	fake := llm.NewFakeClient(
		llm.FakeReply{JSON: json.RawMessage(extractionReply)},
		llm.FakeReply{Err: errors.New("deadline exceeded")},
	)
	stream := (&Pipeline{LLM: fake}).Analyze(labRequest(1))

	first, err := stream.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, PhaseEndedAfterExtraction, stream.Phase())
	assert.True(t, stream.Phase().Terminal())
}

func TestAnalyzeInsightGarbageTruncates(t *testing.T) {
	fake := llm.NewFakeClient(
		llm.FakeReply{JSON: json.RawMessage(extractionReply)},
		llm.FakeReply{JSON: json.RawMessage(`not json at all`)},
	)
	stream := (&Pipeline{LLM: fake}).Analyze(labRequest(1))

	_, err := stream.Next(context.Background())
	require.NoError(t, err)

	second, err := stream.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, second)
	assert.Equal(t, PhaseEndedAfterExtraction, stream.Phase())
}

func TestParseExtractionFillsUnknowns(t *testing.T) {
	snap, err := parseExtraction(json.RawMessage(`{
	  "documentType": "General Medical Report",
	  "patientInfo": {"name": "", "age": "", "gender": "", "report_date": "", "confidence": ""},
	  "indicators": []
	}`))
	require.NoError(t, err)
	require.NotNil(t, snap.PatientInfo)
	assert.Equal(t, "Unknown", snap.PatientInfo.Name)
	assert.Equal(t, "Unknown", snap.PatientInfo.Age)
	assert.Equal(t, "Unknown", snap.PatientInfo.Gender)
	assert.Equal(t, "Unknown", snap.PatientInfo.ReportDate)
}

func TestParseExtractionSanitizesBoundingBoxes(t *testing.T) {
	snap, err := parseExtraction(json.RawMessage(`{
	  "documentType": "X-Ray Chest",
	  "patientInfo": {"name": "Unknown", "age": "Unknown", "gender": "Unknown", "report_date": "Unknown", "confidence": "Unknown"},
	  "radiologyFindings": [
	    {"location": "Right lower lobe", "finding": "Increased density", "significance": "may suggest consolidation", "boundingBox": [120, -5, 1400, 610]},
	    {"location": "Cardiac silhouette", "finding": "Within normal limits", "significance": "routine", "boundingBox": [1, 2]}
	  ],
	  "indicators": []
	}`))
	require.NoError(t, err)
	require.Len(t, snap.RadiologyFindings, 2)
	assert.Equal(t, []int{120, 0, 1000, 610}, snap.RadiologyFindings[0].BoundingBox)
	assert.Nil(t, snap.RadiologyFindings[1].BoundingBox)
}

func TestExtractionPromptMentionsCategoryAndNotes(t *testing.T) {
	p := extractionPrompt(types.CategoryRadiology, "had a fever yesterday", false)
	assert.Contains(t, p, `"radiology"`)
	assert.Contains(t, p, "had a fever yesterday")
	assert.False(t, strings.Contains(p, "previous one"))

	p = extractionPrompt(types.CategoryLab, "", true)
	assert.Contains(t, p, "Two documents are attached")
}
