package analysis

import (
	"encoding/json"
	"fmt"

	"github.com/Prince-Tagadiya/MediClarify/internal/types"
)

// systemInstruction encodes the safety rules shared by every analysis
// call. Kept as one fixed block so both phases and the chat surface stay
// consistent about what the model may and may not say.
const systemInstruction = `
You are a helpful, non-diagnostic AI assistant designed to explain medical documents to laypeople.
Your task is to analyze medical documents (blood tests, X-rays, prescriptions, PDF reports) and user notes.

STRICT RULES:
1. DO NOT provide medical advice, diagnoses, or treatment plans.
2. DO NOT recommend specific medicines.
3. Use safe, educational language (e.g., "levels appear high", "this parameter generally relates to...").
4. For X-rays/Scans: Describe visible patterns/densities without claiming disease names. Use "may suggest" or "could indicate".
5. For Prescriptions: Identify medicine names and general purpose (e.g., "pain reliever") and clarify dosage timing.
6. REPORT COMPARISON: If two documents are provided, create a structured comparison table AND a concise summary of trends.
7. HEALTH SCORE: Calculate a health score (0-100) based on the number of normal vs abnormal parameters. 100 is perfect health (all normal).
8. CONCLUSION: Write a safe summary of improvements or declines.
9. DOCUMENT TYPE: Identify the specific type of document (e.g., "Complete Blood Count", "Lipid Profile", "X-Ray Chest", "Prescription", "General Medical Report").

OUTPUT FORMAT:
Return a JSON object matching the requested schema exactly.
`

const detectPrompt = `Classify the attached medical document into exactly one category:
- "lab" for laboratory reports (blood tests, urine tests, panels with values and ranges)
- "prescription" for prescriptions and medication lists
- "radiology" for X-rays, CT, MRI, ultrasound and other scans

Return JSON with the single field "category".`

func extractionPrompt(category types.DocumentCategory, notes string, twoDocs bool) string {
	p := fmt.Sprintf(`Analyze the provided medical document(s).
Expected category: %q.
User Notes: %q.

Tasks:
1. Identify the specific Document Type (e.g. "Complete Blood Count", "Lipid Profile").
2. Extract patient info (Name, Age, Gender, Date); use "Unknown" for anything missing.
3. For lab reports: extract test values, units, and reference ranges into extractedValues.
4. For prescriptions: extract medicine name, dosage, duration, and type into medicines.
5. For scans: list findings with location and significance in radiologyFindings. For any focal
   abnormality, estimate a boundingBox as [yMin, xMin, yMax, xMax] on a 0-1000 scale.
6. Classify each parameter's status (High/Low/Normal/Slightly Abnormal/Unknown) in indicators.
7. Write a brief, friendly summary of the document type and contents.

Remember: NO DIAGNOSIS.`, category, notes)
	if twoDocs {
		p += "\n\nTwo documents are attached; the first is the current report, the second the previous one. Extract values from the CURRENT report."
	}
	return p
}

func insightPrompt(extracted types.AnalysisSnapshot, notes string, twoDocs bool) string {
	// Replaying the extraction keeps this call grounded in phase one's
	// output instead of a fresh, possibly divergent read of the files.
	ctxJSON, _ := json.MarshalIndent(extracted, "", "  ")
	p := fmt.Sprintf(`The documents were already analyzed; the extracted data is below.
Ground every answer in this extraction, not a re-reading of the documents.

[EXTRACTED DATA]
%s

User Notes: %q.

Tasks:
1. Provide a simple educational explanation for each extracted parameter.
2. Calculate the Health Score (0-100). Deduct points for each High/Low/Slightly Abnormal indicator.
3. Provide general wellness suggestions (lifestyle, hydration, sleep, nutrition). Non-medical.
4. Suggest questions for the doctor. Each question must reference a specific finding or
   abnormal parameter from the extracted data above, never generic advice.
5. Write a safe conclusion about the overall picture.

Remember: NO DIAGNOSIS.`, ctxJSON, notes)
	if twoDocs {
		p += `

Two reports were provided (current first, previous second):
6. Build the comparisonTable for parameters found in both, with the trend per parameter.
7. Summarize the key trends in comparisonSummary.
8. Calculate health scores for BOTH reports, the signed difference, and the
   Improved/Declined/Stable status.`
	}
	return p
}
