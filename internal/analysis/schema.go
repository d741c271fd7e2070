package analysis

import genai "google.golang.org/genai"

// Response schemas for the three structured calls. The extraction schema
// carries all three category sections; the model fills whichever apply.

var categorySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"category": {
			Type: genai.TypeString,
			Enum: []string{"lab", "prescription", "radiology"},
		},
	},
	Required: []string{"category"},
}

var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"documentType": {
			Type:        genai.TypeString,
			Description: "Specific type of the document analyzed (e.g., 'Complete Blood Count', 'X-Ray Chest')",
		},
		"patientInfo": {
			Type:        genai.TypeObject,
			Description: "Extracted patient information",
			Properties: map[string]*genai.Schema{
				"name":        {Type: genai.TypeString, Description: "Patient Name or 'Unknown'"},
				"age":         {Type: genai.TypeString, Description: "Patient Age or 'Unknown'"},
				"gender":      {Type: genai.TypeString, Description: "Patient Gender or 'Unknown'"},
				"report_date": {Type: genai.TypeString, Description: "Date of report or 'Unknown'"},
				"confidence":  {Type: genai.TypeString, Description: "Confidence score of extraction (0-100%)"},
			},
			Required: []string{"name", "age", "gender", "report_date", "confidence"},
		},
		"extractedValues": {
			Type:        genai.TypeArray,
			Description: "Values extracted from a lab report",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"parameter": {Type: genai.TypeString, Description: "Name of the test or parameter"},
					"value":     {Type: genai.TypeString, Description: "The result value"},
					"unit":      {Type: genai.TypeString, Description: "The unit of measurement"},
					"ref_range": {Type: genai.TypeString, Description: "The reference range provided in the doc"},
				},
				Required: []string{"parameter", "value", "unit", "ref_range"},
			},
		},
		"medicines": {
			Type:        genai.TypeArray,
			Description: "Medicines found on a prescription",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":     {Type: genai.TypeString},
					"dosage":   {Type: genai.TypeString},
					"duration": {Type: genai.TypeString},
					"type":     {Type: genai.TypeString, Description: "General purpose, e.g. 'pain reliever'"},
				},
				Required: []string{"name", "dosage", "duration", "type"},
			},
		},
		"radiologyFindings": {
			Type:        genai.TypeArray,
			Description: "Findings observed in a scan",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"location":     {Type: genai.TypeString},
					"finding":      {Type: genai.TypeString},
					"significance": {Type: genai.TypeString},
					"boundingBox": {
						Type:        genai.TypeArray,
						Description: "For focal abnormalities: [yMin, xMin, yMax, xMax] on a 0-1000 scale",
						Items:       &genai.Schema{Type: genai.TypeInteger},
					},
				},
				Required: []string{"location", "finding", "significance"},
			},
		},
		"indicators": {
			Type:        genai.TypeArray,
			Description: "Classification of values",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"parameter": {Type: genai.TypeString},
					"status":    {Type: genai.TypeString, Enum: []string{"High", "Low", "Normal", "Slightly Abnormal", "Unknown"}},
				},
				Required: []string{"parameter", "status"},
			},
		},
		"summary": {
			Type:        genai.TypeString,
			Description: "A brief, friendly summary of the document type and contents",
		},
	},
	Required: []string{"documentType", "patientInfo", "indicators"},
}

var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"simpleExplanations": {
			Type:        genai.TypeArray,
			Description: "Simple, layperson explanations of what the parameters mean",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"parameter": {Type: genai.TypeString},
					"text":      {Type: genai.TypeString, Description: "Educational explanation of the parameter"},
				},
				Required: []string{"parameter", "text"},
			},
		},
		"comparisonTable": {
			Type:        genai.TypeArray,
			Description: "If two reports are provided, parameters found in both with trend",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"parameter": {Type: genai.TypeString},
					"oldValue":  {Type: genai.TypeString},
					"newValue":  {Type: genai.TypeString},
					"trend":     {Type: genai.TypeString, Enum: []string{"Increase", "Decrease", "Stable", "Unknown"}},
				},
			},
		},
		"comparisonSummary": {
			Type:        genai.TypeString,
			Description: "Concise summary of the trends between the two reports. Only with two reports.",
		},
		"healthScore": {
			Type:        genai.TypeObject,
			Description: "Calculated health score based on parameters",
			Properties: map[string]*genai.Schema{
				"currentScore":  {Type: genai.TypeInteger, Description: "Score 0-100 for current report"},
				"previousScore": {Type: genai.TypeInteger, Description: "Score 0-100 for previous report (if available)"},
				"difference":    {Type: genai.TypeInteger, Description: "Difference between new and old score"},
				"status":        {Type: genai.TypeString, Enum: []string{"Improved", "Declined", "Stable", "Unknown"}},
			},
			Required: []string{"currentScore", "status"},
		},
		"conclusion": {
			Type:        genai.TypeString,
			Description: "Safe summary about improvement, decline, or overall status",
		},
		"wellnessSuggestions": {
			Type:        genai.TypeArray,
			Description: "General lifestyle, hydration, sleep, and nutrition tips. Non-medical.",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
		"doctorQuestions": {
			Type:        genai.TypeArray,
			Description: "Questions tied to the specific findings, for the user's doctor",
			Items:       &genai.Schema{Type: genai.TypeString},
		},
	},
	Required: []string{"simpleExplanations", "healthScore", "wellnessSuggestions", "doctorQuestions"},
}
