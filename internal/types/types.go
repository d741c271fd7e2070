package types

// Documents ----------------------------------------------------------------------

// DocumentCategory selects which optional snapshot sections apply.
// It is fixed per primary document before submission and never changes
// mid-analysis.
type DocumentCategory string

const (
	CategoryLab          DocumentCategory = "lab"
	CategoryPrescription DocumentCategory = "prescription"
	CategoryRadiology    DocumentCategory = "radiology"
)

// ParseCategory maps a raw tag to a DocumentCategory. Unrecognized tags
// fall back to CategoryLab, the safe default everywhere in this system.
func ParseCategory(s string) DocumentCategory {
	switch DocumentCategory(s) {
	case CategoryPrescription:
		return CategoryPrescription
	case CategoryRadiology:
		return CategoryRadiology
	default:
		return CategoryLab
	}
}

// Document is one user-supplied report file held in memory for the session.
type Document struct {
	Name     string `json:"name"`
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// Snapshot subrecords ------------------------------------------------------------

type PatientInfo struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Gender     string `json:"gender"`
	ReportDate string `json:"report_date"`
	Confidence string `json:"confidence"`
}

type ExtractedValue struct {
	Parameter      string `json:"parameter"`
	Value          string `json:"value"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"ref_range"`
}

type Medicine struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Duration string `json:"duration"`
	Type     string `json:"type"`
}

// RadiologyFinding describes one observation in a scan. BoundingBox, when
// present, is [yMin, xMin, yMax, xMax] on the model's 0-1000 coordinate
// grid; focal abnormalities carry one, diffuse observations do not.
type RadiologyFinding struct {
	Location     string `json:"location"`
	Finding      string `json:"finding"`
	Significance string `json:"significance"`
	BoundingBox  []int  `json:"boundingBox,omitempty"`
}

type IndicatorStatus string

const (
	StatusHigh             IndicatorStatus = "High"
	StatusLow              IndicatorStatus = "Low"
	StatusNormal           IndicatorStatus = "Normal"
	StatusSlightlyAbnormal IndicatorStatus = "Slightly Abnormal"
	StatusUnknown          IndicatorStatus = "Unknown"
)

type Indicator struct {
	Parameter string          `json:"parameter"`
	Status    IndicatorStatus `json:"status"`
}

type Explanation struct {
	Parameter string `json:"parameter"`
	Text      string `json:"text"`
}

type Trend string

const (
	TrendIncrease Trend = "Increase"
	TrendDecrease Trend = "Decrease"
	TrendStable   Trend = "Stable"
	TrendUnknown  Trend = "Unknown"
)

type ComparisonRow struct {
	Parameter string `json:"parameter"`
	OldValue  string `json:"oldValue"`
	NewValue  string `json:"newValue"`
	Trend     Trend  `json:"trend"`
}

type ScoreStatus string

const (
	ScoreImproved ScoreStatus = "Improved"
	ScoreDeclined ScoreStatus = "Declined"
	ScoreStable   ScoreStatus = "Stable"
	ScoreUnknown  ScoreStatus = "Unknown"
)

// HealthScore is 0-100, 100 meaning every indicator came back Normal.
// PreviousScore and Difference are only set when two reports were compared.
type HealthScore struct {
	CurrentScore  int         `json:"currentScore"`
	PreviousScore *int        `json:"previousScore,omitempty"`
	Difference    *int        `json:"difference,omitempty"`
	Status        ScoreStatus `json:"status"`
}

// AnalysisSnapshot ---------------------------------------------------------------

// AnalysisSnapshot is the progressively populated analysis result. After
// extraction only the identification, extraction, and indicator sections
// are set; the insight sections arrive with the second phase. Renderers
// must tolerate any subset of the optional sections.
type AnalysisSnapshot struct {
	// Extraction phase.
	DocumentType      string             `json:"documentType,omitempty"`
	PatientInfo       *PatientInfo       `json:"patientInfo,omitempty"`
	ExtractedValues   []ExtractedValue   `json:"extractedValues,omitempty"`
	Medicines         []Medicine         `json:"medicines,omitempty"`
	RadiologyFindings []RadiologyFinding `json:"radiologyFindings,omitempty"`
	Indicators        []Indicator        `json:"indicators,omitempty"`
	Summary           string             `json:"summary,omitempty"`

	// Insight phase.
	SimpleExplanations  []Explanation   `json:"simpleExplanations,omitempty"`
	ComparisonTable     []ComparisonRow `json:"comparisonTable,omitempty"`
	ComparisonSummary   string          `json:"comparisonSummary,omitempty"`
	HealthScore         *HealthScore    `json:"healthScore,omitempty"`
	Conclusion          string          `json:"conclusion,omitempty"`
	WellnessSuggestions []string        `json:"wellnessSuggestions,omitempty"`
	DoctorQuestions     []string        `json:"doctorQuestions,omitempty"`
}

// Chat ---------------------------------------------------------------------------

type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

type ChatTurn struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}

// SuggestionSet holds up to three short follow-up questions. Each chat
// turn replaces the previous set; before any turn it is seeded from the
// snapshot's DoctorQuestions.
type SuggestionSet []string
