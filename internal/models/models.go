package models

import "time"

// CatalogRecord is an immutable snapshot of an auction lot as entered by a
// cataloger. The engine never mutates a record; every operation takes a copy
// and returns fresh results. Missing fields are empty strings.
type CatalogRecord struct {
	Category      string  `json:"category"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Condition     string  `json:"condition"`
	Artist        string  `json:"artist,omitempty"`
	Keywords      string  `json:"keywords"`
	EstimateValue float64 `json:"estimate_value"`
	ReserveValue  float64 `json:"reserve_value"`
	// NoRemarksFlag declares the lot has no condition issues worth reporting
	// ("inga anmärkningar"). It must be passed in explicitly; the engine never
	// reads UI state.
	NoRemarksFlag bool `json:"no_remarks"`
}

// Severity of a warning.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// WarningSource identifies which rule family produced a warning.
type WarningSource string

const (
	SourceQuality        WarningSource = "quality"
	SourceFieldGuideline WarningSource = "field_guideline"
	SourceCompliance     WarningSource = "compliance"
)

// Warning is one human-readable finding from the rule-based scorer. Code is a
// stable machine identifier so callers can branch without matching prose.
type Warning struct {
	Field    string        `json:"field" yaml:"field"`
	Code     string        `json:"code" yaml:"code"`
	Message  string        `json:"message" yaml:"message"`
	Severity Severity      `json:"severity" yaml:"severity"`
	Source   WarningSource `json:"source" yaml:"source"`
}

// ScoreResult is the outcome of scoring one record snapshot. Score is always
// clamped to [0,100]; warnings appear in rule evaluation order.
type ScoreResult struct {
	Score    int       `json:"score" yaml:"score"`
	Warnings []Warning `json:"warnings" yaml:"warnings"`
}

// HasCode reports whether any warning carries the given code.
func (r ScoreResult) HasCode(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// FieldTarget names which catalog field a generation or gate request targets.
type FieldTarget string

const (
	TargetTitle       FieldTarget = "title"
	TargetDescription FieldTarget = "description"
	TargetCondition   FieldTarget = "condition"
	TargetKeywords    FieldTarget = "keywords"
	TargetAll         FieldTarget = "all"
)

// GateDecision is the sparse-data gate's verdict for one record and field.
type GateDecision struct {
	NeedsMoreInfo    bool            `json:"needs_more_info"`
	MissingInfoCodes map[string]bool `json:"missing_info_codes"`
	QualityScore     int             `json:"quality_score"`
}

// FindingCategory classifies a hallucination finding.
type FindingCategory string

const (
	FindingLocation    FindingCategory = "location"
	FindingMeasurement FindingCategory = "measurement"
	FindingDamageType  FindingCategory = "damage_type"
)

// HallucinationFinding is one fabricated specific detected by diffing a
// candidate generation against the original field text.
type HallucinationFinding struct {
	Category FindingCategory `json:"category"`
	Text     string          `json:"text"`
}

// FieldValues holds generated catalog text decomposed by field. Empty fields
// were not present in the generation reply.
type FieldValues struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Condition   string `json:"condition,omitempty"`
	Keywords    string `json:"keywords,omitempty"`
}

// CatalogSession tracks one cataloging workflow: the record snapshot under
// review, the latest validation outputs, and any accepted generated text.
type CatalogSession struct {
	ID         string                 `json:"id"`
	Record     CatalogRecord          `json:"record"`
	Score      *ScoreResult           `json:"score,omitempty"`
	Gate       *GateDecision          `json:"gate,omitempty"`
	Generated  *FieldValues           `json:"generated,omitempty"`
	Findings   []HallucinationFinding `json:"findings,omitempty"`
	Provider   string                 `json:"provider,omitempty"`
	Model      string                 `json:"model,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	ModifiedAt time.Time              `json:"modified_at"`
}
