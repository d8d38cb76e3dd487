package models

// AnalysisError is a structured error entry carried inside a report value.
// The critic never raises past its boundary; failures become entries here.
type AnalysisError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// GrammaticalError is a single grammar finding from the critic.
type GrammaticalError struct {
	Text       string `json:"text"`
	Correction string `json:"correction"`
	Severity   string `json:"severity"` // high, medium, low
}

// TextIssue is a translation or style finding.
type TextIssue struct {
	Text       string `json:"text"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// TerminologyIssue is a per-language terminology finding.
type TerminologyIssue struct {
	Term       string `json:"term"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// QualityReport is the structured critique of one language's text.
//
// A failed or unparseable critic call still produces a QualityReport: the
// canonical empty/error value from ErrorQualityReport. Consumers never have
// to special-case an absent report.
type QualityReport struct {
	OK                bool               `json:"ok"`
	Errors            []AnalysisError    `json:"errors,omitempty"`
	GrammaticalErrors []GrammaticalError `json:"grammatical_errors"`
	TranslationIssues []TextIssue        `json:"translation_issues"`
	StyleIssues       []TextIssue        `json:"style_issues"`
	TerminologyIssues []TerminologyIssue `json:"terminology_issues"`
	Suggestions       []string           `json:"suggestions"`
	QualityScore      int                `json:"quality_score"`
	Confidence        float64            `json:"confidence"`
	Summary           string             `json:"summary"`
}

// ErrorQualityReport returns the canonical empty/error QualityReport: all
// finding lists empty, score 0, confidence 0, one error entry.
func ErrorQualityReport(errType, message string) *QualityReport {
	return &QualityReport{
		Errors: []AnalysisError{{Type: errType, Message: message}},
	}
}

// IssueCount sums findings across all quality categories.
func (r *QualityReport) IssueCount() int {
	return len(r.GrammaticalErrors) + len(r.TranslationIssues) + len(r.StyleIssues) + len(r.TerminologyIssues)
}

// Inconsistency is a cross-language terminology finding.
type Inconsistency struct {
	Term       string   `json:"term"`
	Languages  []string `json:"languages"`
	Issue      string   `json:"issue"`
	Suggestion string   `json:"suggestion"`
}

// BrandIssue flags a brand-name variation or misspelling.
type BrandIssue struct {
	Brand      string `json:"brand"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
}

// ConsistencyReport is the cross-language terminology critique. Same
// error-as-value policy as QualityReport.
type ConsistencyReport struct {
	OK               bool            `json:"ok"`
	Errors           []AnalysisError `json:"errors,omitempty"`
	Inconsistencies  []Inconsistency `json:"inconsistencies"`
	BrandIssues      []BrandIssue    `json:"brand_issues"`
	ConsistencyScore int             `json:"consistency_score"`
	Suggestions      []string        `json:"suggestions"`
}

// ErrorConsistencyReport returns the canonical empty/error ConsistencyReport.
func ErrorConsistencyReport(errType, message string) *ConsistencyReport {
	return &ConsistencyReport{
		Errors: []AnalysisError{{Type: errType, Message: message}},
	}
}

// IssueCount sums terminology findings (inconsistencies plus brand issues).
func (r *ConsistencyReport) IssueCount() int {
	return len(r.Inconsistencies) + len(r.BrandIssues)
}
