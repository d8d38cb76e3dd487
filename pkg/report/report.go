// Package report renders a SiteAnalysis as a console report or a
// timestamped JSON document. Formatting only; the one piece of logic is
// bucketing scores and issue counts against configured thresholds.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dtnitsch/linguacheck/models"
)

// JSONReport wraps an analysis with its generation timestamp. The analysis
// is written verbatim: no field renaming, no truncation.
type JSONReport struct {
	Timestamp       time.Time            `json:"timestamp"`
	AnalysisResults *models.SiteAnalysis `json:"analysis_results"`
}

type Renderer struct {
	out        io.Writer
	thresholds models.Thresholds
	now        func() time.Time
}

func NewRenderer(out io.Writer, thresholds models.Thresholds) *Renderer {
	return &Renderer{out: out, thresholds: thresholds, now: time.Now}
}

// RenderConsole writes the human-readable report.
func (r *Renderer) RenderConsole(a *models.SiteAnalysis) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "%s\n", center("LINGUISTIC ANALYSIS REPORT", 80))
	fmt.Fprintf(r.out, "%s\n", rule)

	r.printBasicInfo(a)
	r.printQualityScores(a)
	r.printIssues(a)
	if a.Terminology != nil {
		r.printTerminology(a.Terminology)
	}
	r.printSuggestions(a)
	r.printSummary(a)
}

// RenderJSON writes the timestamped JSON report to w.
func (r *Renderer) RenderJSON(a *models.SiteAnalysis, w io.Writer) error {
	report := JSONReport{Timestamp: r.now(), AnalysisResults: a}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

// WriteJSONFile writes the JSON report to path as UTF-8 text, overwriting
// any existing file.
func (r *Renderer) WriteJSONFile(a *models.SiteAnalysis, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := r.RenderJSON(a, f); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Renderer) printBasicInfo(a *models.SiteAnalysis) {
	fmt.Fprintf(r.out, "\nURL: %s\n", a.URL)
	if a.Error != "" {
		fmt.Fprintf(r.out, "Error: %s\n", a.Error)
	}
	if a.Title != "" {
		fmt.Fprintf(r.out, "Title: %s\n", a.Title)
	}

	if len(a.Languages) > 0 {
		var parts []string
		for _, code := range sortedCodes(a.Languages) {
			entry := a.Languages[code]
			parts = append(parts, fmt.Sprintf("%s (%.1f%%)", entry.LanguageName, entry.Confidence*100))
		}
		fmt.Fprintf(r.out, "Languages: %s\n", strings.Join(parts, ", "))
	}
	fmt.Fprintf(r.out, "Content Length: %d characters\n", a.ContentLength)
}

func (r *Renderer) printQualityScores(a *models.SiteAnalysis) {
	if len(a.Languages) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n%-10s %-10s %-12s %s\n", "Language", "Score", "Confidence", "Status")
	fmt.Fprintln(r.out, strings.Repeat("-", 50))
	for _, code := range sortedCodes(a.Languages) {
		entry := a.Languages[code]
		if entry.Quality == nil {
			continue
		}
		fmt.Fprintf(r.out, "%-10s %-10s %-12s %s\n",
			strings.ToUpper(code),
			fmt.Sprintf("%d/100", entry.Quality.QualityScore),
			fmt.Sprintf("%.1f%%", entry.Quality.Confidence*100),
			r.scoreStatus(entry.Quality.QualityScore),
		)
	}
}

func (r *Renderer) scoreStatus(score int) string {
	switch {
	case score >= r.thresholds.GoodScore:
		return "[OK] Good"
	case score >= r.thresholds.FairScore:
		return "[WARN] Fair"
	default:
		return "[ERROR] Poor"
	}
}

func (r *Renderer) printIssues(a *models.SiteAnalysis) {
	for _, code := range sortedCodes(a.Languages) {
		q := a.Languages[code].Quality
		if q == nil {
			continue
		}

		for _, e := range q.Errors {
			fmt.Fprintf(r.out, "\n[%s] %s: %s\n", strings.ToUpper(code), e.Type, e.Message)
		}

		if len(q.GrammaticalErrors) > 0 {
			fmt.Fprintf(r.out, "\nGRAMMATICAL ERRORS (%s):\n", strings.ToUpper(code))
			for _, g := range q.GrammaticalErrors {
				fmt.Fprintf(r.out, "  - %s -> %s\n", g.Text, g.Correction)
				if g.Severity != "" {
					fmt.Fprintf(r.out, "    Severity: %s\n", g.Severity)
				}
			}
		}

		r.printTextIssues("TRANSLATION ISSUES", code, q.TranslationIssues)
		r.printTextIssues("STYLE ISSUES", code, q.StyleIssues)

		if len(q.TerminologyIssues) > 0 {
			fmt.Fprintf(r.out, "\nTERMINOLOGY ISSUES (%s):\n", strings.ToUpper(code))
			for _, t := range q.TerminologyIssues {
				fmt.Fprintf(r.out, "  - Term: %s\n", t.Term)
				fmt.Fprintf(r.out, "    Issue: %s\n", t.Issue)
				if t.Suggestion != "" {
					fmt.Fprintf(r.out, "    Suggestion: %s\n", t.Suggestion)
				}
			}
		}
	}
}

func (r *Renderer) printTextIssues(label, code string, issues []models.TextIssue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(r.out, "\n%s (%s):\n", label, strings.ToUpper(code))
	for _, issue := range issues {
		fmt.Fprintf(r.out, "  - %s\n", issue.Text)
		fmt.Fprintf(r.out, "    Issue: %s\n", issue.Issue)
		if issue.Suggestion != "" {
			fmt.Fprintf(r.out, "    Suggestion: %s\n", issue.Suggestion)
		}
	}
}

func (r *Renderer) printTerminology(t *models.ConsistencyReport) {
	fmt.Fprintln(r.out, "\nTERMINOLOGY ANALYSIS:")

	if len(t.Inconsistencies) > 0 {
		fmt.Fprintln(r.out, "\nInconsistencies Found:")
		for _, inc := range t.Inconsistencies {
			fmt.Fprintf(r.out, "  - Term: %s\n", inc.Term)
			fmt.Fprintf(r.out, "    Languages: %s\n", strings.Join(inc.Languages, ", "))
			fmt.Fprintf(r.out, "    Issue: %s\n", inc.Issue)
			if inc.Suggestion != "" {
				fmt.Fprintf(r.out, "    Suggestion: %s\n", inc.Suggestion)
			}
		}
	}

	if len(t.BrandIssues) > 0 {
		fmt.Fprintln(r.out, "\nBrand Issues Found:")
		for _, b := range t.BrandIssues {
			fmt.Fprintf(r.out, "  - Brand: %s\n", b.Brand)
			fmt.Fprintf(r.out, "    Issue: %s\n", b.Issue)
			if b.Suggestion != "" {
				fmt.Fprintf(r.out, "    Suggestion: %s\n", b.Suggestion)
			}
		}
	}
}

func (r *Renderer) printSuggestions(a *models.SiteAnalysis) {
	var suggestions []string
	for _, code := range sortedCodes(a.Languages) {
		if q := a.Languages[code].Quality; q != nil {
			suggestions = append(suggestions, q.Suggestions...)
		}
	}
	if a.Terminology != nil {
		suggestions = append(suggestions, a.Terminology.Suggestions...)
	}
	if len(suggestions) == 0 {
		return
	}

	fmt.Fprintln(r.out, "\nIMPROVEMENT SUGGESTIONS:")
	for i, s := range suggestions {
		fmt.Fprintf(r.out, "  %d. %s\n", i+1, s)
	}
}

func (r *Renderer) printSummary(a *models.SiteAnalysis) {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintf(r.out, "%s\n", center("ANALYSIS SUMMARY", 80))
	fmt.Fprintf(r.out, "%s\n", rule)

	linguistic := 0
	for _, entry := range a.Languages {
		if entry.Quality != nil {
			linguistic += entry.Quality.IssueCount()
		}
	}
	terminology := 0
	if a.Terminology != nil {
		terminology = a.Terminology.IssueCount()
	}

	fmt.Fprintf(r.out, "Total Linguistic Issues: %d\n", linguistic)
	fmt.Fprintf(r.out, "Total Terminology Issues: %d\n", terminology)
	fmt.Fprintf(r.out, "\n%s\n", r.Verdict(linguistic, terminology))
	fmt.Fprintf(r.out, "\n%s\n", rule)
}

// Verdict buckets the issue counts into the overall assessment line.
func (r *Renderer) Verdict(linguistic, terminology int) string {
	switch {
	case linguistic == 0 && terminology == 0:
		return "[EXCELLENT] No significant issues found."
	case linguistic < r.thresholds.LinguisticIssues && terminology < r.thresholds.TerminologyIssues:
		return "[GOOD] Minor issues found that can be easily addressed."
	default:
		return "[ATTENTION NEEDED] Multiple issues found that require review."
	}
}

func sortedCodes(languages map[string]*models.LanguageEntry) []string {
	codes := make([]string, 0, len(languages))
	for code := range languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
