package critic

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Character budgets applied before text goes into a prompt. These bound
// request size only; truncation here is not a correctness concern.
const (
	maxAnalysisChars    = 2000
	maxBaselineChars    = 1000
	maxConsistencyChars = 1000
)

const qualitySystemPrompt = "You are an expert linguist and translation quality analyst. " +
	"Provide detailed, actionable feedback on text quality."

const consistencySystemPrompt = "You are an expert in terminology management and translation consistency. " +
	"Analyze terminology usage across different language versions."

// buildQualityPrompt asks for the five finding categories and a reply
// shaped as a single QualityReport JSON object.
func buildQualityPrompt(text, language, baseline string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the following text in %s for linguistic quality issues:\n\n", language)
	fmt.Fprintf(&b, "TEXT TO ANALYZE:\n%s\n\n", truncate(text, maxAnalysisChars))

	if baseline != "" {
		fmt.Fprintf(&b, "BASELINE TEXT (English):\n%s\n\n", truncate(baseline, maxBaselineChars))
		b.WriteString("Compare the quality and accuracy of the translation against the baseline.\n\n")
	}

	b.WriteString(`Please provide a detailed analysis including:

1. GRAMMATICAL ERRORS: List any grammatical mistakes with specific examples
2. TRANSLATION ISSUES: Identify awkward translations, mistranslations, or cultural inappropriateness
3. STYLE ISSUES: Point out style inconsistencies, tone problems, or readability issues
4. TERMINOLOGY: Check for inconsistent or incorrect use of technical terms
5. OVERALL QUALITY SCORE: Rate from 0-100 (100 being perfect)

Format your response as JSON with the following structure:
{
  "grammatical_errors": [{"text": "example", "correction": "suggestion", "severity": "high/medium/low"}],
  "translation_issues": [{"text": "example", "issue": "description", "suggestion": "improvement"}],
  "style_issues": [{"text": "example", "issue": "description", "suggestion": "improvement"}],
  "terminology_issues": [{"term": "example", "issue": "description", "suggestion": "correction"}],
  "quality_score": 85,
  "confidence": 0.9,
  "summary": "Brief summary of main issues found"
}
`)

	return b.String()
}

// buildConsistencyPrompt enumerates each language's text in deterministic
// code order and asks for a ConsistencyReport-shaped JSON reply.
func buildConsistencyPrompt(texts map[string]string, keyTerms []string) string {
	var b strings.Builder
	b.WriteString("Analyze terminology consistency across these language versions:\n\n")

	codes := make([]string, 0, len(texts))
	for code := range texts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		fmt.Fprintf(&b, "%s VERSION:\n%s\n\n", strings.ToUpper(code), truncate(texts[code], maxConsistencyChars))
	}

	if len(keyTerms) > 0 {
		fmt.Fprintf(&b, "KEY TERMS TO CHECK: %s\n\n", strings.Join(keyTerms, ", "))
	}

	b.WriteString(`Check for:
1. Inconsistent terminology usage across languages
2. Brand name variations or misspellings
3. Technical term inconsistencies
4. Cultural adaptation issues

Format your response as JSON:
{
  "inconsistencies": [{"term": "example", "languages": ["en", "es"], "issue": "description", "suggestion": "correction"}],
  "brand_issues": [{"brand": "example", "issue": "description", "suggestion": "correction"}],
  "consistency_score": 85,
  "suggestions": ["general improvement suggestions"]
}
`)

	return b.String()
}

// truncate cuts s to at most max bytes, backing off to a rune boundary so
// the prompt never carries a split multibyte character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
