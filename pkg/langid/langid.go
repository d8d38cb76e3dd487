// Package langid identifies the language of extracted text.
package langid

import (
	"strings"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"

	"github.com/dtnitsch/linguacheck/models"
)

// languageNames maps ISO-639-1 codes to human-readable names for the
// languages the critic can assess.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"cs": "Czech",
	"sk": "Slovak",
	"hu": "Hungarian",
	"ro": "Romanian",
	"bg": "Bulgarian",
	"hr": "Croatian",
	"sl": "Slovenian",
	"et": "Estonian",
	"lv": "Latvian",
	"lt": "Lithuanian",
}

// Identifier detects languages with lingua-go and gates which codes the
// critic may be invoked on.
type Identifier struct {
	detector  lingua.LanguageDetector
	supported map[string]bool

	minLength         int
	confidenceCap     float64
	confidenceDivisor int
}

// NewIdentifier builds a detector over all spoken languages. The supported
// list only gates critic invocation, not detection, so an unsupported page
// still gets an honest code.
func NewIdentifier(supported []string, thresholds models.Thresholds) *Identifier {
	set := make(map[string]bool, len(supported))
	for _, code := range supported {
		set[code] = true
	}
	return &Identifier{
		detector:          lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build(),
		supported:         set,
		minLength:         thresholds.MinDetectionLength,
		confidenceCap:     thresholds.ConfidenceCap,
		confidenceDivisor: thresholds.ConfidenceDivisor,
	}
}

// Detect returns the language observation for text. Text shorter than the
// minimum trimmed length returns ("unknown", 0.0) without invoking the
// detector, since detection on very short strings is unreliable.
//
// Confidence is a heuristic, not a statistical certainty: it scales
// linearly with character count and saturates at the configured cap. Any
// detector swap must preserve the shape (monotonic in length, capped below
// 1.0), not the exact formula. Lengths count runes, not bytes, so
// non-Latin text is not weighted double.
func (i *Identifier) Detect(text string) models.LanguageObservation {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < i.minLength {
		return models.LanguageObservation{Code: "unknown", Name: i.Name("unknown")}
	}

	language, ok := i.detector.DetectLanguageOf(text)
	if !ok {
		return models.LanguageObservation{Code: "unknown", Name: i.Name("unknown")}
	}
	code := strings.ToLower(language.IsoCode639_1().String())

	confidence := float64(utf8.RuneCountInString(text)) / float64(i.confidenceDivisor)
	if confidence > i.confidenceCap {
		confidence = i.confidenceCap
	}

	return models.LanguageObservation{
		Code:       code,
		Name:       i.Name(code),
		Confidence: confidence,
	}
}

// IsSupported reports whether code is in the allow-list gating the critic.
func (i *Identifier) IsSupported(code string) bool {
	return i.supported[code]
}

// Name returns the human-readable name for code, or the upper-cased code
// when the language is not in the name table.
func (i *Identifier) Name(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
