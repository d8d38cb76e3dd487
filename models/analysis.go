package models

// LanguageEntry is one language's slice of a SiteAnalysis: detection
// verdict, the extracted content it was derived from, and the critique.
type LanguageEntry struct {
	LanguageName string         `json:"language_name"`
	Confidence   float64        `json:"confidence"`
	Content      string         `json:"content"`
	Quality      *QualityReport `json:"quality,omitempty"`
}

// SiteAnalysis is the unit the renderer consumes: page metadata plus a
// mapping of language code to per-language results. Keys are unique by
// language code; Merge never overwrites an existing entry.
type SiteAnalysis struct {
	URL              string                    `json:"url"`
	Title            string                    `json:"title"`
	Description      string                    `json:"description"`
	DeclaredLanguage string                    `json:"html_lang"`
	ContentLength    int                       `json:"content_length"`
	Languages        map[string]*LanguageEntry `json:"languages"`
	Terminology      *ConsistencyReport        `json:"terminology_analysis,omitempty"`
	Error            string                    `json:"error,omitempty"`
}

// NewSiteAnalysis returns an analysis with an empty language mapping.
func NewSiteAnalysis(url string) *SiteAnalysis {
	return &SiteAnalysis{
		URL:       url,
		Languages: map[string]*LanguageEntry{},
	}
}

// Merge folds another analysis's language entries into this one,
// first-write-wins on language code: a code already present here is never
// replaced. Returns the codes actually added, in no particular order.
func (a *SiteAnalysis) Merge(other *SiteAnalysis) []string {
	var added []string
	for code, entry := range other.Languages {
		if _, exists := a.Languages[code]; exists {
			continue
		}
		a.Languages[code] = entry
		added = append(added, code)
	}
	return added
}

// Texts returns the mapping of language code to content, the shape the
// consistency critic consumes.
func (a *SiteAnalysis) Texts() map[string]string {
	texts := make(map[string]string, len(a.Languages))
	for code, entry := range a.Languages {
		texts[code] = entry.Content
	}
	return texts
}
