package models

// ExtractedContent is the result of fetching a URL and extracting its
// paragraph text. It is built once per fetch and not mutated afterwards.
type ExtractedContent struct {
	URL              string `json:"url"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	DeclaredLanguage string `json:"html_lang"` // lang attribute of <html>, may be empty
	SiteName         string `json:"site_name,omitempty"`
	Content          string `json:"content"`
	ContentLength    int    `json:"content_length"`
	ParagraphCount   int    `json:"paragraph_count"`
	Truncated        bool   `json:"truncated,omitempty"`

	// RawHTML keeps the fetched markup around so the multilingual flow can
	// discover variant links without a second fetch. Never serialized.
	RawHTML string `json:"-"`
}

// LanguageLink is an anchor suspected to lead to another language version
// of the same site. Duplicates are allowed here; the orchestrator dedups.
type LanguageLink struct {
	URL  string `json:"url"`
	Text string `json:"text"`
	Href string `json:"href"`
}

// LanguageObservation is the detector's verdict on a body of text.
type LanguageObservation struct {
	Code       string  `json:"code"`
	Name       string  `json:"language_name"`
	Confidence float64 `json:"confidence"`
}
