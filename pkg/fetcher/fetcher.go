// Package fetcher retrieves web pages and extracts their paragraph text
// and metadata.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	log "github.com/sirupsen/logrus"

	"github.com/dtnitsch/linguacheck/models"
)

// languagePatterns are substrings that mark an anchor as a likely link to
// another language version of the site: URL conventions first, then
// two-letter codes as path segments, then English language names.
var languagePatterns = []string{
	"lang-", "language-", "locale-", "region-",
	"en/", "es/", "fr/", "de/", "it/", "pt/",
	"english", "spanish", "french", "german", "italian",
}

type Fetcher struct {
	client           *http.Client
	log              *log.Logger
	userAgent        string
	maxContentLength int
}

func NewFetcher(timeout time.Duration, userAgent string, maxContentLength int, logger *log.Logger) *Fetcher {
	return &Fetcher{
		client:           &http.Client{Timeout: timeout},
		log:              logger,
		userAgent:        userAgent,
		maxContentLength: maxContentLength,
	}
}

// Fetch retrieves rawURL and extracts its paragraph text and metadata.
// Network and HTTP failures come back as *models.FetchError, unparsable
// payloads as *models.ParseError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*models.ExtractedContent, error) {
	html, err := f.FetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return f.Extract(rawURL, html)
}

// FetchHTML performs the HTTP round trip and returns the raw markup.
func (f *Fetcher) FetchHTML(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &models.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &models.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &models.FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.FetchError{URL: rawURL, Err: err}
	}
	return string(body), nil
}

// Extract parses markup into an ExtractedContent. Text comes from <p>
// elements only, with script and style content discarded and whitespace
// runs collapsed. Content longer than the configured maximum is truncated
// and flagged, never rejected.
func (f *Fetcher) Extract(rawURL, html string) (*models.ExtractedContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &models.ParseError{URL: rawURL, Err: err}
	}

	doc.Find("script,style").Remove()

	var sb strings.Builder
	paragraphs := 0
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		paragraphs++
		text := normalizeText(s.Text())
		if text != "" {
			sb.WriteString(text)
			sb.WriteString(" ")
		}
	})

	text := strings.Join(strings.Fields(sb.String()), " ")
	truncated := false
	if len(text) > f.maxContentLength {
		text = truncateRunes(text, f.maxContentLength)
		truncated = true
		f.log.Warnf("content truncated to %d bytes for %s", len(text), rawURL)
	}

	content := &models.ExtractedContent{
		URL:              rawURL,
		Title:            normalizeText(doc.Find("title").First().Text()),
		DeclaredLanguage: doc.Find("html").AttrOr("lang", ""),
		Content:          text,
		ContentLength:    len(text),
		ParagraphCount:   paragraphs,
		Truncated:        truncated,
		RawHTML:          html,
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		content.Description = strings.TrimSpace(desc)
	}

	f.enrich(content, html)

	f.log.Infof("extracted %d paragraph tags, %d characters from %s",
		paragraphs, content.ContentLength, rawURL)
	return content, nil
}

// enrich fills missing title/description and the site name from
// go-readability's article metadata. Purely additive: readability failures
// are ignored.
func (f *Fetcher) enrich(content *models.ExtractedContent, html string) {
	parsedURL, err := url.Parse(content.URL)
	if err != nil {
		return
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(html), parsedURL)
	if err != nil {
		f.log.Debugf("readability enrichment skipped for %s: %v", content.URL, err)
		return
	}
	if content.Title == "" {
		content.Title = normalizeText(article.Title)
	}
	if content.Description == "" {
		content.Description = normalizeText(article.Excerpt)
	}
	content.SiteName = article.SiteName
}

// FindLanguageVariantLinks scans anchors whose href or visible text
// contains a language indicator and resolves them against baseURL.
// Duplicates are allowed; deduplication is the orchestrator's job.
func (f *Fetcher) FindLanguageVariantLinks(baseURL, html string) []models.LanguageLink {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		f.log.Warnf("could not parse markup for language links: %v", err)
		return nil
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		f.log.Warnf("invalid base URL %s: %v", baseURL, err)
		return nil
	}

	var links []models.LanguageLink
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if href == "" {
			return
		}
		text := strings.ToLower(strings.TrimSpace(s.Text()))
		lowerHref := strings.ToLower(href)

		for _, pattern := range languagePatterns {
			if strings.Contains(lowerHref, pattern) || strings.Contains(text, pattern) {
				resolved, err := base.Parse(href)
				if err != nil {
					break
				}
				links = append(links, models.LanguageLink{
					URL:  resolved.String(),
					Text: text,
					Href: href,
				})
				break
			}
		}
	})

	return links
}

// normalizeText collapses all whitespace runs, newlines included, to
// single spaces. Must handle arbitrarily long unbroken lines; minified
// markup routinely exceeds any line-length assumption.
func normalizeText(input string) string {
	return strings.Join(strings.Fields(input), " ")
}

// truncateRunes cuts s to at most max bytes without splitting a rune, so
// truncated content stays valid UTF-8.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
