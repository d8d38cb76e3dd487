// Package analyzer orchestrates the analysis pipeline: fetch, detect,
// critique, and for multilingual sites the variant-discovery and merge flow.
package analyzer

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/dtnitsch/linguacheck/models"
)

// ContentFetcher retrieves pages and discovers language-variant links.
type ContentFetcher interface {
	Fetch(ctx context.Context, url string) (*models.ExtractedContent, error)
	FetchHTML(ctx context.Context, url string) (string, error)
	FindLanguageVariantLinks(baseURL, html string) []models.LanguageLink
}

// LanguageIdentifier maps text to a language observation and gates which
// codes the critic is invoked on.
type LanguageIdentifier interface {
	Detect(text string) models.LanguageObservation
	IsSupported(code string) bool
}

// QualityCritic produces report values and never fails.
type QualityCritic interface {
	AssessQuality(ctx context.Context, text, language, baseline string) *models.QualityReport
	AssessConsistency(ctx context.Context, texts map[string]string, keyTerms []string) *models.ConsistencyReport
}

// Analyzer drives single-URL and multilingual analyses. It holds no state
// across calls; every invocation builds a fresh SiteAnalysis.
type Analyzer struct {
	fetcher ContentFetcher
	langid  LanguageIdentifier
	critic  QualityCritic
	log     *log.Logger

	maxVariantPages  int
	keyTerms         []string
	baselineLanguage string
}

func New(fetcher ContentFetcher, langid LanguageIdentifier, critic QualityCritic, cfg *models.Config, logger *log.Logger) *Analyzer {
	return &Analyzer{
		fetcher:          fetcher,
		langid:           langid,
		critic:           critic,
		log:              logger,
		maxVariantPages:  cfg.MaxVariantPages,
		keyTerms:         cfg.KeyTerms,
		baselineLanguage: cfg.BaselineLanguage,
	}
}

// AnalyzeURL analyzes a single page. A fetch or parse failure at the entry
// URL is terminal: the returned analysis carries the aggregate error and an
// empty language mapping. Everything downstream of the fetch degrades to
// error-valued reports instead of failing.
func (a *Analyzer) AnalyzeURL(ctx context.Context, url string, analyzeTerminology bool) *models.SiteAnalysis {
	analysis, _ := a.analyze(ctx, url, true)

	// Never true for a fresh single-URL analysis (the mapping has one
	// entry); kept for parity with the post-merge multilingual path.
	if analyzeTerminology && len(analysis.Languages) > 1 {
		analysis.Terminology = a.critic.AssessConsistency(ctx, analysis.Texts(), a.keyTerms)
	}
	return analysis
}

// AnalyzeMultilingualSite analyzes the entry page, then up to
// maxVariantPages discovered language variants, merging results by
// language code with first-write-wins: the entry page's own content is
// never displaced by a variant that detects as the same code.
func (a *Analyzer) AnalyzeMultilingualSite(ctx context.Context, url string) *models.SiteAnalysis {
	a.log.Infof("starting multilingual analysis of %s", url)

	base, rawHTML := a.analyze(ctx, url, true)
	if base.Error != "" {
		return base
	}

	links := a.discoverVariants(ctx, url, rawHTML)
	a.log.Infof("found %d potential language links", len(links))

	if len(links) > a.maxVariantPages {
		links = links[:a.maxVariantPages]
	}

	for _, link := range links {
		candidate, _ := a.analyze(ctx, link.URL, false)
		if candidate.Error != "" {
			a.log.Warnf("failed to analyze %s: %s", link.URL, candidate.Error)
			continue
		}
		for _, code := range base.Merge(candidate) {
			a.log.Infof("merged language %s from %s", code, link.URL)
		}
	}

	if len(base.Languages) > 1 {
		a.log.Info("performing cross-language terminology analysis")
		base.Terminology = a.critic.AssessConsistency(ctx, base.Texts(), a.keyTerms)
	}

	// Variant sub-flows skip the quality assessment; score merged entries
	// that survived the merge, comparing non-baseline languages against
	// the baseline entry's content when one exists.
	baseline := ""
	if entry, ok := base.Languages[a.baselineLanguage]; ok {
		baseline = entry.Content
	}
	for code, entry := range base.Languages {
		if entry.Quality != nil {
			continue
		}
		ref := baseline
		if code == a.baselineLanguage {
			ref = ""
		}
		entry.Quality = a.assess(ctx, code, entry.Content, ref)
	}

	a.log.Info("multilingual analysis completed")
	return base
}

// analyze runs the single-URL flow: fetch, detect, optionally assess, and
// place one entry into the mapping. It also returns the fetched raw markup
// so the multilingual flow can discover variant links without refetching.
func (a *Analyzer) analyze(ctx context.Context, url string, assessQuality bool) (*models.SiteAnalysis, string) {
	a.log.Infof("starting analysis of %s", url)
	analysis := models.NewSiteAnalysis(url)

	content, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		a.log.WithError(err).Errorf("analysis of %s failed", url)
		analysis.Error = err.Error()
		return analysis, ""
	}

	analysis.Title = content.Title
	analysis.Description = content.Description
	analysis.DeclaredLanguage = content.DeclaredLanguage
	analysis.ContentLength = content.ContentLength

	obs := a.langid.Detect(content.Content)
	a.log.Infof("detected language %s (confidence %.2f)", obs.Code, obs.Confidence)

	entry := &models.LanguageEntry{
		LanguageName: obs.Name,
		Confidence:   obs.Confidence,
		Content:      content.Content,
	}
	if assessQuality {
		entry.Quality = a.assess(ctx, obs.Code, content.Content, "")
	}
	analysis.Languages[obs.Code] = entry

	return analysis, content.RawHTML
}

// assess invokes the critic for supported codes and synthesizes the
// unsupported-language error report otherwise, so the critic is never
// called on a code outside the allow-list.
func (a *Analyzer) assess(ctx context.Context, code, text, baseline string) *models.QualityReport {
	if !a.langid.IsSupported(code) {
		a.log.Warnf("language %s not supported for AI analysis", code)
		return models.ErrorQualityReport("unsupported_language",
			fmt.Sprintf("Language %s not supported", code))
	}
	a.log.Info("performing AI-powered linguistic analysis")
	return a.critic.AssessQuality(ctx, text, code, baseline)
}

// discoverVariants finds variant links in the entry page's markup. The
// markup is cached from the entry fetch; when the cache is empty a refetch
// is attempted, and a refetch failure degrades to no links found.
func (a *Analyzer) discoverVariants(ctx context.Context, url, rawHTML string) []models.LanguageLink {
	if rawHTML == "" {
		var err error
		rawHTML, err = a.fetcher.FetchHTML(ctx, url)
		if err != nil {
			a.log.WithError(err).Warn("could not find language links")
			return nil
		}
	}
	return a.fetcher.FindLanguageVariantLinks(url, rawHTML)
}
