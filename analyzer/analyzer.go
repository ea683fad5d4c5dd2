// Package analyzer audits a single web page for SEO, accessibility and
// performance problems and samples its links for breakage.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/webcheck/backend/fetcher"
	"github.com/webcheck/backend/metrics"
)

const (
	defaultTitle       = "No title found"
	defaultDescription = "No description found"
)

// ErrParseFailed reports HTML that could not be turned into a document.
var ErrParseFailed = errors.New("parse failed")

// PageFetcher retrieves the raw HTML of a page.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// Analyzer turns a URL into an AnalysisResult. It holds no per-request state
// and is safe for concurrent use.
type Analyzer struct {
	fetcher PageFetcher
	prober  LinkProber
	logger  *zap.Logger
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithFetcher replaces the page fetcher.
func WithFetcher(f PageFetcher) Option {
	return func(a *Analyzer) {
		a.fetcher = f
	}
}

// WithProber replaces the link prober.
func WithProber(p LinkProber) Option {
	return func(a *Analyzer) {
		a.prober = p
	}
}

// New creates an Analyzer backed by the default fetcher and HEAD prober.
func New(logger *zap.Logger, opts ...Option) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Analyzer{
		fetcher: fetcher.New(),
		prober:  NewHeadProber(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze fetches rawURL and audits it. It returns either a complete result or
// an error wrapping fetcher.ErrInvalidURL, fetcher.ErrFetchFailed or
// ErrParseFailed.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*AnalysisResult, error) {
	start := time.Now()

	pageURL, err := fetcher.ParseURL(rawURL)
	if err != nil {
		metrics.ObserveAnalysis(metrics.OutcomeInvalidURL, time.Since(start))
		return nil, err
	}

	html, err := a.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		a.logger.Warn("fetch failed", zap.String("url", rawURL), zap.Error(err))
		outcome := metrics.OutcomeFetchFailed
		if errors.Is(err, fetcher.ErrInvalidURL) {
			outcome = metrics.OutcomeInvalidURL
		}
		metrics.ObserveAnalysis(outcome, time.Since(start))
		return nil, err
	}

	result, err := a.AnalyzeHTML(ctx, pageURL, rawURL, html)
	if err != nil {
		a.logger.Warn("parse failed", zap.String("url", rawURL), zap.Error(err))
		metrics.ObserveAnalysis(metrics.OutcomeParseFailed, time.Since(start))
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.ObserveAnalysis(metrics.OutcomeSuccess, elapsed)
	a.logger.Info("analysis complete",
		zap.String("url", rawURL),
		zap.Int("overall_score", result.OverallScore),
		zap.Int("broken_links", len(result.BrokenLinks.Internal)+len(result.BrokenLinks.External)),
		zap.Duration("elapsed", elapsed),
	)
	return result, nil
}

// AnalyzeHTML audits already-fetched HTML. pageURL is the base for link
// resolution and rawURL is echoed back in the result.
func (a *Analyzer) AnalyzeHTML(ctx context.Context, pageURL *url.URL, rawURL, html string) (*AnalysisResult, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	page := &Page{HTML: html, Doc: doc}

	title := pageTitle(doc)
	if title == "" {
		title = defaultTitle
	}
	description := metaDescription(doc)
	if description == "" {
		description = defaultDescription
	}

	seo := AnalyzeSEO(page)
	accessibility := AnalyzeAccessibility(page)
	performance := AnalyzePerformance(page)

	return &AnalysisResult{
		URL:             rawURL,
		Title:           title,
		MetaDescription: description,
		Performance:     performance,
		SEO:             seo,
		Accessibility:   accessibility,
		BrokenLinks:     CheckLinks(ctx, a.prober, CollectLinks(doc, pageURL), a.logger),
		Images:          AnalyzeImages(doc),
		Headers:         AnalyzeHeaders(doc),
		FutureScope:     FutureScope(doc),
		OverallScore:    OverallScore(seo.Score, accessibility.Score, performance.Score),
	}, nil
}
