// File: backend/internal/crawler/crawler.go
package crawler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/contactflow/backend/internal/config"
	"github.com/contactflow/backend/internal/contactextractor"
	"golang.org/x/time/rate"
)

// PageFetcher is satisfied by contentfetcher.ContentFetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, urlStr string) (body []byte, finalURL string, statusCode int, err error)
}

// CrawlResult is the cumulative cross-page bundle built by folding page
// results together, then finalized by the aggregator.
type CrawlResult struct {
	Domain        string                               `json:"domain"`
	Addresses     []contactextractor.CandidateAddress `json:"addresses"`
	Phones        []contactextractor.CandidatePhone   `json:"phones"`
	Emails        []contactextractor.CandidateEmail   `json:"emails"`
	Socials       []contactextractor.SocialHandle     `json:"socialMedias"`
	PagesAnalyzed int                                  `json:"pagesAnalyzed"`
	Errors        []string                             `json:"errors,omitempty"`
}

// Crawler fetches a bounded, ordered list of candidate paths under one
// domain, strictly sequentially, and folds each page's extraction result
// into the running CrawlResult.
type Crawler struct {
	cfg       config.CrawlerConfig
	fetcher   PageFetcher
	extractor *contactextractor.Extractor

	// OnPage, when set, is invoked after each page is merged. Used by the
	// SSE streaming handler.
	OnPage func(pageIndex int, path string, page contactextractor.PageResult)
}

// New builds a Crawler around the given fetcher.
func New(cfg config.CrawlerConfig, fetcher PageFetcher) *Crawler {
	return &Crawler{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: contactextractor.New(cfg),
	}
}

// NormalizeDomain validates and normalizes the input domain: HTTPS scheme
// prefixed when absent, trailing slashes stripped.
func NormalizeDomain(raw string) (string, error) {
	domain := strings.TrimSpace(raw)
	if domain == "" {
		return "", fmt.Errorf("domain is required")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}
	return strings.TrimRight(domain, "/"), nil
}

// Run crawls the domain. Pages are fetched in strict list order with a
// mandatory inter-page delay; a single page's failure is recorded and never
// aborts the crawl. The crawl stops early once the accumulated address
// evidence passes the configured thresholds.
func (c *Crawler) Run(ctx context.Context, domain string) (*CrawlResult, error) {
	normalized, err := NormalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	domainBase := contactextractor.DomainBaseName(normalized)

	result := &CrawlResult{Domain: normalized}

	paths := c.cfg.PagePaths
	if len(paths) > c.cfg.MaxPages {
		paths = paths[:c.cfg.MaxPages]
	}

	// The limiter enforces the inter-page delay; the first page passes
	// immediately (burst 1).
	limiter := rate.NewLimiter(rate.Every(c.cfg.PageDelay), 1)

	for i, path := range paths {
		if err := limiter.Wait(ctx); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: crawl cancelled: %v", path, err))
			break
		}

		pageURL := normalized + path
		pageCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
		body, finalURL, statusCode, fetchErr := c.fetcher.Fetch(pageCtx, pageURL)
		cancel()

		if fetchErr != nil {
			log.Printf("Crawler: Fetch failed for %s: %v", pageURL, fetchErr)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: fetch failed: %v", path, fetchErr))
			continue
		}
		if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
			log.Printf("Crawler: Non-2xx status %d for %s (final URL: %s)", statusCode, pageURL, finalURL)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: fetch returned status %d", path, statusCode))
			continue
		}

		page := c.extractor.ExtractPage(string(body), domainBase, path)
		MergePage(result, page, c.cfg)
		result.PagesAnalyzed++

		log.Printf("Crawler: Page %s analyzed (%d addresses, %d phones, %d emails, %d socials so far)",
			path, len(result.Addresses), len(result.Phones), len(result.Emails), len(result.Socials))

		if c.OnPage != nil {
			c.OnPage(i, path, page)
		}

		if c.shouldStop(result) {
			log.Printf("Crawler: Early stop after %d page(s) for %s: address evidence strong enough", result.PagesAnalyzed, normalized)
			break
		}
	}

	Finalize(result, domainBase, c.cfg)
	return result, nil
}

// shouldStop applies the early-stop heuristic: one address with relevance
// at or above the threshold, or enough addresses with confident structure.
func (c *Crawler) shouldStop(result *CrawlResult) bool {
	confident := 0
	for _, addr := range result.Addresses {
		if addr.RelevanceScore >= c.cfg.EarlyStopRelevance {
			return true
		}
		if addr.Confidence >= c.cfg.EarlyStopConfidence {
			confident++
		}
	}
	return confident >= c.cfg.EarlyStopConfidentAddresses
}
