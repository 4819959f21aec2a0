// File: backend/internal/crawler/aggregate.go
package crawler

import (
	"sort"

	"github.com/contactflow/backend/internal/config"
	"github.com/contactflow/backend/internal/contactextractor"
)

// maxRetainedEmails is the cap on emails surfaced in the final result.
const maxRetainedEmails = 3

// relevantEmailThreshold filters the final email list; when nothing
// clears it, the single best-scoring email is kept as a fallback.
const relevantEmailThreshold = 50

// MergePage folds one page's extraction result into the running crawl
// result. Addresses and phones re-deduplicate across pages; socials merge
// on their (platform, username) key.
func MergePage(acc *CrawlResult, page contactextractor.PageResult, cfg config.CrawlerConfig) {
	acc.Addresses = contactextractor.DedupeAddresses(
		append(acc.Addresses, page.Addresses...),
		cfg.SimilarityThreshold, cfg.ComposedSimilarityThreshold)
	acc.Phones = contactextractor.DedupePhones(append(acc.Phones, page.Phones...), cfg.SimilarityThreshold)
	acc.Emails = contactextractor.DedupeEmails(append(acc.Emails, page.Emails...))
	acc.Socials = contactextractor.DedupeSocials(append(acc.Socials, page.Socials...))
	acc.Errors = append(acc.Errors, page.Errors...)
}

// Finalize applies the cross-crawl ranking and capping rules: the single
// best address by combined score, the single best phone, up to three
// relevant emails (or the best one as a fallback), all social handles.
func Finalize(result *CrawlResult, domainBase string, cfg config.CrawlerConfig) {
	// Addresses: rank by confidence*0.4 + relevance*0.6, keep the top one.
	sort.SliceStable(result.Addresses, func(i, j int) bool {
		return result.Addresses[i].FinalScore() > result.Addresses[j].FinalScore()
	})
	if len(result.Addresses) > 1 {
		result.Addresses = result.Addresses[:1]
	}

	// Phones: re-score globally against the domain, rank, keep the top one.
	if cfg.IncludePhone {
		for i := range result.Phones {
			result.Phones[i].RelevanceScore = contactextractor.PhoneRelevance(result.Phones[i], domainBase)
		}
		result.Phones = contactextractor.DedupePhones(result.Phones, cfg.SimilarityThreshold)
		sort.SliceStable(result.Phones, func(i, j int) bool {
			return result.Phones[i].RelevanceScore > result.Phones[j].RelevanceScore
		})
		if len(result.Phones) > 1 {
			result.Phones = result.Phones[:1]
		}
	} else {
		result.Phones = nil
	}

	// Emails: re-score, dedupe exactly, filter to the relevant ones and cap
	// at three; fall back to the single best when nothing clears the bar.
	if cfg.IncludeEmail {
		for i := range result.Emails {
			result.Emails[i].RelevanceScore = contactextractor.EmailRelevance(result.Emails[i], domainBase)
		}
		result.Emails = contactextractor.DedupeEmails(result.Emails)
		sort.SliceStable(result.Emails, func(i, j int) bool {
			return result.Emails[i].RelevanceScore > result.Emails[j].RelevanceScore
		})

		var relevant []contactextractor.CandidateEmail
		for _, email := range result.Emails {
			if email.RelevanceScore >= relevantEmailThreshold {
				relevant = append(relevant, email)
			}
		}
		switch {
		case len(relevant) > maxRetainedEmails:
			result.Emails = relevant[:maxRetainedEmails]
		case len(relevant) > 0:
			result.Emails = relevant
		case len(result.Emails) > 1:
			result.Emails = result.Emails[:1]
		}
	} else {
		result.Emails = nil
	}

	result.Socials = contactextractor.DedupeSocials(result.Socials)
}
