// File: backend/internal/contactextractor/extractor.go
package contactextractor

import (
	"fmt"
	"strings"

	"github.com/contactflow/backend/internal/config"
)

// Extractor is the per-page extraction unit: it runs every pattern rule set
// over the page text and its contextual DOM regions, validates and scores
// the raw matches, and returns a deduplicated per-page bundle.
type Extractor struct {
	cfg config.CrawlerConfig
}

func New(cfg config.CrawlerConfig) *Extractor {
	return &Extractor{cfg: cfg}
}

// ExtractPage processes one fetched page's HTML for the given domain base
// name. It never fails as a whole: a parse problem is recorded in the
// result's Errors and extraction proceeds with whatever text was recovered.
func (e *Extractor) ExtractPage(htmlBody, domainBase, path string) PageResult {
	result := PageResult{Path: path}

	fullText, err := CleanHTMLToText(htmlBody)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: HTML parse failed: %v", path, err))
	}
	regions := ContextualRegions(htmlBody)
	anchors := CollectAnchorTargets(htmlBody)

	result.Addresses = e.extractAddresses(fullText, regions, domainBase)
	if e.cfg.IncludePhone {
		result.Phones = e.extractPhones(fullText, regions, anchors.Tels, domainBase)
	}
	if e.cfg.IncludeEmail {
		result.Emails = e.extractEmails(fullText, regions, anchors.Mailtos, domainBase)
	}
	result.Socials = e.extractSocials(htmlBody, anchors.Hrefs)
	return result
}

func (e *Extractor) extractAddresses(fullText string, regions []string, domainBase string) []CandidateAddress {
	var candidates []CandidateAddress

	appendMatches := func(matches []Match, provenance Provenance) {
		for _, m := range matches {
			if cand, ok := e.buildAddress(m.Text, m.Context, provenance, domainBase); ok {
				candidates = append(candidates, cand)
			}
		}
	}

	appendMatches(FindMatches(AddressRules, fullText), ProvenanceFreeText)

	for _, region := range regions {
		regionMatches := FindMatches(AddressRules, region)
		appendMatches(regionMatches, ProvenanceStructured)

		// Regions often carry the street and the postal/city line as
		// separate elements; compose them when no full match was found.
		if len(regionMatches) == 0 {
			if composed, ok := composeFromRegion(region); ok {
				if cand, built := e.buildAddress(composed, region, ProvenanceComposed, domainBase); built {
					candidates = append(candidates, cand)
				}
			}
		}
	}

	candidates = DedupeAddresses(candidates, e.cfg.SimilarityThreshold, e.cfg.ComposedSimilarityThreshold)
	return candidates
}

// buildAddress cleans, validates, parses and scores one raw address match.
// Candidates without a recoverable street are rejected.
func (e *Extractor) buildAddress(raw, context string, provenance Provenance, domainBase string) (CandidateAddress, bool) {
	full := CleanCandidate(raw)
	confidence := ConfidenceScore(full)
	if confidence == 0 {
		return CandidateAddress{}, false
	}

	parsed := ParseAddress(full)
	if parsed.Street == "" {
		return CandidateAddress{}, false
	}

	cand := CandidateAddress{
		Full:       full,
		Street:     parsed.Street,
		City:       parsed.City,
		PostalCode: parsed.PostalCode,
		Country:    parsed.Country,
		Confidence: confidence,
		Provenance: provenance,
		Context:    CleanCandidate(context),
	}
	cand.RelevanceScore = AddressRelevance(cand, domainBase)
	return cand, true
}

// composeFromRegion assembles "<street>, <postal> <city>" from fragments
// found separately in the same contextual region.
func composeFromRegion(region string) (string, bool) {
	street := numberedStreetRe.FindString(region)
	if street == "" {
		street = keywordStreetRe.FindString(region)
	}
	if street == "" {
		return "", false
	}
	postal := postalCodeRe.FindString(region)
	if postal == "" || !ValidPostalCode(postal) {
		return "", false
	}
	city := ""
	if m := cityAfterPostalRe.FindStringSubmatch(region); m != nil {
		city = strings.TrimSpace(m[1])
	}
	composed := strings.TrimSpace(street) + ", " + postal
	if city != "" {
		composed += " " + city
	}
	return composed, true
}

func (e *Extractor) extractPhones(fullText string, regions []string, tels []string, domainBase string) []CandidatePhone {
	var candidates []CandidatePhone

	appendMatch := func(value, context string) {
		value = CleanCandidate(value)
		if !ValidPhone(value) {
			return
		}
		cand := CandidatePhone{Value: value, Context: CleanCandidate(context)}
		cand.RelevanceScore = PhoneRelevance(cand, domainBase)
		candidates = append(candidates, cand)
	}

	for _, m := range FindMatches(PhoneRules, fullText) {
		appendMatch(m.Text, m.Context)
	}
	for _, region := range regions {
		for _, m := range FindMatches(PhoneRules, region) {
			appendMatch(m.Text, m.Context)
		}
	}
	for _, tel := range tels {
		appendMatch(tel, "tel link "+tel)
	}

	return DedupePhones(candidates, e.cfg.SimilarityThreshold)
}

func (e *Extractor) extractEmails(fullText string, regions []string, mailtos []string, domainBase string) []CandidateEmail {
	var candidates []CandidateEmail

	appendMatch := func(value, context string) {
		value = strings.ToLower(CleanCandidate(value))
		if !ValidEmail(value) {
			return
		}
		cand := CandidateEmail{Value: value, Context: CleanCandidate(context)}
		cand.RelevanceScore = EmailRelevance(cand, domainBase)
		candidates = append(candidates, cand)
	}

	for _, m := range FindMatches([]PatternRule{EmailRule}, fullText) {
		appendMatch(m.Text, m.Context)
	}
	for _, region := range regions {
		for _, m := range FindMatches([]PatternRule{EmailRule}, region) {
			appendMatch(m.Text, m.Context)
		}
	}
	for _, addr := range mailtos {
		appendMatch(addr, "mailto link contact")
	}

	return DedupeEmails(candidates)
}

func (e *Extractor) extractSocials(htmlBody string, hrefs []string) []SocialHandle {
	raw := FindSocialMatches(htmlBody)
	raw = append(raw, FindSocialMatches(strings.Join(hrefs, "\n"))...)

	var valid []SocialHandle
	for _, handle := range raw {
		if ValidSocialHandle(handle.Username) {
			valid = append(valid, handle)
		}
	}
	return DedupeSocials(valid)
}
