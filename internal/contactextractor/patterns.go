// File: backend/internal/contactextractor/patterns.go
package contactextractor

import (
	"regexp"
	"strings"
)

// PatternRule is a single extraction rule: an identifier, the locale or
// vocabulary it belongs to, and a compiled pattern. Rules are scanned with
// FindAll* primitives only, which take a fresh position per call; no rule
// carries match-position state between scans.
type PatternRule struct {
	ID      string
	Locale  string
	Pattern *regexp.Regexp
}

// Match is a raw rule hit with its surrounding context window.
type Match struct {
	Text    string
	Context string
	RuleID  string
}

// contextWindowChars is the ± window captured around each match for the
// relevance scorer.
const contextWindowChars = 150

// AddressRules covers Spanish, English, UK-postcode and French address
// shapes plus a generic "<segment>, <5-digit> <city>" form.
var AddressRules = []PatternRule{
	{
		ID:     "address-es-street",
		Locale: "es",
		Pattern: regexp.MustCompile(`(?i)\b(?:calle|c/|avenida|avda\.?|paseo|plaza|pza\.?|camino|carretera|ronda|travesía|travesia)\s+[0-9\p{L} .'-]{2,60}?,?\s*(?:n[ºo°]?\s*)?\d{1,4}\b(?:[^,\n<>]{0,30})?(?:,\s*\d{5}\s+[\p{L} .'-]{2,40})?`),
	},
	{
		ID:     "address-en-number-first",
		Locale: "en",
		Pattern: regexp.MustCompile(`(?i)\b\d{1,5}\s+[\p{L}][\p{L} .'-]{2,50}\s(?:street|st\.?|avenue|ave\.?|road|rd\.?|boulevard|blvd\.?|lane|ln\.?|drive|dr\.?|way|place|pl\.?|square|court)\b(?:,\s*[\p{L} .'-]{2,40})?(?:,?\s*\d{5}(?:\s+[\p{L} .'-]{2,40})?)?`),
	},
	{
		ID:     "address-uk-postcode",
		Locale: "uk",
		Pattern: regexp.MustCompile(`\b\d{1,4}\s+[\p{L}][\p{L} .'-]{2,50},?\s+[\p{L} .'-]{2,40},?\s+[A-Z]{1,2}\d{1,2}[A-Z]?\s*\d[A-Z]{2}\b`),
	},
	{
		ID:     "address-fr-street",
		Locale: "fr",
		Pattern: regexp.MustCompile(`(?i)\b\d{1,4}(?:\s*(?:bis|ter))?\s*,?\s+(?:rue|avenue|boulevard|bd|quai|place|chemin|allée|allee|impasse|cours)\s+[\p{L} .'-]{2,60}(?:,\s*\d{5}\s+[\p{L} .'-]{2,40})?`),
	},
	{
		ID:     "address-generic-postal-city",
		Locale: "generic",
		Pattern: regexp.MustCompile(`\b[\p{L}][0-9\p{L} .'-]{3,60},\s*\d{5}\s+[\p{L}][\p{L} .'-]{1,40}`),
	},
}

// PhoneRules covers labelled and unlabelled numeric patterns.
var PhoneRules = []PatternRule{
	{
		ID:     "phone-labelled",
		Locale: "generic",
		Pattern: regexp.MustCompile(`(?i)(?:tel[eé]fono|tel\.?|phone|call us|ll[aá]manos|t[eé]l[eé]phone|fax)\s*:?\s*(\+?\d[\d ().\-]{6,18}\d)`),
	},
	{
		ID:     "phone-international",
		Locale: "generic",
		Pattern: regexp.MustCompile(`\+\d{1,3}[ .\-]?\(?\d{1,4}\)?(?:[ .\-]?\d{2,4}){2,4}`),
	},
	{
		ID:     "phone-national",
		Locale: "generic",
		Pattern: regexp.MustCompile(`\(?\d{2,3}\)?[ .\-]\d{3}[ .\-]\d{2}[ .\-]?\d{2}\b|\b\d{3}[ .\-]\d{3}[ .\-]\d{3,4}\b`),
	},
}

// EmailRule is an RFC-ish local@domain matcher.
var EmailRule = PatternRule{
	ID:      "email-generic",
	Locale:  "generic",
	Pattern: regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
}

// SocialRule binds a platform to its URL/handle pattern and canonical base.
// The username is the last submatch; a two-group pattern captures the path
// form (company/, in/, @, channel/, ...) in group 1 so the canonical URL
// preserves it.
type SocialRule struct {
	Platform SocialPlatform
	Pattern  *regexp.Regexp
	BaseURL  string
}

var SocialRules = []SocialRule{
	{PlatformInstagram, regexp.MustCompile(`(?i)(?:instagram\.com|instagr\.am)/([A-Za-z0-9_.]{2,30})`), "https://instagram.com/"},
	{PlatformFacebook, regexp.MustCompile(`(?i)facebook\.com/([A-Za-z0-9.\-]{3,50})`), "https://facebook.com/"},
	{PlatformTwitter, regexp.MustCompile(`(?i)(?:twitter\.com|x\.com)/([A-Za-z0-9_]{2,15})`), "https://twitter.com/"},
	{PlatformLinkedIn, regexp.MustCompile(`(?i)linkedin\.com/(company/|in/)([A-Za-z0-9\-_%.]{2,60})`), "https://linkedin.com/"},
	{PlatformYouTube, regexp.MustCompile(`(?i)youtube\.com/(@|c/|channel/|user/)([A-Za-z0-9_\-.]{2,60})`), "https://youtube.com/"},
	{PlatformTikTok, regexp.MustCompile(`(?i)tiktok\.com/@([A-Za-z0-9_.]{2,30})`), "https://tiktok.com/@"},
}

// FindMatches runs every rule over text with a stateless full scan and
// captures a ±contextWindowChars window around each hit.
func FindMatches(rules []PatternRule, text string) []Match {
	var matches []Match
	for _, rule := range rules {
		indices := rule.Pattern.FindAllStringSubmatchIndex(text, -1)
		for _, loc := range indices {
			start, end := loc[0], loc[1]
			// Labelled rules capture the value in group 1; prefer it.
			if len(loc) >= 4 && loc[2] >= 0 {
				start, end = loc[2], loc[3]
			}
			matches = append(matches, Match{
				Text:    text[start:end],
				Context: contextWindow(text, loc[0], loc[1]),
				RuleID:  rule.ID,
			})
		}
	}
	return matches
}

// FindSocialMatches scans raw HTML (href values survive there) for platform
// handles.
func FindSocialMatches(text string) []SocialHandle {
	var handles []SocialHandle
	for _, rule := range SocialRules {
		submatches := rule.Pattern.FindAllStringSubmatch(text, -1)
		for _, sm := range submatches {
			if len(sm) < 2 {
				continue
			}
			username := sm[len(sm)-1]
			url := rule.BaseURL + username
			if len(sm) > 2 {
				url = rule.BaseURL + strings.ToLower(sm[1]) + username
			}
			handles = append(handles, SocialHandle{
				Platform: rule.Platform,
				Username: username,
				URL:      url,
			})
		}
	}
	return handles
}

func contextWindow(text string, start, end int) string {
	ctxStart := start - contextWindowChars
	if ctxStart < 0 {
		ctxStart = 0
	}
	ctxEnd := end + contextWindowChars
	if ctxEnd > len(text) {
		ctxEnd = len(text)
	}
	return text[ctxStart:ctxEnd]
}
