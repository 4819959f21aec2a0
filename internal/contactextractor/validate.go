// File: backend/internal/contactextractor/validate.go
package contactextractor

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// BlacklistRule names a rejection condition so individual rules can be
// unit-tested instead of living as anonymous inline literals.
type BlacklistRule struct {
	ID      string
	Pattern *regexp.Regexp
}

func matchesAny(rules []BlacklistRule, s string) (string, bool) {
	for _, rule := range rules {
		if rule.Pattern.MatchString(s) {
			return rule.ID, true
		}
	}
	return "", false
}

// AddressBlacklist rejects code/CSS/JS fragments, asset paths, tracking
// identifiers and synthetic test values before an address match is scored.
var AddressBlacklist = []BlacklistRule{
	{"code-syntax", regexp.MustCompile(`[{}<>;=]|&&|\|\||=>`)},
	{"css-js-keyword", regexp.MustCompile(`(?i)\b(?:function|var|const|return|padding|margin|width|height|rgba?|webkit|null|undefined|flex|grid|px solid)\b`)},
	{"file-extension", regexp.MustCompile(`(?i)\.(?:js|css|png|jpe?g|gif|svg|ico|woff2?|ttf|php|html?|json|xml)\b`)},
	{"hex-blob", regexp.MustCompile(`\b[0-9a-fA-F]{16,}\b`)},
	{"base64-blob", regexp.MustCompile(`[A-Za-z0-9+/]{32,}={0,2}`)},
	{"tracking-token", regexp.MustCompile(`(?i)\butm_|gtag|gtm-|google-analytics|fbclid|pixel|hotjar`)},
	{"version-string", regexp.MustCompile(`\bv?\d+\.\d+\.\d+(?:\.\d+)?\b`)},
	{"timestamp", regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}`)},
	{"synthetic-test", regexp.MustCompile(`(?i)\b1234567|lorem ipsum|example\.(?:com|org|net)`)},
	{"url-fragment", regexp.MustCompile(`(?i)https?://|www\.|href=`)},
}

// PhoneBlacklist rejects obviously synthetic or structural number runs.
var PhoneBlacklist = []BlacklistRule{
	{"sequential-digits", regexp.MustCompile(`1234567|7654321`)},
	{"repeated-digits", regexp.MustCompile(`0{7,}|1{7,}|2{7,}|3{7,}|4{7,}|5{7,}|6{7,}|7{7,}|8{7,}|9{7,}`)},
	{"timestamp-like", regexp.MustCompile(`^(?:19|20)\d{2}[01]\d[0-3]\d`)},
	{"all-zeros", regexp.MustCompile(`^0+$`)},
}

// EmailBlacklist rejects placeholder, tracking and asset-derived addresses.
var EmailBlacklist = []BlacklistRule{
	{"test-domain", regexp.MustCompile(`(?i)@(?:example|test|domain|email|yoursite|yourdomain|mysite|sentry|wixpress)\.(?:com|org|net|io)$`)},
	{"test-local", regexp.MustCompile(`(?i)^(?:test|demo|sample|user|email|name|someone|foo|bar)@`)},
	{"asset-scale-suffix", regexp.MustCompile(`(?i)@\dx\.`)},
	{"image-tld", regexp.MustCompile(`(?i)\.(?:png|jpe?g|gif|svg|webp)$`)},
	{"hex-local", regexp.MustCompile(`^[0-9a-f]{16,}@`)},
}

// PostalCodeBlacklist rejects 5-digit runs that are not postal codes.
var PostalCodeBlacklist = []BlacklistRule{
	{"all-same-digit", regexp.MustCompile(`^(?:0{5}|1{5}|2{5}|3{5}|4{5}|5{5}|6{5}|7{5}|8{5}|9{5})$`)},
	{"ascending-run", regexp.MustCompile(`^(?:12345|23456|34567|45678|56789)$`)},
}

// CityBlacklist rejects tokens that match city position but are structural.
var CityBlacklist = []BlacklistRule{
	{"code-word", regexp.MustCompile(`(?i)^(?:null|undefined|true|false|none|module|object|json)$`)},
	{"has-digit", regexp.MustCompile(`\d`)},
}

// socialReservedWords are path segments that match handle patterns but are
// platform features, not profiles.
var socialReservedWords = map[string]bool{
	"home": true, "login": true, "signup": true, "assets": true, "static": true,
	"share": true, "sharer": true, "sharer.php": true, "search": true,
	"privacy": true, "terms": true, "legal": true, "help": true, "about": true,
	"intl": true, "policies": true, "pages": true, "groups": true, "events": true,
	"hashtag": true, "explore": true, "stories": true, "reel": true, "reels": true,
	"watch": true, "embed": true, "plugins": true, "wp-content": true, "p": true,
	"tr": true, "dialog": true, "profile.php": true,
}

var (
	tagStripRe       = regexp.MustCompile(`<[^>]*>`)
	escapeSeqRe      = regexp.MustCompile(`\\[ntr]`)
	whitespaceRe     = regexp.MustCompile(`\s+`)
	residualArtifact = "\"'`[]()«»“”"
)

// CleanCandidate normalizes a raw match: HTML entities and tags stripped,
// literal escape sequences collapsed, outer quotes removed, whitespace
// folded.
func CleanCandidate(raw string) string {
	s := html.UnescapeString(raw)
	s = tagStripRe.ReplaceAllString(s, " ")
	s = escapeSeqRe.ReplaceAllString(s, " ")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, residualArtifact)
	return strings.TrimSpace(s)
}

// IsAddressContent reports whether a cleaned string is plausible address
// text at all. The confidence scorer returns 0 for anything failing this.
func IsAddressContent(s string) bool {
	if len(s) < 10 || len(s) > 300 {
		return false
	}
	if _, hit := matchesAny(AddressBlacklist, s); hit {
		return false
	}
	hasLetter := strings.IndexFunc(s, unicode.IsLetter) >= 0
	hasDigit := strings.IndexFunc(s, unicode.IsDigit) >= 0
	return hasLetter && hasDigit
}

// ValidPhone checks digit count bounds and the phone blacklist.
func ValidPhone(s string) bool {
	digits := digitsOnly(s)
	if len(digits) < 7 || len(digits) > 15 {
		return false
	}
	if _, hit := matchesAny(PhoneBlacklist, digits); hit {
		return false
	}
	return true
}

// ValidEmail checks shape, length bounds and the email blacklist.
func ValidEmail(s string) bool {
	if len(s) > 100 || len(s) < 6 {
		return false
	}
	if EmailRule.Pattern.FindString(s) != s {
		return false
	}
	if _, hit := matchesAny(EmailBlacklist, s); hit {
		return false
	}
	return true
}

// ValidPostalCode accepts 5-digit codes that pass the postal blacklist.
func ValidPostalCode(s string) bool {
	if len(s) != 5 || digitsOnly(s) != s {
		return false
	}
	_, hit := matchesAny(PostalCodeBlacklist, s)
	return !hit
}

// ValidCity accepts short letter runs that pass the city blacklist.
func ValidCity(s string) bool {
	if len(s) < 2 || len(s) > 40 {
		return false
	}
	_, hit := matchesAny(CityBlacklist, s)
	return !hit
}

// ValidSocialHandle rejects reserved platform paths and implausible names.
func ValidSocialHandle(username string) bool {
	lower := strings.ToLower(strings.TrimSuffix(username, "/"))
	if socialReservedWords[lower] {
		return false
	}
	if len(lower) < 2 || len(lower) > 60 {
		return false
	}
	if digitsOnly(lower) == lower {
		return false
	}
	return true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
