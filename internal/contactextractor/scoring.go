// File: backend/internal/contactextractor/scoring.go
package contactextractor

import (
	"regexp"
	"strings"
	"unicode"
)

// ScoreRule is one named scoring condition with its weight, so every bonus
// and penalty can be unit-tested in isolation.
type ScoreRule struct {
	Tag    string
	Weight int
	When   func(s string) bool
}

var (
	streetKeywordRe  = regexp.MustCompile(`(?i)\b(?:calle|avenida|avda|paseo|plaza|camino|carretera|street|st|avenue|ave|road|rd|boulevard|blvd|lane|drive|rue|quai|chemin|allée|allee|impasse|cours)\b`)
	canonicalShapeRe = regexp.MustCompile(`\d+\s+[\p{L}][\p{L} .'\-]*,\s*\d{5}\s+[\p{L}][\p{L} .'\-]*`)
	countryTokenRe   = regexp.MustCompile(`(?i)\b(?:spain|españa|france|united kingdom|uk|england|scotland|united states|usa)\b`)
	hasDigitRe       = regexp.MustCompile(`\d`)
	postalRunRe      = regexp.MustCompile(`\b\d{5}\b`)
)

// ConfidenceRules are the additive and subtractive structural-plausibility
// rules for an address string. The score starts at 0 and is clamped to
// [0,100] after folding.
var ConfidenceRules = []ScoreRule{
	{"postal-code", 30, func(s string) bool { return postalRunRe.MatchString(s) }},
	{"street-keyword", 25, streetKeywordRe.MatchString},
	{"has-digit", 20, hasDigitRe.MatchString},
	{"good-length", 15, func(s string) bool { return len(s) > 20 && len(s) < 150 }},
	{"has-comma", 10, func(s string) bool { return strings.Contains(s, ",") }},
	{"canonical-shape", 20, canonicalShapeRe.MatchString},
	{"country-token", 10, countryTokenRe.MatchString},
	{"too-long", -15, func(s string) bool { return len(s) > 200 }},
	{"too-short", -10, func(s string) bool { return len(s) < 15 }},
	{"digit-heavy", -20, func(s string) bool { return digitRatio(s) > 0.5 }},
	{"symbol-noise", -15, func(s string) bool { return specialCharCount(s) > 5 }},
}

// ConfidenceScore computes the structural plausibility of a cleaned address
// string, independent of the domain being searched. A string failing the
// address-content check scores 0 outright.
func ConfidenceScore(addr string) int {
	if !IsAddressContent(addr) {
		return 0
	}
	score := 0
	for _, rule := range ConfidenceRules {
		if rule.When(addr) {
			score += rule.Weight
		}
	}
	return clampScore(score)
}

// keywordBonus is one context/text keyword with its weight.
type keywordBonus struct {
	Token  string
	Weight int
}

var establishmentBonuses = []keywordBonus{
	{"hotel", 15}, {"restaurante", 15}, {"restaurant", 15}, {"clínica", 15},
	{"clinic", 15}, {"oficina", 10}, {"office", 10},
	{"contact", 10}, {"contacto", 10}, {"dirección", 15}, {"direccion", 15},
	{"address", 15}, {"adresse", 15}, {"visit us", 20}, {"find us", 20},
	{"encuéntranos", 20}, {"dónde estamos", 20}, {"where we are", 15},
}

var genericPenalties = []keywordBonus{
	{"headquarters", -10}, {"corporate", -10}, {"support", -10},
	{"noreply", -15}, {"no-reply", -15},
	{"module", -20}, {"json", -20}, {"javascript", -20}, {"cookie", -10},
}

var emailLocalBonuses = []keywordBonus{
	{"info", 25}, {"contact", 25}, {"contacto", 25}, {"hello", 20},
	{"hola", 20}, {"bonjour", 20}, {"reservas", 25}, {"reservations", 25},
	{"booking", 20}, {"reception", 15}, {"recepcion", 15},
}

var emailLocalPenalties = []keywordBonus{
	{"noreply", -25}, {"no-reply", -25}, {"donotreply", -25},
	{"webmaster", -10}, {"postmaster", -15}, {"mailer-daemon", -30},
	{"support", -10}, {"admin", -5},
}

var freeEmailProviders = []string{
	"gmail.", "hotmail.", "yahoo.", "outlook.", "aol.", "protonmail.", "gmx.", "icloud.",
}

var phoneContextBonuses = []keywordBonus{
	{"tel", 15}, {"phone", 15}, {"call", 10}, {"contact", 10},
	{"llámanos", 15}, {"llamanos", 15}, {"whatsapp", 10}, {"téléphone", 15},
}

// DomainBaseName extracts the registrable name segment of a domain:
// scheme and "www." stripped, lower-cased, text before the first dot.
func DomainBaseName(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	if idx := strings.IndexAny(d, "/:"); idx >= 0 {
		d = d[:idx]
	}
	if idx := strings.Index(d, "."); idx > 0 {
		d = d[:idx]
	}
	return d
}

// AddressRelevance scores how likely the address belongs to the domain
// under investigation. The structural confidence folds in at 30% weight as
// the base; domain-name and contextual evidence dominate from there.
func AddressRelevance(addr CandidateAddress, domainBase string) int {
	text := strings.ToLower(addr.Full)
	ctx := strings.ToLower(addr.Context)

	score := addr.Confidence * 30 / 100

	if usableDomainBase(domainBase) {
		structurallyComplete := postalRunRe.MatchString(addr.Full) && streetKeywordRe.MatchString(addr.Full)
		switch {
		case strings.Contains(text, domainBase) && structurallyComplete:
			score += 50
		case strings.Contains(text, domainBase):
			score += 30
		case strings.Contains(ctx, domainBase):
			score += 40
		}
		// Locale postal code plus the domain name nearby is a strong
		// combination signal.
		if postalRunRe.MatchString(addr.Full) && strings.Contains(ctx, domainBase) {
			score += 15
		}
	}

	score += keywordScore(text+" "+ctx, establishmentBonuses)
	score += keywordScore(text+" "+ctx, genericPenalties)

	if canonicalShapeRe.MatchString(addr.Full) {
		score += 10
	}
	return clampScore(score)
}

// PhoneRelevance starts at 30 and rewards contact-flavored context and the
// domain name appearing near the number.
func PhoneRelevance(phone CandidatePhone, domainBase string) int {
	ctx := strings.ToLower(phone.Context)
	score := 30
	if usableDomainBase(domainBase) && strings.Contains(ctx, domainBase) {
		score += 50
	}
	score += keywordScore(ctx, phoneContextBonuses)
	score += keywordScore(ctx, genericPenalties)
	if strings.Contains(ctx, "fax") {
		score -= 10
	}
	return clampScore(score)
}

// EmailRelevance starts at 30; an email hosted on the investigated domain
// is the single strongest signal.
func EmailRelevance(email CandidateEmail, domainBase string) int {
	value := strings.ToLower(email.Value)
	ctx := strings.ToLower(email.Context)
	score := 30

	local, domainPart, found := strings.Cut(value, "@")
	if !found {
		return 0
	}

	if usableDomainBase(domainBase) {
		if strings.Contains(domainPart, domainBase) {
			score += 60
		} else if strings.Contains(ctx, domainBase) {
			score += 30
		}
	}

	score += keywordScore(local, emailLocalBonuses)
	score += keywordScore(local, emailLocalPenalties)
	score += keywordScore(value+" "+ctx, genericPenalties)

	for _, provider := range freeEmailProviders {
		if strings.HasPrefix(domainPart, provider) {
			score -= 15
			break
		}
	}

	// Random-looking local parts carry no identity signal.
	if len(local) >= 12 && strings.IndexFunc(local, unicode.IsDigit) >= 0 {
		score -= 15
	}
	return clampScore(score)
}

func keywordScore(haystack string, table []keywordBonus) int {
	total := 0
	for _, kb := range table {
		if strings.Contains(haystack, kb.Token) {
			total += kb.Weight
		}
	}
	return total
}

// usableDomainBase rejects bases too short to be meaningful evidence.
func usableDomainBase(base string) bool { return len(base) >= 4 }

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func digitRatio(s string) float64 {
	if len(s) == 0 {
		return 0
	}
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits) / float64(len(s))
}

func specialCharCount(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		switch r {
		case ',', '.', '-':
			continue
		}
		count++
	}
	return count
}
