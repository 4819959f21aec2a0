// File: backend/internal/contactextractor/addressparser.go
package contactextractor

import (
	"regexp"
	"strings"
)

// ParsedAddress is the structural decomposition of a cleaned address string.
type ParsedAddress struct {
	Street     string
	City       string
	PostalCode string
	Country    string
}

var (
	postalCodeRe = regexp.MustCompile(`\b\d{5}\b`)

	// "<name>, <street>, <5-digit> <city>"
	namedAddressRe = regexp.MustCompile(`^([^,]+),\s*([^,]+),\s*(\d{5})\s+(.+)$`)
	// "<street>, <5-digit> <city>[, <country>]"
	streetFirstRe = regexp.MustCompile(`^([^,]+),\s*(\d{5})\s+([^,]+?)(?:,\s*(.+))?$`)
	// "<establishment-name>, <rest>" — first segment looks like a proper noun
	properNounRe = regexp.MustCompile(`^[\p{Lu}][\p{L} \-]{1,40}$`)

	cityAfterPostalRe = regexp.MustCompile(`\d{5}\s+([\p{L}][\p{L} .'\-]{1,39})`)
	trailingWordRunRe = regexp.MustCompile(`^[\p{L}][\p{L} .'\-]*`)

	// street fragment inside an establishment-led address
	numberedStreetRe = regexp.MustCompile(`(?i)\d{1,4}\s*,?\s+(?:calle|avenida|avda|paseo|plaza|camino|carretera|rue|avenue|boulevard|quai|street|road|lane|drive)\b[^,]*`)
	keywordStreetRe  = regexp.MustCompile(`(?i)(?:calle|avenida|avda|paseo|plaza|camino|carretera|rue|avenue|boulevard|quai)\s+[^,]+`)
)

// cityGazetteer is the small fixed fallback recognizer for city names.
var cityGazetteer = []string{
	"Madrid", "Barcelona", "Valencia", "Sevilla", "Bilbao", "Zaragoza", "Málaga",
	"Paris", "Lyon", "Marseille", "Bordeaux", "Toulouse", "Nice",
	"London", "Manchester", "Edinburgh", "Birmingham", "Bristol", "Leeds",
	"New York", "Los Angeles", "Chicago", "Miami", "Boston",
}

// countryIndicators maps a country to the lower-cased tokens that imply it.
var countryIndicators = map[string][]string{
	"Spain":          {"spain", "españa", "espana", "madrid", "barcelona", "valencia", "sevilla", "bilbao", "zaragoza", "málaga"},
	"France":         {"france", "paris", "lyon", "marseille", "bordeaux", "toulouse", "nice"},
	"United Kingdom": {"united kingdom", "uk", "england", "scotland", "london", "manchester", "edinburgh", "birmingham"},
	"United States":  {"united states", "usa", "new york", "los angeles", "chicago", "miami", "boston"},
}

// ParseAddress decomposes a cleaned address string into street, city,
// postal code and country via a cascade of positional patterns: the first
// matching pattern wins, then fallbacks fill whatever is still missing.
func ParseAddress(full string) ParsedAddress {
	var parsed ParsedAddress

	if pc := postalCodeRe.FindString(full); pc != "" && ValidPostalCode(pc) {
		parsed.PostalCode = pc
	}

	if m := namedAddressRe.FindStringSubmatch(full); m != nil {
		parsed.Street = cleanComponent(m[2])
		parsed.City = trailingWordRun(m[4])
		if parsed.PostalCode == "" {
			parsed.PostalCode = m[3]
		}
	} else if m := streetFirstRe.FindStringSubmatch(full); m != nil {
		parsed.Street = cleanComponent(m[1])
		parsed.City = cleanComponent(m[3])
		if m[4] != "" {
			parsed.Country = cleanComponent(m[4])
		}
		if parsed.PostalCode == "" {
			parsed.PostalCode = m[2]
		}
	} else if idx := strings.Index(full, ","); idx > 0 {
		head := strings.TrimSpace(full[:idx])
		rest := strings.TrimSpace(full[idx+1:])
		if properNounRe.MatchString(head) && len(strings.Fields(head)) <= 4 {
			// Establishment-led: the remainder is the address.
			if frag := numberedStreetRe.FindString(rest); frag != "" {
				parsed.Street = cleanComponent(frag)
			} else if frag := keywordStreetRe.FindString(rest); frag != "" {
				parsed.Street = cleanComponent(frag)
			}
		} else {
			parsed.Street = cleanComponent(head)
		}
	}

	if parsed.Street == "" {
		if idx := strings.Index(full, ","); idx > 0 {
			parsed.Street = cleanComponent(full[:idx])
		} else if len(full) > 50 {
			parsed.Street = cleanComponent(full[:50])
		} else {
			parsed.Street = cleanComponent(full)
		}
	}

	if parsed.City == "" && parsed.PostalCode != "" {
		if m := cityAfterPostalRe.FindStringSubmatch(full); m != nil {
			parsed.City = cleanComponent(m[1])
		}
	}
	if parsed.City == "" {
		lower := strings.ToLower(full)
		for _, city := range cityGazetteer {
			if strings.Contains(lower, strings.ToLower(city)) {
				parsed.City = city
				break
			}
		}
	}
	if parsed.City != "" && !ValidCity(parsed.City) {
		parsed.City = ""
	}

	if parsed.Country == "" {
		parsed.Country = InferCountry(full)
	}

	// A street shorter than 3 characters is noise, treat as absent.
	if len(parsed.Street) < 3 {
		parsed.Street = ""
	}
	return parsed
}

// InferCountry matches the text against the country-indicator table.
// Absence of a match leaves the country unset.
func InferCountry(text string) string {
	lower := strings.ToLower(text)
	for country, tokens := range countryIndicators {
		for _, token := range tokens {
			if containsToken(lower, token) {
				return country
			}
		}
	}
	return ""
}

// containsToken matches whole tokens only, so "uk" does not fire on "ukulele".
func containsToken(haystack, token string) bool {
	idx := 0
	for {
		found := strings.Index(haystack[idx:], token)
		if found < 0 {
			return false
		}
		start := idx + found
		end := start + len(token)
		beforeOK := start == 0 || !isWordByte(haystack[start-1])
		afterOK := end >= len(haystack) || !isWordByte(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// trailingWordRun takes the leading letter run of the tail segment,
// dropping anything after a later comma (country, floor numbers, ...).
func trailingWordRun(tail string) string {
	if idx := strings.Index(tail, ","); idx > 0 {
		tail = tail[:idx]
	}
	return cleanComponent(trailingWordRunRe.FindString(strings.TrimSpace(tail)))
}

// cleanComponent strips residual quote and bracket artifacts left over from
// HTML or JSON embedding.
func cleanComponent(s string) string {
	s = strings.Trim(strings.TrimSpace(s), residualArtifact)
	return strings.TrimSpace(s)
}
