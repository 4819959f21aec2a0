// File: backend/internal/contactextractor/dedupe.go
package contactextractor

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SimilarityRatio is the normalized edit-distance ratio between two
// strings: 1 - distance/max(len). Comparison is case- and
// whitespace-insensitive; two empty strings are identical.
func SimilarityRatio(a, b string) float64 {
	na := canonicalText(a)
	nb := canonicalText(b)
	if na == nb {
		return 1
	}
	maxLen := len([]rune(na))
	if l := len([]rune(nb)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(na, nb)
	return 1 - float64(dist)/float64(maxLen)
}

func canonicalText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// DedupeAddresses merges near-duplicate addresses. Composed candidates use
// the looser threshold since component assembly produces more textual
// variation for the same place. The higher combined-score candidate wins.
func DedupeAddresses(list []CandidateAddress, threshold, composedThreshold float64) []CandidateAddress {
	var out []CandidateAddress
	for _, cand := range list {
		duplicate := false
		for i := range out {
			limit := threshold
			if cand.Provenance == ProvenanceComposed || out[i].Provenance == ProvenanceComposed {
				limit = composedThreshold
			}
			if SimilarityRatio(cand.Full, out[i].Full) > limit {
				if cand.FinalScore() > out[i].FinalScore() {
					out[i] = cand
				}
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, cand)
		}
	}
	return out
}

// DedupePhones compares phones on their digit-only form.
func DedupePhones(list []CandidatePhone, threshold float64) []CandidatePhone {
	var out []CandidatePhone
	for _, cand := range list {
		duplicate := false
		for i := range out {
			if digitsOnly(cand.Value) == digitsOnly(out[i].Value) ||
				SimilarityRatio(cand.Value, out[i].Value) > threshold {
				if cand.RelevanceScore > out[i].RelevanceScore {
					out[i] = cand
				}
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, cand)
		}
	}
	return out
}

// DedupeEmails deduplicates by exact lower-cased value, keeping the
// higher-relevance occurrence.
func DedupeEmails(list []CandidateEmail) []CandidateEmail {
	index := make(map[string]int)
	var out []CandidateEmail
	for _, cand := range list {
		key := strings.ToLower(cand.Value)
		if i, ok := index[key]; ok {
			if cand.RelevanceScore > out[i].RelevanceScore {
				out[i] = cand
			}
			continue
		}
		index[key] = len(out)
		out = append(out, cand)
	}
	return out
}

// DedupeSocials deduplicates by (platform, username).
func DedupeSocials(list []SocialHandle) []SocialHandle {
	seen := make(map[string]bool)
	var out []SocialHandle
	for _, cand := range list {
		key := strings.ToLower(cand.Key())
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cand)
	}
	return out
}
