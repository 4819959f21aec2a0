// File: backend/internal/contactextractor/dedupe_test.go
package contactextractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarityRatio(t *testing.T) {
	assert.Equal(t, 1.0, SimilarityRatio("Calle Gran Vía 28", "calle  gran vía 28"))
	assert.Equal(t, 1.0, SimilarityRatio("", ""))

	near := SimilarityRatio("Calle Gran Via 28, 28013 Madrid", "Calle Gran Vía 28, 28013 Madrid")
	assert.Greater(t, near, 0.9)

	far := SimilarityRatio("Calle Gran Vía 28, 28013 Madrid", "10 Downing Street, London")
	assert.Less(t, far, 0.5)
}

func TestDedupeAddressesKeepsHigherScored(t *testing.T) {
	low := CandidateAddress{
		Full: "Calle Gran Via 28, 28013 Madrid", Confidence: 60, RelevanceScore: 40,
		Provenance: ProvenanceFreeText,
	}
	high := CandidateAddress{
		Full: "Calle Gran Vía 28, 28013 Madrid", Confidence: 90, RelevanceScore: 80,
		Provenance: ProvenanceStructured,
	}

	out := DedupeAddresses([]CandidateAddress{low, high}, 0.8, 0.7)
	assert.Len(t, out, 1)
	assert.Equal(t, high.Full, out[0].Full)
	assert.Equal(t, 90, out[0].Confidence)
}

func TestDedupeAddressesComposedUsesLooserThreshold(t *testing.T) {
	structured := CandidateAddress{
		Full: "Calle Gran Vía 28, 28013 Madrid España", Confidence: 80, RelevanceScore: 60,
		Provenance: ProvenanceStructured,
	}
	composed := CandidateAddress{
		Full: "Calle Gran Vía 28, 28013 Madrid", Confidence: 70, RelevanceScore: 50,
		Provenance: ProvenanceComposed,
	}

	// Similar enough for the composed threshold, distinct addresses stay
	// separate under a strict one.
	out := DedupeAddresses([]CandidateAddress{structured, composed}, 0.99, 0.7)
	assert.Len(t, out, 1)
	assert.Equal(t, structured.Full, out[0].Full)
}

func TestDedupeAddressesDistinctSurvive(t *testing.T) {
	a := CandidateAddress{Full: "Calle Gran Vía 28, 28013 Madrid", Provenance: ProvenanceFreeText}
	b := CandidateAddress{Full: "228 rue de Rivoli, 75001 Paris", Provenance: ProvenanceFreeText}

	out := DedupeAddresses([]CandidateAddress{a, b}, 0.8, 0.7)
	assert.Len(t, out, 2)
}

func TestDedupeAddressesIdempotent(t *testing.T) {
	list := []CandidateAddress{
		{Full: "Calle Gran Vía 28, 28013 Madrid", Provenance: ProvenanceFreeText},
		{Full: "228 rue de Rivoli, 75001 Paris", Provenance: ProvenanceStructured},
	}
	once := DedupeAddresses(list, 0.8, 0.7)
	twice := DedupeAddresses(once, 0.8, 0.7)
	assert.Equal(t, once, twice)
}

func TestDedupePhonesDigitEquality(t *testing.T) {
	a := CandidatePhone{Value: "+34 917-889-900", RelevanceScore: 40}
	b := CandidatePhone{Value: "+34 917 889 900", RelevanceScore: 70}

	out := DedupePhones([]CandidatePhone{a, b}, 0.8)
	assert.Len(t, out, 1)
	assert.Equal(t, 70, out[0].RelevanceScore)
}

func TestDedupePhonesDistinctSurvive(t *testing.T) {
	a := CandidatePhone{Value: "+34 917 889 900"}
	b := CandidatePhone{Value: "+33 1 44 58 10 10"}

	out := DedupePhones([]CandidatePhone{a, b}, 0.8)
	assert.Len(t, out, 2)
}

func TestDedupeEmailsCaseInsensitive(t *testing.T) {
	out := DedupeEmails([]CandidateEmail{
		{Value: "info@acmehotel.com", RelevanceScore: 50},
		{Value: "INFO@acmehotel.com", RelevanceScore: 80},
		{Value: "reservas@acmehotel.com", RelevanceScore: 60},
	})
	assert.Len(t, out, 2)
	assert.Equal(t, 80, out[0].RelevanceScore)
}

func TestDedupeSocialsByPlatformAndUsername(t *testing.T) {
	out := DedupeSocials([]SocialHandle{
		{Platform: PlatformInstagram, Username: "acmehotel", URL: "https://instagram.com/acmehotel"},
		{Platform: PlatformInstagram, Username: "AcmeHotel", URL: "https://instagram.com/AcmeHotel"},
		{Platform: PlatformFacebook, Username: "acmehotel", URL: "https://facebook.com/acmehotel"},
	})
	assert.Len(t, out, 2)
}
