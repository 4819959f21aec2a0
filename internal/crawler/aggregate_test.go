// File: backend/internal/crawler/aggregate_test.go
package crawler

import (
	"testing"

	"github.com/contactflow/backend/internal/config"
	"github.com/contactflow/backend/internal/contactextractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregateConfig() config.CrawlerConfig {
	return config.ConvertJSONToCrawlerConfig(config.CrawlerConfigJSON{})
}

func TestFinalizeKeepsSingleBestAddress(t *testing.T) {
	result := &CrawlResult{
		Addresses: []contactextractor.CandidateAddress{
			{Full: "228 rue de Rivoli, 75001 Paris", Confidence: 90, RelevanceScore: 85},
			{Full: "Calle Gran Vía 28, 28013 Madrid", Confidence: 95, RelevanceScore: 40},
			{Full: "10 Downing Street, 00001 London", Confidence: 60, RelevanceScore: 30},
		},
	}

	Finalize(result, "lemeurice", aggregateConfig())

	require.Len(t, result.Addresses, 1)
	// 90*0.4 + 85*0.6 = 87 beats 95*0.4 + 40*0.6 = 62.
	assert.Equal(t, "228 rue de Rivoli, 75001 Paris", result.Addresses[0].Full)
}

func TestFinalizeKeepsSingleBestPhone(t *testing.T) {
	result := &CrawlResult{
		Phones: []contactextractor.CandidatePhone{
			{Value: "+34 917 889 900", Context: "page footer"},
			{Value: "+34 911 223 344", Context: "teléfono acmehotel, call us"},
		},
	}

	Finalize(result, "acmehotel", aggregateConfig())

	require.Len(t, result.Phones, 1)
	assert.Equal(t, "+34 911 223 344", result.Phones[0].Value)
}

func TestFinalizeCapsRelevantEmailsAtThree(t *testing.T) {
	result := &CrawlResult{
		Emails: []contactextractor.CandidateEmail{
			{Value: "info@acmehotel.com"},
			{Value: "contact@acmehotel.com"},
			{Value: "reservas@acmehotel.com"},
			{Value: "booking@acmehotel.com"},
			{Value: "random999999999999@gmail.com"},
		},
	}

	Finalize(result, "acmehotel", aggregateConfig())

	require.Len(t, result.Emails, 3)
	for _, email := range result.Emails {
		assert.GreaterOrEqual(t, email.RelevanceScore, relevantEmailThreshold)
		assert.NotEqual(t, "random999999999999@gmail.com", email.Value)
	}
}

func TestFinalizeEmailFallbackToBestOne(t *testing.T) {
	result := &CrawlResult{
		Emails: []contactextractor.CandidateEmail{
			{Value: "webmaster@gmail.com"},
			{Value: "listing@yahoo.com"},
		},
	}

	Finalize(result, "acmehotel", aggregateConfig())

	// Nothing clears the relevance bar; the single best survives.
	require.Len(t, result.Emails, 1)
	assert.Equal(t, "listing@yahoo.com", result.Emails[0].Value)
}

func TestFinalizeHonorsToggles(t *testing.T) {
	cfg := aggregateConfig()
	cfg.IncludePhone = false
	cfg.IncludeEmail = false

	result := &CrawlResult{
		Phones: []contactextractor.CandidatePhone{{Value: "+34 917 889 900"}},
		Emails: []contactextractor.CandidateEmail{{Value: "info@acmehotel.com"}},
	}

	Finalize(result, "acmehotel", cfg)

	assert.Empty(t, result.Phones)
	assert.Empty(t, result.Emails)
}

func TestMergePageDeduplicatesAcrossPages(t *testing.T) {
	cfg := aggregateConfig()
	acc := &CrawlResult{}

	pageA := contactextractor.PageResult{
		Addresses: []contactextractor.CandidateAddress{
			{Full: "Calle Gran Vía 28, 28013 Madrid", Confidence: 80, RelevanceScore: 50, Provenance: contactextractor.ProvenanceFreeText},
		},
		Emails:  []contactextractor.CandidateEmail{{Value: "info@acmehotel.com", RelevanceScore: 90}},
		Socials: []contactextractor.SocialHandle{{Platform: contactextractor.PlatformInstagram, Username: "acmehotel"}},
	}
	pageB := contactextractor.PageResult{
		Addresses: []contactextractor.CandidateAddress{
			{Full: "Calle Gran Via 28, 28013 Madrid", Confidence: 95, RelevanceScore: 70, Provenance: contactextractor.ProvenanceStructured},
		},
		Emails:  []contactextractor.CandidateEmail{{Value: "info@acmehotel.com", RelevanceScore: 40}},
		Socials: []contactextractor.SocialHandle{{Platform: contactextractor.PlatformInstagram, Username: "acmehotel"}},
		Errors:  []string{"/about: fetch returned status 404"},
	}

	MergePage(acc, pageA, cfg)
	MergePage(acc, pageB, cfg)

	require.Len(t, acc.Addresses, 1)
	assert.Equal(t, 95, acc.Addresses[0].Confidence)

	require.Len(t, acc.Emails, 1)
	assert.Equal(t, 90, acc.Emails[0].RelevanceScore)

	assert.Len(t, acc.Socials, 1)
	assert.Len(t, acc.Errors, 1)
}
