// File: backend/internal/contactextractor/models.go
package contactextractor

// Provenance records where an address candidate came from.
type Provenance string

const (
	// ProvenanceFreeText marks a candidate matched in the page's plain text.
	ProvenanceFreeText Provenance = "free-text"
	// ProvenanceStructured marks a candidate matched inside a contextual
	// DOM region (footer, address element, microdata block).
	ProvenanceStructured Provenance = "structured"
	// ProvenanceComposed marks a candidate assembled from separate street
	// and postal-code/city fragments found in the same region.
	ProvenanceComposed Provenance = "composed"
)

// Coordinates attached after a successful geocode validation.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CandidateAddress is a validated, parsed and scored postal address
// candidate. Confidence and RelevanceScore are always in [0,100]; a
// candidate is only valid when Street is present.
type CandidateAddress struct {
	Full           string       `json:"full"`
	Street         string       `json:"street,omitempty"`
	City           string       `json:"city,omitempty"`
	PostalCode     string       `json:"postalCode,omitempty"`
	Country        string       `json:"country,omitempty"`
	Confidence     int          `json:"confidence"`
	RelevanceScore int          `json:"relevanceScore"`
	Provenance     Provenance   `json:"provenance,omitempty"`
	Context        string       `json:"context,omitempty"`
	APIValidated   bool         `json:"apiValidated,omitempty"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
}

// FinalScore combines structural confidence and domain relevance for
// cross-page ranking.
func (a CandidateAddress) FinalScore() float64 {
	return float64(a.Confidence)*0.4 + float64(a.RelevanceScore)*0.6
}

// CandidatePhone is a normalized phone candidate with its relevance score.
type CandidatePhone struct {
	Value          string `json:"value"`
	RelevanceScore int    `json:"relevanceScore"`
	Context        string `json:"context,omitempty"`
}

// CandidateEmail is a normalized email candidate with its relevance score.
type CandidateEmail struct {
	Value          string `json:"value"`
	RelevanceScore int    `json:"relevanceScore"`
	Context        string `json:"context,omitempty"`
}

// SocialPlatform is the fixed set of recognized platforms.
type SocialPlatform string

const (
	PlatformInstagram SocialPlatform = "instagram"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformYouTube   SocialPlatform = "youtube"
	PlatformTikTok    SocialPlatform = "tiktok"
)

// SocialHandle is unique per (platform, username); URL is the derived
// canonical profile URL.
type SocialHandle struct {
	Platform SocialPlatform `json:"platform"`
	Username string         `json:"username"`
	URL      string         `json:"url"`
}

// Key returns the uniqueness key for deduplication.
func (s SocialHandle) Key() string { return string(s.Platform) + "/" + s.Username }

// PageResult bundles everything extracted from one fetched page.
type PageResult struct {
	Path      string             `json:"path"`
	Addresses []CandidateAddress `json:"addresses"`
	Phones    []CandidatePhone   `json:"phones"`
	Emails    []CandidateEmail   `json:"emails"`
	Socials   []SocialHandle     `json:"socialMedias"`
	Errors    []string           `json:"errors,omitempty"`
}
