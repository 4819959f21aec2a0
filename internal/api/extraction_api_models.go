// File: backend/internal/api/extraction_api_models.go
package api

import (
	"github.com/contactflow/backend/internal/contactextractor"
)

// ContactExtractionRequest is the POST body for a contact extraction call.
type ContactExtractionRequest struct {
	Domain  string                    `json:"domain"`
	Options *ContactExtractionOptions `json:"options,omitempty"`
}

// ContactExtractionOptions are per-request overrides of the crawler
// defaults. Zero/nil fields leave the configured default in place.
type ContactExtractionOptions struct {
	MaxPages       int      `json:"maxPages,omitempty"`
	TimeoutSeconds int      `json:"timeoutSeconds,omitempty"`
	PagePaths      []string `json:"pagePaths,omitempty"`
	IncludePhone   *bool    `json:"includePhone,omitempty"`
	IncludeEmail   *bool    `json:"includeEmail,omitempty"`
	SkipDNSCheck   *bool    `json:"skipDnsCheck,omitempty"`
}

// AddressAPIResult is the wire form of the single surfaced address.
type AddressAPIResult struct {
	Full           string                        `json:"full"`
	Street         string                        `json:"street,omitempty"`
	City           string                        `json:"city,omitempty"`
	PostalCode     string                        `json:"postalCode,omitempty"`
	Country        string                        `json:"country,omitempty"`
	Confidence     int                           `json:"confidence"`
	RelevanceScore int                           `json:"relevanceScore"`
	APIValidated   bool                          `json:"apiValidated,omitempty"`
	Coordinates    *contactextractor.Coordinates `json:"coordinates,omitempty"`
}

// ContactExtractionAPIResult is the response body: at most one address and
// phone, up to three emails, every social handle found.
type ContactExtractionAPIResult struct {
	RequestID     string                          `json:"requestId"`
	Domain        string                          `json:"domain"`
	Addresses     []AddressAPIResult              `json:"addresses"`
	Phones        []string                        `json:"phones"`
	Emails        []string                        `json:"emails"`
	SocialMedias  []contactextractor.SocialHandle `json:"socialMedias"`
	PagesAnalyzed int                             `json:"pagesAnalyzed"`
	Errors        []string                        `json:"errors,omitempty"`
}
