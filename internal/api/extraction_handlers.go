// File: backend/internal/api/extraction_handlers.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/contactflow/backend/internal/config"
	"github.com/contactflow/backend/internal/contactextractor"
	"github.com/contactflow/backend/internal/crawler"
	"github.com/google/uuid"
)

// ExtractContactHandler runs a full crawl-and-extract for one domain.
func (h *APIHandler) ExtractContactHandler(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("ExtractContactHandler: Unexpected error: %v", rec)
			respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("unexpected error: %v", rec), "internal_error")
		}
	}()

	var req ContactExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error(), "invalid_input")
		return
	}
	defer r.Body.Close()

	if req.Domain == "" {
		respondWithError(w, http.StatusBadRequest, "'domain' is required", "invalid_input")
		return
	}

	cfg := h.crawlerConfigSnapshot()
	applyOptions(&cfg, req.Options)

	requestID := uuid.NewString()
	log.Printf("ExtractContactHandler: Request %s for domain '%s' (maxPages=%d)", requestID, req.Domain, cfg.MaxPages)

	result, errType, status, err := h.runExtraction(r.Context(), cfg, req.Domain, nil)
	if err != nil {
		respondWithError(w, status, err.Error(), errType)
		return
	}

	respondWithJSON(w, http.StatusOK, shapeResult(requestID, result))
}

// StreamExtractContactHandler is the SSE variant: one page_result event per
// analyzed page, a final crawl_result event, then done.
func (h *APIHandler) StreamExtractContactHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Streaming unsupported!", "internal_error")
		return
	}

	domain := r.URL.Query().Get("domain")
	if domain == "" {
		respondWithError(w, http.StatusBadRequest, "'domain' query parameter is required", "invalid_input")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	cfg := h.crawlerConfigSnapshot()
	requestID := uuid.NewString()
	log.Printf("StreamExtractContactHandler: Request %s for domain '%s'", requestID, domain)

	onPage := func(pageIndex int, path string, page contactextractor.PageResult) {
		jsonData, err := json.Marshal(page)
		if err != nil {
			log.Printf("StreamExtractContactHandler: Error marshalling page result for %s: %v", path, err)
			return
		}
		fmt.Fprintf(w, "id: %d\nevent: page_result\ndata: %s\n\n", pageIndex+1, string(jsonData))
		flusher.Flush()
	}

	result, _, _, err := h.runExtraction(r.Context(), cfg, domain, onPage)
	if err != nil {
		errData, _ := json.Marshal(map[string]string{"domain": domain, "error": err.Error()})
		fmt.Fprintf(w, "event: extraction_error\ndata: %s\n\n", string(errData))
		flusher.Flush()
		fmt.Fprintf(w, "event: done\ndata: Stream completed with error\n\n")
		flusher.Flush()
		return
	}

	jsonData, err := json.Marshal(shapeResult(requestID, result))
	if err != nil {
		log.Printf("StreamExtractContactHandler: Error marshalling crawl result for %s: %v", domain, err)
	} else {
		fmt.Fprintf(w, "event: crawl_result\ndata: %s\n\n", string(jsonData))
		flusher.Flush()
	}
	fmt.Fprintf(w, "event: done\ndata: Contact extraction stream completed\n\n")
	flusher.Flush()
}

// runExtraction performs the shared DNS check, crawl and geocode steps.
// On error it returns the errorType tag and HTTP status the caller should
// report.
func (h *APIHandler) runExtraction(
	ctx context.Context,
	cfg config.CrawlerConfig,
	domain string,
	onPage func(int, string, contactextractor.PageResult),
) (*crawler.CrawlResult, string, int, error) {

	normalized, err := crawler.NormalizeDomain(domain)
	if err != nil {
		return nil, "invalid_input", http.StatusBadRequest, err
	}

	if !cfg.SkipDNSCheck {
		dnsResult := newDNSValidator(cfg).ValidateDomain(ctx, hostOf(normalized))
		if dnsResult.Error != "" {
			return nil, "dns_validation_error", http.StatusUnprocessableEntity,
				fmt.Errorf("domain does not resolve: %s", dnsResult.Error)
		}
	}

	c := newCrawler(cfg)
	c.OnPage = onPage
	result, err := c.Run(ctx, normalized)
	if err != nil {
		return nil, "invalid_input", http.StatusBadRequest, err
	}

	// Optional third-party validation of the winning address; silently
	// skipped when unconfigured or failing.
	if h.Geocoder.Enabled() && len(result.Addresses) > 0 {
		h.Geocoder.Validate(ctx, &result.Addresses[0])
	}
	return result, "", 0, nil
}

// hostOf strips scheme and path from a normalized domain URL.
func hostOf(normalized string) string {
	host := strings.TrimPrefix(normalized, "https://")
	host = strings.TrimPrefix(host, "http://")
	if idx := strings.IndexAny(host, "/:"); idx >= 0 {
		host = host[:idx]
	}
	return host
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// applyOptions overlays per-request overrides onto a config snapshot.
func applyOptions(cfg *config.CrawlerConfig, opts *ContactExtractionOptions) {
	if opts == nil {
		return
	}
	if opts.MaxPages > 0 {
		cfg.MaxPages = opts.MaxPages
	}
	if opts.TimeoutSeconds > 0 {
		cfg.RequestTimeout = secondsToDuration(opts.TimeoutSeconds)
	}
	if len(opts.PagePaths) > 0 {
		cfg.PagePaths = opts.PagePaths
	}
	if opts.IncludePhone != nil {
		cfg.IncludePhone = *opts.IncludePhone
	}
	if opts.IncludeEmail != nil {
		cfg.IncludeEmail = *opts.IncludeEmail
	}
	if opts.SkipDNSCheck != nil {
		cfg.SkipDNSCheck = *opts.SkipDNSCheck
	}
}

// shapeResult converts the internal crawl result to the wire contract.
func shapeResult(requestID string, result *crawler.CrawlResult) ContactExtractionAPIResult {
	out := ContactExtractionAPIResult{
		RequestID:     requestID,
		Domain:        result.Domain,
		Addresses:     []AddressAPIResult{},
		Phones:        []string{},
		Emails:        []string{},
		SocialMedias:  result.Socials,
		PagesAnalyzed: result.PagesAnalyzed,
		Errors:        result.Errors,
	}
	if out.SocialMedias == nil {
		out.SocialMedias = []contactextractor.SocialHandle{}
	}
	for _, addr := range result.Addresses {
		out.Addresses = append(out.Addresses, AddressAPIResult{
			Full:           addr.Full,
			Street:         addr.Street,
			City:           addr.City,
			PostalCode:     addr.PostalCode,
			Country:        addr.Country,
			Confidence:     addr.Confidence,
			RelevanceScore: addr.RelevanceScore,
			APIValidated:   addr.APIValidated,
			Coordinates:    addr.Coordinates,
		})
	}
	for _, phone := range result.Phones {
		out.Phones = append(out.Phones, phone.Value)
	}
	for _, email := range result.Emails {
		out.Emails = append(out.Emails, email.Value)
	}
	return out
}
