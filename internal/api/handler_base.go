// File: backend/internal/api/handler_base.go
package api

import (
	"sync"

	"github.com/contactflow/backend/internal/config"
	"github.com/contactflow/backend/internal/contentfetcher"
	"github.com/contactflow/backend/internal/crawler"
	"github.com/contactflow/backend/internal/dnsvalidator"
	"github.com/contactflow/backend/internal/geocode"
)

// APIHandler holds shared dependencies for API handlers.
type APIHandler struct {
	Config      *config.AppConfig
	Geocoder    *geocode.Validator
	configMutex sync.RWMutex // Protects AppConfig during dynamic updates
}

// NewAPIHandler creates a new APIHandler with dependencies.
func NewAPIHandler(cfg *config.AppConfig) *APIHandler {
	return &APIHandler{
		Config:   cfg,
		Geocoder: geocode.New(cfg.Geocoder),
	}
}

// crawlerConfigSnapshot copies the crawler configuration under the read
// lock so a running crawl is isolated from concurrent config updates.
func (h *APIHandler) crawlerConfigSnapshot() config.CrawlerConfig {
	h.configMutex.RLock()
	defer h.configMutex.RUnlock()
	return h.Config.Crawler
}

// newCrawler wires a Crawler from a config snapshot.
func newCrawler(cfg config.CrawlerConfig) *crawler.Crawler {
	return crawler.New(cfg, contentfetcher.NewContentFetcher(cfg))
}

// newDNSValidator wires the pre-crawl domain resolvability check.
func newDNSValidator(cfg config.CrawlerConfig) *dnsvalidator.DNSValidator {
	return dnsvalidator.New(cfg)
}
