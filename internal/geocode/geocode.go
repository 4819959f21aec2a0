// File: backend/internal/geocode/geocode.go
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/contactflow/backend/internal/config"
	"github.com/contactflow/backend/internal/contactextractor"
)

// confidenceBoost is added to a geocode-confirmed address, capped at 100.
const confidenceBoost = 20

// Validator issues a single geocoding lookup for the top-ranked address.
// It is feature-flagged by the presence of an API key: when disabled, or
// on any failure, validation is silently skipped and never affects the
// primary result.
type Validator struct {
	cfg    config.GeocoderConfig
	client *http.Client
}

func New(cfg config.GeocoderConfig) *Validator {
	return &Validator{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether the validator is configured to run.
func (v *Validator) Enabled() bool { return v.cfg.Enabled() }

type geocodeResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate geocodes the address in place. Errors are logged as warnings
// and swallowed; the caller's result is only ever improved, never degraded.
func (v *Validator) Validate(ctx context.Context, addr *contactextractor.CandidateAddress) {
	if !v.Enabled() || addr == nil || addr.Full == "" {
		return
	}

	coords, err := v.lookup(ctx, addr.Full)
	if err != nil {
		log.Printf("Geocode: Warning - validation skipped for '%s': %v", addr.Full, err)
		return
	}

	addr.APIValidated = true
	addr.Coordinates = coords
	addr.Confidence += confidenceBoost
	if addr.Confidence > 100 {
		addr.Confidence = 100
	}
	log.Printf("Geocode: Address validated at (%f, %f), confidence raised to %d", coords.Lat, coords.Lng, addr.Confidence)
}

func (v *Validator) lookup(ctx context.Context, address string) (*contactextractor.Coordinates, error) {
	endpoint, err := url.Parse(v.cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid geocoder endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("address", address)
	query.Set("key", v.cfg.APIKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("geocode endpoint returned status %d", resp.StatusCode)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("geocode response decode failed: %w", err)
	}
	if parsed.Lat == 0 && parsed.Lng == 0 {
		return nil, fmt.Errorf("geocode response carried no coordinates")
	}
	return &contactextractor.Coordinates{Lat: parsed.Lat, Lng: parsed.Lng}, nil
}
