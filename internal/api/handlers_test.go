// File: backend/internal/api/handlers_test.go
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/contactflow/backend/internal/config"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "test-api-key"

const contactPageHTML = `<html><body>
<footer>
  <address>Calle Gran Vía 28, 28013 Madrid, Spain</address>
  <p>Teléfono: +34 917 889 900</p>
  <p>Reservas: <a href="mailto:info@acmehotel.com">info@acmehotel.com</a></p>
  <a href="https://instagram.com/acmehotel">Instagram</a>
</footer>
</body></html>`

// newTestRouter builds a router over a real temp config file so the PUT
// config handler can persist updates.
func newTestRouter(t *testing.T) (*mux.Router, *config.AppConfig) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, _ := config.Load(path)
	require.NotNil(t, cfg)
	cfg.Server.APIKey = testAPIKey
	cfg.Crawler.SkipDNSCheck = true
	cfg.Crawler.PageDelay = time.Millisecond
	return NewRouter(cfg), cfg
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	return req
}

func TestPingIsUnauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestAPIKeyRequired(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/extract/contact", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract/contact", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer wrong-key")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestExtractContactRejectsMissingDomain(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/api/v1/extract/contact", strings.NewReader(`{}`))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body["errorType"])
}

func TestExtractContactRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/api/v1/extract/contact", strings.NewReader(`not json`))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractContactEndToEnd(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(contactPageHTML))
	}))
	defer site.Close()

	router, _ := newTestRouter(t)

	reqBody := `{"domain":"` + site.URL + `","options":{"maxPages":1,"pagePaths":["/"],"skipDnsCheck":true}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/api/v1/extract/contact", strings.NewReader(reqBody))))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result ContactExtractionAPIResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, 1, result.PagesAnalyzed)
	assert.LessOrEqual(t, len(result.Addresses), 1)
	require.NotEmpty(t, result.Addresses)
	assert.Equal(t, "28013", result.Addresses[0].PostalCode)
	assert.Contains(t, result.Emails, "info@acmehotel.com")
	require.NotEmpty(t, result.Phones)
	require.NotEmpty(t, result.SocialMedias)
	assert.Equal(t, "acmehotel", result.SocialMedias[0].Username)
}

func TestStreamExtractContact(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(contactPageHTML))
	}))
	defer site.Close()

	router, cfg := newTestRouter(t)
	cfg.Crawler.PagePaths = []string{"/"}
	cfg.Crawler.MaxPages = 1

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/v1/extract/contact/stream?domain="+site.URL, nil)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: page_result")
	assert.Contains(t, body, "event: crawl_result")
	assert.Contains(t, body, "event: done")
}

func TestStreamExtractContactRequiresDomain(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/v1/extract/contact/stream", nil)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCrawlerConfig(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/v1/config/crawler", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var got config.CrawlerConfigJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, config.DefaultMaxPages, got.MaxPages)
}

func TestUpdateCrawlerConfigPersists(t *testing.T) {
	router, _ := newTestRouter(t)

	update := `{"maxPages":3,"pageDelayMs":100,"pagePaths":["/","/contacto"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPut, "/api/v1/config/crawler", strings.NewReader(update))))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got config.CrawlerConfigJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.MaxPages)
	assert.Equal(t, []string{"/", "/contacto"}, got.PagePaths)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/v1/config/crawler", nil)))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.MaxPages)
}

func TestExtractContactOptionsOverrideDefaults(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(contactPageHTML))
	}))
	defer site.Close()

	router, _ := newTestRouter(t)

	reqBody := `{"domain":"` + site.URL + `","options":{"maxPages":1,"pagePaths":["/"],"includePhone":false,"includeEmail":false,"skipDnsCheck":true}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/api/v1/extract/contact", strings.NewReader(reqBody))))

	require.Equal(t, http.StatusOK, rec.Code)
	var result ContactExtractionAPIResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Empty(t, result.Phones)
	assert.Empty(t, result.Emails)
	assert.NotEmpty(t, result.SocialMedias)
}
