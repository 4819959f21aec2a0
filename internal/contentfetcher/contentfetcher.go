// File: backend/internal/contentfetcher/contentfetcher.go
package contentfetcher

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/contactflow/backend/internal/config"
	"golang.org/x/net/html/charset"
)

// maxBodyReadBytes limits how much of a page is read for extraction to
// prevent OOM issues with huge pages.
const maxBodyReadBytes = 10 * 1024 * 1024 // 10MB

// ContentFetcher retrieves page content for the crawler with a fixed
// browser-like User-Agent, bounded timeouts and redirect limits.
type ContentFetcher struct {
	cfg    config.CrawlerConfig
	client *http.Client
}

// NewContentFetcher creates a ContentFetcher from the crawler configuration.
func NewContentFetcher(cfg config.CrawlerConfig) *ContentFetcher {
	jar, jarErr := cookiejar.New(nil)
	if jarErr != nil {
		log.Printf("ContentFetcher: Error creating cookie jar: %v", jarErr)
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: cfg.RequestTimeout,
	}

	maxRedirects := cfg.MaxRedirects
	client := &http.Client{
		Transport: transport,
		Jar:       jar,
		Timeout:   cfg.RequestTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return &ContentFetcher{cfg: cfg, client: client}
}

// Fetch retrieves the content of urlStr. It returns the processed
// (decompressed, UTF-8) body, the final URL after redirects and the HTTP
// status code. An HTTPS URL that fails outright is retried once over HTTP.
func (cf *ContentFetcher) Fetch(ctx context.Context, urlStr string) (body []byte, finalURL string, statusCode int, err error) {
	if !strings.HasPrefix(urlStr, "http://") && !strings.HasPrefix(urlStr, "https://") {
		urlStr = "https://" + urlStr
	}

	var urlsToTry []string
	if strings.HasPrefix(urlStr, "https://") {
		urlsToTry = []string{urlStr, strings.Replace(urlStr, "https://", "http://", 1)}
	} else {
		urlsToTry = []string{urlStr}
	}

	var resp *http.Response
	var reqError error

	for _, attemptURL := range urlsToTry {
		req, errNewReq := http.NewRequestWithContext(ctx, http.MethodGet, attemptURL, nil)
		if errNewReq != nil {
			reqError = fmt.Errorf("failed to create request for %s: %w", attemptURL, errNewReq)
			continue
		}

		req.Header.Set("User-Agent", cf.cfg.UserAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9,es;q=0.8,fr;q=0.7")

		currentResp, doErr := cf.client.Do(req)
		if doErr != nil {
			reqError = fmt.Errorf("request to %s failed: %w", attemptURL, doErr)
			if currentResp != nil {
				io.Copy(io.Discard, currentResp.Body)
				currentResp.Body.Close()
			}
			if ctx.Err() != nil {
				return nil, "", 0, fmt.Errorf("context cancelled during request to %s: %w", attemptURL, ctx.Err())
			}
			continue
		}

		resp = currentResp
		reqError = nil
		break
	}

	if reqError != nil {
		return nil, "", 0, reqError
	}
	if resp == nil {
		return nil, "", 0, fmt.Errorf("no response received after trying: %s", strings.Join(urlsToTry, ", "))
	}

	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	finalURL = resp.Request.URL.String()
	statusCode = resp.StatusCode

	processedBody, bodyReadError := readAndProcessBody(resp, finalURL)
	if bodyReadError != nil {
		return nil, finalURL, statusCode, bodyReadError
	}

	log.Printf("ContentFetcher: Fetched %s (Status: %d, Size: %d bytes, Final URL: %s)", urlStr, statusCode, len(processedBody), finalURL)
	return processedBody, finalURL, statusCode, nil
}

// readAndProcessBody handles Content-Encoding decompression, charset
// conversion to UTF-8 and the read size cap.
func readAndProcessBody(resp *http.Response, finalURL string) ([]byte, error) {
	decompressedReader := io.Reader(resp.Body)
	switch strings.ToLower(resp.Header.Get("Content-Encoding")) {
	case "gzip":
		gzReader, errGzip := gzip.NewReader(resp.Body)
		if errGzip != nil {
			return nil, fmt.Errorf("gzip reader error for %s: %w", finalURL, errGzip)
		}
		defer gzReader.Close()
		decompressedReader = gzReader
	case "deflate":
		zlibReader, errZlib := zlib.NewReader(resp.Body)
		if errZlib != nil {
			return nil, fmt.Errorf("deflate reader error for %s: %w", finalURL, errZlib)
		}
		defer zlibReader.Close()
		decompressedReader = zlibReader
	}

	limitedReader := io.LimitReader(decompressedReader, maxBodyReadBytes)
	rawBodyBytes, readErr := io.ReadAll(limitedReader)
	if readErr != nil && readErr != io.EOF {
		return nil, fmt.Errorf("error reading response body from %s: %w", finalURL, readErr)
	}

	contentType := resp.Header.Get("Content-Type")
	utf8Reader, errConv := charset.NewReader(bytes.NewReader(rawBodyBytes), contentType)
	if errConv != nil {
		log.Printf("ContentFetcher: Could not get UTF-8 reader for %s (ContentType: '%s'): %v. Using raw bytes.", finalURL, contentType, errConv)
		return rawBodyBytes, nil
	}
	utf8Bytes, errReadUTF8 := io.ReadAll(utf8Reader)
	if errReadUTF8 != nil {
		log.Printf("ContentFetcher: Error reading as UTF-8 from %s: %v. Using raw bytes from initial read.", finalURL, errReadUTF8)
		return rawBodyBytes, nil
	}
	return utf8Bytes, nil
}
