// File: backend/internal/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

const (
	DefaultRequestTimeoutSeconds = 25
	DefaultMaxPages              = 6
	DefaultPageDelayMs           = 300
	DefaultMaxRedirects          = 7

	DefaultEarlyStopRelevance          = 70
	DefaultEarlyStopConfidence         = 70
	DefaultEarlyStopConfidentAddresses = 2

	DefaultSimilarityThreshold         = 0.8
	DefaultComposedSimilarityThreshold = 0.7

	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	DefaultSystemAPIKeyPlaceholder = "SET_A_REAL_KEY_IN_CONFIG_OR_ENV_c7e2a91b4d03f6"
)

// DefaultPagePaths is the ordered list of candidate paths fetched under a
// domain. Order matters: the crawler stops early once strong address
// evidence has accumulated, so the most promising paths come first.
func DefaultPagePaths() []string {
	return []string{
		"/",
		"/contact",
		"/contacto",
		"/contact-us",
		"/about",
		"/about-us",
		"/nosotros",
		"/legal",
		"/aviso-legal",
		"/privacy",
		"/careers",
	}
}

func DefaultResolvers() []string {
	return []string{"1.1.1.1:53", "8.8.8.8:53"}
}

type ServerConfig struct {
	Port   string `json:"port"`
	APIKey string `json:"apiKey"`
}

type LoggingConfig struct {
	Level string `json:"level"`
}

// CrawlerConfig carries the crawl and scoring knobs with durations already
// converted. The JSON mirror lives in CrawlerConfigJSON.
type CrawlerConfig struct {
	RequestTimeout time.Duration
	MaxPages       int
	PageDelay      time.Duration
	PagePaths      []string
	UserAgent      string
	MaxRedirects   int
	IncludePhone   bool
	IncludeEmail   bool

	// Early-stop thresholds. Empirically chosen; kept configurable on
	// purpose since no documented rationale fixes the exact values.
	EarlyStopRelevance          int
	EarlyStopConfidence         int
	EarlyStopConfidentAddresses int

	// Dedup similarity thresholds (normalized edit-distance ratio).
	SimilarityThreshold         float64
	ComposedSimilarityThreshold float64

	Resolvers    []string
	SkipDNSCheck bool
}

// CrawlerConfigJSON is the wire/file form of CrawlerConfig.
type CrawlerConfigJSON struct {
	RequestTimeoutSeconds       int      `json:"requestTimeoutSeconds"`
	MaxPages                    int      `json:"maxPages"`
	PageDelayMs                 int      `json:"pageDelayMs"`
	PagePaths                   []string `json:"pagePaths,omitempty"`
	UserAgent                   string   `json:"userAgent,omitempty"`
	MaxRedirects                int      `json:"maxRedirects"`
	IncludePhone                *bool    `json:"includePhone,omitempty"`
	IncludeEmail                *bool    `json:"includeEmail,omitempty"`
	EarlyStopRelevance          int      `json:"earlyStopRelevance,omitempty"`
	EarlyStopConfidence         int      `json:"earlyStopConfidence,omitempty"`
	EarlyStopConfidentAddresses int      `json:"earlyStopConfidentAddresses,omitempty"`
	SimilarityThreshold         float64  `json:"similarityThreshold,omitempty"`
	ComposedSimilarityThreshold float64  `json:"composedSimilarityThreshold,omitempty"`
	Resolvers                   []string `json:"resolvers,omitempty"`
	SkipDNSCheck                bool     `json:"skipDnsCheck,omitempty"`
}

type GeocoderConfig struct {
	Endpoint string `json:"endpoint,omitempty"`
	APIKey   string `json:"apiKey,omitempty"`
}

// Enabled reports whether geocode validation is feature-flagged on.
func (g GeocoderConfig) Enabled() bool { return g.APIKey != "" && g.Endpoint != "" }

type AppConfig struct {
	Server         ServerConfig
	Crawler        CrawlerConfig
	Geocoder       GeocoderConfig
	Logging        LoggingConfig
	loadedFromPath string
}

func (ac *AppConfig) GetLoadedFromPath() string { return ac.loadedFromPath }

type AppConfigJSON struct {
	Server   ServerConfig      `json:"server"`
	Crawler  CrawlerConfigJSON `json:"crawler"`
	Geocoder GeocoderConfig    `json:"geocoder"`
	Logging  LoggingConfig     `json:"logging"`
}

// ConvertJSONToCrawlerConfig applies defaults for anything the file left
// unset or invalid.
func ConvertJSONToCrawlerConfig(jsonCfg CrawlerConfigJSON) CrawlerConfig {
	cfg := CrawlerConfig{
		RequestTimeout:              time.Duration(jsonCfg.RequestTimeoutSeconds) * time.Second,
		MaxPages:                    jsonCfg.MaxPages,
		PageDelay:                   time.Duration(jsonCfg.PageDelayMs) * time.Millisecond,
		PagePaths:                   jsonCfg.PagePaths,
		UserAgent:                   jsonCfg.UserAgent,
		MaxRedirects:                jsonCfg.MaxRedirects,
		IncludePhone:                true,
		IncludeEmail:                true,
		EarlyStopRelevance:          jsonCfg.EarlyStopRelevance,
		EarlyStopConfidence:         jsonCfg.EarlyStopConfidence,
		EarlyStopConfidentAddresses: jsonCfg.EarlyStopConfidentAddresses,
		SimilarityThreshold:         jsonCfg.SimilarityThreshold,
		ComposedSimilarityThreshold: jsonCfg.ComposedSimilarityThreshold,
		Resolvers:                   jsonCfg.Resolvers,
		SkipDNSCheck:                jsonCfg.SkipDNSCheck,
	}
	if jsonCfg.IncludePhone != nil {
		cfg.IncludePhone = *jsonCfg.IncludePhone
	}
	if jsonCfg.IncludeEmail != nil {
		cfg.IncludeEmail = *jsonCfg.IncludeEmail
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeoutSeconds * time.Second
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.PageDelay <= 0 {
		cfg.PageDelay = DefaultPageDelayMs * time.Millisecond
	}
	if len(cfg.PagePaths) == 0 {
		cfg.PagePaths = DefaultPagePaths()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = DefaultMaxRedirects
	}
	if cfg.EarlyStopRelevance <= 0 {
		cfg.EarlyStopRelevance = DefaultEarlyStopRelevance
	}
	if cfg.EarlyStopConfidence <= 0 {
		cfg.EarlyStopConfidence = DefaultEarlyStopConfidence
	}
	if cfg.EarlyStopConfidentAddresses <= 0 {
		cfg.EarlyStopConfidentAddresses = DefaultEarlyStopConfidentAddresses
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.ComposedSimilarityThreshold <= 0 || cfg.ComposedSimilarityThreshold > 1 {
		cfg.ComposedSimilarityThreshold = DefaultComposedSimilarityThreshold
	}
	if len(cfg.Resolvers) == 0 {
		cfg.Resolvers = DefaultResolvers()
	}
	return cfg
}

func ConvertCrawlerConfigToJSON(cfg CrawlerConfig) CrawlerConfigJSON {
	includePhone := cfg.IncludePhone
	includeEmail := cfg.IncludeEmail
	return CrawlerConfigJSON{
		RequestTimeoutSeconds:       int(cfg.RequestTimeout / time.Second),
		MaxPages:                    cfg.MaxPages,
		PageDelayMs:                 int(cfg.PageDelay / time.Millisecond),
		PagePaths:                   cfg.PagePaths,
		UserAgent:                   cfg.UserAgent,
		MaxRedirects:                cfg.MaxRedirects,
		IncludePhone:                &includePhone,
		IncludeEmail:                &includeEmail,
		EarlyStopRelevance:          cfg.EarlyStopRelevance,
		EarlyStopConfidence:         cfg.EarlyStopConfidence,
		EarlyStopConfidentAddresses: cfg.EarlyStopConfidentAddresses,
		SimilarityThreshold:         cfg.SimilarityThreshold,
		ComposedSimilarityThreshold: cfg.ComposedSimilarityThreshold,
		Resolvers:                   cfg.Resolvers,
		SkipDNSCheck:                cfg.SkipDNSCheck,
	}
}

func ConvertJSONToAppConfig(jsonCfg AppConfigJSON) *AppConfig {
	return &AppConfig{
		Server:   jsonCfg.Server,
		Crawler:  ConvertJSONToCrawlerConfig(jsonCfg.Crawler),
		Geocoder: jsonCfg.Geocoder,
		Logging:  jsonCfg.Logging,
	}
}

func ConvertAppConfigToJSON(appCfg *AppConfig) AppConfigJSON {
	return AppConfigJSON{
		Server:   appCfg.Server,
		Crawler:  ConvertCrawlerConfigToJSON(appCfg.Crawler),
		Geocoder: appCfg.Geocoder,
		Logging:  appCfg.Logging,
	}
}

// Load reads the main config file. A missing file is not fatal: defaults
// are used and written back so the operator has a file to edit.
func Load(mainConfigPath string) (*AppConfig, error) {
	if mainConfigPath == "" {
		mainConfigPath = "config.json"
		log.Printf("Config: Main config path empty, using default: %s", mainConfigPath)
	}
	log.Printf("Config: Attempting to load main config from: %s", mainConfigPath)

	appCfgJSON := DefaultAppConfigJSON()
	var originalLoadError error

	data, err := os.ReadFile(mainConfigPath)
	if err != nil {
		originalLoadError = err
		if os.IsNotExist(err) {
			log.Printf("Config: Main config file '%s' not found. Using defaults and attempting to save.", mainConfigPath)
			defaultAppCfg := ConvertJSONToAppConfig(appCfgJSON)
			defaultAppCfg.loadedFromPath = mainConfigPath
			if saveErr := Save(defaultAppCfg, mainConfigPath); saveErr != nil {
				log.Printf("Config: Failed to save default config file '%s': %v", mainConfigPath, saveErr)
			} else {
				log.Printf("Config: Saved default config to '%s'", mainConfigPath)
			}
		} else {
			log.Printf("Config: Error reading main config '%s': %v. Using defaults.", mainConfigPath, err)
		}
	} else {
		if errUnmarshal := json.Unmarshal(data, &appCfgJSON); errUnmarshal != nil {
			log.Printf("Config: Error unmarshalling main config '%s': %v. Using defaults for unparsed fields.", mainConfigPath, errUnmarshal)
			originalLoadError = errUnmarshal
		}
	}

	appConfig := ConvertJSONToAppConfig(appCfgJSON)
	appConfig.loadedFromPath = mainConfigPath
	return appConfig, originalLoadError
}

// Save writes the configuration back in its JSON-file form.
func Save(cfg *AppConfig, filePath string) error {
	if filePath == "" {
		return fmt.Errorf("cannot save config, file path is empty")
	}
	appCfgJSON := ConvertAppConfigToJSON(cfg)
	data, err := json.MarshalIndent(appCfgJSON, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal app config to JSON: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write app config to file '%s': %w", filePath, err)
	}
	log.Printf("Config: Successfully saved main configuration to '%s'", filePath)
	return nil
}

func DefaultAppConfigJSON() AppConfigJSON {
	includePhone := true
	includeEmail := true
	return AppConfigJSON{
		Server: ServerConfig{
			Port:   "8080",
			APIKey: DefaultSystemAPIKeyPlaceholder,
		},
		Crawler: CrawlerConfigJSON{
			RequestTimeoutSeconds:       DefaultRequestTimeoutSeconds,
			MaxPages:                    DefaultMaxPages,
			PageDelayMs:                 DefaultPageDelayMs,
			PagePaths:                   DefaultPagePaths(),
			UserAgent:                   DefaultUserAgent,
			MaxRedirects:                DefaultMaxRedirects,
			IncludePhone:                &includePhone,
			IncludeEmail:                &includeEmail,
			EarlyStopRelevance:          DefaultEarlyStopRelevance,
			EarlyStopConfidence:         DefaultEarlyStopConfidence,
			EarlyStopConfidentAddresses: DefaultEarlyStopConfidentAddresses,
			SimilarityThreshold:         DefaultSimilarityThreshold,
			ComposedSimilarityThreshold: DefaultComposedSimilarityThreshold,
			Resolvers:                   DefaultResolvers(),
		},
		Geocoder: GeocoderConfig{},
		Logging:  LoggingConfig{Level: "INFO"},
	}
}

func DefaultConfig() *AppConfig { return ConvertJSONToAppConfig(DefaultAppConfigJSON()) }
