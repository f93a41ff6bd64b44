package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sitemetrics/lookup_api/pkg/logging"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP      HTTPConfig
	Providers ProviderConfig
	Geo       GeoConfig
	RateLimit RateLimitConfig
	Logging   logging.Config
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ProviderConfig carries external provider endpoints and credentials.
// Base URLs are overridable so tests can point adapters at local servers;
// empty API keys disable the corresponding adapter (it fails over like any
// other provider error).
type ProviderConfig struct {
	OpenERAPIBaseURL    string
	FrankfurterBaseURL  string
	ExchangeRateBaseURL string
	WhoisJSONBaseURL    string
	WhoisJSONAPIKey     string
	IPAPIBaseURL        string
	IPWhoisBaseURL      string
	PageRankBaseURL     string
	PageRankAPIKey      string
	DoHEndpoints        []string
}

// GeoConfig points at optional local GeoLite2 databases used as the
// degraded tier for geolocation lookups.
type GeoConfig struct {
	CityDBPath string
	ASNDBPath  string
}

// RateLimitConfig controls the inbound token-bucket limiter.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

const (
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second

	defaultOpenERAPIBaseURL    = "https://open.er-api.com"
	defaultFrankfurterBaseURL  = "https://api.frankfurter.app"
	defaultExchangeRateBaseURL = "https://api.exchangerate-api.com"
	defaultWhoisJSONBaseURL    = "https://www.whoisxmlapi.com"
	defaultIPAPIBaseURL        = "http://ip-api.com"
	defaultIPWhoisBaseURL      = "https://ipwho.is"
	defaultPageRankBaseURL     = "https://openpagerank.com"

	defaultRateLimitRPS   = 5.0
	defaultRateLimitBurst = 10
)

var defaultDoHEndpoints = []string{
	"https://dns.google/resolve",
	"https://cloudflare-dns.com/dns-query",
}

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Providers: ProviderConfig{
			OpenERAPIBaseURL:    valueOrDefault("OPEN_ERAPI_BASE_URL", defaultOpenERAPIBaseURL),
			FrankfurterBaseURL:  valueOrDefault("FRANKFURTER_BASE_URL", defaultFrankfurterBaseURL),
			ExchangeRateBaseURL: valueOrDefault("EXCHANGERATE_BASE_URL", defaultExchangeRateBaseURL),
			WhoisJSONBaseURL:    valueOrDefault("WHOIS_JSON_BASE_URL", defaultWhoisJSONBaseURL),
			WhoisJSONAPIKey:     os.Getenv("WHOIS_JSON_API_KEY"),
			IPAPIBaseURL:        valueOrDefault("IPAPI_BASE_URL", defaultIPAPIBaseURL),
			IPWhoisBaseURL:      valueOrDefault("IPWHOIS_BASE_URL", defaultIPWhoisBaseURL),
			PageRankBaseURL:     valueOrDefault("PAGERANK_BASE_URL", defaultPageRankBaseURL),
			PageRankAPIKey:      os.Getenv("PAGERANK_API_KEY"),
			DoHEndpoints:        splitCSV(valueOrDefault("DOH_ENDPOINTS", strings.Join(defaultDoHEndpoints, ","))),
		},
		Geo: GeoConfig{
			CityDBPath: os.Getenv("MMDB_CITY_PATH"),
			ASNDBPath:  os.Getenv("MMDB_ASN_PATH"),
		},
		RateLimit: RateLimitConfig{
			Enabled: parseBoolWithDefault("RATE_LIMIT_ENABLED", true),
			RPS:     parseFloatWithDefault("RATE_LIMIT_RPS", defaultRateLimitRPS),
			Burst:   parseIntWithDefault("RATE_LIMIT_BURST", defaultRateLimitBurst),
		},
		Logging: logging.Config{
			Level:  valueOrDefault("LOG_LEVEL", "info"),
			Format: valueOrDefault("LOG_FORMAT", "text"),
		},
	}

	port, err := parsePort("PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	for _, tc := range []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
	} {
		if v := os.Getenv(tc.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", tc.key, err)
			}
			*tc.dst = d
		}
	}

	if len(cfg.Providers.DoHEndpoints) == 0 {
		return Config{}, fmt.Errorf("DOH_ENDPOINTS must name at least one resolver")
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseFloatWithDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
