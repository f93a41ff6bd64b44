package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitemetrics/lookup_api/models"
	"github.com/sitemetrics/lookup_api/pkg/dnsx"
	"github.com/sitemetrics/lookup_api/pkg/httpx"
	"github.com/sitemetrics/lookup_api/pkg/lookup/currency"
	"github.com/sitemetrics/lookup_api/pkg/lookup/geo"
	"github.com/sitemetrics/lookup_api/pkg/lookup/whois"
	"github.com/sitemetrics/lookup_api/pkg/resolve"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// rateLimitedErr mimics an upstream 429 as the shared HTTP client reports
// it.
type rateLimitedErr struct{}

func (rateLimitedErr) Error() string     { return "unexpected status 429" }
func (rateLimitedErr) RateLimited() bool { return true }

type stubRateProvider struct {
	rates currency.Rates
	err   error
	calls int
}

func (p *stubRateProvider) Name() string           { return "stub-rates" }
func (p *stubRateProvider) Timeout() time.Duration { return time.Second }
func (p *stubRateProvider) Lookup(ctx context.Context, pair currency.Pair) (currency.Rates, error) {
	p.calls++
	return p.rates, p.err
}

type stubWhoisProvider struct {
	rec   whois.Record
	err   error
	calls int
}

func (p *stubWhoisProvider) Name() string           { return "stub-whois" }
func (p *stubWhoisProvider) Timeout() time.Duration { return time.Second }
func (p *stubWhoisProvider) Lookup(ctx context.Context, domain string) (whois.Record, error) {
	p.calls++
	return p.rec, p.err
}

type stubLocator struct {
	rec   geo.Record
	err   error
	calls int
}

func (p *stubLocator) Name() string           { return "stub-geo" }
func (p *stubLocator) Timeout() time.Duration { return time.Second }
func (p *stubLocator) Lookup(ctx context.Context, ip string) (geo.Record, error) {
	p.calls++
	return p.rec, p.err
}

func doRequest(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func currencyRouter(providers ...resolve.Provider[currency.Pair, currency.Rates]) *gin.Engine {
	svc := currency.NewServiceWithProviders(discardLogger(), providers...)
	h := NewCurrencyHandlers(svc, discardLogger())
	router := gin.New()
	router.GET("/api/v1/convert", h.ConvertHandler)
	return router
}

func whoisRouter(degraded resolve.DegradedFunc[string, whois.Record], providers ...resolve.Provider[string, whois.Record]) *gin.Engine {
	svc := whois.NewServiceWithProviders(discardLogger(), degraded, providers...)
	client := httpx.New()
	resolver := dnsx.NewResolver(nil, client, discardLogger())
	geoSvc := geo.NewServiceWithProviders(discardLogger(), nil)
	h := NewDomainIntelHandlers(svc, geoSvc, resolver, client, discardLogger())
	router := gin.New()
	router.GET("/api/v1/whois", h.WhoisHandler)
	return router
}

func TestConvertComputesAmount(t *testing.T) {
	provider := &stubRateProvider{rates: currency.Rates{Base: "USD", Rate: 0.9, Date: "2024-08-02"}}
	router := currencyRouter(provider)

	w := doRequest(t, router, "/api/v1/convert?from=usd&to=eur&amount=100")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.ConversionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.From != "USD" || resp.To != "EUR" {
		t.Errorf("pair = %s/%s", resp.From, resp.To)
	}
	if resp.Rate != 0.9 {
		t.Errorf("rate = %v", resp.Rate)
	}
	if resp.ConvertedAmount == nil || *resp.ConvertedAmount != 90 {
		t.Errorf("convertedAmount = %v", resp.ConvertedAmount)
	}
}

func TestConvertWithoutAmountLeavesNull(t *testing.T) {
	provider := &stubRateProvider{rates: currency.Rates{Base: "USD", Rate: 0.9}}
	router := currencyRouter(provider)

	w := doRequest(t, router, "/api/v1/convert?from=USD&to=EUR")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["convertedAmount"] != nil {
		t.Errorf("convertedAmount = %v, want null", resp["convertedAmount"])
	}
	if resp["amount"] != nil {
		t.Errorf("amount = %v, want null", resp["amount"])
	}
}

func TestConvertNonNumericAmountLeavesNull(t *testing.T) {
	provider := &stubRateProvider{rates: currency.Rates{Base: "USD", Rate: 0.9}}
	router := currencyRouter(provider)

	w := doRequest(t, router, "/api/v1/convert?from=USD&to=EUR&amount=lots")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["convertedAmount"] != nil {
		t.Errorf("convertedAmount = %v, want null", resp["convertedAmount"])
	}
}

func TestConvertMissingCodeFailsBeforeProviders(t *testing.T) {
	provider := &stubRateProvider{rates: currency.Rates{Rate: 0.9}}
	router := currencyRouter(provider)

	w := doRequest(t, router, "/api/v1/convert?from=USD")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times before validation", provider.calls)
	}
}

func TestConvertExhaustionIsServerError(t *testing.T) {
	provider := &stubRateProvider{err: errors.New("connection refused")}
	router := currencyRouter(provider)

	w := doRequest(t, router, "/api/v1/convert?from=USD&to=EUR")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestWhoisFallsPastRateLimitedProvider(t *testing.T) {
	limited := &stubWhoisProvider{err: rateLimitedErr{}}
	healthy := &stubWhoisProvider{rec: whois.Record{
		RegistrationDate: "2010-01-01",
		Registrar:        "Example Registrar",
		NameServers:      []string{"ns1.example.com"},
	}}
	router := whoisRouter(nil, limited, healthy)

	w := doRequest(t, router, "/api/v1/whois?domain=WWW.Example.COM/about")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.WhoisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Domain != "example.com" {
		t.Errorf("domain = %q", resp.Domain)
	}
	if resp.RegistrationDate != "2010-01-01" {
		t.Errorf("registrationDate = %q", resp.RegistrationDate)
	}
	if resp.Note != "" {
		t.Errorf("note = %q on a primary result", resp.Note)
	}
	if limited.calls != 1 || healthy.calls != 1 {
		t.Errorf("calls = %d / %d", limited.calls, healthy.calls)
	}
}

func TestWhoisMalformedDomainFailsBeforeProviders(t *testing.T) {
	provider := &stubWhoisProvider{rec: whois.Record{Registrar: "unused"}}
	router := whoisRouter(nil, provider)

	w := doRequest(t, router, "/api/v1/whois?domain=not%20a%20domain")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if provider.calls != 0 {
		t.Errorf("provider called %d times before validation", provider.calls)
	}
}

func TestWhoisConfirmedNonexistentIs404(t *testing.T) {
	down := &stubWhoisProvider{err: errors.New("timeout")}
	degraded := func(ctx context.Context, domain string) (whois.Record, error) {
		return whois.Record{}, resolve.ErrNotFound
	}
	router := whoisRouter(degraded, down)

	w := doRequest(t, router, "/api/v1/whois?domain=no-such-domain.example")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestWhoisDegradedResultCarriesNote(t *testing.T) {
	down := &stubWhoisProvider{err: errors.New("timeout")}
	degraded := func(ctx context.Context, domain string) (whois.Record, error) {
		return whois.Record{
			RegistrationDate: "2025-08-29",
			Registrar:        "Unknown",
			Note:             "Estimated data based on DNS records; authoritative WHOIS sources were unavailable.",
		}, nil
	}
	router := whoisRouter(degraded, down)

	w := doRequest(t, router, "/api/v1/whois?domain=example.com")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp models.WhoisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Note == "" {
		t.Error("expected note on degraded result")
	}
	if resp.Registrar != "Unknown" {
		t.Errorf("registrar = %q", resp.Registrar)
	}
}

func TestHostingAcceptsIPLiteral(t *testing.T) {
	locator := &stubLocator{rec: geo.Record{
		IP: "127.0.0.1",
		Location: geo.Location{
			Country: "United States",
			City:    "Mountain View",
		},
		ISP: "Example ISP",
	}}
	geoSvc := geo.NewServiceWithProviders(discardLogger(), nil, locator)
	client := httpx.New()
	resolver := dnsx.NewResolver(nil, client, discardLogger())
	whoisSvc := whois.NewServiceWithProviders(discardLogger(), nil)
	h := NewDomainIntelHandlers(whoisSvc, geoSvc, resolver, client, discardLogger())

	router := gin.New()
	router.GET("/api/v1/hosting", h.HostingHandler)

	w := doRequest(t, router, "/api/v1/hosting?domain=127.0.0.1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp models.HostingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Domain != "127.0.0.1" || resp.IPAddress != "127.0.0.1" {
		t.Errorf("echoed subject = %q / %q", resp.Domain, resp.IPAddress)
	}
	if resp.IPVersion != "IPv4" {
		t.Errorf("ipVersion = %q", resp.IPVersion)
	}
	if resp.ISP != "Example ISP" {
		t.Errorf("isp = %q", resp.ISP)
	}
	if resp.DNSRecords == nil {
		t.Error("dnsRecords should be an empty array for IP input, not null")
	}
	if len(resp.DNSRecords) != 0 {
		t.Errorf("dnsRecords = %v", resp.DNSRecords)
	}
	if locator.calls != 1 {
		t.Errorf("locator calls = %d", locator.calls)
	}
}

func TestIPVersion(t *testing.T) {
	if got := ipVersion("192.0.2.1"); got != "IPv4" {
		t.Errorf("ipVersion(v4) = %q", got)
	}
	if got := ipVersion("2001:db8::1"); got != "IPv6" {
		t.Errorf("ipVersion(v6) = %q", got)
	}
}

func TestHealthCheck(t *testing.T) {
	router := gin.New()
	router.GET("/api/v1/health", NewHealthHandler().HealthCheckHandler)

	w := doRequest(t, router, "/api/v1/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "up" {
		t.Errorf("status = %q", resp["status"])
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RateLimit(1, 1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := doRequest(t, router, "/ping"); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	if w := doRequest(t, router, "/ping"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d", w.Code)
	}
}
