// Package dnsx resolves DNS records over public DNS-over-HTTPS endpoints.
// It backs the degraded tier of domain lookups (proof of existence when all
// WHOIS providers fail) and the DNS record enrichment of hosting lookups.
package dnsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/miekg/dns"

	"github.com/sitemetrics/lookup_api/pkg/httpx"
)

// ErrNXDomain reports that the authoritative answer was "no such domain".
// This is a confirmed negative, distinct from a resolver being unreachable.
var ErrNXDomain = errors.New("domain does not exist")

const queryTimeout = 4 * time.Second

// Record is a single DNS answer.
type Record struct {
	Type  string
	Value string
	TTL   uint32
}

// Resolver queries DNS-over-HTTPS endpoints in order until one answers.
type Resolver struct {
	endpoints []string
	client    *httpx.Client
	logger    *slog.Logger
}

// NewResolver builds a Resolver over the given DoH endpoints (Google/
// Cloudflare JSON API shape), tried in order.
func NewResolver(endpoints []string, client *httpx.Client, logger *slog.Logger) *Resolver {
	return &Resolver{endpoints: endpoints, client: client, logger: logger}
}

// dohAnswer is the wire shape of the application/dns-json response.
type dohAnswer struct {
	Status int `json:"Status"`
	Answer []struct {
		Name string `json:"name"`
		Type uint16 `json:"type"`
		TTL  uint32 `json:"TTL"`
		Data string `json:"data"`
	} `json:"Answer"`
}

// Lookup resolves records of the given type for domain. Answers of other
// types (CNAME steps in the chain) are filtered out. Returns ErrNXDomain
// when the domain is confirmed nonexistent by any endpoint.
func (r *Resolver) Lookup(ctx context.Context, domain string, rrtype uint16) ([]Record, error) {
	typeName, ok := dns.TypeToString[rrtype]
	if !ok {
		return nil, fmt.Errorf("unsupported record type %d", rrtype)
	}

	var last error
	for _, endpoint := range r.endpoints {
		qctx, cancel := context.WithTimeout(ctx, queryTimeout)
		records, err := r.queryEndpoint(qctx, endpoint, domain, rrtype)
		cancel()

		if err == nil {
			return records, nil
		}
		if errors.Is(err, ErrNXDomain) {
			return nil, err
		}
		r.logger.Debug("doh endpoint failed", "endpoint", endpoint, "domain", domain, "type", typeName, "error", err)
		last = err
	}
	return nil, fmt.Errorf("all DoH endpoints failed for %s %s: %w", domain, typeName, last)
}

func (r *Resolver) queryEndpoint(ctx context.Context, endpoint, domain string, rrtype uint16) ([]Record, error) {
	u := fmt.Sprintf("%s?name=%s&type=%s", endpoint, url.QueryEscape(domain), dns.TypeToString[rrtype])

	var payload dohAnswer
	if err := r.client.GetJSON(ctx, u, map[string]string{"Accept": "application/dns-json"}, &payload); err != nil {
		return nil, err
	}

	switch payload.Status {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, ErrNXDomain
	default:
		return nil, fmt.Errorf("resolver answered rcode %d for %s", payload.Status, domain)
	}

	var records []Record
	for _, a := range payload.Answer {
		if a.Type != rrtype {
			continue
		}
		records = append(records, Record{
			Type:  dns.TypeToString[a.Type],
			Value: strings.TrimSuffix(a.Data, "."),
			TTL:   a.TTL,
		})
	}
	return records, nil
}

// ResolveA returns the first A record address for domain, or ErrNXDomain /
// an empty string when none exists.
func (r *Resolver) ResolveA(ctx context.Context, domain string) (string, error) {
	records, err := r.Lookup(ctx, domain, dns.TypeA)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", nil
	}
	return records[0].Value, nil
}

// NameServers returns the NS host names for domain, lowercased. Failure is
// reported as an empty slice plus the error so callers can fall back to
// synthesized values.
func (r *Resolver) NameServers(ctx context.Context, domain string) ([]string, error) {
	records, err := r.Lookup(ctx, domain, dns.TypeNS)
	if err != nil {
		return nil, err
	}
	servers := make([]string, 0, len(records))
	for _, rec := range records {
		servers = append(servers, strings.ToLower(rec.Value))
	}
	return servers, nil
}

// enrichmentTypes are the record types enumerated for hosting lookups.
var enrichmentTypes = []uint16{dns.TypeA, dns.TypeAAAA, dns.TypeMX, dns.TypeNS, dns.TypeTXT}

// Records enumerates common record types for domain. Per-type failures are
// skipped; the listing is best-effort enrichment, never an error.
func (r *Resolver) Records(ctx context.Context, domain string) []Record {
	var out []Record
	for _, rrtype := range enrichmentTypes {
		records, err := r.Lookup(ctx, domain, rrtype)
		if err != nil {
			continue
		}
		out = append(out, records...)
	}
	return out
}
