package whois

import (
	"context"
	"errors"
	"fmt"
	"time"

	likwhois "github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// port43Adapter is the last primary tier: classic WHOIS over TCP port 43.
// Slowest and least structured, but needs no key and covers TLDs that the
// JSON providers miss.
type port43Adapter struct{}

func (a *port43Adapter) Name() string           { return "port43-whois" }
func (a *port43Adapter) Timeout() time.Duration { return 5 * time.Second }

func (a *port43Adapter) Lookup(ctx context.Context, domain string) (Record, error) {
	client := likwhois.NewClient()
	client.SetTimeout(a.Timeout())

	type result struct {
		raw string
		err error
	}
	done := make(chan result, 1)
	go func() {
		raw, err := client.Whois(domain)
		done <- result{raw: raw, err: err}
	}()

	var raw string
	select {
	case <-ctx.Done():
		return Record{}, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return Record{}, fmt.Errorf("port43 query: %w", r.err)
		}
		raw = r.raw
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		if errors.Is(err, whoisparser.ErrNotFoundDomain) {
			return Record{}, fmt.Errorf("registry has no record for %s", domain)
		}
		return Record{}, fmt.Errorf("parse whois response: %w", err)
	}
	return mapParsedWhois(parsed), nil
}

func mapParsedWhois(info whoisparser.WhoisInfo) Record {
	var rec Record

	if d := info.Domain; d != nil {
		rec.RegistrationDate = normalizeDate(d.CreatedDate)
		rec.ExpirationDate = normalizeDate(d.ExpirationDate)
		rec.UpdatedDate = normalizeDate(d.UpdatedDate)
		rec.Status = append([]string(nil), d.Status...)
		rec.NameServers = dedupeLower(d.NameServers)
		rec.WhoisServer = d.WhoisServer
	}
	if r := info.Registrar; r != nil {
		rec.Registrar = r.Name
	}
	if r := info.Registrant; r != nil {
		rec.RegistrantOrganization = r.Organization
		rec.RegistrantCountry = r.Country
	}
	if a := info.Administrative; a != nil {
		rec.AdminEmail = a.Email
	}
	if t := info.Technical; t != nil {
		rec.TechEmail = t.Email
	}
	return rec
}
