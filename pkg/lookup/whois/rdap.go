package whois

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openrdap/rdap"
)

// rdapAdapter queries the RDAP bootstrap network. It is first in priority:
// structured data, no API key, usually the fastest registry path.
type rdapAdapter struct {
	client *rdap.Client
}

func (a *rdapAdapter) Name() string           { return "rdap" }
func (a *rdapAdapter) Timeout() time.Duration { return 4 * time.Second }

func (a *rdapAdapter) Lookup(ctx context.Context, domain string) (Record, error) {
	req := rdap.NewRequest(rdap.DomainRequest, domain).WithContext(ctx)
	resp, err := a.client.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("rdap query: %w", err)
	}

	obj, ok := resp.Object.(*rdap.Domain)
	if !ok || obj == nil {
		return Record{}, fmt.Errorf("rdap answered with unexpected object type")
	}
	return mapRDAPDomain(obj), nil
}

func mapRDAPDomain(d *rdap.Domain) Record {
	rec := Record{
		Status:      append([]string(nil), d.Status...),
		WhoisServer: d.Port43,
	}

	for _, ev := range d.Events {
		switch strings.ToLower(ev.Action) {
		case "registration":
			rec.RegistrationDate = normalizeDate(ev.Date)
		case "expiration":
			rec.ExpirationDate = normalizeDate(ev.Date)
		case "last changed", "last update of rdap database":
			if rec.UpdatedDate == "" {
				rec.UpdatedDate = normalizeDate(ev.Date)
			}
		}
	}

	for _, ns := range d.Nameservers {
		if ns.LDHName != "" {
			rec.NameServers = append(rec.NameServers, ns.LDHName)
		}
	}
	rec.NameServers = dedupeLower(rec.NameServers)

	for _, ent := range d.Entities {
		applyRDAPEntity(&rec, ent)
	}
	return rec
}

func applyRDAPEntity(rec *Record, ent rdap.Entity) {
	for _, role := range ent.Roles {
		switch strings.ToLower(role) {
		case "registrar":
			if rec.Registrar == "" && ent.VCard != nil {
				rec.Registrar = ent.VCard.Name()
			}
		case "registrant":
			if ent.VCard != nil {
				if rec.RegistrantOrganization == "" {
					rec.RegistrantOrganization = ent.VCard.Name()
				}
				if rec.RegistrantCountry == "" {
					rec.RegistrantCountry = ent.VCard.Country()
				}
			}
		case "administrative":
			if rec.AdminEmail == "" && ent.VCard != nil {
				rec.AdminEmail = ent.VCard.Email()
			}
		case "technical":
			if rec.TechEmail == "" && ent.VCard != nil {
				rec.TechEmail = ent.VCard.Email()
			}
		}
	}
	// registrar entities commonly nest abuse/admin contacts
	for _, nested := range ent.Entities {
		applyRDAPEntity(rec, nested)
	}
}
