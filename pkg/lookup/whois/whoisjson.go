package whois

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sitemetrics/lookup_api/pkg/httpx"
)

// whoisJSONAdapter queries a WhoisXML-style JSON WHOIS API. Without a
// configured API key the adapter fails immediately and the chain advances.
type whoisJSONAdapter struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
}

func (a *whoisJSONAdapter) Name() string           { return "whois-json" }
func (a *whoisJSONAdapter) Timeout() time.Duration { return 5 * time.Second }

// whoisJSONPayload mirrors the WhoisRecord response shape. Registry-level
// data nests under registryData and fills gaps in the registrar-level
// record.
type whoisJSONPayload struct {
	WhoisRecord struct {
		DomainName    string `json:"domainName"`
		RegistrarName string `json:"registrarName"`
		CreatedDate   string `json:"createdDate"`
		UpdatedDate   string `json:"updatedDate"`
		ExpiresDate   string `json:"expiresDate"`
		Status        string `json:"status"`
		WhoisServer   string `json:"whoisServer"`
		ContactEmail  string `json:"contactEmail"`
		NameServers   struct {
			HostNames []string `json:"hostNames"`
		} `json:"nameServers"`
		Registrant struct {
			Organization string `json:"organization"`
			Country      string `json:"country"`
			Email        string `json:"email"`
		} `json:"registrant"`
		AdministrativeContact struct {
			Email string `json:"email"`
		} `json:"administrativeContact"`
		TechnicalContact struct {
			Email string `json:"email"`
		} `json:"technicalContact"`
		RegistryData struct {
			CreatedDate string `json:"createdDate"`
			UpdatedDate string `json:"updatedDate"`
			ExpiresDate string `json:"expiresDate"`
			Status      string `json:"status"`
			WhoisServer string `json:"whoisServer"`
			NameServers struct {
				HostNames []string `json:"hostNames"`
			} `json:"nameServers"`
		} `json:"registryData"`
	} `json:"WhoisRecord"`
}

func (a *whoisJSONAdapter) Lookup(ctx context.Context, domain string) (Record, error) {
	if a.apiKey == "" {
		return Record{}, fmt.Errorf("whois-json API key not configured")
	}

	u := fmt.Sprintf("%s/whoisserver/WhoisService?apiKey=%s&domainName=%s&outputFormat=JSON",
		a.baseURL, url.QueryEscape(a.apiKey), url.QueryEscape(domain))

	var payload whoisJSONPayload
	if err := a.client.GetJSON(ctx, u, nil, &payload); err != nil {
		return Record{}, err
	}
	return mapWhoisJSON(payload), nil
}

func mapWhoisJSON(payload whoisJSONPayload) Record {
	wr := payload.WhoisRecord

	rec := Record{
		RegistrationDate:       normalizeDate(firstNonEmpty(wr.CreatedDate, wr.RegistryData.CreatedDate)),
		ExpirationDate:         normalizeDate(firstNonEmpty(wr.ExpiresDate, wr.RegistryData.ExpiresDate)),
		UpdatedDate:            normalizeDate(firstNonEmpty(wr.UpdatedDate, wr.RegistryData.UpdatedDate)),
		Registrar:              wr.RegistrarName,
		WhoisServer:            firstNonEmpty(wr.WhoisServer, wr.RegistryData.WhoisServer),
		RegistrantOrganization: wr.Registrant.Organization,
		RegistrantCountry:      wr.Registrant.Country,
		AdminEmail:             firstNonEmpty(wr.AdministrativeContact.Email, wr.ContactEmail),
		TechEmail:              wr.TechnicalContact.Email,
	}

	if status := firstNonEmpty(wr.Status, wr.RegistryData.Status); status != "" {
		rec.Status = []string{status}
	}

	hosts := wr.NameServers.HostNames
	if len(hosts) == 0 {
		hosts = wr.RegistryData.NameServers.HostNames
	}
	rec.NameServers = dedupeLower(hosts)

	return rec
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
