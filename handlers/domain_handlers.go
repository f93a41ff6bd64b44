package handlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sitemetrics/lookup_api/models"
	"github.com/sitemetrics/lookup_api/pkg/dnsx"
	"github.com/sitemetrics/lookup_api/pkg/httpx"
	"github.com/sitemetrics/lookup_api/pkg/lookup/geo"
	"github.com/sitemetrics/lookup_api/pkg/lookup/whois"
	"github.com/sitemetrics/lookup_api/pkg/normalize"
	"github.com/sitemetrics/lookup_api/pkg/resolve"
)

// DomainIntelHandlers groups the domain intelligence endpoints: WHOIS and
// hosting/geolocation lookups.
type DomainIntelHandlers struct {
	whois    *whois.Service
	geo      *geo.Service
	resolver *dnsx.Resolver
	client   *httpx.Client
	logger   *slog.Logger
}

func NewDomainIntelHandlers(whoisSvc *whois.Service, geoSvc *geo.Service, resolver *dnsx.Resolver, client *httpx.Client, logger *slog.Logger) *DomainIntelHandlers {
	return &DomainIntelHandlers{
		whois:    whoisSvc,
		geo:      geoSvc,
		resolver: resolver,
		client:   client,
		logger:   logger,
	}
}

// WhoisHandler godoc
// @Summary      Look up domain registration data
// @Description  Resolves WHOIS data across RDAP, a JSON WHOIS API and port-43 WHOIS. When every registry is unreachable but the domain resolves in DNS, an estimated record is returned with a note.
// @Tags         Domain Intelligence
// @Produce      json
// @Param        domain query string true "Domain to look up (scheme, www. and paths are stripped)"
// @Success      200 {object} models.WhoisResponse
// @Failure      400 {object} models.ErrorResponse "Malformed domain"
// @Failure      404 {object} models.ErrorResponse "Domain confirmed nonexistent"
// @Failure      500 {object} models.ErrorResponse "All providers exhausted"
// @Router       /whois [get]
func (h *DomainIntelHandlers) WhoisHandler(c *gin.Context) {
	domain, err := normalize.Domain(c.Query("domain"))
	if err != nil {
		respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	record, err := h.whois.Lookup(ctx, domain)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.WhoisResponse{
		Domain:                 domain,
		RegistrationDate:       record.RegistrationDate,
		ExpirationDate:         record.ExpirationDate,
		UpdatedDate:            record.UpdatedDate,
		Registrar:              record.Registrar,
		Status:                 record.Status,
		NameServers:            record.NameServers,
		LastUpdated:            time.Now().UTC(),
		WhoisServer:            record.WhoisServer,
		RegistrantOrganization: record.RegistrantOrganization,
		RegistrantCountry:      record.RegistrantCountry,
		AdminEmail:             record.AdminEmail,
		TechEmail:              record.TechEmail,
		Note:                   record.Note,
	})
}

// HostingHandler godoc
// @Summary      Look up hosting and geolocation data
// @Description  Resolves a domain (or IP literal) to an address and geolocates it across public lookup APIs, falling back to a local GeoLite2 database. DNS records and the server banner are attached as best-effort enrichment.
// @Tags         Domain Intelligence
// @Produce      json
// @Param        domain query string true "Domain or IP address"
// @Success      200 {object} models.HostingResponse
// @Failure      400 {object} models.ErrorResponse "Malformed domain"
// @Failure      404 {object} models.ErrorResponse "Domain does not resolve"
// @Failure      500 {object} models.ErrorResponse "Lookup failed"
// @Router       /hosting [get]
func (h *DomainIntelHandlers) HostingHandler(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("domain"))

	var (
		subject string // echoed back to the caller
		address string
		isIP    bool
	)

	if ip := net.ParseIP(raw); ip != nil {
		subject, address, isIP = raw, raw, true
	} else {
		domain, err := normalize.Domain(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		subject = domain
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), lookupTimeout)
	defer cancel()

	if !isIP {
		addr, err := h.resolver.ResolveA(ctx, subject)
		if err != nil {
			respondError(c, err)
			return
		}
		if addr == "" {
			respondError(c, resolve.ErrNotFound)
			return
		}
		address = addr
	}

	record, err := h.geo.Locate(ctx, address)
	if err != nil {
		respondError(c, err)
		return
	}

	response := models.HostingResponse{
		Domain:    subject,
		IPAddress: record.IP,
		IPVersion: ipVersion(record.IP),
		Location: models.LocationInfo{
			Country:   record.Location.Country,
			Region:    record.Location.Region,
			City:      record.Location.City,
			Latitude:  record.Location.Latitude,
			Longitude: record.Location.Longitude,
		},
		ISP:          record.ISP,
		Organization: record.Organization,
		ASN:          record.ASN,
		Timezone:     record.Timezone,
		ServerType:   h.sniffServer(ctx, subject),
		DNSRecords:   []models.DNSRecordInfo{},
		Note:         record.Note,
	}

	if !isIP {
		for _, rec := range h.resolver.Records(ctx, subject) {
			response.DNSRecords = append(response.DNSRecords, models.DNSRecordInfo{
				Type:  rec.Type,
				Value: rec.Value,
				TTL:   rec.TTL,
			})
		}
	}

	c.JSON(http.StatusOK, response)
}

// sniffServer reads the Server header off the target host. Failure is
// swallowed; the field defaults to "Unknown".
func (h *DomainIntelHandlers) sniffServer(ctx context.Context, host string) string {
	headers, err := h.client.Head(ctx, "https://"+host)
	if err != nil {
		h.logger.Debug("server banner sniff failed", "host", host, "error", err)
		return "Unknown"
	}
	if server := headers.Get("Server"); server != "" {
		return server
	}
	return "Unknown"
}

// ipVersion classifies an address by the presence of a colon.
func ipVersion(address string) string {
	if strings.Contains(address, ":") {
		return "IPv6"
	}
	return "IPv4"
}
