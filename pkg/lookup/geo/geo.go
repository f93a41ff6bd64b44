// Package geo resolves IP geolocation across public lookup APIs, with a
// local GeoLite2 database as degraded tier when every API is unreachable.
package geo

import (
	"context"
	"log/slog"

	"github.com/sitemetrics/lookup_api/config"
	"github.com/sitemetrics/lookup_api/pkg/httpx"
	"github.com/sitemetrics/lookup_api/pkg/resolve"
)

// Location is the geographic portion of a geolocation result.
type Location struct {
	Country   string
	Region    string
	City      string
	Latitude  float64
	Longitude float64
}

// Record is the canonical geolocation result. A record counts as found when
// it echoes a non-empty IP.
type Record struct {
	IP           string
	Location     Location
	ISP          string
	Organization string
	ASN          string
	Timezone     string
	Note         string
}

func usable(r Record) bool { return r.IP != "" }

const approximateNote = "Approximate data; geolocation providers were unavailable."

// Service resolves IP addresses through the provider fallback chain.
type Service struct {
	chain *resolve.Chain[string, Record]
}

// NewService wires the two geolocation providers in priority order. mmdb
// may be nil; the degraded tier then only echoes the address with a note.
func NewService(cfg config.ProviderConfig, client *httpx.Client, mmdb *MMDB, logger *slog.Logger) *Service {
	chain := resolve.NewChain("geolocation", logger, usable,
		&ipAPIAdapter{baseURL: cfg.IPAPIBaseURL, client: client},
		&ipWhoisAdapter{baseURL: cfg.IPWhoisBaseURL, client: client},
	)
	chain.WithDegraded(degradedFromLocal(mmdb))
	return &Service{chain: chain}
}

// NewServiceWithProviders builds a Service over an explicit provider list
// and optional degraded tier.
func NewServiceWithProviders(logger *slog.Logger, degraded resolve.DegradedFunc[string, Record], providers ...resolve.Provider[string, Record]) *Service {
	chain := resolve.NewChain("geolocation", logger, usable, providers...)
	if degraded != nil {
		chain.WithDegraded(degraded)
	}
	return &Service{chain: chain}
}

// Locate resolves geolocation data for an IP address.
func (s *Service) Locate(ctx context.Context, ip string) (Record, error) {
	return s.chain.Resolve(ctx, ip)
}

// degradedFromLocal serves a lower-confidence record from the local GeoLite2
// databases when configured, or a bare address echo otherwise. The caller
// already proved the address exists (it came from the request or a DNS
// answer), so a degraded record is always available.
func degradedFromLocal(mmdb *MMDB) resolve.DegradedFunc[string, Record] {
	return func(ctx context.Context, ip string) (Record, error) {
		if mmdb != nil {
			if rec, err := mmdb.Lookup(ip); err == nil {
				return rec, nil
			}
		}
		return Record{IP: ip, Note: approximateNote}, nil
	}
}
