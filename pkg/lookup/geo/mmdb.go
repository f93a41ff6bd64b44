package geo

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/oschwald/geoip2-golang"
)

// MMDB wraps optional local GeoLite2 City and ASN databases, used as the
// degraded tier when every geolocation API fails.
type MMDB struct {
	city *geoip2.Reader
	asn  *geoip2.Reader
}

// OpenMMDB opens whichever database paths are configured. Both paths being
// empty yields (nil, nil): the degraded tier then runs without local data.
func OpenMMDB(cityPath, asnPath string, logger *slog.Logger) (*MMDB, error) {
	if cityPath == "" && asnPath == "" {
		return nil, nil
	}

	m := &MMDB{}
	if cityPath != "" {
		db, err := geoip2.Open(cityPath)
		if err != nil {
			return nil, fmt.Errorf("open city database %s: %w", cityPath, err)
		}
		m.city = db
		logger.Info("loaded GeoLite2 city database", "path", cityPath)
	}
	if asnPath != "" {
		db, err := geoip2.Open(asnPath)
		if err != nil {
			m.Close()
			return nil, fmt.Errorf("open ASN database %s: %w", asnPath, err)
		}
		m.asn = db
		logger.Info("loaded GeoLite2 ASN database", "path", asnPath)
	}
	return m, nil
}

// Close releases the underlying readers.
func (m *MMDB) Close() {
	if m == nil {
		return
	}
	if m.city != nil {
		m.city.Close()
	}
	if m.asn != nil {
		m.asn.Close()
	}
}

// Lookup builds a degraded Record from the local databases.
func (m *MMDB) Lookup(ip string) (Record, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return Record{}, fmt.Errorf("invalid IP address %q", ip)
	}

	rec := Record{IP: ip, Note: approximateNote}

	if m.city != nil {
		city, err := m.city.City(parsed)
		if err != nil {
			return Record{}, fmt.Errorf("city lookup: %w", err)
		}
		rec.Location.Country = city.Country.Names["en"]
		rec.Location.City = city.City.Names["en"]
		if len(city.Subdivisions) > 0 {
			rec.Location.Region = city.Subdivisions[0].Names["en"]
		}
		rec.Location.Latitude = city.Location.Latitude
		rec.Location.Longitude = city.Location.Longitude
		rec.Timezone = city.Location.TimeZone
	}

	if m.asn != nil {
		asn, err := m.asn.ASN(parsed)
		if err == nil && asn.AutonomousSystemNumber > 0 {
			rec.ASN = "AS" + strconv.Itoa(int(asn.AutonomousSystemNumber))
			rec.Organization = asn.AutonomousSystemOrganization
			rec.ISP = asn.AutonomousSystemOrganization
		}
	}

	return rec, nil
}
