package geo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sitemetrics/lookup_api/pkg/httpx"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func geoServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestIPAPIMapsResponse(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/8.8.8.8" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"status":"success","country":"United States","regionName":"California","city":"Mountain View","lat":37.4056,"lon":-122.0775,"isp":"Google LLC","org":"Google Public DNS","as":"AS15169 Google LLC","timezone":"America/Los_Angeles","query":"8.8.8.8"}`)
	})

	a := &ipAPIAdapter{baseURL: srv.URL, client: httpx.New()}
	rec, err := a.Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.IP != "8.8.8.8" || rec.Location.City != "Mountain View" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.ISP != "Google LLC" || rec.ASN != "AS15169 Google LLC" {
		t.Errorf("unexpected network fields %+v", rec)
	}
}

func TestIPAPIReportsApplicationFailure(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"fail","message":"private range","query":"10.0.0.1"}`)
	})

	a := &ipAPIAdapter{baseURL: srv.URL, client: httpx.New()}
	if _, err := a.Lookup(context.Background(), "10.0.0.1"); err == nil {
		t.Fatal("expected error on status fail")
	}
}

func TestIPWhoisMapsResponse(t *testing.T) {
	srv := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"ip":"1.1.1.1","country":"Australia","region":"Queensland","city":"Brisbane","latitude":-27.4679,"longitude":153.0281,"connection":{"asn":13335,"isp":"Cloudflare, Inc.","org":"APNIC and Cloudflare DNS Resolver"},"timezone":{"id":"Australia/Brisbane"}}`)
	})

	a := &ipWhoisAdapter{baseURL: srv.URL, client: httpx.New()}
	rec, err := a.Lookup(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if rec.ASN != "AS13335" {
		t.Errorf("ASN = %q", rec.ASN)
	}
	if rec.Timezone != "Australia/Brisbane" || rec.Location.Country != "Australia" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestServiceFallsBackToSecondProvider(t *testing.T) {
	down := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	healthy := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"ip":"1.1.1.1","country":"Australia","connection":{"asn":13335,"isp":"Cloudflare, Inc."},"timezone":{"id":"Australia/Brisbane"}}`)
	})

	svc := NewServiceWithProviders(discardLogger(), nil,
		&ipAPIAdapter{baseURL: down.URL, client: httpx.New()},
		&ipWhoisAdapter{baseURL: healthy.URL, client: httpx.New()},
	)

	rec, err := svc.Locate(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if rec.ISP != "Cloudflare, Inc." {
		t.Errorf("ISP = %q", rec.ISP)
	}
}

func TestDegradedTierEchoesAddressWithoutDatabases(t *testing.T) {
	down := geoServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	svc := NewServiceWithProviders(discardLogger(), degradedFromLocal(nil),
		&ipAPIAdapter{baseURL: down.URL, client: httpx.New()},
	)

	rec, err := svc.Locate(context.Background(), "203.0.113.7")
	if err != nil {
		t.Fatalf("Locate returned error: %v", err)
	}
	if rec.IP != "203.0.113.7" {
		t.Errorf("IP = %q", rec.IP)
	}
	if rec.Note != approximateNote {
		t.Errorf("Note = %q", rec.Note)
	}
	if rec.Location.Country != "" {
		t.Errorf("expected empty location, got %+v", rec.Location)
	}
}
