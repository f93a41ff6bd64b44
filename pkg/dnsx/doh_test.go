package dnsx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miekg/dns"

	"github.com/sitemetrics/lookup_api/pkg/httpx"
)

func testResolver(endpoints ...string) *Resolver {
	return NewResolver(endpoints, httpx.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func dohServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestLookupParsesAnswers(t *testing.T) {
	srv := dohServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "example.com" {
			t.Errorf("unexpected name parameter %q", got)
		}
		fmt.Fprint(w, `{"Status":0,"Answer":[
			{"name":"example.com.","type":5,"TTL":300,"data":"edge.example.net."},
			{"name":"edge.example.net.","type":1,"TTL":300,"data":"93.184.216.34"}
		]}`)
	})

	records, err := testResolver(srv.URL).Lookup(context.Background(), "example.com", dns.TypeA)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected the CNAME step to be filtered, got %d records", len(records))
	}
	if records[0].Type != "A" || records[0].Value != "93.184.216.34" || records[0].TTL != 300 {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestLookupNXDomain(t *testing.T) {
	srv := dohServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Status":3}`)
	})

	_, err := testResolver(srv.URL).Lookup(context.Background(), "no-such-domain.example", dns.TypeA)
	if !errors.Is(err, ErrNXDomain) {
		t.Fatalf("expected ErrNXDomain, got %v", err)
	}
}

func TestLookupFallsBackToSecondEndpoint(t *testing.T) {
	broken := dohServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	healthy := dohServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Status":0,"Answer":[{"name":"example.com.","type":1,"TTL":60,"data":"192.0.2.10"}]}`)
	})

	addr, err := testResolver(broken.URL, healthy.URL).ResolveA(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("ResolveA returned error: %v", err)
	}
	if addr != "192.0.2.10" {
		t.Errorf("expected address from second endpoint, got %q", addr)
	}
}

func TestLookupAllEndpointsDown(t *testing.T) {
	broken := dohServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := testResolver(broken.URL).Lookup(context.Background(), "example.com", dns.TypeA)
	if err == nil {
		t.Fatal("expected error when every endpoint fails")
	}
	if errors.Is(err, ErrNXDomain) {
		t.Error("transport failure must not be reported as NXDOMAIN")
	}
}

func TestNameServers(t *testing.T) {
	srv := dohServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Status":0,"Answer":[
			{"name":"example.com.","type":2,"TTL":3600,"data":"NS1.Example-Host.com."},
			{"name":"example.com.","type":2,"TTL":3600,"data":"ns2.example-host.com."}
		]}`)
	})

	servers, err := testResolver(srv.URL).NameServers(context.Background(), "example.com")
	if err != nil {
		t.Fatalf("NameServers returned error: %v", err)
	}
	want := []string{"ns1.example-host.com", "ns2.example-host.com"}
	if len(servers) != len(want) {
		t.Fatalf("expected %d servers, got %v", len(want), servers)
	}
	for i := range want {
		if servers[i] != want[i] {
			t.Errorf("server %d = %q, want %q", i, servers[i], want[i])
		}
	}
}

func TestRecordsSkipsFailingTypes(t *testing.T) {
	srv := dohServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("type") {
		case "A":
			fmt.Fprint(w, `{"Status":0,"Answer":[{"name":"example.com.","type":1,"TTL":60,"data":"192.0.2.10"}]}`)
		case "MX":
			fmt.Fprint(w, `{"Status":0,"Answer":[{"name":"example.com.","type":15,"TTL":60,"data":"10 mail.example.com."}]}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	records := testResolver(srv.URL).Records(context.Background(), "example.com")
	if len(records) != 2 {
		t.Fatalf("expected 2 records from the healthy types, got %d", len(records))
	}
}
