package geo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sitemetrics/lookup_api/pkg/httpx"
)

// ipAPIAdapter adapts ip-api.com. Application-level failures arrive as
// status "fail" inside a 200 response.
type ipAPIAdapter struct {
	baseURL string
	client  *httpx.Client
}

func (a *ipAPIAdapter) Name() string           { return "ip-api" }
func (a *ipAPIAdapter) Timeout() time.Duration { return 3 * time.Second }

func (a *ipAPIAdapter) Lookup(ctx context.Context, ip string) (Record, error) {
	var payload struct {
		Status     string  `json:"status"`
		Message    string  `json:"message"`
		Country    string  `json:"country"`
		RegionName string  `json:"regionName"`
		City       string  `json:"city"`
		Lat        float64 `json:"lat"`
		Lon        float64 `json:"lon"`
		ISP        string  `json:"isp"`
		Org        string  `json:"org"`
		AS         string  `json:"as"`
		Timezone   string  `json:"timezone"`
		Query      string  `json:"query"`
	}

	u := fmt.Sprintf("%s/json/%s", a.baseURL, url.PathEscape(ip))
	if err := a.client.GetJSON(ctx, u, nil, &payload); err != nil {
		return Record{}, err
	}
	if payload.Status != "success" {
		return Record{}, fmt.Errorf("ip-api reported failure: %s", payload.Message)
	}

	return Record{
		IP: payload.Query,
		Location: Location{
			Country:   payload.Country,
			Region:    payload.RegionName,
			City:      payload.City,
			Latitude:  payload.Lat,
			Longitude: payload.Lon,
		},
		ISP:          payload.ISP,
		Organization: payload.Org,
		ASN:          payload.AS,
		Timezone:     payload.Timezone,
	}, nil
}

// ipWhoisAdapter adapts ipwho.is.
type ipWhoisAdapter struct {
	baseURL string
	client  *httpx.Client
}

func (a *ipWhoisAdapter) Name() string           { return "ipwhois" }
func (a *ipWhoisAdapter) Timeout() time.Duration { return 4 * time.Second }

func (a *ipWhoisAdapter) Lookup(ctx context.Context, ip string) (Record, error) {
	var payload struct {
		Success    bool    `json:"success"`
		Message    string  `json:"message"`
		IP         string  `json:"ip"`
		Country    string  `json:"country"`
		Region     string  `json:"region"`
		City       string  `json:"city"`
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		Connection struct {
			ASN int    `json:"asn"`
			ISP string `json:"isp"`
			Org string `json:"org"`
		} `json:"connection"`
		Timezone struct {
			ID string `json:"id"`
		} `json:"timezone"`
	}

	u := fmt.Sprintf("%s/%s", a.baseURL, url.PathEscape(ip))
	if err := a.client.GetJSON(ctx, u, nil, &payload); err != nil {
		return Record{}, err
	}
	if !payload.Success {
		return Record{}, fmt.Errorf("ipwhois reported failure: %s", payload.Message)
	}

	rec := Record{
		IP: payload.IP,
		Location: Location{
			Country:   payload.Country,
			Region:    payload.Region,
			City:      payload.City,
			Latitude:  payload.Latitude,
			Longitude: payload.Longitude,
		},
		ISP:          payload.Connection.ISP,
		Organization: payload.Connection.Org,
		Timezone:     payload.Timezone.ID,
	}
	if payload.Connection.ASN > 0 {
		rec.ASN = "AS" + strconv.Itoa(payload.Connection.ASN)
	}
	return rec, nil
}
