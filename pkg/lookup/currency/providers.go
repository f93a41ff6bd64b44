package currency

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sitemetrics/lookup_api/pkg/httpx"
)

// openERAPI adapts open.er-api.com. Rates nest under "rates" with the base
// code reported as "base_code".
type openERAPI struct {
	baseURL string
	client  *httpx.Client
}

func (p *openERAPI) Name() string           { return "open-er-api" }
func (p *openERAPI) Timeout() time.Duration { return 3 * time.Second }

func (p *openERAPI) Lookup(ctx context.Context, pair Pair) (Rates, error) {
	var payload struct {
		Result            string             `json:"result"`
		BaseCode          string             `json:"base_code"`
		Rates             map[string]float64 `json:"rates"`
		TimeLastUpdateUTC string             `json:"time_last_update_utc"`
	}

	u := fmt.Sprintf("%s/v6/latest/%s", p.baseURL, url.PathEscape(pair.From))
	if err := p.client.GetJSON(ctx, u, nil, &payload); err != nil {
		return Rates{}, err
	}
	if payload.Result != "success" {
		return Rates{}, fmt.Errorf("open-er-api reported result %q", payload.Result)
	}

	return Rates{
		Base: payload.BaseCode,
		Rate: payload.Rates[pair.To],
		Date: payload.TimeLastUpdateUTC,
	}, nil
}

// frankfurter adapts api.frankfurter.app. Rates nest under "rates" with the
// base code reported as "base".
type frankfurter struct {
	baseURL string
	client  *httpx.Client
}

func (p *frankfurter) Name() string           { return "frankfurter" }
func (p *frankfurter) Timeout() time.Duration { return 4 * time.Second }

func (p *frankfurter) Lookup(ctx context.Context, pair Pair) (Rates, error) {
	var payload struct {
		Base  string             `json:"base"`
		Date  string             `json:"date"`
		Rates map[string]float64 `json:"rates"`
	}

	u := fmt.Sprintf("%s/latest?from=%s&to=%s", p.baseURL, url.QueryEscape(pair.From), url.QueryEscape(pair.To))
	if err := p.client.GetJSON(ctx, u, nil, &payload); err != nil {
		return Rates{}, err
	}

	return Rates{
		Base: payload.Base,
		Rate: payload.Rates[pair.To],
		Date: payload.Date,
	}, nil
}

// exchangeRateAPI adapts the api.exchangerate-api.com v4 endpoint.
type exchangeRateAPI struct {
	baseURL string
	client  *httpx.Client
}

func (p *exchangeRateAPI) Name() string           { return "exchangerate-api" }
func (p *exchangeRateAPI) Timeout() time.Duration { return 5 * time.Second }

func (p *exchangeRateAPI) Lookup(ctx context.Context, pair Pair) (Rates, error) {
	var payload struct {
		Base  string             `json:"base"`
		Date  string             `json:"date"`
		Rates map[string]float64 `json:"rates"`
	}

	u := fmt.Sprintf("%s/v4/latest/%s", p.baseURL, url.PathEscape(pair.From))
	if err := p.client.GetJSON(ctx, u, nil, &payload); err != nil {
		return Rates{}, err
	}

	return Rates{
		Base: payload.Base,
		Rate: payload.Rates[pair.To],
		Date: payload.Date,
	}, nil
}
