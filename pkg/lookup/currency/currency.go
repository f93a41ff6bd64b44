// Package currency resolves exchange rates across several public rate APIs.
package currency

import (
	"context"
	"log/slog"

	"github.com/sitemetrics/lookup_api/config"
	"github.com/sitemetrics/lookup_api/pkg/httpx"
	"github.com/sitemetrics/lookup_api/pkg/resolve"
)

// Pair is a normalized conversion query: uppercase ISO currency codes.
type Pair struct {
	From string
	To   string
}

// Rates is the canonical result of a rate lookup. A result is only "found"
// when Rate is positive for the requested target code.
type Rates struct {
	Base string
	Rate float64
	Date string // provider-reported reference date, YYYY-MM-DD when known
}

func usable(r Rates) bool { return r.Rate > 0 }

// Service resolves currency pairs through the provider fallback chain.
// There is no degraded tier: with no successful provider the resolution
// fails terminally.
type Service struct {
	chain *resolve.Chain[Pair, Rates]
}

// NewService wires the three rate providers in priority order.
func NewService(cfg config.ProviderConfig, client *httpx.Client, logger *slog.Logger) *Service {
	return &Service{
		chain: resolve.NewChain("currency", logger, usable,
			&openERAPI{baseURL: cfg.OpenERAPIBaseURL, client: client},
			&frankfurter{baseURL: cfg.FrankfurterBaseURL, client: client},
			&exchangeRateAPI{baseURL: cfg.ExchangeRateBaseURL, client: client},
		),
	}
}

// NewServiceWithProviders builds a Service over an explicit provider list.
func NewServiceWithProviders(logger *slog.Logger, providers ...resolve.Provider[Pair, Rates]) *Service {
	return &Service{chain: resolve.NewChain("currency", logger, usable, providers...)}
}

// Rate resolves the exchange rate for the pair.
func (s *Service) Rate(ctx context.Context, pair Pair) (Rates, error) {
	return s.chain.Resolve(ctx, pair)
}
