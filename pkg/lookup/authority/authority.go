// Package authority proxies a domain authority ranking API through the
// provider fallback chain.
package authority

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/sitemetrics/lookup_api/config"
	"github.com/sitemetrics/lookup_api/pkg/httpx"
	"github.com/sitemetrics/lookup_api/pkg/resolve"
)

// Score is the canonical authority result.
type Score struct {
	Domain     string
	PageRank   float64
	GlobalRank int
}

func usable(s Score) bool { return s.Domain != "" }

// Service resolves domain authority scores.
type Service struct {
	chain *resolve.Chain[string, Score]
}

// NewService wires the Open PageRank provider.
func NewService(cfg config.ProviderConfig, client *httpx.Client, logger *slog.Logger) *Service {
	return &Service{
		chain: resolve.NewChain("authority", logger, usable,
			&openPageRank{baseURL: cfg.PageRankBaseURL, apiKey: cfg.PageRankAPIKey, client: client},
		),
	}
}

// NewServiceWithProviders builds a Service over an explicit provider list.
func NewServiceWithProviders(logger *slog.Logger, providers ...resolve.Provider[string, Score]) *Service {
	return &Service{chain: resolve.NewChain("authority", logger, usable, providers...)}
}

// Rank resolves the authority score for a normalized domain.
func (s *Service) Rank(ctx context.Context, domain string) (Score, error) {
	return s.chain.Resolve(ctx, domain)
}

// openPageRank adapts the Open PageRank bulk endpoint for a single domain.
type openPageRank struct {
	baseURL string
	apiKey  string
	client  *httpx.Client
}

func (p *openPageRank) Name() string           { return "open-pagerank" }
func (p *openPageRank) Timeout() time.Duration { return 4 * time.Second }

func (p *openPageRank) Lookup(ctx context.Context, domain string) (Score, error) {
	if p.apiKey == "" {
		return Score{}, fmt.Errorf("open-pagerank API key not configured")
	}

	var payload struct {
		Response []struct {
			StatusCode      int     `json:"status_code"`
			PageRankDecimal float64 `json:"page_rank_decimal"`
			Rank            string  `json:"rank"`
			Domain          string  `json:"domain"`
		} `json:"response"`
	}

	u := fmt.Sprintf("%s/api/v1.0/getPageRank?domains[]=%s", p.baseURL, url.QueryEscape(domain))
	if err := p.client.GetJSON(ctx, u, map[string]string{"API-OPR": p.apiKey}, &payload); err != nil {
		return Score{}, err
	}
	if len(payload.Response) == 0 || payload.Response[0].StatusCode != 200 {
		return Score{}, fmt.Errorf("open-pagerank has no data for %s", domain)
	}

	entry := payload.Response[0]
	score := Score{
		Domain:   entry.Domain,
		PageRank: entry.PageRankDecimal,
	}
	fmt.Sscanf(entry.Rank, "%d", &score.GlobalRank)
	return score, nil
}
