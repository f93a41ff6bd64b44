// Package wordpress fingerprints WordPress installations from their public
// pages. The primary signal is the homepage HTML; theme and plugin details
// are best-effort enrichment that never fails the detection.
package wordpress

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	wappalyze "github.com/projectdiscovery/wappalyzergo"

	"github.com/sitemetrics/lookup_api/pkg/httpx"
)

// Theme describes the active WordPress theme, parsed from its style.css
// header block.
type Theme struct {
	Name        string
	Version     string
	Author      string
	Description string
	URL         string
}

// Detection is the result of probing a site.
type Detection struct {
	IsWordPress bool
	Version     string
	Theme       *Theme
	Plugins     []string
	Server      string
	FinalURL    string
}

var (
	generatorPattern = regexp.MustCompile(`(?i)<meta[^>]+name=["']generator["'][^>]+content=["']WordPress\s*([0-9.]*)["']`)
	themeSlugPattern = regexp.MustCompile(`/wp-content/themes/([a-zA-Z0-9_-]+)/`)
	pluginPattern    = regexp.MustCompile(`/wp-content/plugins/([a-zA-Z0-9_-]+)/`)
)

// Detector probes sites for WordPress markers.
type Detector struct {
	client *httpx.Client
	wapp   *wappalyze.Wappalyze
	logger *slog.Logger
}

// NewDetector builds a Detector. A wappalyzer initialization failure is
// tolerated: fingerprinting then relies on the HTML markers alone.
func NewDetector(client *httpx.Client, logger *slog.Logger) *Detector {
	wapp, err := wappalyze.New()
	if err != nil {
		logger.Warn("wappalyzer unavailable, falling back to HTML markers only", "error", err)
		wapp = nil
	}
	return &Detector{client: client, wapp: wapp, logger: logger}
}

// Detect fetches siteURL and inspects it for WordPress markers.
func (d *Detector) Detect(ctx context.Context, siteURL string) (Detection, error) {
	page, err := d.client.Fetch(ctx, siteURL)
	if err != nil {
		return Detection{}, fmt.Errorf("fetch site: %w", err)
	}
	if page.StatusCode < 200 || page.StatusCode > 399 {
		return Detection{}, fmt.Errorf("site answered status %d", page.StatusCode)
	}

	html := string(page.Body)
	det := Detection{
		FinalURL: page.FinalURL,
		Server:   page.Headers.Get("Server"),
	}
	if det.Server == "" {
		det.Server = "Unknown"
	}

	det.IsWordPress = strings.Contains(html, "/wp-content/") ||
		strings.Contains(html, "/wp-includes/") ||
		strings.Contains(html, "wp-json")

	if m := generatorPattern.FindStringSubmatch(html); m != nil {
		det.IsWordPress = true
		det.Version = m[1]
	}

	d.applyFingerprint(&det, page)

	if !det.IsWordPress {
		return det, nil
	}

	det.Plugins = pluginSlugs(html)
	if slug := themeSlug(html); slug != "" {
		det.Theme = d.fetchTheme(ctx, page.FinalURL, slug)
	}
	return det, nil
}

// applyFingerprint folds wappalyzer's verdict into the detection. A
// fingerprint like "WordPress:6.4.2" also recovers the version when the
// generator meta tag is stripped.
func (d *Detector) applyFingerprint(det *Detection, page *httpx.FetchResult) {
	if d.wapp == nil {
		return
	}
	for app := range d.wapp.Fingerprint(page.Headers, page.Body) {
		name, version, _ := strings.Cut(app, ":")
		if !strings.EqualFold(name, "wordpress") {
			continue
		}
		det.IsWordPress = true
		if det.Version == "" {
			det.Version = version
		}
	}
}

func themeSlug(html string) string {
	if m := themeSlugPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

func pluginSlugs(html string) []string {
	seen := make(map[string]bool)
	var slugs []string
	for _, m := range pluginPattern.FindAllStringSubmatch(html, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			slugs = append(slugs, m[1])
		}
	}
	sort.Strings(slugs)
	return slugs
}
