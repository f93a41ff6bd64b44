package wordpress

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var themeHeaderPattern = regexp.MustCompile(`(?m)^\s*\*?\s*(Theme Name|Version|Author|Description|Theme URI)\s*:\s*(.+?)\s*$`)

// fetchTheme reads the theme's style.css header block. Any failure yields a
// Theme carrying only the slug; theme detail is enrichment, never an error.
func (d *Detector) fetchTheme(ctx context.Context, siteURL, slug string) *Theme {
	theme := &Theme{Name: slug}

	base, err := url.Parse(siteURL)
	if err != nil {
		return theme
	}
	styleURL := fmt.Sprintf("%s://%s/wp-content/themes/%s/style.css", base.Scheme, base.Host, slug)

	page, err := d.client.Fetch(ctx, styleURL)
	if err != nil || page.StatusCode != 200 {
		d.logger.Debug("theme stylesheet unavailable", "url", styleURL)
		return theme
	}

	for _, m := range themeHeaderPattern.FindAllStringSubmatch(headerBlock(string(page.Body)), -1) {
		value := strings.TrimSpace(m[2])
		switch m[1] {
		case "Theme Name":
			theme.Name = value
		case "Version":
			theme.Version = value
		case "Author":
			theme.Author = value
		case "Description":
			theme.Description = value
		case "Theme URI":
			theme.URL = value
		}
	}
	return theme
}

// headerBlock isolates the leading comment of a stylesheet so rule bodies
// cannot shadow header fields.
func headerBlock(css string) string {
	start := strings.Index(css, "/*")
	if start < 0 {
		return ""
	}
	end := strings.Index(css[start:], "*/")
	if end < 0 {
		return css[start:]
	}
	return css[start : start+end]
}
