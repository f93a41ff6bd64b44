package whois

import (
	"strings"
	"time"
)

// registryDateFormats covers the date styles observed across registries.
var registryDateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2-Jan-2006",
	"January 02 2006",
	"2006/01/02",
	"02.01.2006",
}

// normalizeDate reduces a registry-reported timestamp to YYYY-MM-DD.
// Unparseable input yields an empty string rather than an error; a missing
// date is "provider did not know", not a failure.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, format := range registryDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// dedupeLower lowercases, trims and de-duplicates a string slice, keeping
// first-seen order.
func dedupeLower(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(v, ".")))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
