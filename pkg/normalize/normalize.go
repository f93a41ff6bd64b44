// Package normalize cleans and validates raw caller input before any
// provider is contacted.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

var domainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]{0,61}[a-zA-Z0-9]?\.[a-zA-Z]{2,}$`)

// ValidationError reports malformed or missing input. It maps to HTTP 400
// at the boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Domain lowercases and trims raw, strips a leading scheme and "www.",
// truncates at the first path, query or fragment separator, then validates
// the remainder as a registrable domain name.
func Domain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "www.")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}

	if d == "" {
		return "", &ValidationError{Field: "domain", Reason: "must not be empty"}
	}
	if !domainPattern.MatchString(d) {
		return "", &ValidationError{Field: "domain", Reason: fmt.Sprintf("%q is not a valid domain name", d)}
	}
	return d, nil
}

// CurrencyPair requires both codes present and returns them uppercased.
// Unknown codes are not rejected here; providers reject them naturally.
func CurrencyPair(from, to string) (string, string, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if from == "" {
		return "", "", &ValidationError{Field: "from", Reason: "currency code is required"}
	}
	if to == "" {
		return "", "", &ValidationError{Field: "to", Reason: "currency code is required"}
	}
	return from, to, nil
}

// SiteURL validates a target site URL for page analysis, defaulting the
// scheme to https when absent.
func SiteURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", &ValidationError{Field: "url", Reason: "must not be empty"}
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	host := strings.TrimPrefix(strings.TrimPrefix(u, "https://"), "http://")
	host = strings.TrimPrefix(host, "www.")
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if !domainPattern.MatchString(host) {
		return "", &ValidationError{Field: "url", Reason: fmt.Sprintf("%q does not contain a valid host", raw)}
	}
	return u, nil
}
