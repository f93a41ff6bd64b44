package models

import "time"

// AuthorityResponse is the domain authority contract.
type AuthorityResponse struct {
	Domain      string    `json:"domain"`
	PageRank    float64   `json:"pageRank"`
	GlobalRank  int       `json:"globalRank"`
	LastUpdated time.Time `json:"lastUpdated"`
}
