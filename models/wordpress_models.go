package models

import "time"

// ThemeInfo describes the detected WordPress theme.
type ThemeInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// WordPressResponse is the WordPress detection contract.
type WordPressResponse struct {
	URL         SafeURLString `json:"url"`
	IsWordPress bool          `json:"isWordPress"`
	Version     string        `json:"version"`
	Theme       *ThemeInfo    `json:"theme"`
	Plugins     []string      `json:"plugins"`
	Server      string        `json:"server"`
	LastUpdated time.Time     `json:"lastUpdated"`
}
