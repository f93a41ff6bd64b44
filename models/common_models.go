package models

// ErrorResponse is the uniform error body for every endpoint: a non-2xx
// status plus a single human-readable message. Provider-specific error
// payloads never leak through it.
type ErrorResponse struct {
	Error string `json:"error"`
}
