// Package api defines response types shared across HTTP handlers.
package api

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}
