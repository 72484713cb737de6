// Package entity defines the domain models for the symbollist feature.
package entity

// Symbol represents one configured instrument and the state of its
// forecasting model, so the dashboard can render the ticker selector
// and grey out symbols that cannot be forecast.
type Symbol struct {
	Code        string // Ticker symbol (e.g., "AAPL", "BTC-USD")
	ModelStatus string // "loaded", "missing" or "corrupt"
}
