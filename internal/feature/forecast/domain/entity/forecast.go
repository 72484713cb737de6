// Package entity defines the domain models for the forecast feature.
package entity

import "time"

// HistoryPoint is a single observed closing price for a symbol.
type HistoryPoint struct {
	Date  time.Time // Observation date (daily granularity)
	Price float64   // Closing price
}

// ForecastResult is the outcome of one next-day forecast for a symbol.
// History is always sorted ascending by date and bounded to the most
// recent observations; Delta is computed against the last history point.
type ForecastResult struct {
	Symbol     string         // Ticker symbol (e.g., "AAPL", "BTC-USD")
	Prediction float64        // Predicted next-day price, rounded to 2 decimals
	Delta      float64        // Prediction minus last observed price, rounded to 2 decimals
	Target     time.Time      // Timestamp the prediction was made for (now + 24h)
	History    []HistoryPoint // Recent observations, ascending by date, never empty
}
