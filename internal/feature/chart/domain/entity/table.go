// Package entity defines the domain models for the chart feature.
package entity

import "time"

// ColumnKind distinguishes the two derived series per symbol.
type ColumnKind string

const (
	KindHistorical ColumnKind = "historical" // Observed closing prices
	KindForecast   ColumnKind = "forecast"   // Two-point bridge to the predicted price
)

// Column identifies one series in an aligned table.
type Column struct {
	Symbol string
	Kind   ColumnKind
}

// Row is one date on the shared axis. Cells is aligned with the table's
// Columns; a nil cell means the series has no value on that date (never
// zero, never interpolated).
type Row struct {
	Date  time.Time
	Cells []*float64
}

// Table is a time-aligned view over several symbols' historical and
// forecast series. Built fresh per aggregation call; never persisted.
type Table struct {
	Columns []Column
	Rows    []Row // ascending by date
}

// SymbolError reports a symbol that could not be charted.
// Failed symbols are excluded from the table but never silently dropped.
type SymbolError struct {
	Symbol  string
	Message string
}
