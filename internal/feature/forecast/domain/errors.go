// Package domain defines domain-level errors for the forecast feature.
package domain

import "errors"

// Domain errors for forecast operations.
// Every failure crossing the usecase boundary is classified into one of these
// so that transport and cache layers can branch with errors.Is.
var (
	// ErrModelNotFound indicates that no forecasting model is loaded for the
	// symbol. Permanent until the process is redeployed with a new artifact.
	ErrModelNotFound = errors.New("no model loaded for symbol")

	// ErrDataUnavailable indicates that historical data could not be served:
	// either the store holds no rows for the symbol yet (ingestion still in
	// progress) or the store itself is unreachable. Transient; callers may
	// retry later.
	ErrDataUnavailable = errors.New("historical data unavailable")

	// ErrInferenceFailed indicates that the model produced an invalid result
	// (NaN/Inf) or errored during prediction. Always logged with its cause.
	ErrInferenceFailed = errors.New("model inference failed")
)
