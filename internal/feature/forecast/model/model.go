// Package model defines the opaque forecasting model artifacts.
// A model is immutable after deserialization and exposes a single
// capability: a point estimate for a future timestamp.
package model

import (
	"errors"
	"time"
)

// Model is the single capability the rest of the system depends on.
// One implementation exists per model family; callers never see the
// concrete type.
type Model interface {
	// Predict returns the point estimate for the given future timestamp.
	Predict(t time.Time) (float64, error)
}

var (
	// ErrInvalidArtifact is returned when an artifact cannot be
	// deserialized into any known model family.
	ErrInvalidArtifact = errors.New("invalid model artifact")

	// ErrInvalidOutput is returned by Predict when the computed estimate
	// is not a finite number.
	ErrInvalidOutput = errors.New("model produced a non-finite value")
)
