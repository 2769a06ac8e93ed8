package orchestrator

import "errors"

// Sentinel errors for the pipeline's fatal error class: configuration,
// validation, and I/O failures abort the run, unlike the per-entity
// swallow-and-log class each extractor package handles on its own.
// Returned errors wrap one of them, so callers can distinguish the
// class with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrIO            = errors.New("io error")
)
