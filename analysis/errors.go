package analysis

import "errors"

// ErrInvalidInput is returned when the analysis request fails validation.
var ErrInvalidInput = errors.New("analysis: invalid input")

// ErrCaptureFailed is returned when the target page could not be fetched
// or rendered.
var ErrCaptureFailed = errors.New("analysis: page capture failed")
