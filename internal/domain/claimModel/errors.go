package claimModel

import (
	"errors"
	"fmt"
)

type FailureReason string

const (
	FailureSchemaViolation   FailureReason = "schema_violation"
	FailureCapabilityTimeout FailureReason = "capability_timeout"
	FailureCapabilityError   FailureReason = "capability_error"
)

var (
	ErrStoreUnavailable  = errors.New("counter store unavailable")
	ErrRateLimited       = errors.New("rate limit exceeded")
	ErrUnsupportedVision = errors.New("provider has no vision capability")
	ErrNoProvider        = errors.New("no llm provider configured")
	ErrEmptyDocument     = errors.New("document is empty")
	ErrUnsupportedType   = errors.New("unsupported document type")
)

// ExtractionError is a per-document failure. It never escapes the pipeline.
type ExtractionError struct {
	Reason FailureReason
	Stage  string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Stage, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Reason, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func NewExtractionError(stage string, reason FailureReason, err error) *ExtractionError {
	return &ExtractionError{Reason: reason, Stage: stage, Err: err}
}

// ReasonOf reads the failure reason from any error chain, defaulting to capability_error.
func ReasonOf(err error) FailureReason {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr.Reason
	}
	return FailureCapabilityError
}
