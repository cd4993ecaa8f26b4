package services

import (
	"errors"
	"fmt"
)

const (
	FieldResume         = "resume"
	FieldJobDescription = "job description"
)

const (
	ExtractionReasonLibrary = "library"
	ExtractionReasonEmpty   = "empty"
)

// ErrAnalysisInProgress is returned when a workspace already has an analysis in flight.
var ErrAnalysisInProgress = errors.New("analysis already in progress")

type UnsupportedTypeError struct {
	MediaType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.MediaType)
}

// ExtractionFailedError is recoverable: the user can paste the text manually.
type ExtractionFailedError struct {
	Reason string
	Err    error
}

func (e *ExtractionFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text extraction failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("text extraction failed (%s)", e.Reason)
}

func (e *ExtractionFailedError) Unwrap() error { return e.Err }

type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing %s text", e.Field)
}

type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("completion service error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("completion service error %d", e.Status)
}

type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "no text content in completion response"
}

type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed model response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// InvalidInputError carries the message of a model error sentinel.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Message
}

type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not set", e.Key)
}
