package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoFileSelected     = errors.New("no file selected")
	ErrUploadTooLarge     = errors.New("upload too large")
	ErrEmptyProductURL    = errors.New("empty product url")
	ErrInvalidProductURL  = errors.New("invalid product url")
	ErrSubmissionInFlight = errors.New("submission already in flight")
	ErrUnknownWorkflow    = errors.New("unknown workflow")
	ErrNoWorkflowActive   = errors.New("workflow not active")
	ErrNoAdSizes          = errors.New("no platform ad sizes")
)

// ValidationError is a local failure: the precondition of a submission did not
// hold and no network call was issued.
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError pairs a sentinel with the text shown inline in the form.
func NewValidationError(err error, message string) *ValidationError {
	return &ValidationError{Err: err, Message: message}
}

// RequestError is a failed round trip to the generation backend: either a
// non-2xx response or a transport failure. Detail holds the backend's `detail`
// field when the error body carried one.
type RequestError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("backend: http %d: %s", e.StatusCode, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("backend: %v", e.Err)
	default:
		return fmt.Sprintf("backend: http %d", e.StatusCode)
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UserMessage maps err to the single line of text a form displays. Validation
// errors keep their own message, request errors surface the backend detail, and
// everything else collapses to fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) && verr.Message != "" {
		return verr.Message
	}
	var rerr *RequestError
	if errors.As(err, &rerr) && rerr.Detail != "" {
		return rerr.Detail
	}
	return fallback
}
