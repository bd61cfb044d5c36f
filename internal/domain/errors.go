package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrInvalidState    = errors.New("invalid state")
	ErrRateLimited     = errors.New("rate limited")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInternal        = errors.New("internal error")
)

// ErrorKind classifies an APIError. The orchestrator does not branch on it; it is
// kept for logs and metrics.
type ErrorKind string

const (
	KindConfig      ErrorKind = "config"
	KindTransport   ErrorKind = "transport"
	KindParse       ErrorKind = "parse"
	KindStructure   ErrorKind = "structure"
	KindRateLimited ErrorKind = "rate_limited"
)

// MsgNotConfigured is returned before any network call when no credential is set.
const MsgNotConfigured = "Gemini API client is not initialized. Please set your API key."

// MsgTransportFailed is the fallback message for failures reaching the AI service.
const MsgTransportFailed = "An error occurred while contacting the AI service."

// APIError is the single failure variant of every query: a user-facing message and
// optional technical details.
type APIError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Details)
}

// Is lets errors.Is match the rate limited sentinel.
func (e *APIError) Is(target error) bool {
	return e.Kind == KindRateLimited && target == ErrRateLimited
}

// NewAPIError builds an APIError of the given kind.
func NewAPIError(kind ErrorKind, message, details string) *APIError {
	return &APIError{Kind: kind, Message: message, Details: details}
}

// AsAPIError converts any error into an APIError. Errors that are not already an
// APIError are treated as transport failures.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Kind: KindTransport, Message: MsgTransportFailed, Details: err.Error()}
}
