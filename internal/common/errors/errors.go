// Package errors provides the standardized error taxonomy for the
// recommendation pipeline. Most pipeline failures are absorbed rather
// than propagated; the taxonomy exists so the few user-visible errors
// carry a stable code and so logs stay greppable.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUpstreamUnavailable  ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamAuthFailed   ErrorCode = "UPSTREAM_AUTH_FAILED"
	ErrCodeUpstreamBadResponse  ErrorCode = "UPSTREAM_BAD_RESPONSE"
	ErrCodeNoProductsFound      ErrorCode = "NO_PRODUCTS_FOUND"
	ErrCodeScoringFailed        ErrorCode = "SCORING_FAILED"
	ErrCodeScoringTimeout       ErrorCode = "SCORING_TIMEOUT"
	ErrCodeInvalidScoringReply  ErrorCode = "INVALID_SCORING_REPLY"
	ErrCodeInvalidMarginRequest ErrorCode = "INVALID_MARGIN_REQUEST"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewUpstreamUnavailableError creates a retryable transport error for one
// category query. Callers log it and let the other categories proceed.
func NewUpstreamUnavailableError(category string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamUnavailable,
		Message:   "Trend data API unavailable",
		Details:   fmt.Sprintf("category: %s, error: %s", category, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamAuthError creates a non-retryable authorization error. The
// upstream body is propagated verbatim so the caller sees the provider's
// own message about the credential problem.
func NewUpstreamAuthError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamAuthFailed,
		Message:   "Trend data API rejected the configured credentials",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUpstreamBadResponseError creates a retryable decode error.
func NewUpstreamBadResponseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUpstreamBadResponse,
		Message:   "Trend data API returned an unreadable response",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoProductsFoundError creates the explicit empty-result outcome,
// distinct from a transport failure.
func NewNoProductsFoundError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoProductsFound,
		Message:   "No products found matching the current criteria",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringFailedError creates a retryable scoring collaborator error.
// The pipeline absorbs it into the heuristic fallback and never surfaces
// it to the caller.
func NewScoringFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringFailed,
		Message:   "AI scoring call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringTimeoutError creates a scoring timeout error, also absorbed
// into the fallback path.
func NewScoringTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringTimeout,
		Message:   "AI scoring call exceeded its timeout",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidScoringReplyError creates an error for a reply that failed
// schema validation.
func NewInvalidScoringReplyError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidScoringReply,
		Message:   "AI scoring reply did not match the expected shape",
		Details:   details,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMarginRequestError creates a non-retryable validation error
// for the standalone margin endpoint.
func NewInvalidMarginRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMarginRequest,
		Message:   "Invalid margin calculation request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsCode reports whether err is a StandardError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	se, ok := err.(*StandardError)
	return ok && se.Code == code
}
