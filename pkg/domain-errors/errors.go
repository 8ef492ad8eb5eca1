// Package domainerrors defines the coded errors services return to the
// request surface. Each Code maps to exactly one HTTP status in ToHTTPStatus.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is the stable, externally visible error identifier.
type Code string

const (
	CodeNotFound              Code = "not_found"
	CodeBadRequest            Code = "bad_request"
	CodeDuplicateName         Code = "duplicate_name"
	CodeQuotaExceeded         Code = "quota_exceeded"
	CodeUpstreamUnreachable   Code = "upstream_unreachable"
	CodeUpstreamError         Code = "upstream_error"
	CodeUpstreamProtocol      Code = "upstream_protocol_error"
	CodeBackendUnavailable    Code = "backend_unavailable"
	CodeMethodNotAllowed      Code = "method_not_allowed"
	CodeProviderNotConfigured Code = "provider_not_configured"
	CodeUnauthorized          Code = "unauthorized"
	CodeInternal              Code = "internal_error"
)

// Error carries a Code, a client-safe message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without an underlying cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// As extracts the first coded error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// ToHTTPStatus translates a Code into the HTTP status returned to clients.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeBadRequest, CodeDuplicateName:
		return http.StatusBadRequest
	case CodeQuotaExceeded:
		return http.StatusTooManyRequests
	case CodeUpstreamUnreachable, CodeUpstreamError, CodeUpstreamProtocol:
		return http.StatusBadGateway
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case CodeProviderNotConfigured:
		return http.StatusServiceUnavailable
	case CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
