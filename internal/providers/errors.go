package providers

import (
	"errors"
	"fmt"

	dErrors "countries/pkg/domain-errors"
)

// ErrorCategory defines the normalized failure taxonomy
type ErrorCategory string

const (
	// ErrorUnreachable covers dial failures, timeouts and cancelled requests
	ErrorUnreachable ErrorCategory = "unreachable"

	// ErrorUpstream indicates a non-success HTTP status from the provider
	ErrorUpstream ErrorCategory = "upstream"

	// ErrorProtocol indicates an undecodable or unexpected response body
	ErrorProtocol ErrorCategory = "protocol"

	// ErrorNotFound indicates the provider has nothing for the country
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorQuotaExceeded indicates the local request budget is spent
	ErrorQuotaExceeded ErrorCategory = "quota_exceeded"

	// ErrorInvalidInput indicates bad caller parameters, detected before any call
	ErrorInvalidInput ErrorCategory = "invalid_input"

	// ErrorNotConfigured indicates a missing credential or endpoint
	ErrorNotConfigured ErrorCategory = "not_configured"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps provider failures with normalized categorization
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	// Status and Body are set for ErrorUpstream.
	Status     int
	Body       string
	Underlying error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Underlying != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Underlying)
	}
	return msg
}

// Unwrap supports error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a new normalized provider error
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
	}
}

// NewUpstreamError records a non-success status together with the body the
// provider sent back.
func NewUpstreamError(providerID string, status int, body string) *ProviderError {
	return &ProviderError{
		Category:   ErrorUpstream,
		ProviderID: providerID,
		Message:    "unexpected response status",
		Status:     status,
		Body:       body,
	}
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// ToDomainError is the single translation point from provider failures to
// coded domain errors. Errors that already carry a domain code pass through.
func ToDomainError(err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		if _, ok := dErrors.As(err); ok {
			return err
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
	}

	switch pe.Category {
	case ErrorUnreachable:
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnreachable,
			fmt.Sprintf("error connecting to %s", pe.ProviderID))
	case ErrorUpstream:
		msg := fmt.Sprintf("%s returned status %d", pe.ProviderID, pe.Status)
		if pe.Body != "" {
			msg = fmt.Sprintf("%s: %s", msg, pe.Body)
		}
		return dErrors.Wrap(err, dErrors.CodeUpstreamError, msg)
	case ErrorProtocol:
		return dErrors.Wrap(err, dErrors.CodeUpstreamProtocol,
			fmt.Sprintf("invalid response from %s: %s", pe.ProviderID, pe.Message))
	case ErrorNotFound:
		return dErrors.Wrap(err, dErrors.CodeNotFound, pe.Message)
	case ErrorQuotaExceeded:
		return dErrors.Wrap(err, dErrors.CodeQuotaExceeded, pe.Message)
	case ErrorInvalidInput:
		return dErrors.Wrap(err, dErrors.CodeBadRequest, pe.Message)
	case ErrorNotConfigured:
		return dErrors.Wrap(err, dErrors.CodeProviderNotConfigured,
			fmt.Sprintf("%s is not configured", pe.ProviderID))
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "internal error")
	}
}
