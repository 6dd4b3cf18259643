// Package errors provides coded, severity-aware errors for the service
// boundary. The decision core never returns errors; these cover requests,
// storage and enrichment.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Severity indicates error impact level.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity name in JSON.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// AppError is a structured error with context.
type AppError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Severity    Severity `json:"severity"`
	Subject     string   `json:"subject,omitempty"`
	Recoverable bool     `json:"recoverable"`
	Err         error    `json:"-"`
}

func (e *AppError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Severity, e.Code, e.Message)
	if e.Subject != "" {
		msg += fmt.Sprintf(" (subject: %s)", e.Subject)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *AppError) Unwrap() error { return e.Err }

// Error codes
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeInvalidResponses = "INVALID_RESPONSES"
	ErrCodeStoreUnavailable = "STORE_UNAVAILABLE"
	ErrCodeProgressNotFound = "PROGRESS_NOT_FOUND"
	ErrCodeStaleProgress    = "STALE_PROGRESS"
	ErrCodeEnrichment       = "ENRICHMENT_FAILED"
	ErrCodePolicyInvalid    = "POLICY_INVALID"
)

var statusByCode = map[string]int{
	ErrCodeInvalidRequest:   http.StatusBadRequest,
	ErrCodeInvalidResponses: http.StatusUnprocessableEntity,
	ErrCodeStoreUnavailable: http.StatusServiceUnavailable,
	ErrCodeProgressNotFound: http.StatusNotFound,
	ErrCodeStaleProgress:    http.StatusConflict,
	ErrCodeEnrichment:       http.StatusBadGateway,
	ErrCodePolicyInvalid:    http.StatusInternalServerError,
}

// HTTPStatus maps an error to a response status. Errors without an AppError
// in their chain are internal errors.
func HTTPStatus(err error) int {
	var ae *AppError
	if stderrors.As(err, &ae) {
		if status, ok := statusByCode[ae.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}

// Code returns the AppError code in err's chain, or "".
func Code(err error) string {
	var ae *AppError
	if stderrors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// NewInvalidRequestError creates an error for malformed request bodies.
func NewInvalidRequestError(reason string, err error) *AppError {
	return &AppError{
		Code:        ErrCodeInvalidRequest,
		Message:     reason,
		Severity:    SeverityWarning,
		Recoverable: true,
		Err:         err,
	}
}

// NewInvalidResponsesError creates an error for questionnaire answers that
// cannot be decoded as a response map.
func NewInvalidResponsesError(reason string) *AppError {
	return &AppError{
		Code:        ErrCodeInvalidResponses,
		Message:     reason,
		Severity:    SeverityWarning,
		Recoverable: true,
	}
}

// NewStoreUnavailableError wraps a storage failure.
func NewStoreUnavailableError(store string, err error) *AppError {
	return &AppError{
		Code:        ErrCodeStoreUnavailable,
		Message:     fmt.Sprintf("%s store unavailable", store),
		Severity:    SeverityError,
		Subject:     store,
		Recoverable: true,
		Err:         err,
	}
}

// NewProgressNotFoundError creates an error for an email with no saved progress.
func NewProgressNotFoundError(email string) *AppError {
	return &AppError{
		Code:        ErrCodeProgressNotFound,
		Message:     "No saved progress",
		Severity:    SeverityInfo,
		Subject:     email,
		Recoverable: true,
	}
}

// NewStaleProgressError creates an error for a write older than the stored copy.
func NewStaleProgressError(email string) *AppError {
	return &AppError{
		Code:        ErrCodeStaleProgress,
		Message:     "A newer copy of this progress is already saved",
		Severity:    SeverityWarning,
		Subject:     email,
		Recoverable: true,
	}
}

// NewEnrichmentError wraps an enrichment collaborator failure.
func NewEnrichmentError(err error) *AppError {
	return &AppError{
		Code:        ErrCodeEnrichment,
		Message:     "Enrichment failed",
		Severity:    SeverityWarning,
		Recoverable: true,
		Err:         err,
	}
}

// NewPolicyInvalidError creates an error for a scoring policy that fails
// validation.
func NewPolicyInvalidError(path string, err error) *AppError {
	return &AppError{
		Code:        ErrCodePolicyInvalid,
		Message:     "Invalid scoring policy",
		Severity:    SeverityFatal,
		Subject:     path,
		Recoverable: false,
		Err:         err,
	}
}
