package errors

import "fmt"

// Error codes
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeRemote     = "REMOTE_ERROR"
	CodeSchema     = "SCHEMA_ERROR"
	CodeCache      = "CACHE_ERROR"
)

type ReportError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ReportError) Unwrap() error {
	return e.Cause
}

func (e *ReportError) WithCause(cause error) *ReportError {
	e.Cause = cause
	return e
}

// ValidationError covers bad user input (month spec, sheet URL, credentials
// path). Always fatal before any remote call is issued.
type ValidationError struct {
	*ReportError
	Field string
	Value any
}

func NewValidationError(message, field string, value any) *ValidationError {
	return &ValidationError{
		ReportError: &ReportError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// AuthError covers credential load, refresh, and consent failures. Fatal.
type AuthError struct {
	*ReportError
}

func NewAuthError(message string, cause error) *AuthError {
	return &AuthError{
		ReportError: &ReportError{
			Message: message,
			Code:    CodeAuth,
			Cause:   cause,
		},
	}
}

// RemoteError covers failures from the catalog, analytics, and spreadsheet
// services. Non-fatal at read call sites, fatal for spreadsheet writes.
type RemoteError struct {
	*ReportError
	Service   string
	Operation string
}

func NewRemoteError(message, service, operation string, cause error) *RemoteError {
	return &RemoteError{
		ReportError: &ReportError{
			Message: message,
			Code:    CodeRemote,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}

// SchemaError marks an analytics response whose column headers and rows do
// not line up with the requested metrics.
type SchemaError struct {
	*ReportError
	Column string
}

func NewSchemaError(message, column string, cause error) *SchemaError {
	return &SchemaError{
		ReportError: &ReportError{
			Message: message,
			Code:    CodeSchema,
			Context: map[string]any{
				"column": column,
			},
			Cause: cause,
		},
		Column: column,
	}
}

type CacheError struct {
	*ReportError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		ReportError: &ReportError{
			Message: message,
			Code:    CodeCache,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}
