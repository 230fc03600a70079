// Package errors defines the error types shared by the pipeline stages.
// The split that matters is between per-entry failures (a missing page, a
// slow API) that are logged and skipped, and fatal ones (bad configuration,
// missing credentials) that end the run. IsFatal draws that line.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Standard library helpers, re-exported so callers need one errors import.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrNoContent         = errors.New("no content")
	ErrInvalidInput      = errors.New("invalid input")
	ErrAPIKeyRequired    = errors.New("API key required")
	ErrAPIKeyInvalid     = errors.New("API key invalid")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrRateLimited       = errors.New("rate limited")
	ErrTimeout           = errors.New("operation timed out")
	ErrCanceled          = errors.New("operation canceled")
)

// NotFoundError reports a missing dataset, page, image or directory. A
// missing page also matches ErrNoContent.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound || (target == ErrNoContent && e.Resource == "page")
}

// NewNotFoundError returns a NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError reports bad user input: a flag value, a coordinate, an
// empty dataset.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError returns a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError is a non-2xx response or transport failure from an external
// source. The status code decides which sentinel it matches.
type APIError struct {
	Source     string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Is(target error) bool {
	code := e.StatusCode
	switch target {
	case ErrRateLimited:
		return code == http.StatusTooManyRequests
	case ErrAPIKeyInvalid:
		return code == http.StatusUnauthorized || code == http.StatusForbidden
	case ErrNotFound:
		return code == http.StatusNotFound
	case ErrSourceUnavailable:
		return code >= http.StatusInternalServerError
	}
	return false
}

// NewAPIError returns an APIError without a wrapped cause.
func NewAPIError(source string, statusCode int, message string) *APIError {
	return &APIError{Source: source, StatusCode: statusCode, Message: message}
}

// ConfigError is always fatal.
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

func (e *ConfigError) Error() string {
	if e.Component == "" {
		return "configuration error: " + e.Message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError returns a ConfigError.
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError reports undecodable JSON, YAML or HTML.
type ParseError struct {
	Format  string
	File    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IOError reports a failed filesystem operation on Path.
type IOError struct {
	Operation string
	Path      string
	Message   string
	Err       error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
}

func (e *IOError) Unwrap() error { return e.Err }

// ResourceError reports a failed operation on a named resource such as the
// run database or an outgoing request.
type ResourceError struct {
	Operation string
	Resource  string
	ID        string
	Message   string
	Err       error
}

func (e *ResourceError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
	}
	return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// AuthenticationError reports a missing or rejected credential. Method
// names how the credential is sent ("header" or "query").
type AuthenticationError struct {
	Source  string
	Method  string
	Message string
	Err     error
}

func (e *AuthenticationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error for %s (%s): %s", e.Source, e.Method, e.Message)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired || target == ErrAPIKeyInvalid
}

// NewAuthenticationError returns an AuthenticationError.
func NewAuthenticationError(source, method, message string, err error) *AuthenticationError {
	return &AuthenticationError{Source: source, Method: method, Message: message, Err: err}
}

// TimeoutError reports an operation that ran past its deadline.
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

func (e *TimeoutError) Error() string {
	if e.Duration == "" {
		return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

// NewTimeoutError returns a TimeoutError.
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{Operation: operation, Duration: duration, Message: message}
}

func IsNotFound(err error) bool          { return errors.Is(err, ErrNotFound) }
func IsNoContent(err error) bool         { return errors.Is(err, ErrNoContent) }
func IsValidationError(err error) bool   { return errors.Is(err, ErrInvalidInput) }
func IsRateLimited(err error) bool       { return errors.Is(err, ErrRateLimited) }
func IsSourceUnavailable(err error) bool { return errors.Is(err, ErrSourceUnavailable) }

// IsAPIKeyError reports a missing or rejected credential.
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired) || errors.Is(err, ErrAPIKeyInvalid)
}

// IsTimeout also matches context.DeadlineExceeded.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// IsCanceled also matches context.Canceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled) || errors.Is(err, context.Canceled)
}

// IsFatal reports whether err should end the whole run instead of one entry.
// Configuration errors and missing credentials are fatal. A rejected key is
// not when it comes back as a 401 or 403 response.
func IsFatal(err error) bool {
	var cfg *ConfigError
	return err != nil && (errors.As(err, &cfg) || errors.Is(err, ErrAPIKeyRequired))
}

// WrapValidation turns err into a ValidationError for field. Nil stays nil.
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO turns err into an IOError. Nil stays nil.
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapResource turns err into a ResourceError. Nil stays nil.
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{Operation: operation, Resource: resource, ID: id, Message: err.Error(), Err: err}
}

// WrapParse turns err into a ParseError. Nil stays nil.
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}
