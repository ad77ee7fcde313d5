package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that a template or template entry is absent.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrUpstreamUnavailable means that every trusted registry host failed.
	ErrUpstreamUnavailable = "upstream_unavailable"
	// ErrMalformedRegistry means that the registry document lacks data.corechannel.
	ErrMalformedRegistry = "malformed_registry"
	// ErrCacheEmpty means that the readiness gate ran out of retries before the first publish.
	ErrCacheEmpty = "cache_empty"
	// ErrCacheTimeout means that the readiness gate hit its hard deadline.
	ErrCacheTimeout = "cache_timeout"
)

// MyError represents an error within the context of proxyconfig services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

// NewUpstreamUnavailableError wraps the last host error. Unlike the other constructors it always
// creates a new error so that a malformed_registry from the last host is kept as the inner cause.
func NewUpstreamUnavailableError(message string, inner error) *MyError {
	return NewMyError(ErrUpstreamUnavailable, message, inner)
}

func NewMalformedRegistryError(message string, inner error) *MyError {
	return NewMyError(ErrMalformedRegistry, message, inner)
}

func NewCacheEmptyError(message string, inner error) *MyError {
	return NewMyError(ErrCacheEmpty, message, inner)
}

func NewCacheTimeoutError(message string, inner error) *MyError {
	return NewMyError(ErrCacheTimeout, message, inner)
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a proxyconfig error, or nil if it is not a proxyconfig error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsUpstreamUnavailableError(err error) bool {
	return IsMyError(err, ErrUpstreamUnavailable)
}

func IsMalformedRegistryError(err error) bool {
	return IsMyError(err, ErrMalformedRegistry)
}

func IsCacheEmptyError(err error) bool {
	return IsMyError(err, ErrCacheEmpty)
}

func IsCacheTimeoutError(err error) bool {
	return IsMyError(err, ErrCacheTimeout)
}
