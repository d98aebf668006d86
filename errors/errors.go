// Package errors defines the error taxonomy for stellar-identity-go.
//
// Every failure surfaced by the module is an IdentityError, which carries:
//   - Code: Machine-readable error identifier
//   - Message: Human-readable error description
//   - Layer: Which component produced the error (secret, store, network, funding, identity)
//   - Cause: Underlying error, if any
//   - Context: Diagnostic details such as the offending URL or response body
//
// Use the layer constructors (NewSecretError, NewNetworkError, ...) so the layer is
// always set. No component recovers from another component's error; callers decide.
package errors

import (
	"fmt"
	"sort"
	"strings"
)

// Code is a machine-readable error identifier.
type Code string

// Error codes - Secret layer
const (
	INVALID_SEED           Code = "INVALID_SEED"
	INVALID_SEED_PHRASE    Code = "INVALID_SEED_PHRASE"
	INVALID_SECRET_KEY     Code = "INVALID_SECRET_KEY"
	INVALID_HD_PATH        Code = "INVALID_HD_PATH"
	HD_PATH_NOT_APPLICABLE Code = "HD_PATH_NOT_APPLICABLE"
)

// Error codes - Store layer
const (
	NOT_FOUND    Code = "NOT_FOUND"
	INVALID_NAME Code = "INVALID_NAME"
	STORE_ERROR  Code = "STORE_ERROR"
)

// Error codes - Network layer
const (
	NETWORK_REQUIRED      Code = "NETWORK_REQUIRED"
	NETWORK_ARGS_CONFLICT Code = "NETWORK_ARGS_CONFLICT"
)

// Error codes - Funding layer
const (
	INVALID_URL          Code = "INVALID_URL"
	MALFORMED_RESPONSE   Code = "MALFORMED_RESPONSE"
	UNEXPECTED_RESPONSE  Code = "UNEXPECTED_RESPONSE"
	PLATFORM_UNSUPPORTED Code = "PLATFORM_UNSUPPORTED"
	NETWORK_ERROR        Code = "NETWORK_ERROR"
	DISCOVERY_FAILED     Code = "DISCOVERY_FAILED"
)

// Error codes - Identity layer
const (
	SEED_CONFLICT Code = "SEED_CONFLICT"
)

// IdentityError is the base error type for all module errors.
type IdentityError struct {
	Code    Code
	Message string
	Layer   string // "secret", "store", "network", "funding", "identity"
	Cause   error
	Context map[string]any
}

// Error returns a formatted error string.
func (e *IdentityError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Layer, e.Code, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		msg += " {" + strings.Join(parts, ", ") + "}"
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (caused by: %v)", e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause error, enabling error chain inspection.
func (e *IdentityError) Unwrap() error {
	return e.Cause
}

// With attaches a diagnostic key/value to the error and returns it.
func (e *IdentityError) With(key string, value any) *IdentityError {
	e.Context[key] = value
	return e
}

func newError(layer string, code Code, message string, cause error) *IdentityError {
	return &IdentityError{
		Code:    code,
		Message: message,
		Layer:   layer,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// NewSecretError creates a secret layer error.
func NewSecretError(code Code, message string, cause error) *IdentityError {
	return newError("secret", code, message, cause)
}

// NewStoreError creates a store layer error.
func NewStoreError(code Code, message string, cause error) *IdentityError {
	return newError("store", code, message, cause)
}

// NewNetworkError creates a network layer error.
func NewNetworkError(code Code, message string, cause error) *IdentityError {
	return newError("network", code, message, cause)
}

// NewFundingError creates a funding layer error.
func NewFundingError(code Code, message string, cause error) *IdentityError {
	return newError("funding", code, message, cause)
}

// NewIdentityError creates an identity layer error.
func NewIdentityError(code Code, message string, cause error) *IdentityError {
	return newError("identity", code, message, cause)
}

// Is checks if the target error is an IdentityError with the same code.
func (e *IdentityError) Is(target error) bool {
	if target == nil {
		return false
	}
	other, ok := target.(*IdentityError)
	if !ok {
		return false
	}
	return e.Code == other.Code
}

// As walks the error chain and assigns the first IdentityError found to target.
func As(err error, target **IdentityError) bool {
	for err != nil {
		if v, ok := err.(*IdentityError); ok {
			*target = v
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// IsCode reports whether err, or any error it wraps, is an IdentityError with code.
func IsCode(err error, code Code) bool {
	var ie *IdentityError
	if !As(err, &ie) {
		return false
	}
	if ie.Code == code {
		return true
	}
	return IsCode(ie.Cause, code)
}

// CodeOf returns the code of the outermost IdentityError in err's chain, or "".
func CodeOf(err error) Code {
	var ie *IdentityError
	if As(err, &ie) {
		return ie.Code
	}
	return ""
}
