// Package goerror defines the structured error used across the application.
//
// Every failure surfaced by a usecase is one of three types: a validation
// failure the caller must correct, a business-rule outcome (invalid or
// expired code, forbidden account state), or a server-side fault. The router
// converts the error into a JSON body and an HTTP status at the boundary; no
// error crosses an endpoint unhandled.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict indicates the request conflicts with existing state.
	ErrConflict = errors.New("resource conflict")
)

// Type classifies errors into high-level buckets.
type Type int

const (
	// TypeServer represents server-side failures, including failed calls to
	// external collaborators that are not attributable to caller input.
	TypeServer Type = iota
	// TypeBusiness represents business rule outcomes.
	TypeBusiness
	// TypeValidation represents input validation failures.
	TypeValidation
)

// Code is a stable identifier mapped to an HTTP status code.
type Code int

const (
	// CodeInternal is an internal or unspecified failure.
	CodeInternal Code = iota
	// CodeInvalidFormat is a malformed request body.
	CodeInvalidFormat
	// CodeInvalidInput is a request that parsed but fails validation or a
	// state check the caller can act on.
	CodeInvalidInput
	// CodeNotFound is a missing resource.
	CodeNotFound
	// CodeConflict is a duplicate or conflicting resource.
	CodeConflict
	// CodeTooManyRequest is a throttled request.
	CodeTooManyRequest
	// CodeUnauthorized is an authentication failure.
	CodeUnauthorized
	// CodeForbidden is an authorization failure.
	CodeForbidden
)

// Error carries a user-facing message, a type, and a stable code, optionally
// wrapping an underlying error and per-field validation details.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	if e.msg != "" {
		return e.msg
	}

	switch e.errType {
	case TypeValidation:
		return "validation violation"
	case TypeBusiness:
		return "business rule violation"
	default:
		return "internal error"
	}
}

// String returns a verbose representation for logs.
func (e *Error) String() string {
	return fmt.Sprintf("Error Type: %d, Code: %d, Message: %s, Underlying: %v", e.errType, e.code, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string {
	return e.msg
}

// Type returns the high-level error type.
func (e *Error) Type() Type {
	return e.errType
}

// Code returns the stable error code.
func (e *Error) Code() Code {
	return e.code
}

// Fields returns per-field validation details, if any.
func (e *Error) Fields() map[string]string {
	return e.fields
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.err
}

// StatusCode maps the error code to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat, CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewServer creates a server-type error. An optional message overrides the
// generic user-facing text for dependency failures the caller should see
// described ("Failed to send SMS. ...").
func NewServer(err error, msgs ...string) error {
	msg := "Internal server error"
	if len(msgs) > 0 && msgs[0] != "" {
		msg = msgs[0]
	}

	return &Error{err: err, msg: msg, errType: TypeServer, code: CodeInternal}
}

// NewBusiness creates a business-type error with a message and code.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput creates a validation error, either wrapping a validator
// error or carrying explicit field/message pairs.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}

	e := &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	if len(kv)%2 == 0 && len(kv) > 0 {
		e.fields = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.fields[kv[i]] = kv[i+1]
		}
	}

	return e
}

// NewInvalidInputMsg creates a validation error with an exact user-facing
// message, used where the wire contract fixes the error string.
func NewInvalidInputMsg(msg string) error {
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidInput}
}

// NewInvalidFormat creates a validation error for a malformed request body.
func NewInvalidFormat(msgs ...string) error {
	if len(msgs) == 0 {
		return &Error{msg: "Invalid request body", errType: TypeValidation, code: CodeInvalidFormat}
	}

	return &Error{msg: msgs[0], errType: TypeValidation, code: CodeInvalidFormat}
}
