// Package errors provides typed errors for the application
package errors

import "errors"

// ErrorType represents the kind of fault raised while serving a download
type ErrorType int

const (
	ErrorTypeResolution ErrorType = iota
	ErrorTypeNoMatch
	ErrorTypeTransfer
	ErrorTypeTransport
	ErrorTypeUnknown
)

// String returns the label used in logs, metrics and events
func (t ErrorType) String() string {
	switch t {
	case ErrorTypeResolution:
		return "resolution"
	case ErrorTypeNoMatch:
		return "no_match"
	case ErrorTypeTransfer:
		return "transfer"
	case ErrorTypeTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// baseError is the base implementation for all error types
type baseError struct {
	msg   string
	cause error
}

func (e *baseError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// ResolutionError means the URL could not be resolved to a stream collection
type ResolutionError struct {
	baseError
}

// NewResolutionError creates a new ResolutionError
func NewResolutionError(msg string, cause error) *ResolutionError {
	return &ResolutionError{baseError{msg: msg, cause: cause}}
}

// NoMatchError means no rendition satisfied the selection policy
type NoMatchError struct {
	baseError
}

// NewNoMatchError creates a new NoMatchError
func NewNoMatchError(msg string) *NoMatchError {
	return &NoMatchError{baseError{msg: msg}}
}

// TransferError means fetching media to local storage failed
type TransferError struct {
	baseError
}

// NewTransferError creates a new TransferError
func NewTransferError(msg string, cause error) *TransferError {
	return &TransferError{baseError{msg: msg, cause: cause}}
}

// TransportError means the chat platform rejected an outbound call
type TransportError struct {
	baseError
}

// NewTransportError creates a new TransportError
func NewTransportError(msg string, cause error) *TransportError {
	return &TransportError{baseError{msg: msg, cause: cause}}
}

// IsResolutionError checks if err is or wraps a ResolutionError
func IsResolutionError(err error) bool {
	var target *ResolutionError
	return errors.As(err, &target)
}

// IsNoMatchError checks if err is or wraps a NoMatchError
func IsNoMatchError(err error) bool {
	var target *NoMatchError
	return errors.As(err, &target)
}

// IsTransferError checks if err is or wraps a TransferError
func IsTransferError(err error) bool {
	var target *TransferError
	return errors.As(err, &target)
}

// IsTransportError checks if err is or wraps a TransportError
func IsTransportError(err error) bool {
	var target *TransportError
	return errors.As(err, &target)
}

// TypeOf classifies err into one of the known fault kinds
func TypeOf(err error) ErrorType {
	switch {
	case IsResolutionError(err):
		return ErrorTypeResolution
	case IsNoMatchError(err):
		return ErrorTypeNoMatch
	case IsTransferError(err):
		return ErrorTypeTransfer
	case IsTransportError(err):
		return ErrorTypeTransport
	default:
		return ErrorTypeUnknown
	}
}
