// Package hookerr provides the error type used to terminate the processing of
// a webhook request.
package hookerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies why processing a webhook request failed.
type Kind uint8

const (
	KindUndefined Kind = iota
	// KindConfiguration is returned when the server is misconfigured, e.g.
	// the webhook secret is not set.
	KindConfiguration
	// KindAuthentication is returned when the signature is missing or invalid.
	KindAuthentication
	// KindMalformedInput is returned for payloads that can not be processed
	// because they violate the expected structure.
	KindMalformedInput
	// KindUnsupportedEvent is returned when the event type is unknown.
	KindUnsupportedEvent
	// KindInternal is returned for all unexpected failures.
	KindInternal
)

var kindStrings = [...]string{
	KindUndefined:        "undefined",
	KindConfiguration:    "configuration_error",
	KindAuthentication:   "authentication_error",
	KindMalformedInput:   "malformed_input_error",
	KindUnsupportedEvent: "unsupported_event_error",
	KindInternal:         "internal_error",
}

func (k Kind) String() string {
	if int(k) > len(kindStrings)-1 {
		return fmt.Sprintf("unsupported Kind value: %d", k)
	}

	return kindStrings[k]
}

// HTTPStatus returns the http status code that is sent for errors of the
// kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindMalformedInput, KindUnsupportedEvent:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessageInternal is sent to a client for all internal errors.
const PublicMessageInternal = "Internal server error"

// Error is an error that terminated the processing of a request.
type Error struct {
	Kind Kind
	// Message is the message that is sent to the client.
	Message string
	// Err is the wrapped original error, it is only logged and never sent
	// to the client.
	Err error
}

func New(kind Kind, publicMsg string, originalErr error) *Error {
	return &Error{
		Kind:    kind,
		Message: publicMsg,
		Err:     originalErr,
	}
}

// NewInternal returns an Error of KindInternal with the generic public
// message.
func NewInternal(originalErr error) *Error {
	return New(KindInternal, PublicMessageInternal, originalErr)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Err)
}

// HTTPStatus returns the http status code for the error.
func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// As returns err as *Error.
// If err does not wrap an *Error, an Error of KindInternal wrapping err is
// returned.
func As(err error) *Error {
	var hErr *Error

	if errors.As(err, &hErr) {
		return hErr
	}

	return NewInternal(err)
}
