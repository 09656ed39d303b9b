package provider

import (
	"fmt"
	"net/http"

	"github.com/simplesurance/ghreceiver/internal/hookerr"
)

// Outcome is the result of validating a webhook request.
type Outcome uint8

const (
	OutcomeUndefined Outcome = iota
	// OutcomeValid is returned when the request is authentic.
	OutcomeValid
	// OutcomeInvalidSignature is returned when the signature is missing or
	// does not match the body.
	OutcomeInvalidSignature
	// OutcomeMalformedPayload is returned when the request can not be
	// verified because the body violates the request constraints.
	OutcomeMalformedPayload
	// OutcomeConfigurationError is returned when the request can not be
	// verified because the server is misconfigured.
	OutcomeConfigurationError
)

var outcomeStrings = [...]string{
	OutcomeUndefined:          "undefined",
	OutcomeValid:              "valid",
	OutcomeInvalidSignature:   "invalid signature",
	OutcomeMalformedPayload:   "malformed payload",
	OutcomeConfigurationError: "configuration error",
}

func (o Outcome) String() string {
	// it can not be <0 because it's type is uint8
	if int(o) > len(outcomeStrings)-1 {
		return fmt.Sprintf("unsupported Outcome value: %d", o)
	}

	return outcomeStrings[o]
}

func (o Outcome) errKind() hookerr.Kind {
	switch o {
	case OutcomeInvalidSignature:
		return hookerr.KindAuthentication
	case OutcomeMalformedPayload:
		return hookerr.KindMalformedInput
	case OutcomeConfigurationError:
		return hookerr.KindConfiguration
	default:
		return hookerr.KindInternal
	}
}

// ValidationResult describes the outcome of validating a single webhook
// request.
type ValidationResult struct {
	Outcome Outcome
	// Message is sent to the client.
	Message string
	// Err is an optional error with details, it is only logged.
	Err error
}

// Valid returns a ValidationResult with OutcomeValid.
func Valid() *ValidationResult {
	return &ValidationResult{Outcome: OutcomeValid}
}

// Invalid returns a ValidationResult with the given outcome.
func Invalid(outcome Outcome, msg string, err error) *ValidationResult {
	return &ValidationResult{
		Outcome: outcome,
		Message: msg,
		Err:     err,
	}
}

// IsValid returns true if the outcome is OutcomeValid.
func (r *ValidationResult) IsValid() bool {
	return r.Outcome == OutcomeValid
}

// HTTPStatus returns the http status code for the result.
func (r *ValidationResult) HTTPStatus() int {
	if r.IsValid() {
		return http.StatusOK
	}

	return r.Outcome.errKind().HTTPStatus()
}

// AsError converts an invalid result to an *hookerr.Error.
// Nil is returned if the result is valid.
func (r *ValidationResult) AsError() *hookerr.Error {
	if r.IsValid() {
		return nil
	}

	return hookerr.New(r.Outcome.errKind(), r.Message, r.Err)
}
