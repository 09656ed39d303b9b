// Package payload defines the GitHub webhook payload variants.
//
// Every supported event type has exactly one payload type. A payload is
// selected by the X-GitHub-Event header, never by inspecting the JSON
// document. Variants that go-github provides an event type for embed it,
// the others are declared here. After decoding, Validate() ensures that all
// fields the variant requires are populated.
package payload

import (
	"fmt"
	"strings"

	"github.com/google/go-github/v43/github"
)

// Payload is implemented by all webhook payload variants.
type Payload interface {
	// EventType returns the X-GitHub-Event header value of the variant.
	EventType() string
	// Validate returns a *MissingFieldsError if required fields of the
	// variant are missing.
	Validate() error
}

// MissingFieldsError is returned by Payload.Validate when required fields are
// absent or empty.
type MissingFieldsError struct {
	EventType string
	Fields    []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s payload: missing required fields: %s", e.EventType, strings.Join(e.Fields, ", "))
}

// required collects the names of missing required fields.
type required struct {
	missing []string
}

func (r *required) str(name, val string) {
	if val == "" {
		r.missing = append(r.missing, name)
	}
}

func (r *required) id(name string, val int64) {
	if val == 0 {
		r.missing = append(r.missing, name)
	}
}

func (r *required) present(name string, isSet bool) {
	if !isSet {
		r.missing = append(r.missing, name)
	}
}

// nested reports name as missing if isSet is false, otherwise check is run
// to verify the fields of the nested object.
func (r *required) nested(name string, isSet bool, check func()) {
	if !isSet {
		r.missing = append(r.missing, name)
		return
	}

	check()
}

func (r *required) repository(name string, repo *github.Repository) {
	r.nested(name, repo != nil, func() {
		r.str(name+".full_name", repo.GetFullName())
	})
}

func (r *required) err(eventType string) error {
	if len(r.missing) == 0 {
		return nil
	}

	return &MissingFieldsError{EventType: eventType, Fields: r.missing}
}
