package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-github/v43/github"

	"github.com/simplesurance/ghreceiver/internal/maputils"
)

// AuditLogStreamingAction is the action value every audit log streaming
// payload carries.
const AuditLogStreamingAction = "audit_log_streaming"

// AuditLogStreamingEvent is a batch of audit log entries streamed by GitHub.
type AuditLogStreamingEvent struct {
	Action  string          `json:"action"`
	Entries []AuditLogEntry `json:"audit_log_events"`
	// Organization and Sender are not required, they are decoded on access
	// and values of an unexpected type are ignored.
	Organization json.RawMessage `json:"organization,omitempty"`
	Sender       json.RawMessage `json:"sender,omitempty"`
}

func (*AuditLogStreamingEvent) EventType() string { return TypeAuditLogStreaming }

func (e *AuditLogStreamingEvent) Validate() error {
	var r required

	if e.Action != AuditLogStreamingAction {
		r.present("action", false)
	}
	r.present("audit_log_events", e.Entries != nil)

	for i := range e.Entries {
		for _, f := range e.Entries[i].missingFields() {
			r.present(fmt.Sprintf("audit_log_events[%d].%s", i, f), false)
		}
	}

	return r.err(TypeAuditLogStreaming)
}

// EntryPayloads returns pointers to the entries of the batch.
// Entries that do not have an organization set get the organization of the
// batch assigned.
func (e *AuditLogStreamingEvent) EntryPayloads() []*AuditLogEntry {
	result := make([]*AuditLogEntry, 0, len(e.Entries))
	org := e.GetOrganization()

	for i := range e.Entries {
		entry := &e.Entries[i]
		if entry.Organization == nil {
			entry.Organization = org
		}

		result = append(result, entry)
	}

	return result
}

// GetOrganization returns the organization of the batch.
// nil is returned if it is missing or not an object with a login.
func (e *AuditLogStreamingEvent) GetOrganization() *github.Organization {
	return decodeAccount[github.Organization](e.Organization)
}

// GetSender returns the sender of the batch.
// nil is returned if it is missing or not an object with a login.
func (e *AuditLogStreamingEvent) GetSender() *github.User {
	return decodeAccount[github.User](e.Sender)
}

func decodeAccount[T any, PT interface {
	*T
	GetLogin() string
}](raw json.RawMessage) *T {
	if len(raw) == 0 {
		return nil
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}

	if PT(&result).GetLogin() == "" {
		return nil
	}

	return &result
}

// AuditLogEntry is a single audit log event of an AuditLogStreamingEvent.
// Only the fields required for processing are typed, all other fields are
// kept as raw JSON.
type AuditLogEntry struct {
	Action       string               `json:"action"`
	Actor        *AuditLogActor       `json:"actor"`
	CreatedAt    Timestamp            `json:"created_at"`
	Resource     string               `json:"resource"`
	ResourceType string               `json:"resource_type"`
	Organization *github.Organization `json:"-"`
	Data         json.RawMessage      `json:"data,omitempty"`
}

type AuditLogActor struct {
	Login string `json:"login"`
}

// EventType returns TypeAuditLogStreaming, entries are processed as part of
// the streaming event.
func (*AuditLogEntry) EventType() string { return TypeAuditLogStreaming }

func (e *AuditLogEntry) Validate() error {
	if missing := e.missingFields(); len(missing) > 0 {
		return &MissingFieldsError{EventType: TypeAuditLogStreaming, Fields: missing}
	}

	return nil
}

func (e *AuditLogEntry) missingFields() []string {
	var r required

	r.str("action", e.Action)
	if e.Actor == nil {
		r.present("actor", false)
	} else {
		r.str("actor.login", e.Actor.Login)
	}
	r.present("created_at", !e.CreatedAt.IsZero())
	r.str("resource", e.Resource)
	r.str("resource_type", e.ResourceType)

	return r.missing
}

// Timestamp is a point in time that GitHub sends either as RFC3339 string or
// as milliseconds since the unix epoch.
type Timestamp struct {
	// Raw is the value as it was sent.
	Raw string
	// Time is the parsed value, it is zero if Raw is a string that is not in
	// RFC3339 format.
	Time time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		t.Raw = s
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			t.Time = parsed
		}

		return nil
	}

	var ms float64
	if err := json.Unmarshal(b, &ms); err != nil {
		return fmt.Errorf("timestamp must be a string or number: %w", err)
	}

	if ms == 0 {
		return nil
	}

	t.Raw = string(b)
	t.Time = time.UnixMilli(int64(ms)).UTC()

	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw == "" {
		return []byte("null"), nil
	}

	if !t.Time.IsZero() {
		return json.Marshal(t.Time.Format(time.RFC3339))
	}

	return json.Marshal(t.Raw)
}

// IsZero returns true if no timestamp was sent.
func (t Timestamp) IsZero() bool {
	return t.Raw == ""
}

func (t Timestamp) String() string {
	if !t.Time.IsZero() {
		return t.Time.Format(time.RFC3339)
	}

	return t.Raw
}

var errNotAnObject = errors.New("payload is not a JSON object")

// CheckAuditLogStructure checks the structure of a decoded (map[string]any)
// audit log streaming document.
// It returns an error describing the first structural violation that was
// found. Fields that are not required are ignored.
func CheckAuditLogStructure(doc any) error {
	m, ok := doc.(map[string]any)
	if !ok {
		return errNotAnObject
	}

	action, err := maputils.StrVal(m, "action")
	if err != nil {
		return err
	}

	if action != AuditLogStreamingAction {
		return fmt.Errorf("action is %q, expected %q", action, AuditLogStreamingAction)
	}

	entries, err := maputils.SliceVal(m, "audit_log_events")
	if err != nil {
		return err
	}

	if entries == nil {
		return errors.New("audit_log_events is missing")
	}

	for i, e := range entries {
		if err := checkAuditLogEntryStructure(e); err != nil {
			return fmt.Errorf("audit_log_events[%d]: %w", i, err)
		}
	}

	return nil
}

func checkAuditLogEntryStructure(entry any) error {
	m, ok := entry.(map[string]any)
	if !ok {
		return fmt.Errorf("entry has type %T, expected object", entry)
	}

	if _, err := maputils.NonEmptyStrVal(m, "action"); err != nil {
		return err
	}

	actor, err := maputils.MapVal(m, "actor")
	if err != nil {
		return err
	}

	if actor == nil {
		return errors.New("actor is missing")
	}

	if _, err := maputils.NonEmptyStrVal(actor, "login"); err != nil {
		return fmt.Errorf("actor: %w", err)
	}

	if err := checkTimestamp(m, "created_at"); err != nil {
		return err
	}

	if _, err := maputils.NonEmptyStrVal(m, "resource"); err != nil {
		return err
	}

	if _, err := maputils.NonEmptyStrVal(m, "resource_type"); err != nil {
		return err
	}

	return nil
}

func checkTimestamp(m map[string]any, key string) error {
	switch v := m[key].(type) {
	case string:
		if v != "" {
			return nil
		}
	case float64:
		if v != 0 {
			return nil
		}
	case nil:
	default:
		return fmt.Errorf("value of key %q has type %T, expected string or number", key, v)
	}

	return fmt.Errorf("value of key %q is missing or empty", key)
}
