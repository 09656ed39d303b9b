package processor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/simplesurance/ghreceiver/internal/logfields"
	"github.com/simplesurance/ghreceiver/internal/payload"
)

func newObservedLogger(t *testing.T) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core)))

	return New(), logs
}

func mustDecode(t *testing.T, eventType, js string) payload.Payload {
	t.Helper()

	p := payload.Lookup(eventType).New()
	require.NoError(t, json.Unmarshal([]byte(js), p))
	require.NoError(t, p.Validate())

	return p
}

func TestProcessPush(t *testing.T) {
	l, logs := newObservedLogger(t)

	ev := mustDecode(t, payload.TypePush, `{
		"ref": "refs/heads/main",
		"after": "6dcb09b5b57875f334f61aebed695e2e4193db5e",
		"commits": [{"id": "1"}, {"id": "2"}],
		"repository": {"full_name": "my-org/test-repo"},
		"sender": {"login": "octocat"}
	}`)

	ctx := logfields.NewContext(context.Background(), logfields.DeliveryID("abc"))
	require.NoError(t, l.Process(ctx, ev))

	entries := logs.All()
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, zapcore.InfoLevel, e.Level)
	assert.Equal(t, "2 commit(s) pushed", e.Message)

	fields := e.ContextMap()
	assert.Equal(t, "github_push_event_processed", fields["event"])
	assert.Equal(t, "abc", fields["github.delivery_id"])
	assert.Equal(t, "my-org/test-repo", fields["git.repository"])
	assert.Equal(t, "refs/heads/main", fields["git.ref"])
	assert.Equal(t, "octocat", fields["github.sender"])
	assert.EqualValues(t, 2, fields["git.commit_count"])
}

func TestProcessFailedWorkflowRunIsWarning(t *testing.T) {
	l, logs := newObservedLogger(t)

	ev := mustDecode(t, payload.TypeWorkflowRun, `{
		"action": "completed",
		"workflow_run": {"name": "CI", "status": "completed", "conclusion": "failure", "head_sha": "6dcb09b5b57875f334f61aebed695e2e4193db5e"}
	}`)

	require.NoError(t, l.Process(context.Background(), ev))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "failure", entries[0].ContextMap()["github.workflow_conclusion"])
	assert.Equal(t, "6dcb09b", entries[0].ContextMap()["git.commit"])
}

func TestProcessPendingCheckRunConclusionIsNA(t *testing.T) {
	l, logs := newObservedLogger(t)

	ev := mustDecode(t, payload.TypeCheckRun, `{
		"action": "created",
		"check_run": {"name": "lint", "status": "queued", "conclusion": null}
	}`)

	require.NoError(t, l.Process(context.Background(), ev))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "N/A", entries[0].ContextMap()["github.check_conclusion"])
}

func TestProcessLogsSenderAndOrganization(t *testing.T) {
	tests := []struct {
		name      string
		eventType string
		js        string
	}{
		{
			name:      "org",
			eventType: payload.TypeStar,
			js: `{
				"action": "created",
				"repository": {"full_name": "my-org/test-repo", "visibility": "private"},
				"organization": {"login": "my-org"},
				"sender": {"login": "octocat"}
			}`,
		},
		{
			name:      "organization",
			eventType: payload.TypePullRequest,
			js: `{
				"action": "opened",
				"number": 1,
				"pull_request": {"title": "fix"},
				"repository": {"full_name": "my-org/test-repo", "visibility": "private"},
				"organization": {"login": "my-org"},
				"sender": {"login": "octocat"}
			}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, logs := newObservedLogger(t)

			require.NoError(t, l.Process(context.Background(), mustDecode(t, tc.eventType, tc.js)))

			entries := logs.All()
			require.Len(t, entries, 1)

			fields := entries[0].ContextMap()
			assert.Equal(t, "my-org", fields["github.organization"])
			assert.Equal(t, "octocat", fields["github.sender"])
			assert.Equal(t, "my-org/test-repo", fields["git.repository"])
			assert.Equal(t, "private", fields["github.repository_visibility"])
		})
	}
}

func TestProcessDeploymentStatusFallsBackToDeploymentEnvironment(t *testing.T) {
	l, logs := newObservedLogger(t)

	ev := mustDecode(t, payload.TypeDeploymentStatus, `{
		"action": "created",
		"deployment": {"id": 7, "environment": "production"},
		"deployment_status": {"state": "failure"}
	}`)

	require.NoError(t, l.Process(context.Background(), ev))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "production", entries[0].ContextMap()["github.environment"])
}

func TestProcessAuditLogEntry(t *testing.T) {
	l, logs := newObservedLogger(t)

	var batch payload.AuditLogStreamingEvent
	require.NoError(t, json.Unmarshal([]byte(`{
		"action": "audit_log_streaming",
		"audit_log_events": [
			{"action":"org.add_member","actor":{"login":"octocat"},"created_at":"2023-01-01T00:00:00Z","resource":"my-org","resource_type":"organization","data":{"role":"admin"}}
		],
		"organization": {"login": "my-org"}
	}`), &batch))

	entries := batch.EntryPayloads()
	require.Len(t, entries, 1)
	require.NoError(t, l.Process(context.Background(), entries[0]))

	logEntries := logs.FilterField(logfields.Event("github_audit_log_entry_processed")).All()
	require.Len(t, logEntries, 1)

	fields := logEntries[0].ContextMap()
	assert.Equal(t, "octocat", fields["audit_log.actor"])
	assert.Equal(t, "org.add_member", fields["github.action"])
	assert.Equal(t, "2023-01-01T00:00:00Z", fields["audit_log.created_at"])
	assert.Equal(t, "my-org", fields["github.organization"])
	assert.Equal(t, `{"role":"admin"}`, fields["audit_log.data"])
}

func TestProcessUnsupportedPayload(t *testing.T) {
	l, _ := newObservedLogger(t)

	err := l.Process(context.Background(), &payload.AuditLogStreamingEvent{})
	assert.Error(t, err)
}
