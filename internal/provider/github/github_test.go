package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/simplesurance/ghreceiver/internal/dispatch"
	"github.com/simplesurance/ghreceiver/internal/logfields"
	"github.com/simplesurance/ghreceiver/internal/payload"
	"github.com/simplesurance/ghreceiver/internal/signature"
)

const testSecret = "It's a Secret to Everybody"

const pingPayload = `{"zen":"Keep it logically awesome.","hook_id":123456,"hook":{"id":123456,"type":"Repository","name":"web","active":true,"events":["push"]}}`

type recordingDispatcher struct {
	ctx       context.Context
	eventType string
	body      []byte
	calls     int
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, eventType string, body []byte) *dispatch.Response {
	d.ctx = ctx
	d.eventType = eventType
	d.body = body
	d.calls++

	return &dispatch.Response{Status: http.StatusOK, Body: map[string]string{"message": "ok"}}
}

func (d *recordingDispatcher) IsSupported(string) bool {
	return true
}

func newRequest(body, eventType, sig string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "GitHub-Hookshot/044aadd")
	req.Header.Set("X-GitHub-Delivery", "72d3162e-cc78-11e3-81ab-4c9367dc0958")

	if eventType != "" {
		req.Header.Set("X-GitHub-Event", eventType)
	}

	if sig != "" {
		req.Header.Set(SignatureHeader, sig)
	}

	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var result map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	return result
}

func TestHTTPHandlerPing(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	p := New(dispatch.New(), WithPayloadSecret(testSecret))

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, newRequest(pingPayload, "ping", signature.Sign([]byte(pingPayload), testSecret)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"message":"Ping received successfully","zen":"Keep it logically awesome.","hook_id":123456}`,
		rec.Body.String(),
	)
}

func TestHTTPHandlerHeadersAreCaseInsensitive(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	d := recordingDispatcher{}
	p := New(&d, WithPayloadSecret(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(pingPayload))
	req.Header.Set("x-github-event", "ping")
	req.Header.Set("x-hub-signature-256", signature.Sign([]byte(pingPayload), testSecret))
	req.Header.Set("x-github-delivery", "abc")

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ping", d.eventType)
	assert.Contains(t, logfields.FromContext(d.ctx), logfields.DeliveryID("abc"))
}

func TestHTTPHandlerForwardsUnmodifiedBody(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	// whitespace and key order must be preserved
	body := "{\n  \"zen\" : \"x\",\n  \"hook_id\":1 }"

	d := recordingDispatcher{}
	p := New(&d, WithPayloadSecret(testSecret))

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, newRequest(body, "ping", signature.Sign([]byte(body), testSecret)))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, d.calls)
	assert.Equal(t, body, string(d.body))
}

func TestHTTPHandlerRejectsRequests(t *testing.T) {
	type testcase struct {
		name            string
		secret          string
		req             func() *http.Request
		expectedStatus  int
		expectedMessage string
	}

	testcases := []testcase{
		{
			name:   "secretNotConfigured",
			secret: "",
			req: func() *http.Request {
				return newRequest(pingPayload, "ping", signature.Sign([]byte(pingPayload), testSecret))
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Webhook secret not configured",
		},
		{
			name:   "secretNotConfiguredAndNoSignature",
			secret: "",
			req: func() *http.Request {
				return newRequest(pingPayload, "ping", "")
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Webhook secret not configured",
		},
		{
			name:   "missingSignature",
			secret: testSecret,
			req: func() *http.Request {
				return newRequest(pingPayload, "ping", "")
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Missing signature header",
		},
		{
			name:   "wrongSecret",
			secret: testSecret,
			req: func() *http.Request {
				return newRequest(pingPayload, "ping", signature.Sign([]byte(pingPayload), "other secret"))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid signature",
		},
		{
			name:   "sha1Prefix",
			secret: testSecret,
			req: func() *http.Request {
				sig := strings.TrimPrefix(signature.Sign([]byte(pingPayload), testSecret), signature.Prefix)
				return newRequest(pingPayload, "ping", "sha1="+sig)
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid signature",
		},
		{
			name:   "signatureOfDifferentBody",
			secret: testSecret,
			req: func() *http.Request {
				return newRequest(pingPayload, "ping", signature.Sign([]byte(pingPayload+" "), testSecret))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid signature",
		},
		{
			name:   "bodyTooLarge",
			secret: testSecret,
			req: func() *http.Request {
				body := `{"zen":"` + strings.Repeat("a", 2048) + `","hook_id":1}`
				return newRequest(body, "ping", signature.Sign([]byte(body), testSecret))
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Request body too large",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

			d := recordingDispatcher{}
			p := New(&d, WithPayloadSecret(tc.secret), WithMaxBodySize(1024))

			rec := httptest.NewRecorder()
			p.HTTPHandler(rec, tc.req())

			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, map[string]any{"message": tc.expectedMessage}, decodeBody(t, rec))
			assert.Zero(t, d.calls, "dispatcher was called")
		})
	}
}

func TestHTTPHandlerBodyTooLargeWithoutContentLength(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	d := recordingDispatcher{}
	p := New(&d, WithPayloadSecret(testSecret), WithMaxBodySize(8))

	body := `{"zen":"abcdefgh"}`
	req := newRequest(body, "ping", signature.Sign([]byte(body), testSecret))
	req.ContentLength = -1

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, d.calls)
}

func TestHTTPHandlerMaxInt64BodySize(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	d := recordingDispatcher{}
	p := New(&d, WithPayloadSecret(testSecret), WithMaxBodySize(math.MaxInt64))

	req := newRequest(pingPayload, "ping", signature.Sign([]byte(pingPayload), testSecret))
	req.ContentLength = -1

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pingPayload, string(d.body))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestHTTPHandlerUnreadableBody(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	d := recordingDispatcher{}
	p := New(&d, WithPayloadSecret(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/webhook", failingReader{})
	req.Header.Set("X-GitHub-Event", "ping")
	req.Header.Set(SignatureHeader, signature.Sign(nil, testSecret))

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, map[string]any{"message": "Internal server error"}, decodeBody(t, rec))
	assert.Zero(t, d.calls)
}

func TestHTTPHandlerUnsupportedEvent(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	p := New(dispatch.New(), WithPayloadSecret(testSecret))

	body := `{"action":"created"}`
	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, newRequest(body, "not_a_real_event", signature.Sign([]byte(body), testSecret)))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var result dispatch.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Unsupported GitHub event: not_a_real_event", result.Message)
	assert.Equal(t, payload.SupportedEvents(), result.SupportedEvents)
}

func TestHTTPHandlerMissingEventType(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	p := New(dispatch.New(), WithPayloadSecret(testSecret))

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, newRequest(pingPayload, "", signature.Sign([]byte(pingPayload), testSecret)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Unsupported GitHub event: undefined", decodeBody(t, rec)["message"])
}

func TestHTTPHandlerEmptyBody(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	d := recordingDispatcher{}
	p := New(&d, WithPayloadSecret(testSecret))

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(nil))
	req.Header.Set("X-GitHub-Event", "ping")
	req.Header.Set(SignatureHeader, signature.Sign(nil, testSecret))

	rec := httptest.NewRecorder()
	p.HTTPHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, d.body)
}

func TestNewEventGeneratesDeliveryID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhook", nil)
	req.Header.Set("X-GitHub-Event", "push")

	ev := newEvent(req)

	assert.True(t, ev.DeliveryIDGenerated)
	_, err := uuid.Parse(ev.DeliveryID)
	assert.NoError(t, err)
	assert.Equal(t, "push", ev.EventType)
	assert.Equal(t, "github", ev.Provider)
}

func TestNewEventUsesDeliveryID(t *testing.T) {
	req := newRequest("", "push", "")

	ev := newEvent(req)

	assert.False(t, ev.DeliveryIDGenerated)
	assert.Equal(t, "72d3162e-cc78-11e3-81ab-4c9367dc0958", ev.DeliveryID)
	assert.Equal(t, "GitHub-Hookshot/044aadd", ev.UserAgent)
}

func TestSecretConfigured(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zaptest.NewLogger(t)))

	assert.False(t, New(dispatch.New()).SecretConfigured())
	assert.False(t, New(dispatch.New(), WithPayloadSecret("")).SecretConfigured())
	assert.True(t, New(dispatch.New(), WithPayloadSecret("s")).SecretConfigured())
}
