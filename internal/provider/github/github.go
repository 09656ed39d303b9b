package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/google/go-github/v43/github"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simplesurance/ghreceiver/internal/dispatch"
	"github.com/simplesurance/ghreceiver/internal/hookerr"
	"github.com/simplesurance/ghreceiver/internal/logfields"
	"github.com/simplesurance/ghreceiver/internal/metrics"
	"github.com/simplesurance/ghreceiver/internal/provider"
	"github.com/simplesurance/ghreceiver/internal/signature"
)

const loggerName = "github-event-provider"

const providerName = "github"

// SignatureHeader is the header containing the HMAC-SHA256 signature of the
// request body.
const SignatureHeader = "X-Hub-Signature-256"

// DefaultMaxBodySize is the size limit that GitHub applies to webhook
// payloads.
const DefaultMaxBodySize = 25 * 1024 * 1024

const (
	msgSecretNotConfigured = "Webhook secret not configured"
	msgMissingSignature    = "Missing signature header"
	msgInvalidSignature    = "Invalid signature"
	msgBodyTooLarge        = "Request body too large"
)

var errBodyTooLarge = errors.New("request body exceeds size limit")

// Dispatcher processes verified webhook payloads.
type Dispatcher interface {
	Dispatch(ctx context.Context, eventType string, body []byte) *dispatch.Response
	IsSupported(eventType string) bool
}

// Provider receives github-webhook http-requests at a http-server handler,
// verifies their signature and forwards them to a Dispatcher.
type Provider struct {
	logging       *zap.Logger
	webhookSecret []byte
	maxBodySize   int64
	dispatcher    Dispatcher
}

type option func(*Provider)

// WithPayloadSecret sets the secret that is used to verify the signature of
// requests.
// If no secret is set, all requests are rejected with a configuration
// error.
func WithPayloadSecret(secret string) option {
	return func(p *Provider) {
		p.webhookSecret = []byte(secret)
	}
}

// WithMaxBodySize sets the maximum accepted size of request bodies in bytes.
// The default is DefaultMaxBodySize.
func WithMaxBodySize(bytes int64) option {
	return func(p *Provider) {
		p.maxBodySize = bytes
	}
}

func New(dispatcher Dispatcher, opts ...option) *Provider {
	p := Provider{
		dispatcher:  dispatcher,
		maxBodySize: DefaultMaxBodySize,
	}

	for _, o := range opts {
		o(&p)
	}

	if p.logging == nil {
		p.logging = zap.L().Named(loggerName)
	}

	return &p
}

// SecretConfigured returns true if a webhook secret is set.
func (p *Provider) SecretConfigured() bool {
	return len(p.webhookSecret) > 0
}

func newEvent(req *http.Request) *provider.Event {
	ev := provider.Event{
		Provider:   providerName,
		DeliveryID: github.DeliveryID(req),
		EventType:  github.WebHookType(req),
		UserAgent:  req.UserAgent(),
	}

	if ev.DeliveryID == "" {
		ev.DeliveryID = uuid.NewString()
		ev.DeliveryIDGenerated = true
	}

	return &ev
}

func (p *Provider) HTTPHandler(resp http.ResponseWriter, req *http.Request) {
	ev := newEvent(req)
	logger := p.logging.With(ev.LogFields()...).With(logfields.EventType(ev.EventType))

	logger.Debug("received a http request", logfields.Event("github_event_received"))

	result := p.verify(req, ev)
	if !result.IsValid() {
		hErr := result.AsError()

		logger.Info(
			"received invalid http request, validation failed",
			logfields.Event("github_http_request_validation_failed"),
			zap.Stringer("validation_result", result.Outcome),
			zap.String("reason", result.Message),
			zap.Error(hErr.Err),
		)

		p.respond(logger, resp, ev, dispatch.ErrorResponse(hErr))
		return
	}

	ctx := logfields.NewContext(req.Context(), ev.LogFields()...)
	p.respond(logger, resp, ev, p.dispatcher.Dispatch(ctx, ev.EventType, ev.Body))
}

// verify checks the configuration, reads the request body into ev.Body and
// verifies its signature.
func (p *Provider) verify(req *http.Request, ev *provider.Event) *provider.ValidationResult {
	if !p.SecretConfigured() {
		return provider.Invalid(
			provider.OutcomeConfigurationError,
			msgSecretNotConfigured,
			errors.New("github webhook secret is empty"),
		)
	}

	sig := req.Header.Get(SignatureHeader)
	if sig == "" {
		return provider.Invalid(
			provider.OutcomeInvalidSignature,
			msgMissingSignature,
			fmt.Errorf("%s header is missing or empty", SignatureHeader),
		)
	}

	body, err := p.readBody(req)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			return provider.Invalid(provider.OutcomeMalformedPayload, msgBodyTooLarge, err)
		}

		return provider.Invalid(provider.OutcomeUndefined, hookerr.PublicMessageInternal, err)
	}

	ev.Body = body
	metrics.ObserveBodySize(len(body))

	if !signature.Verify(body, sig, string(p.webhookSecret)) {
		return provider.Invalid(
			provider.OutcomeInvalidSignature,
			msgInvalidSignature,
			errors.New("signature does not match the request body"),
		)
	}

	return provider.Valid()
}

func (p *Provider) readBody(req *http.Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}

	defer req.Body.Close()

	if req.ContentLength > p.maxBodySize {
		return nil, fmt.Errorf("%w: content-length: %d, limit: %d", errBodyTooLarge, req.ContentLength, p.maxBodySize)
	}

	// one more byte than allowed is read to detect oversized bodies
	limit := p.maxBodySize
	if limit < math.MaxInt64 {
		limit++
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("reading request body failed: %w", err)
	}

	if int64(len(body)) > p.maxBodySize {
		return nil, fmt.Errorf("%w: limit: %d", errBodyTooLarge, p.maxBodySize)
	}

	return body, nil
}

func (p *Provider) respond(logger *zap.Logger, resp http.ResponseWriter, ev *provider.Event, result *dispatch.Response) {
	metrics.RecordRequest(metrics.EventLabel(ev.EventType, p.dispatcher.IsSupported), result.Status)

	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(result.Status)

	if err := json.NewEncoder(resp).Encode(result.Body); err != nil {
		logger.Warn(
			"writing http response failed",
			logfields.Event("github_http_response_write_failed"),
			logfields.HTTPStatus(result.Status),
			zap.Error(err),
		)
		return
	}

	logger.Info(
		"webhook request processed",
		logfields.Event("github_http_request_processed"),
		logfields.HTTPStatus(result.Status),
	)
}
