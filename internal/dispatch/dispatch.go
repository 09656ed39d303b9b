// Package dispatch routes webhook payloads to their variant by the event
// type header, validates them and creates the acknowledgement response.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/simplesurance/ghreceiver/internal/hookerr"
	"github.com/simplesurance/ghreceiver/internal/logfields"
	"github.com/simplesurance/ghreceiver/internal/metrics"
	"github.com/simplesurance/ghreceiver/internal/payload"
)

const loggerName = "dispatcher"

// UndefinedEventType is the event type that is reported when a request did
// not specify one.
const UndefinedEventType = "undefined"

// Response is the result of dispatching a webhook event.
type Response struct {
	Status int
	// Body is marshalled to JSON and sent to the client.
	Body any
}

// ErrorBody is the body of all non-success responses.
type ErrorBody struct {
	Message         string   `json:"message"`
	SupportedEvents []string `json:"supported_events,omitempty"`
}

// ErrorResponse converts err to a Response.
// If err is not an *hookerr.Error it is treated as internal error.
func ErrorResponse(err error) *Response {
	hErr := hookerr.As(err)

	body := ErrorBody{Message: hErr.Message}
	if hErr.Kind == hookerr.KindUnsupportedEvent {
		body.SupportedEvents = payload.SupportedEvents()
	}

	return &Response{
		Status: hErr.HTTPStatus(),
		Body:   &body,
	}
}

type route struct {
	variant *payload.Variant
	ack     ackFunc
}

// Dispatcher selects the payload variant of a webhook event via the event
// type, decodes and validates the payload, passes it to a Sink and returns
// the response for the client.
type Dispatcher struct {
	logger *zap.Logger
	sink   Sink
	routes map[string]*route
}

type Option func(*Dispatcher)

// WithSink sets the Sink that processes validated payloads.
// The default is a NopSink.
func WithSink(sink Sink) Option {
	return func(d *Dispatcher) {
		d.sink = sink
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger.Named(loggerName)
	}
}

func New(opts ...Option) *Dispatcher {
	d := Dispatcher{
		routes: newRoutes(),
	}

	for _, o := range opts {
		o(&d)
	}

	if d.logger == nil {
		d.logger = zap.L().Named(loggerName)
	}

	if d.sink == nil {
		d.sink = NopSink{}
	}

	return &d
}

func newRoutes() map[string]*route {
	events := payload.SupportedEvents()
	routes := make(map[string]*route, len(events))

	for _, evType := range events {
		ack, exist := acks[evType]
		if !exist {
			panic(fmt.Sprintf("no acknowledgement defined for event type %q", evType))
		}

		routes[evType] = &route{
			variant: payload.Lookup(evType),
			ack:     ack,
		}
	}

	return routes
}

// IsSupported returns true if a route for eventType exists.
func (d *Dispatcher) IsSupported(eventType string) bool {
	_, exist := d.routes[eventType]
	return exist
}

// Dispatch processes the raw webhook payload body of the given event type.
// An empty eventType is reported as UndefinedEventType.
// Dispatch never panics, all failures are converted to an error Response.
func (d *Dispatcher) Dispatch(ctx context.Context, eventType string, body []byte) (resp *Response) {
	if eventType == "" {
		eventType = UndefinedEventType
	}

	logger := d.logger.With(logfields.FromContext(ctx)...).With(logfields.EventType(eventType))

	defer func() {
		if r := recover(); r != nil {
			logger.Error(
				"processing webhook event panicked",
				logfields.Event("dispatch_panicked"),
				zap.Any("panic", r),
				zap.Stack("stacktrace"),
			)

			resp = ErrorResponse(hookerr.NewInternal(fmt.Errorf("panic: %v", r)))
		}
	}()

	ackBody, err := d.dispatch(ctx, logger, eventType, body)
	if err != nil {
		hErr := hookerr.As(err)

		if hErr.Kind == hookerr.KindInternal {
			logger.Error(
				"processing webhook event failed",
				logfields.Event("dispatch_failed"),
				zap.Stringer("error_kind", hErr.Kind),
				zap.Error(hErr.Err),
			)
		} else {
			logger.Info(
				"rejected webhook event",
				logfields.Event("dispatch_rejected"),
				zap.Stringer("error_kind", hErr.Kind),
				zap.String("reason", hErr.Message),
				zap.Error(hErr.Err),
			)
		}

		return ErrorResponse(hErr)
	}

	logger.Debug("webhook event processed", logfields.Event("dispatch_succeeded"))

	return &Response{
		Status: http.StatusOK,
		Body:   ackBody,
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, logger *zap.Logger, eventType string, body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, hookerr.NewInternal(fmt.Errorf("parsing payload as json failed: %w", err))
	}

	r, exist := d.routes[eventType]
	if !exist {
		return nil, hookerr.New(
			hookerr.KindUnsupportedEvent,
			"Unsupported GitHub event: "+eventType,
			nil,
		)
	}

	invalidPayloadMsg := fmt.Sprintf("Invalid %s payload", r.variant.DisplayName)

	if eventType == payload.TypeAuditLogStreaming {
		if err := payload.CheckAuditLogStructure(doc); err != nil {
			return nil, hookerr.New(hookerr.KindMalformedInput, invalidPayloadMsg, err)
		}
	}

	p := r.variant.New()
	if err := json.Unmarshal(body, p); err != nil {
		return nil, hookerr.New(
			hookerr.KindMalformedInput,
			invalidPayloadMsg,
			fmt.Errorf("decoding payload failed: %w", err),
		)
	}

	if err := p.Validate(); err != nil {
		return nil, hookerr.New(hookerr.KindMalformedInput, invalidPayloadMsg, err)
	}

	if err := d.process(ctx, logger, p); err != nil {
		return nil, hookerr.NewInternal(err)
	}

	return r.ack(p), nil
}

func (d *Dispatcher) process(ctx context.Context, logger *zap.Logger, p payload.Payload) error {
	auditEv, ok := p.(*payload.AuditLogStreamingEvent)
	if !ok {
		if err := d.sink.Process(ctx, p); err != nil {
			return fmt.Errorf("processing %s event failed: %w", p.EventType(), err)
		}

		return nil
	}

	entries := auditEv.EntryPayloads()
	actionCounts := make(map[string]int, len(entries))

	for i, entry := range entries {
		if err := d.sink.Process(ctx, entry); err != nil {
			metrics.AddAuditLogEntriesProcessed(i)
			return fmt.Errorf("processing audit log entry %d (%s) failed: %w", i, entry.Action, err)
		}

		actionCounts[entry.Action]++
	}

	metrics.AddAuditLogEntriesProcessed(len(entries))

	logger.Info(
		"audit log entries processed",
		logfields.Event("audit_log_entries_processed"),
		zap.Int("audit_log.entry_count", len(entries)),
		zap.Any("audit_log.actions", actionCounts),
	)

	return nil
}
