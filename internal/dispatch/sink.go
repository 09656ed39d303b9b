package dispatch

import (
	"context"

	"github.com/simplesurance/ghreceiver/internal/payload"
)

//go:generate mockgen -destination=mocks/sink.go -package=mocks github.com/simplesurance/ghreceiver/internal/dispatch Sink

// Sink processes validated webhook payloads.
// For audit log streaming events Process is called once per
// *payload.AuditLogEntry, the batch itself is not passed to the Sink.
type Sink interface {
	Process(ctx context.Context, ev payload.Payload) error
}

// NopSink is a Sink that does nothing.
type NopSink struct{}

func (NopSink) Process(context.Context, payload.Payload) error {
	return nil
}
