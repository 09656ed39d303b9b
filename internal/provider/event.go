package provider

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/simplesurance/ghreceiver/internal/logfields"
)

// Event contains the metadata of a received webhook request.
type Event struct {
	Provider string

	// DeliveryID is the unique ID of the delivery, if the request did
	// not contain one, a random ID is generated and
	// DeliveryIDGenerated is true.
	DeliveryID          string
	DeliveryIDGenerated bool
	// EventType is the value of the event type header, it is empty if
	// the request did not contain it.
	EventType string
	UserAgent string
	// Body is the unmodified request body.
	Body []byte
}

func (e *Event) String() string {
	return fmt.Sprintf("%s (deliveryID: %s)", e.EventType, e.DeliveryID)
}

func (e *Event) LogFields() []zap.Field {
	fields := make([]zap.Field, 0, 5) // cap == max. size of fields we append

	if e.Provider != "" {
		fields = append(fields, logfields.EventProvider(e.Provider))
	}

	fields = append(fields, logfields.DeliveryID(e.DeliveryID))
	if e.DeliveryIDGenerated {
		fields = append(fields, zap.Bool("github.delivery_id_generated", true))
	}

	// EventType is added by the dispatcher

	if e.UserAgent != "" {
		fields = append(fields, logfields.UserAgent(e.UserAgent))
	}

	return fields
}
