package broker

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/99minutos/parcel-service/internal/core/domain"
)

// LogPublisher writes events to the structured log. It is used when no
// broker is configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.ParcelEvent) error {
	p.log.Info().
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Str("parcel_id", event.ParcelID).
		Str("tracking_number", event.TrackingNumber).
		Str("status", string(event.Status)).
		Str("previous_status", string(event.PreviousStatus)).
		Time("occurred_at", event.OccurredAt).
		Msg("parcel event")
	return nil
}
