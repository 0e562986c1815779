package ports

import (
	"context"

	"github.com/99minutos/parcel-service/internal/core/domain"
)

// EventQueue accepts lifecycle events for asynchronous delivery. Enqueue must
// not block the caller.
type EventQueue interface {
	Enqueue(event domain.ParcelEvent)
}

// EventPublisher delivers a single lifecycle event to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ParcelEvent) error
}
