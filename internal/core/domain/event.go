package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParcelEventType names a lifecycle change published to downstream consumers.
type ParcelEventType string

const (
	EventParcelCreated       ParcelEventType = "parcel.created"
	EventParcelUpdated       ParcelEventType = "parcel.updated"
	EventParcelStatusChanged ParcelEventType = "parcel.status_changed"
	EventParcelDeleted       ParcelEventType = "parcel.deleted"
)

// ParcelEvent records a persisted lifecycle change.
type ParcelEvent struct {
	ID             string          `json:"id"`
	Type           ParcelEventType `json:"type"`
	ParcelID       string          `json:"parcel_id"`
	TrackingNumber string          `json:"tracking_number"`
	Status         ParcelStatus    `json:"status"`
	PreviousStatus ParcelStatus    `json:"previous_status,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// NewParcelEvent snapshots p after a change of the given type.
func NewParcelEvent(t ParcelEventType, p *Parcel, previous ParcelStatus, at time.Time) ParcelEvent {
	return ParcelEvent{
		ID:             uuid.NewString(),
		Type:           t,
		ParcelID:       p.ID,
		TrackingNumber: p.TrackingNumber,
		Status:         p.Status,
		PreviousStatus: previous,
		OccurredAt:     at,
	}
}
