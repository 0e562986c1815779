package ports

import (
	"context"

	"github.com/99minutos/parcel-service/internal/core/domain"
)

// ParcelField names a non-unique attribute that parcels can be listed by.
type ParcelField string

const (
	FieldSenderEmail    ParcelField = "sender_email"
	FieldRecipientEmail ParcelField = "recipient_email"
	FieldStatus         ParcelField = "status"
)

// ParcelRepository defines persistence operations for parcels.
//
// Lookups return domain.ErrParcelNotFound when nothing matches, a
// tracking-number uniqueness violation surfaces as domain.ErrDuplicateParcel,
// and driver failures are wrapped in *domain.StoreError. Lists are ordered
// by creation time, oldest first.
type ParcelRepository interface {
	// Save inserts p when p.ID is empty (assigning a new ID) and replaces the
	// stored record otherwise.
	Save(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error)
	FindByID(ctx context.Context, id string) (*domain.Parcel, error)
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Parcel, error)
	FindAllByField(ctx context.Context, field ParcelField, value string) ([]*domain.Parcel, error)
	// FindBySenderOrRecipient matches either side in a single query, so a
	// parcel sent to oneself appears once.
	FindBySenderOrRecipient(ctx context.Context, email string) ([]*domain.Parcel, error)
	FindAll(ctx context.Context) ([]*domain.Parcel, error)
	DeleteByID(ctx context.Context, id string) error
}
