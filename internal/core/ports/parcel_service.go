package ports

import (
	"context"

	"github.com/99minutos/parcel-service/internal/core/domain"
)

// ContactInput holds sender or recipient details.
type ContactInput struct {
	Name    string `json:"name"    validate:"notblank,max=255"`
	Email   string `json:"email"   validate:"notblank,email"`
	Phone   string `json:"phone"   validate:"notblank,max=50"`
	Address string `json:"address" validate:"notblank,max=500"`
}

// DimensionsInput holds parcel size in centimetres.
type DimensionsInput struct {
	LengthCm float64 `json:"length_cm" validate:"gt=0"`
	WidthCm  float64 `json:"width_cm"  validate:"gt=0"`
	HeightCm float64 `json:"height_cm" validate:"gt=0"`
}

// BookingInput carries the caller-supplied attributes of a parcel, used by
// both Create and Update. Derived fields are never accepted from callers.
type BookingInput struct {
	Sender       ContactInput        `json:"sender"`
	Recipient    ContactInput        `json:"recipient"`
	WeightKg     float64             `json:"weight_kg"     validate:"gt=0"`
	Dimensions   DimensionsInput     `json:"dimensions"`
	Description  string              `json:"description"   validate:"max=1000"`
	ParcelType   domain.ParcelType   `json:"parcel_type"   validate:"required,oneof=DOCUMENT PACKAGE FRAGILE PERISHABLE ELECTRONICS"`
	DeliveryType domain.DeliveryType `json:"delivery_type" validate:"required,oneof=STANDARD EXPRESS SAME_DAY OVERNIGHT"`
}

// ParcelService defines the parcel lifecycle use cases.
type ParcelService interface {
	Create(ctx context.Context, in BookingInput) (*domain.Parcel, error)
	GetByID(ctx context.Context, id string) (*domain.Parcel, error)
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Parcel, error)
	ListAll(ctx context.Context) ([]*domain.Parcel, error)
	ListBySenderEmail(ctx context.Context, email string) ([]*domain.Parcel, error)
	ListByRecipientEmail(ctx context.Context, email string) ([]*domain.Parcel, error)
	ListByUserEmail(ctx context.Context, email string) ([]*domain.Parcel, error)
	ListByStatus(ctx context.Context, status domain.ParcelStatus) ([]*domain.Parcel, error)
	UpdateStatus(ctx context.Context, id string, status domain.ParcelStatus) (*domain.Parcel, error)
	Update(ctx context.Context, id string, in BookingInput) (*domain.Parcel, error)
	Delete(ctx context.Context, id string) error
}
