package handler

import (
	"time"

	"github.com/99minutos/parcel-service/internal/core/domain"
)

// ErrorResponse is the error envelope the API's HTTP error handler renders on
// every 4xx/5xx response.
type ErrorResponse struct {
	Error      string                  `json:"error"`
	Violations []domain.FieldViolation `json:"violations,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---
// Only presence is checked here; length limits, email syntax and enum
// membership are enforced by the parcel service.

type contactRequest struct {
	Name    string `json:"name"    validate:"required"`
	Email   string `json:"email"   validate:"required"`
	Phone   string `json:"phone"   validate:"required"`
	Address string `json:"address" validate:"required"`
}

type dimensionsRequest struct {
	LengthCm float64 `json:"length_cm" validate:"required"`
	WidthCm  float64 `json:"width_cm"  validate:"required"`
	HeightCm float64 `json:"height_cm" validate:"required"`
}

type parcelRequest struct {
	Sender       contactRequest    `json:"sender"        validate:"required"`
	Recipient    contactRequest    `json:"recipient"     validate:"required"`
	WeightKg     float64           `json:"weight_kg"     validate:"required"`
	Dimensions   dimensionsRequest `json:"dimensions"    validate:"required"`
	Description  string            `json:"description"`
	ParcelType   string            `json:"parcel_type"   validate:"required"`
	DeliveryType string            `json:"delivery_type" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// --- Response types ---
// Kept apart from domain.Parcel so the JSON contract does not follow
// internal changes.

type contactResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type dimensionsResponse struct {
	LengthCm float64 `json:"length_cm"`
	WidthCm  float64 `json:"width_cm"`
	HeightCm float64 `json:"height_cm"`
}

type parcelLinks struct {
	Self  string `json:"self"`
	Track string `json:"track"`
}

type parcelResponse struct {
	ID                    string             `json:"id"`
	TrackingNumber        string             `json:"tracking_number"`
	Sender                contactResponse    `json:"sender"`
	Recipient             contactResponse    `json:"recipient"`
	WeightKg              float64            `json:"weight_kg"`
	Dimensions            dimensionsResponse `json:"dimensions"`
	Description           string             `json:"description"`
	ParcelType            string             `json:"parcel_type"`
	DeliveryType          string             `json:"delivery_type"`
	Status                string             `json:"status"`
	ShippingCost          float64            `json:"shipping_cost"`
	EstimatedDeliveryDate time.Time          `json:"estimated_delivery_date"`
	ActualDeliveryDate    *time.Time         `json:"actual_delivery_date"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
	Links                 parcelLinks        `json:"_links"`
}

type welcomeResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
