package handler

import (
	"strings"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
)

const parcelsBasePath = "/v1/parcels"

// toBookingInput maps the transport request into the service input.
// Enum values are upper-cased so "express" and "EXPRESS" are equivalent.
func toBookingInput(req parcelRequest) ports.BookingInput {
	return ports.BookingInput{
		Sender:    toContactInput(req.Sender),
		Recipient: toContactInput(req.Recipient),
		WeightKg:  req.WeightKg,
		Dimensions: ports.DimensionsInput{
			LengthCm: req.Dimensions.LengthCm,
			WidthCm:  req.Dimensions.WidthCm,
			HeightCm: req.Dimensions.HeightCm,
		},
		Description:  req.Description,
		ParcelType:   domain.ParcelType(strings.ToUpper(strings.TrimSpace(req.ParcelType))),
		DeliveryType: domain.DeliveryType(strings.ToUpper(strings.TrimSpace(req.DeliveryType))),
	}
}

func toContactInput(c contactRequest) ports.ContactInput {
	return ports.ContactInput{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

func toContactResponse(c domain.Contact) contactResponse {
	return contactResponse{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}

func toParcelResponse(p *domain.Parcel) parcelResponse {
	return parcelResponse{
		ID:             p.ID,
		TrackingNumber: p.TrackingNumber,
		Sender:         toContactResponse(p.Sender),
		Recipient:      toContactResponse(p.Recipient),
		WeightKg:       p.WeightKg,
		Dimensions: dimensionsResponse{
			LengthCm: p.Dimensions.LengthCm,
			WidthCm:  p.Dimensions.WidthCm,
			HeightCm: p.Dimensions.HeightCm,
		},
		Description:           p.Description,
		ParcelType:            string(p.ParcelType),
		DeliveryType:          string(p.DeliveryType),
		Status:                string(p.Status),
		ShippingCost:          p.ShippingCost,
		EstimatedDeliveryDate: p.EstimatedDeliveryDate,
		ActualDeliveryDate:    p.ActualDeliveryDate,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
		Links: parcelLinks{
			Self:  parcelsBasePath + "/" + p.ID,
			Track: parcelsBasePath + "/track/" + p.TrackingNumber,
		},
	}
}

func toParcelResponses(parcels []*domain.Parcel) []parcelResponse {
	out := make([]parcelResponse, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, toParcelResponse(p))
	}
	return out
}
