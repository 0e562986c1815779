package domain

import "time"

const (
	baseCost    = 5.0
	costPerKilo = 2.0
)

// Multiplier returns the price multiplier of the delivery tier.
// Unknown tiers are priced as STANDARD.
func (d DeliveryType) Multiplier() float64 {
	switch d {
	case DeliveryExpress:
		return 1.5
	case DeliverySameDay:
		return 2.5
	case DeliveryOvernight:
		return 2.0
	default:
		return 1.0
	}
}

// Transit returns how long after booking the parcel is expected to arrive.
func (d DeliveryType) Transit() time.Duration {
	switch d {
	case DeliveryExpress:
		return 2 * 24 * time.Hour
	case DeliverySameDay:
		return 8 * time.Hour
	case DeliveryOvernight:
		return 24 * time.Hour
	default: // STANDARD
		return 5 * 24 * time.Hour
	}
}

// ShippingCost prices a parcel from its weight and delivery tier.
// No rounding is applied; presentation owns currency precision.
func ShippingCost(weightKg float64, d DeliveryType) float64 {
	return (baseCost + weightKg*costPerKilo) * d.Multiplier()
}

// EstimatedDelivery returns the ETA for a parcel booked at from.
func EstimatedDelivery(d DeliveryType, from time.Time) time.Time {
	return from.Add(d.Transit())
}
