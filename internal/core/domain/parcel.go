package domain

import (
	"strings"
	"time"
)

// ParcelStatus represents the lifecycle state of a parcel.
type ParcelStatus string

const (
	StatusPending        ParcelStatus = "PENDING"
	StatusConfirmed      ParcelStatus = "CONFIRMED"
	StatusPickedUp       ParcelStatus = "PICKED_UP"
	StatusInTransit      ParcelStatus = "IN_TRANSIT"
	StatusOutForDelivery ParcelStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ParcelStatus = "DELIVERED"
	StatusCancelled      ParcelStatus = "CANCELLED"
	StatusReturned       ParcelStatus = "RETURNED"
)

var statuses = []ParcelStatus{
	StatusPending,
	StatusConfirmed,
	StatusPickedUp,
	StatusInTransit,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
	StatusReturned,
}

// Valid reports whether s is one of the known statuses.
func (s ParcelStatus) Valid() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStatus normalises raw input ("in_transit", " Delivered ") into a ParcelStatus.
func ParseStatus(raw string) (ParcelStatus, error) {
	s := ParcelStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", InvalidStatusError()
	}
	return s, nil
}

// InvalidStatusError reports a status outside the known set.
func InvalidStatusError() *ValidationError {
	return NewValidationError(FieldViolation{Field: "status", Message: "status must be one of: " + joinStatuses()})
}

func joinStatuses() string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return strings.Join(names, " ")
}

// ParcelType describes what is being shipped. It does not affect pricing.
type ParcelType string

const (
	ParcelTypeDocument    ParcelType = "DOCUMENT"
	ParcelTypePackage     ParcelType = "PACKAGE"
	ParcelTypeFragile     ParcelType = "FRAGILE"
	ParcelTypePerishable  ParcelType = "PERISHABLE"
	ParcelTypeElectronics ParcelType = "ELECTRONICS"
)

// DeliveryType is the service tier chosen by the sender.
type DeliveryType string

const (
	DeliveryStandard  DeliveryType = "STANDARD"
	DeliveryExpress   DeliveryType = "EXPRESS"
	DeliverySameDay   DeliveryType = "SAME_DAY"
	DeliveryOvernight DeliveryType = "OVERNIGHT"
)

// Contact holds the identity and address of a sender or recipient.
type Contact struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
}

// Dimensions represents the physical size of a parcel.
type Dimensions struct {
	LengthCm float64 `json:"length_cm" bson:"length_cm"`
	WidthCm  float64 `json:"width_cm" bson:"width_cm"`
	HeightCm float64 `json:"height_cm" bson:"height_cm"`
}

// Parcel is the core aggregate root.
type Parcel struct {
	ID                    string       `json:"id"`
	TrackingNumber        string       `json:"tracking_number"`
	Sender                Contact      `json:"sender"`
	Recipient             Contact      `json:"recipient"`
	WeightKg              float64      `json:"weight_kg"`
	Dimensions            Dimensions   `json:"dimensions"`
	Description           string       `json:"description,omitempty"`
	ParcelType            ParcelType   `json:"parcel_type"`
	DeliveryType          DeliveryType `json:"delivery_type"`
	Status                ParcelStatus `json:"status"`
	ShippingCost          float64      `json:"shipping_cost"`
	EstimatedDeliveryDate time.Time    `json:"estimated_delivery_date"`
	ActualDeliveryDate    *time.Time   `json:"actual_delivery_date"`
	CreatedAt             time.Time    `json:"created_at"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// Reprice recomputes the derived cost and ETA from the parcel's current
// weight and delivery type, using now as the ETA base.
func (p *Parcel) Reprice(now time.Time) {
	p.ShippingCost = ShippingCost(p.WeightKg, p.DeliveryType)
	p.EstimatedDeliveryDate = EstimatedDelivery(p.DeliveryType, now)
}

// SetStatus overwrites the status unconditionally. Any status may follow any
// other. Every move to DELIVERED re-stamps the actual delivery date.
func (p *Parcel) SetStatus(status ParcelStatus, at time.Time) {
	p.Status = status
	if status == StatusDelivered {
		delivered := at
		p.ActualDeliveryDate = &delivered
	}
	p.UpdatedAt = at
}

// Clone returns a deep copy, so stores can hand out values callers may mutate.
func (p *Parcel) Clone() *Parcel {
	if p == nil {
		return nil
	}
	c := *p
	if p.ActualDeliveryDate != nil {
		t := *p.ActualDeliveryDate
		c.ActualDeliveryDate = &t
	}
	return &c
}
