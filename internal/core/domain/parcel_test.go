package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParcel_SetStatus_DeliveredStampsActualDate(t *testing.T) {
	p := &Parcel{Status: StatusInTransit}
	first := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	p.SetStatus(StatusDelivered, first)
	if p.ActualDeliveryDate == nil || !p.ActualDeliveryDate.Equal(first) {
		t.Fatalf("expected actual delivery %v, got %v", first, p.ActualDeliveryDate)
	}

	second := first.Add(time.Hour)
	p.SetStatus(StatusDelivered, second)
	if !p.ActualDeliveryDate.Equal(second) {
		t.Errorf("repeated DELIVERED must overwrite the stamp: got %v", p.ActualDeliveryDate)
	}
	if !p.UpdatedAt.Equal(second) {
		t.Errorf("expected UpdatedAt %v, got %v", second, p.UpdatedAt)
	}
}

func TestParcel_SetStatus_FreeForm(t *testing.T) {
	delivered := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	p := &Parcel{Status: StatusDelivered, ActualDeliveryDate: &delivered}

	p.SetStatus(StatusPending, delivered.Add(time.Minute))

	if p.Status != StatusPending {
		t.Errorf("expected backward move to PENDING, got %s", p.Status)
	}
	if p.ActualDeliveryDate == nil || !p.ActualDeliveryDate.Equal(delivered) {
		t.Errorf("actual delivery date must never be reset, got %v", p.ActualDeliveryDate)
	}
}

func TestParcel_CloneIsDeep(t *testing.T) {
	at := time.Now().UTC()
	p := &Parcel{ID: "1", ActualDeliveryDate: &at}

	c := p.Clone()
	*c.ActualDeliveryDate = at.Add(time.Hour)

	if !p.ActualDeliveryDate.Equal(at) {
		t.Error("mutating the clone leaked into the original")
	}
	if (*Parcel)(nil).Clone() != nil {
		t.Error("clone of nil must be nil")
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus(" out_for_delivery ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != StatusOutForDelivery {
		t.Errorf("expected %s, got %s", StatusOutForDelivery, got)
	}

	_, err = ParseStatus("LOST")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestStoreError_MatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(NewStoreError("find parcel", cause))

	if !errors.Is(err, ErrStore) {
		t.Error("expected StoreError to match ErrStore")
	}
	if !errors.Is(err, cause) {
		t.Error("expected StoreError to unwrap to its cause")
	}
	if errors.Is(err, ErrParcelNotFound) {
		t.Error("StoreError must not match ErrParcelNotFound")
	}
}
