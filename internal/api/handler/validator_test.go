package handler

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/service"
	"github.com/99minutos/parcel-service/internal/infrastructure/db/memory"
)

func violationFor(t *testing.T, err error, field string) string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	for _, v := range ve.Violations {
		if v.Field == field {
			return v.Message
		}
	}
	t.Fatalf("no violation for %s in %+v", field, ve.Violations)
	return ""
}

func TestValidator_MatchesServiceWording(t *testing.T) {
	var req parcelRequest
	if err := json.Unmarshal([]byte(validParcelBody), &req); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	req.Sender.Email = ""

	handlerMsg := violationFor(t, NewValidator().Validate(req), "sender.email")

	svc := service.NewParcelService(memory.NewParcelRepository(), nil, zerolog.Nop())
	_, err := svc.Create(context.Background(), toBookingInput(req))
	serviceMsg := violationFor(t, err, "sender.email")

	if handlerMsg != serviceMsg {
		t.Errorf("handler says %q, service says %q", handlerMsg, serviceMsg)
	}
	if handlerMsg != "sender.email is required" {
		t.Errorf("unexpected message %q", handlerMsg)
	}
}

func TestValidator_ReportsEveryMissingField(t *testing.T) {
	err := NewValidator().Validate(statusRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := violationFor(t, err, "status"); got != "status is required" {
		t.Errorf("unexpected message %q", got)
	}
}
