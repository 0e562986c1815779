package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
)

type stubParcelService struct {
	createFn       func(ctx context.Context, in ports.BookingInput) (*domain.Parcel, error)
	getFn          func(ctx context.Context, id string) (*domain.Parcel, error)
	trackFn        func(ctx context.Context, trackingNumber string) (*domain.Parcel, error)
	listFn         func(ctx context.Context) ([]*domain.Parcel, error)
	listByEmailFn  func(ctx context.Context, field, email string) ([]*domain.Parcel, error)
	listByStatusFn func(ctx context.Context, status domain.ParcelStatus) ([]*domain.Parcel, error)
	updateStatusFn func(ctx context.Context, id string, status domain.ParcelStatus) (*domain.Parcel, error)
	updateFn       func(ctx context.Context, id string, in ports.BookingInput) (*domain.Parcel, error)
	deleteFn       func(ctx context.Context, id string) error
}

func (s *stubParcelService) Create(ctx context.Context, in ports.BookingInput) (*domain.Parcel, error) {
	return s.createFn(ctx, in)
}

func (s *stubParcelService) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	return s.getFn(ctx, id)
}

func (s *stubParcelService) GetByTrackingNumber(ctx context.Context, tn string) (*domain.Parcel, error) {
	return s.trackFn(ctx, tn)
}

func (s *stubParcelService) ListAll(ctx context.Context) ([]*domain.Parcel, error) {
	return s.listFn(ctx)
}

func (s *stubParcelService) ListBySenderEmail(ctx context.Context, email string) ([]*domain.Parcel, error) {
	return s.listByEmailFn(ctx, "sender", email)
}

func (s *stubParcelService) ListByRecipientEmail(ctx context.Context, email string) ([]*domain.Parcel, error) {
	return s.listByEmailFn(ctx, "recipient", email)
}

func (s *stubParcelService) ListByUserEmail(ctx context.Context, email string) ([]*domain.Parcel, error) {
	return s.listByEmailFn(ctx, "user", email)
}

func (s *stubParcelService) ListByStatus(ctx context.Context, status domain.ParcelStatus) ([]*domain.Parcel, error) {
	return s.listByStatusFn(ctx, status)
}

func (s *stubParcelService) UpdateStatus(ctx context.Context, id string, status domain.ParcelStatus) (*domain.Parcel, error) {
	return s.updateStatusFn(ctx, id, status)
}

func (s *stubParcelService) Update(ctx context.Context, id string, in ports.BookingInput) (*domain.Parcel, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubParcelService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

const validParcelBody = `{
	"sender": {"name": "Alice", "email": "alice@example.com", "phone": "555-0100", "address": "1 Main St"},
	"recipient": {"name": "Bob", "email": "bob@example.com", "phone": "555-0200", "address": "2 Oak Ave"},
	"weight_kg": 5,
	"dimensions": {"length_cm": 30, "width_cm": 20, "height_cm": 10},
	"description": "books",
	"parcel_type": "package",
	"delivery_type": "express"
}`

func sampleParcel() *domain.Parcel {
	created := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Parcel{
		ID:                    "p-1",
		TrackingNumber:        "TRK1A2B3C4D",
		Sender:                domain.Contact{Name: "Alice", Email: "alice@example.com", Phone: "555-0100", Address: "1 Main St"},
		Recipient:             domain.Contact{Name: "Bob", Email: "bob@example.com", Phone: "555-0200", Address: "2 Oak Ave"},
		WeightKg:              5,
		Dimensions:            domain.Dimensions{LengthCm: 30, WidthCm: 20, HeightCm: 10},
		ParcelType:            domain.ParcelTypePackage,
		DeliveryType:          domain.DeliveryExpress,
		Status:                domain.StatusPending,
		ShippingCost:          22.5,
		EstimatedDeliveryDate: created.Add(48 * time.Hour),
		CreatedAt:             created,
		UpdatedAt:             created,
	}
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestParcelHandler_Create_Success(t *testing.T) {
	stub := &stubParcelService{
		createFn: func(ctx context.Context, in ports.BookingInput) (*domain.Parcel, error) {
			if in.DeliveryType != domain.DeliveryExpress || in.ParcelType != domain.ParcelTypePackage {
				t.Fatalf("expected upper-cased enums, got %s/%s", in.ParcelType, in.DeliveryType)
			}
			if in.Sender.Email != "alice@example.com" || in.Dimensions.HeightCm != 10 {
				t.Fatalf("unexpected input: %+v", in)
			}
			return sampleParcel(), nil
		},
	}
	c, rec := newTestContext(http.MethodPost, "/v1/parcels", validParcelBody)

	if err := NewParcelHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["tracking_number"] != "TRK1A2B3C4D" || resp["status"] != "PENDING" || resp["shipping_cost"] != 22.5 {
		t.Errorf("unexpected payload: %+v", resp)
	}
	if resp["actual_delivery_date"] != nil {
		t.Errorf("expected null actual_delivery_date, got %v", resp["actual_delivery_date"])
	}
	links, ok := resp["_links"].(map[string]any)
	if !ok || links["self"] != "/v1/parcels/p-1" || links["track"] != "/v1/parcels/track/TRK1A2B3C4D" {
		t.Errorf("unexpected links: %v", resp["_links"])
	}
}

func TestParcelHandler_Create_MalformedBody(t *testing.T) {
	stub := &stubParcelService{
		createFn: func(context.Context, ports.BookingInput) (*domain.Parcel, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	c, _ := newTestContext(http.MethodPost, "/v1/parcels", `{"sender":`)

	err := NewParcelHandler(stub).Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestParcelHandler_Create_MissingFields(t *testing.T) {
	stub := &stubParcelService{
		createFn: func(context.Context, ports.BookingInput) (*domain.Parcel, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	body := strings.Replace(validParcelBody, `"weight_kg": 5,`, "", 1)
	c, _ := newTestContext(http.MethodPost, "/v1/parcels", body)

	err := NewParcelHandler(stub).Create(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Violations) != 1 || ve.Violations[0].Field != "weight_kg" {
		t.Errorf("expected a single weight_kg violation, got %v", err)
	}
}

func TestParcelHandler_Create_ServiceValidationPassesThrough(t *testing.T) {
	want := domain.NewValidationError(domain.FieldViolation{Field: "sender.email", Message: "sender.email must be a valid email address"})
	stub := &stubParcelService{
		createFn: func(context.Context, ports.BookingInput) (*domain.Parcel, error) { return nil, want },
	}
	c, _ := newTestContext(http.MethodPost, "/v1/parcels", validParcelBody)

	if err := NewParcelHandler(stub).Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParcelHandler_Get_NotFound(t *testing.T) {
	stub := &stubParcelService{
		getFn: func(ctx context.Context, id string) (*domain.Parcel, error) {
			if id != "missing" {
				t.Fatalf("unexpected id %q", id)
			}
			return nil, fmt.Errorf("get parcel: %w", domain.ErrParcelNotFound)
		},
	}
	c, _ := newTestContext(http.MethodGet, "/v1/parcels/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := NewParcelHandler(stub).Get(c); !errors.Is(err, domain.ErrParcelNotFound) {
		t.Fatalf("expected ErrParcelNotFound, got %v", err)
	}
}

func TestParcelHandler_Track(t *testing.T) {
	stub := &stubParcelService{
		trackFn: func(ctx context.Context, tn string) (*domain.Parcel, error) {
			if tn != "TRK1A2B3C4D" {
				t.Fatalf("unexpected tracking number %q", tn)
			}
			return sampleParcel(), nil
		},
	}
	c, rec := newTestContext(http.MethodGet, "/v1/parcels/track/TRK1A2B3C4D", "")
	c.SetParamNames("tracking_number")
	c.SetParamValues("TRK1A2B3C4D")

	if err := NewParcelHandler(stub).Track(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"id":"p-1"`) {
		t.Errorf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestParcelHandler_EmailListsRouteToMatchingQuery(t *testing.T) {
	cases := []struct {
		name  string
		call  func(h *ParcelHandler, c echo.Context) error
		field string
	}{
		{"sender", (*ParcelHandler).ListBySender, "sender"},
		{"recipient", (*ParcelHandler).ListByRecipient, "recipient"},
		{"user", (*ParcelHandler).ListByUser, "user"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotField, gotEmail string
			stub := &stubParcelService{
				listByEmailFn: func(ctx context.Context, field, email string) ([]*domain.Parcel, error) {
					gotField, gotEmail = field, email
					return nil, nil
				},
			}
			c, rec := newTestContext(http.MethodGet, "/", "")
			c.SetParamNames("email")
			c.SetParamValues("alice@example.com")

			if err := tc.call(NewParcelHandler(stub), c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if gotField != tc.field || gotEmail != "alice@example.com" {
				t.Errorf("expected %s query for alice, got %s/%s", tc.field, gotField, gotEmail)
			}
			if strings.TrimSpace(rec.Body.String()) != "[]" {
				t.Errorf("expected empty JSON array, got %s", rec.Body.String())
			}
		})
	}
}

func TestParcelHandler_ListByStatus(t *testing.T) {
	var got domain.ParcelStatus
	stub := &stubParcelService{
		listByStatusFn: func(ctx context.Context, status domain.ParcelStatus) ([]*domain.Parcel, error) {
			got = status
			return []*domain.Parcel{sampleParcel()}, nil
		},
	}

	c, rec := newTestContext(http.MethodGet, "/v1/parcels/status/in_transit", "")
	c.SetParamNames("status")
	c.SetParamValues("in_transit")
	if err := NewParcelHandler(stub).ListByStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != domain.StatusInTransit {
		t.Errorf("expected IN_TRANSIT, got %s", got)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || len(resp) != 1 {
		t.Fatalf("expected one parcel, got %s (%v)", rec.Body.String(), err)
	}

	c, _ = newTestContext(http.MethodGet, "/v1/parcels/status/LOST", "")
	c.SetParamNames("status")
	c.SetParamValues("LOST")
	if err := NewParcelHandler(stub).ListByStatus(c); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestParcelHandler_UpdateStatus(t *testing.T) {
	stub := &stubParcelService{
		updateStatusFn: func(ctx context.Context, id string, status domain.ParcelStatus) (*domain.Parcel, error) {
			if id != "p-1" || status != domain.StatusDelivered {
				t.Fatalf("unexpected args %s/%s", id, status)
			}
			p := sampleParcel()
			p.SetStatus(status, p.CreatedAt.Add(time.Hour))
			return p, nil
		},
	}
	c, rec := newTestContext(http.MethodPatch, "/v1/parcels/p-1/status", `{"status":"delivered"}`)
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := NewParcelHandler(stub).UpdateStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != "DELIVERED" || resp["actual_delivery_date"] == nil {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestParcelHandler_UpdateStatus_RejectsBadInput(t *testing.T) {
	stub := &stubParcelService{
		updateStatusFn: func(context.Context, string, domain.ParcelStatus) (*domain.Parcel, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	for _, body := range []string{`{}`, `{"status":"LOST"}`} {
		c, _ := newTestContext(http.MethodPatch, "/v1/parcels/p-1/status", body)
		c.SetParamNames("id")
		c.SetParamValues("p-1")
		if err := NewParcelHandler(stub).UpdateStatus(c); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("body %s: expected validation error, got %v", body, err)
		}
	}
}

func TestParcelHandler_Update(t *testing.T) {
	stub := &stubParcelService{
		updateFn: func(ctx context.Context, id string, in ports.BookingInput) (*domain.Parcel, error) {
			if id != "p-1" || in.WeightKg != 5 {
				t.Fatalf("unexpected args %s/%+v", id, in)
			}
			return sampleParcel(), nil
		},
	}
	c, rec := newTestContext(http.MethodPut, "/v1/parcels/p-1", validParcelBody)
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := NewParcelHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestParcelHandler_Delete(t *testing.T) {
	stub := &stubParcelService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	c, rec := newTestContext(http.MethodDelete, "/v1/parcels/p-1", "")
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := NewParcelHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"message":"parcel deleted"`) {
		t.Errorf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestWelcome(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/", "")
	if err := Welcome(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp welcomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Welcome to Online Parcel Booking API" || resp.Version != "1.0.0" {
		t.Errorf("unexpected welcome: %+v", resp)
	}
	if resp.Endpoints["track"] != "/v1/parcels/track/{trackingNumber}" {
		t.Errorf("unexpected endpoints: %v", resp.Endpoints)
	}
}
