package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
	"github.com/99minutos/parcel-service/internal/core/validation"
	"github.com/99minutos/parcel-service/internal/metrics"
)

// Option customises a ParcelService.
type Option func(*ParcelService)

// WithClock replaces the wall clock used for timestamps and ETAs.
func WithClock(now func() time.Time) Option {
	return func(s *ParcelService) { s.now = now }
}

// WithTrackingNumberGenerator replaces the tracking number generator.
func WithTrackingNumberGenerator(gen func() string) Option {
	return func(s *ParcelService) { s.newTrackingNumber = gen }
}

// ParcelService implements the parcel lifecycle on top of a ParcelRepository.
// It holds no state between calls; every mutation is a single
// read-modify-write against the repository.
type ParcelService struct {
	repo              ports.ParcelRepository
	events            ports.EventQueue
	validate          *validator.Validate
	logger            zerolog.Logger
	now               func() time.Time
	newTrackingNumber func() string
}

// NewParcelService wires the service. events may be nil, in which case no
// lifecycle events are emitted.
func NewParcelService(repo ports.ParcelRepository, events ports.EventQueue, logger zerolog.Logger, opts ...Option) *ParcelService {
	s := &ParcelService{
		repo:              repo,
		events:            events,
		validate:          validation.New(),
		logger:            logger,
		now:               func() time.Time { return time.Now().UTC() },
		newTrackingNumber: generateTrackingNumber,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create books a new parcel. Status is always PENDING and the cost and ETA
// are derived from the weight and delivery type.
func (s *ParcelService) Create(ctx context.Context, in ports.BookingInput) (*domain.Parcel, error) {
	if err := s.validateBooking(in); err != nil {
		return nil, err
	}

	now := s.now()
	p := &domain.Parcel{
		TrackingNumber: s.newTrackingNumber(),
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	applyBooking(p, in)
	p.Reprice(now)

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("tracking_number", p.TrackingNumber).Msg("failed to create parcel")
		return nil, fmt.Errorf("create parcel: %w", err)
	}

	metrics.ParcelsCreatedTotal.WithLabelValues(string(saved.DeliveryType), string(saved.ParcelType)).Inc()
	s.logger.Info().
		Str("tracking_number", saved.TrackingNumber).
		Str("delivery_type", string(saved.DeliveryType)).
		Float64("shipping_cost", saved.ShippingCost).
		Msg("parcel created")

	s.emit(domain.EventParcelCreated, saved, "")
	return saved, nil
}

func (s *ParcelService) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get parcel %s: %w", id, err)
	}
	return p, nil
}

func (s *ParcelService) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Parcel, error) {
	p, err := s.repo.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, fmt.Errorf("track parcel %s: %w", trackingNumber, err)
	}
	return p, nil
}

func (s *ParcelService) ListAll(ctx context.Context) ([]*domain.Parcel, error) {
	parcels, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	return parcels, nil
}

func (s *ParcelService) ListBySenderEmail(ctx context.Context, email string) ([]*domain.Parcel, error) {
	return s.listBy(ctx, ports.FieldSenderEmail, email)
}

func (s *ParcelService) ListByRecipientEmail(ctx context.Context, email string) ([]*domain.Parcel, error) {
	return s.listBy(ctx, ports.FieldRecipientEmail, email)
}

// ListByUserEmail returns every parcel the email sends or receives. A parcel
// where both sides match is returned once.
func (s *ParcelService) ListByUserEmail(ctx context.Context, email string) ([]*domain.Parcel, error) {
	parcels, err := s.repo.FindBySenderOrRecipient(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list parcels by user: %w", err)
	}
	return parcels, nil
}

func (s *ParcelService) ListByStatus(ctx context.Context, status domain.ParcelStatus) ([]*domain.Parcel, error) {
	if !status.Valid() {
		return nil, domain.InvalidStatusError()
	}
	return s.listBy(ctx, ports.FieldStatus, string(status))
}

func (s *ParcelService) listBy(ctx context.Context, field ports.ParcelField, value string) ([]*domain.Parcel, error) {
	parcels, err := s.repo.FindAllByField(ctx, field, value)
	if err != nil {
		return nil, fmt.Errorf("list parcels by %s: %w", field, err)
	}
	return parcels, nil
}

// UpdateStatus overwrites the status of a parcel. Any status may follow any
// other; moving to DELIVERED stamps the actual delivery date each time.
func (s *ParcelService) UpdateStatus(ctx context.Context, id string, status domain.ParcelStatus) (*domain.Parcel, error) {
	if !status.Valid() {
		return nil, domain.InvalidStatusError()
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update parcel status: %w", err)
	}

	previous := p.Status
	p.SetStatus(status, s.now())

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("parcel_id", id).Msg("failed to update parcel status")
		return nil, fmt.Errorf("update parcel status: %w", err)
	}

	metrics.StatusTransitionsTotal.WithLabelValues(string(previous), string(status)).Inc()
	s.logger.Info().
		Str("tracking_number", saved.TrackingNumber).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("parcel status updated")

	s.emit(domain.EventParcelStatusChanged, saved, previous)
	return saved, nil
}

// Update replaces the booking attributes of a parcel and reprices it. The
// ETA is re-based on the current time. Tracking number, status, creation
// time and actual delivery date are preserved.
func (s *ParcelService) Update(ctx context.Context, id string, in ports.BookingInput) (*domain.Parcel, error) {
	if err := s.validateBooking(in); err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update parcel: %w", err)
	}

	now := s.now()
	applyBooking(p, in)
	p.Reprice(now)
	p.UpdatedAt = now

	saved, err := s.repo.Save(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Str("parcel_id", id).Msg("failed to update parcel")
		return nil, fmt.Errorf("update parcel: %w", err)
	}

	s.logger.Info().Str("tracking_number", saved.TrackingNumber).Msg("parcel updated")
	s.emit(domain.EventParcelUpdated, saved, "")
	return saved, nil
}

// Delete removes a parcel permanently. Deleting an unknown id reports
// domain.ErrParcelNotFound.
func (s *ParcelService) Delete(ctx context.Context, id string) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete parcel: %w", err)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("parcel_id", id).Msg("failed to delete parcel")
		return fmt.Errorf("delete parcel: %w", err)
	}

	s.logger.Info().Str("tracking_number", p.TrackingNumber).Msg("parcel deleted")
	s.emit(domain.EventParcelDeleted, p, "")
	return nil
}

func (s *ParcelService) emit(t domain.ParcelEventType, p *domain.Parcel, previous domain.ParcelStatus) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.NewParcelEvent(t, p, previous, s.now()))
}

func applyBooking(p *domain.Parcel, in ports.BookingInput) {
	p.Sender = toContact(in.Sender)
	p.Recipient = toContact(in.Recipient)
	p.WeightKg = in.WeightKg
	p.Dimensions = domain.Dimensions{
		LengthCm: in.Dimensions.LengthCm,
		WidthCm:  in.Dimensions.WidthCm,
		HeightCm: in.Dimensions.HeightCm,
	}
	p.Description = in.Description
	p.ParcelType = in.ParcelType
	p.DeliveryType = in.DeliveryType
}

func toContact(in ports.ContactInput) domain.Contact {
	return domain.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
	}
}

// generateTrackingNumber returns a tracking number in the format TRKXXXXXXXX.
func generateTrackingNumber() string {
	return "TRK" + strings.ToUpper(uuid.NewString()[:8])
}

// ── Validation ────────────────────────────────────────────────────────────────

// validateBooking checks in and returns a *domain.ValidationError listing
// every rejected field.
func (s *ParcelService) validateBooking(in ports.BookingInput) error {
	return validation.Struct(s.validate, in)
}
