// Package memory provides a process-local ParcelRepository for development
// and tests. Data does not survive a restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
)

type ParcelRepository struct {
	mu         sync.RWMutex
	byID       map[string]*domain.Parcel
	byTracking map[string]string
}

func NewParcelRepository() *ParcelRepository {
	return &ParcelRepository{
		byID:       make(map[string]*domain.Parcel),
		byTracking: make(map[string]string),
	}
}

func (r *ParcelRepository) Save(_ context.Context, p *domain.Parcel) (*domain.Parcel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := p.Clone()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	} else if _, ok := r.byID[saved.ID]; !ok {
		return nil, domain.ErrParcelNotFound
	}

	if owner, taken := r.byTracking[saved.TrackingNumber]; taken && owner != saved.ID {
		return nil, domain.ErrDuplicateParcel
	}

	if existing, ok := r.byID[saved.ID]; ok {
		delete(r.byTracking, existing.TrackingNumber)
	}
	r.byID[saved.ID] = saved
	r.byTracking[saved.TrackingNumber] = saved.ID
	return saved.Clone(), nil
}

func (r *ParcelRepository) FindByID(_ context.Context, id string) (*domain.Parcel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrParcelNotFound
	}
	return p.Clone(), nil
}

func (r *ParcelRepository) FindByTrackingNumber(_ context.Context, trackingNumber string) (*domain.Parcel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byTracking[trackingNumber]
	if !ok {
		return nil, domain.ErrParcelNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *ParcelRepository) FindAllByField(_ context.Context, field ports.ParcelField, value string) ([]*domain.Parcel, error) {
	var match func(*domain.Parcel) bool
	switch field {
	case ports.FieldSenderEmail:
		match = func(p *domain.Parcel) bool { return p.Sender.Email == value }
	case ports.FieldRecipientEmail:
		match = func(p *domain.Parcel) bool { return p.Recipient.Email == value }
	case ports.FieldStatus:
		match = func(p *domain.Parcel) bool { return string(p.Status) == value }
	default:
		return nil, domain.NewStoreError("find parcels", fmt.Errorf("unsupported field %q", field))
	}
	return r.filter(match), nil
}

func (r *ParcelRepository) FindBySenderOrRecipient(_ context.Context, email string) ([]*domain.Parcel, error) {
	return r.filter(func(p *domain.Parcel) bool {
		return p.Sender.Email == email || p.Recipient.Email == email
	}), nil
}

func (r *ParcelRepository) FindAll(_ context.Context) ([]*domain.Parcel, error) {
	return r.filter(func(*domain.Parcel) bool { return true }), nil
}

func (r *ParcelRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return domain.ErrParcelNotFound
	}
	delete(r.byTracking, p.TrackingNumber)
	delete(r.byID, id)
	return nil
}

func (r *ParcelRepository) filter(match func(*domain.Parcel) bool) []*domain.Parcel {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Parcel, 0)
	for _, p := range r.byID {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
