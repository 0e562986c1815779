package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
)

// ErrBrokerUnavailable is returned while the circuit is open.
var ErrBrokerUnavailable = errors.New("broker unavailable: circuit open")

// BreakerConfig tunes the circuit breaker around a publisher.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32        // consecutive failures that open the circuit
	OpenTimeout      time.Duration // time spent open before retrying
	HalfOpenRequests uint32        // trial requests allowed while half-open
}

// BreakerPublisher stops calling a failing broker for a while instead of
// letting every worker wait on its timeout.
type BreakerPublisher struct {
	next ports.EventPublisher
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerPublisher(next ports.EventPublisher, cfg BreakerConfig, log zerolog.Logger) *BreakerPublisher {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = 1
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &BreakerPublisher{next: next, cb: gobreaker.NewCircuitBreaker(settings)}
}

func (p *BreakerPublisher) Publish(ctx context.Context, event domain.ParcelEvent) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.Publish(ctx, event)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w (%s)", ErrBrokerUnavailable, p.cb.Name())
	}
	return err
}

// State reports the current breaker state.
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}
