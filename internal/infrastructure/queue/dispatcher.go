package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
	"github.com/99minutos/parcel-service/internal/metrics"
)

const (
	defaultWorkers = 4
	defaultBuffer  = 256
	publishTimeout = 5 * time.Second
	drainTimeout   = 3 * time.Second
)

// Dispatcher routes lifecycle events to a fixed set of workers using
// consistent hashing on the tracking number, so events for one parcel are
// published in the order they were enqueued.
type Dispatcher struct {
	workers   []chan domain.ParcelEvent
	publisher ports.EventPublisher
	log       zerolog.Logger
	wg        sync.WaitGroup

	drainTimeout time.Duration
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// holding up to buffer pending events. Non-positive values use the defaults.
func NewDispatcher(numWorkers, buffer int, publisher ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	d := &Dispatcher{
		workers:      make([]chan domain.ParcelEvent, numWorkers),
		publisher:    publisher,
		log:          log,
		drainTimeout: drainTimeout,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ParcelEvent, buffer)
	}
	return d
}

// Start launches all worker goroutines. When ctx is cancelled each worker
// publishes what is still buffered, for at most drainTimeout, and counts the
// rest as dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands an event to the worker responsible for its tracking number.
// It never blocks: when that worker's buffer is full the event is dropped.
func (d *Dispatcher) Enqueue(event domain.ParcelEvent) {
	idx := d.shardIndex(event.TrackingNumber)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.EventsDroppedTotal.Inc()
		d.log.Warn().
			Str("tracking_number", event.TrackingNumber).
			Str("event_type", string(event.Type)).
			Int("worker_id", idx).
			Msg("event buffer full, dropping event")
	}
}

// shardIndex maps a tracking number deterministically to a worker index.
func (d *Dispatcher) shardIndex(trackingNumber string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(trackingNumber))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ParcelEvent) {
	defer d.wg.Done()
	workerID := strconv.Itoa(id)

	for {
		if ctx.Err() != nil {
			d.drain(id, ch)
			return
		}
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case event := <-ch:
			metrics.EventsQueueDepth.WithLabelValues(workerID).Dec()
			d.publish(context.WithoutCancel(ctx), id, event)
		}
	}
}

func (d *Dispatcher) drain(id int, ch <-chan domain.ParcelEvent) {
	workerID := strconv.Itoa(id)
	ctx, cancel := context.WithTimeout(context.Background(), d.drainTimeout)
	defer cancel()

	var published, dropped int
	for {
		select {
		case event := <-ch:
			metrics.EventsQueueDepth.WithLabelValues(workerID).Dec()
			if ctx.Err() != nil {
				metrics.EventsDroppedTotal.Inc()
				dropped++
				continue
			}
			d.publish(ctx, id, event)
			published++
		default:
			if published > 0 || dropped > 0 {
				d.log.Info().
					Int("worker_id", id).
					Int("published", published).
					Int("dropped", dropped).
					Msg("event buffer drained on shutdown")
			}
			return
		}
	}
}

func (d *Dispatcher) publish(ctx context.Context, workerID int, event domain.ParcelEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	start := time.Now()
	err := d.publisher.Publish(pubCtx, event)
	metrics.EventPublishDuration.WithLabelValues(string(event.Type)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.EventsPublishedTotal.WithLabelValues(string(event.Type), "error").Inc()
		d.log.Error().Err(err).
			Str("tracking_number", event.TrackingNumber).
			Str("event_type", string(event.Type)).
			Int("worker_id", workerID).
			Msg("event publish failed")
		return
	}
	metrics.EventsPublishedTotal.WithLabelValues(string(event.Type), "ok").Inc()
}
