package queue

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/metrics"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ParcelEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.ParcelEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) snapshot() []domain.ParcelEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.ParcelEvent(nil), p.events...)
}

func waitFor(t *testing.T, pub *recordingPublisher, n int) []domain.ParcelEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got := pub.snapshot(); len(got) >= n {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %d", n, len(pub.snapshot()))
	return nil
}

func event(tracking string, seq int) domain.ParcelEvent {
	return domain.ParcelEvent{ID: strconv.Itoa(seq), Type: domain.EventParcelStatusChanged, TrackingNumber: tracking}
}

func TestDispatcher_PreservesPerParcelOrder(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(4, 512, pub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	defer func() {
		cancel()
		d.Wait()
	}()

	trackings := []string{"TRKAAAAAAAA", "TRKBBBBBBBB", "TRKCCCCCCCC"}
	for seq := 0; seq < 50; seq++ {
		for _, tn := range trackings {
			d.Enqueue(event(tn, seq))
		}
	}

	got := waitFor(t, pub, 150)

	last := make(map[string]int)
	for _, e := range got {
		seq, _ := strconv.Atoi(e.ID)
		if prev, ok := last[e.TrackingNumber]; ok && seq <= prev {
			t.Fatalf("out of order for %s: %d after %d", e.TrackingNumber, seq, prev)
		}
		last[e.TrackingNumber] = seq
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, 1, &recordingPublisher{}, zerolog.Nop())

	first := d.shardIndex("TRK1234ABCD")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("TRK1234ABCD"); got != first {
			t.Fatalf("shard index changed: %d then %d", first, got)
		}
	}
	if first < 0 || first >= 8 {
		t.Errorf("shard index out of range: %d", first)
	}
}

func TestDispatcher_EnqueueDropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, 1, &recordingPublisher{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		// Workers are not started, so only the first event fits.
		d.Enqueue(event("TRKFULL0001", 1))
		d.Enqueue(event("TRKFULL0001", 2))
		d.Enqueue(event("TRKFULL0001", 3))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full buffer")
	}
	if n := len(d.workers[0]); n != 1 {
		t.Errorf("expected 1 buffered event, got %d", n)
	}
}

func TestDispatcher_PublishErrorDoesNotStopWorker(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker unavailable")}
	d := NewDispatcher(1, 8, pub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	d.Enqueue(event("TRKERR00001", 1))
	d.Enqueue(event("TRKERR00001", 2))
	waitFor(t, pub, 2)

	cancel()
	d.Wait()
}

func TestNewDispatcher_Defaults(t *testing.T) {
	d := NewDispatcher(0, 0, &recordingPublisher{}, zerolog.Nop())

	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
	if cap(d.workers[0]) != defaultBuffer {
		t.Errorf("expected buffer %d, got %d", defaultBuffer, cap(d.workers[0]))
	}
}

// slowPublisher takes delay per event unless its context expires first.
type slowPublisher struct {
	delay    time.Duration
	mu       sync.Mutex
	attempts int
}

func (p *slowPublisher) Publish(ctx context.Context, _ domain.ParcelEvent) error {
	p.mu.Lock()
	p.attempts++
	p.mu.Unlock()
	select {
	case <-time.After(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestDispatcher_ShutdownPublishesBufferedEvents(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(1, 8, pub, zerolog.Nop())

	d.Enqueue(event("TRKDRAIN001", 1))
	d.Enqueue(event("TRKDRAIN001", 2))
	d.Enqueue(event("TRKDRAIN001", 3))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	got := pub.snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 events published on shutdown, got %d", len(got))
	}
	for i, e := range got {
		if e.ID != strconv.Itoa(i+1) {
			t.Errorf("position %d: expected event %d, got %s", i, i+1, e.ID)
		}
	}
	if n := len(d.workers[0]); n != 0 {
		t.Errorf("expected an empty buffer, got %d", n)
	}
}

func TestDispatcher_ShutdownCountsEventsLeftAfterDeadline(t *testing.T) {
	pub := &slowPublisher{delay: time.Second}
	d := NewDispatcher(1, 8, pub, zerolog.Nop())
	d.drainTimeout = 20 * time.Millisecond

	for i := 1; i <= 4; i++ {
		d.Enqueue(event("TRKDRAIN002", i))
	}
	before := testutil.ToFloat64(metrics.EventsDroppedTotal)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	d.Start(ctx)
	d.Wait()

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("shutdown took %v, expected it to stop at the drain deadline", elapsed)
	}
	// The first event times out mid-publish; the other three are never tried.
	if dropped := testutil.ToFloat64(metrics.EventsDroppedTotal) - before; dropped != 3 {
		t.Errorf("expected 3 dropped events, got %v", dropped)
	}
	if pub.attempts != 1 {
		t.Errorf("expected 1 publish attempt, got %d", pub.attempts)
	}
	if n := len(d.workers[0]); n != 0 {
		t.Errorf("expected an empty buffer, got %d", n)
	}
}
