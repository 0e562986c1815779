package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
	"github.com/99minutos/parcel-service/internal/metrics"
)

const (
	defaultCacheTTL = 5 * time.Minute
	// generationTTL outlives any in-flight store read by a wide margin.
	generationTTL = time.Hour
)

// fillScript writes the entry only if the generation is still the one the
// reader saw before it queried the store.
// KEYS[1] entry, KEYS[2] generation; ARGV[1] expected generation, ARGV[2]
// payload, ARGV[3] ttl in milliseconds.
var fillScript = redis.NewScript(`
local gen = redis.call('GET', KEYS[2])
if gen == false then gen = '0' end
if gen ~= ARGV[1] then return 0 end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// CachedParcelRepository caches tracking-number lookups in Redis in front of
// another ParcelRepository. Writes and deletes bump a per-key generation and
// drop the entry; a fill started before that bump is discarded.
// Key format: parcel:tracking:<tracking_number>, generation at
// parcel:tracking:gen:<tracking_number>
//
// Cache failures never fail a call; they are logged and the inner
// repository answers instead.
type CachedParcelRepository struct {
	ports.ParcelRepository
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachedParcelRepository wraps inner. A ttl <= 0 uses defaultCacheTTL.
func NewCachedParcelRepository(inner ports.ParcelRepository, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedParcelRepository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedParcelRepository{ParcelRepository: inner, client: client, ttl: ttl, log: log}
}

func (c *CachedParcelRepository) FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Parcel, error) {
	raw, err := c.client.Get(ctx, c.key(trackingNumber)).Bytes()
	switch {
	case err == nil:
		var p domain.Parcel
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return &p, nil
		}
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		c.log.Warn().Str("tracking_number", trackingNumber).Msg("discarding undecodable cache entry")
	case errors.Is(err, redis.Nil):
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	default:
		metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
		c.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("cache lookup failed, falling back to store")
	}

	gen, genErr := c.generation(ctx, trackingNumber)

	p, err := c.ParcelRepository.FindByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return nil, err
	}
	if genErr == nil {
		c.store(ctx, p, gen)
	}
	return p, nil
}

func (c *CachedParcelRepository) Save(ctx context.Context, p *domain.Parcel) (*domain.Parcel, error) {
	saved, err := c.ParcelRepository.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, saved.TrackingNumber)
	return saved, nil
}

func (c *CachedParcelRepository) DeleteByID(ctx context.Context, id string) error {
	existing, findErr := c.ParcelRepository.FindByID(ctx, id)
	if err := c.ParcelRepository.DeleteByID(ctx, id); err != nil {
		return err
	}
	if findErr == nil {
		c.invalidate(ctx, existing.TrackingNumber)
	}
	return nil
}

func (c *CachedParcelRepository) generation(ctx context.Context, trackingNumber string) (string, error) {
	gen, err := c.client.Get(ctx, c.genKey(trackingNumber)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

func (c *CachedParcelRepository) store(ctx context.Context, p *domain.Parcel, gen string) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	keys := []string{c.key(p.TrackingNumber), c.genKey(p.TrackingNumber)}
	if err := fillScript.Run(ctx, c.client, keys, gen, raw, c.ttl.Milliseconds()).Err(); err != nil {
		c.log.Warn().Err(err).Str("tracking_number", p.TrackingNumber).Msg("failed to cache parcel")
	}
}

func (c *CachedParcelRepository) invalidate(ctx context.Context, trackingNumber string) {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(trackingNumber))
		pipe.PExpire(ctx, c.genKey(trackingNumber), generationTTL)
		pipe.Del(ctx, c.key(trackingNumber))
		return nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("tracking_number", trackingNumber).Msg("failed to invalidate cached parcel")
	}
}

func (c *CachedParcelRepository) key(trackingNumber string) string {
	return fmt.Sprintf("parcel:tracking:%s", trackingNumber)
}

func (c *CachedParcelRepository) genKey(trackingNumber string) string {
	return fmt.Sprintf("parcel:tracking:gen:%s", trackingNumber)
}
