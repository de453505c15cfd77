package quota

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cropfresh/cropfresh-service-notification/pkg/cache"
	"github.com/cropfresh/cropfresh-service-notification/pkg/xerrors"
)

// Reserver hands out daily SMS slots. Reserve must be atomic so two
// concurrent sends for the same farmer cannot both squeeze through the
// last slot; Release gives a slot back when the send ultimately fails,
// keeping the counter aligned with SENT messages only.
type Reserver interface {
	Reserve(ctx context.Context, farmerID string, day time.Time) error
	Release(ctx context.Context, farmerID string, day time.Time)
}

const namespace = "sms_quota"

// RedisReserver counts reservations in redis with a TTL that lapses at the
// next local midnight, so the counter resets with the quota day.
type RedisReserver struct {
	cache *cache.Cache
	max   int64
	loc   *time.Location
}

func NewRedisReserver(c *cache.Cache, max int, loc *time.Location) *RedisReserver {
	return &RedisReserver{cache: c, max: int64(max), loc: loc}
}

func (r *RedisReserver) Reserve(ctx context.Context, farmerID string, day time.Time) error {
	key := r.key(farmerID, day)

	cnt, err := r.cache.IncrWithExpire(ctx, namespace, key, untilMidnight(day.In(r.loc)))
	if err != nil {
		// Redis being down must not take SMS delivery with it; the durable
		// log count downstream still enforces the quota, just non-atomically.
		log.Printf("[QUOTA] reserve degraded for %s: %v", farmerID, err)
		return nil
	}
	if cnt > r.max {
		if _, derr := r.cache.Decr(ctx, namespace, key); derr != nil {
			log.Printf("[QUOTA] release after overflow failed for %s: %v", farmerID, derr)
		}
		return xerrors.ErrQuotaExceeded
	}
	return nil
}

func (r *RedisReserver) Release(ctx context.Context, farmerID string, day time.Time) {
	if _, err := r.cache.Decr(ctx, namespace, r.key(farmerID, day)); err != nil {
		log.Printf("[QUOTA] release failed for %s: %v", farmerID, err)
	}
}

func (r *RedisReserver) key(farmerID string, day time.Time) string {
	return fmt.Sprintf("%s:%s", farmerID, day.In(r.loc).Format("2006-01-02"))
}

func untilMidnight(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return next.Sub(now)
}
