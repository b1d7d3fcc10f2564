package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const (
	keyViewsTotal     = "portfolio:views:total"
	keyViewsDayPrefix = "portfolio:views:day:"
	keyViewsPaths     = "portfolio:views:paths"
	keyViewSeenPrefix = "portfolio:views:seen:"

	dayKeyTTL  = 48 * time.Hour
	seenKeyTTL = 48 * time.Hour
)

func NewRedisClient(ctx context.Context, cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.")
	return rdb, nil
}

type redisViewCounter struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisViewCounter(rdb *redis.Client, log logger.Logger) analytics.Counter {
	return &redisViewCounter{rdb: rdb, logger: log}
}

func dayKey(day time.Time) string {
	return keyViewsDayPrefix + day.Format("2006-01-02")
}

// incrementScript marks the event seen and bumps every counter in one atomic step.
// KEYS: seen, total, day, paths. ARGV: seen ttl, day ttl, path.
var incrementScript = redis.NewScript(`
if not redis.call("SET", KEYS[1], 1, "NX", "EX", ARGV[1]) then
	return 0
end
redis.call("INCR", KEYS[2])
redis.call("INCR", KEYS[3])
redis.call("EXPIRE", KEYS[3], ARGV[2])
redis.call("HINCRBY", KEYS[4], ARGV[3], 1)
return 1
`)

func (r *redisViewCounter) Increment(ctx context.Context, ev analytics.ViewEvent) (bool, error) {
	keys := []string{keyViewSeenPrefix + ev.EventID.String(), keyViewsTotal, dayKey(ev.Day()), keyViewsPaths}
	counted, err := incrementScript.Run(ctx, r.rdb, keys,
		int64(seenKeyTTL/time.Second), int64(dayKeyTTL/time.Second), ev.Path).Int()
	if err != nil {
		return false, fmt.Errorf("increment view counters: %w", err)
	}
	return counted == 1, nil
}

func (r *redisViewCounter) Totals(ctx context.Context, day time.Time) (*analytics.Totals, error) {
	var (
		total *redis.StringCmd
		today *redis.StringCmd
		paths *redis.MapStringStringCmd
	)
	_, err := r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		total = pipe.Get(ctx, keyViewsTotal)
		today = pipe.Get(ctx, dayKey(day))
		paths = pipe.HGetAll(ctx, keyViewsPaths)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("read view counters: %w", err)
	}

	t := &analytics.Totals{ByPath: map[string]int64{}}
	if t.Total, err = counterValue(total); err != nil {
		return nil, err
	}
	if t.Today, err = counterValue(today); err != nil {
		return nil, err
	}
	for path, raw := range paths.Val() {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			r.logger.Warn("Ignoring non-numeric path counter", zap.String("path", path))
			continue
		}
		t.ByPath[path] = v
	}
	return t, nil
}

func counterValue(cmd *redis.StringCmd) (int64, error) {
	v, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("parse view counter: %w", err)
	}
	return v, nil
}
