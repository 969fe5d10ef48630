package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var Rdb *redis.Client

func InitRedis(redisAddress string, redisUsername string, redisPassword string) {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     redisAddress,
		Username: redisUsername,
		Password: redisPassword,
		DB:       0,
	})
}

// CacheRawRecord stores the verbatim platform record for an entity so a
// resync can re-normalize without refetching.
func CacheRawRecord(ctx context.Context, kind, id string, raw []byte, ttl time.Duration) {
	if Rdb == nil {
		return
	}
	if err := Rdb.Set(ctx, rawKey(kind, id), raw, ttl).Err(); err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("id", id).Msg("failed to cache raw record")
	}
}

// GetRawRecord returns the cached record, or nil when absent or redis is
// not configured.
func GetRawRecord(ctx context.Context, kind, id string) []byte {
	if Rdb == nil {
		return nil
	}
	raw, err := Rdb.Get(ctx, rawKey(kind, id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Str("kind", kind).Str("id", id).Msg("failed to read cached raw record")
		}
		return nil
	}
	return raw
}

func rawKey(kind, id string) string {
	return "stratus:raw:" + kind + ":" + id
}
