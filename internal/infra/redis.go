package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis opens the client used by the rate limiter and the aviso queues.
// The URL form lets one env var carry host, auth and db index.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	// Fail at startup rather than on the first queued aviso.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
