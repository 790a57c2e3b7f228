package config

import (
	"log"

	"github.com/redis/rueidis"
)

// NewRedisClient connects to Redis for pub/sub and rate limit counters.
// Client side caching is off since nothing reads cached keys.
func NewRedisClient(addr string) rueidis.Client {
	redisClient, err := rueidis.NewClient(
		rueidis.ClientOption{
			InitAddress:  []string{addr},
			ClientName:   "taskboard",
			DisableCache: true,
		},
	)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}

	return redisClient
}
