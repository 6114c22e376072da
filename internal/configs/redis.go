package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient connects to addr and checks the server answers PING.
// Client-side caching is off: the board key is written by this process only.
func NewRedisClient(addr string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{addr},
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}
