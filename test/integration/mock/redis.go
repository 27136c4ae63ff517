package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisOnce sync.Once
var redisServer *miniredis.Miniredis
var redisConn *redis.Client

// NewRedis returns a client connected to a shared in-process Redis server.
func NewRedis() (*redis.Client, *miniredis.Miniredis) {
	redisOnce.Do(func() {
		server, err := miniredis.Run()
		if err != nil {
			panic(err)
		}
		redisServer = server
		redisConn = redis.NewClient(&redis.Options{Addr: server.Addr()})
	})
	return redisConn, redisServer
}

// ClearRedis removes every key, releasing any locks left by a scenario.
func ClearRedis(client *redis.Client) error {
	return client.FlushAll(context.Background()).Err()
}
