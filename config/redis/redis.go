package redis

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const cacheTTL = 30 * time.Minute

var rdb *goredis.Client

func Connect() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb = goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis not reachable, caching disabled:", err)
	}
}

func SetCache(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, raw, cacheTTL).Err()
}

// GetCache reports whether key was present and, when it was, decodes
// the cached JSON into out.
func GetCache(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(raw, out)
}

func DeleteCache(ctx context.Context, key string) error {
	return rdb.Del(ctx, key).Err()
}
