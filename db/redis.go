// Package db provides the Redis-backed key-value store holding user
// records, captured email submissions and rate-limit counters
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type KVStore struct {
	C *redis.Client
}

// New connects to the Redis instance named in the config and pings it
// once so a bad address fails at startup instead of on the first
// request.
func New() (*KVStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     viper.GetString("redis.addr"),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis, %w", err)
	}

	return &KVStore{C: client}, nil
}

// Get returns the value stored under key. The second return value is
// false when the key is absent.
func (k *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := k.C.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key, %w", err)
	}

	return val, true, nil
}

// Put stores value under key. A zero ttl stores the key without an
// expiry.
func (k *KVStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := k.C.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key, %w", err)
	}

	return nil
}

// List returns every key matching the given prefix.
func (k *KVStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	iter := k.C.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan keys, %w", err)
	}

	return keys, nil
}

func (k *KVStore) Close() error {
	return k.C.Close()
}
