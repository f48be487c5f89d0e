package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const moodKeyPrefix = "mood:"

// ErrCacheMiss is returned by GetMood when nothing is cached for the digest.
var ErrCacheMiss = errors.New("cache miss")

type IRedis interface {
	SetMood(ctx context.Context, digest string, payload []byte, expiration time.Duration) error
	GetMood(ctx context.Context, digest string) ([]byte, error)
	DeleteMood(ctx context.Context, digest string) error
	Close() error
}

type Options struct {
	Address  string
	Password string
	DB       int
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

func New(opts Options, log *logrus.Logger) (IRedis, error) {
	log.Info(fmt.Sprintf("Connecting to Redis at %s...", opts.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("Successfully connected to Redis")

	return &redisClient{client: client, log: log}, nil
}

func moodKey(digest string) string {
	return moodKeyPrefix + digest
}

func (r *redisClient) SetMood(ctx context.Context, digest string, payload []byte, expiration time.Duration) error {
	key := moodKey(digest)
	r.log.Debug(fmt.Sprintf("Caching mood for key %s with expiration %v", key, expiration))

	if err := r.client.Set(ctx, key, payload, expiration).Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error caching mood for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetMood(ctx context.Context, digest string) ([]byte, error) {
	key := moodKey(digest)

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.log.Debug(fmt.Sprintf("Mood not cached for key %s", key))
		return nil, ErrCacheMiss
	} else if err != nil {
		r.log.Error(fmt.Sprintf("Error getting mood for key %s: %v", key, err))
		return nil, err
	}

	return val, nil
}

func (r *redisClient) DeleteMood(ctx context.Context, digest string) error {
	key := moodKey(digest)

	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		r.log.Error(fmt.Sprintf("Error deleting mood for key %s: %v", key, err))
		return err
	}

	if result == 0 {
		r.log.Debug(fmt.Sprintf("Mood key %s not found for deletion", key))
	}
	return nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
