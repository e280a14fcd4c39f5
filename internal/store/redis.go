package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore 以 netstatus:<host>:signature / country 两个键保存缓存
type RedisStore struct {
	rc     *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(rc *redis.Client, host string, ttl time.Duration) *RedisStore {
	return &RedisStore{rc: rc, prefix: "netstatus:" + host + ":", ttl: ttl}
}

func (s *RedisStore) signatureKey() string { return s.prefix + "signature" }
func (s *RedisStore) countryKey() string   { return s.prefix + "country" }

func (s *RedisStore) Get(ctx context.Context) (Entry, error) {
	vals, err := s.rc.MGet(ctx, s.signatureKey(), s.countryKey()).Result()
	if err != nil {
		return Entry{}, err
	}
	country, ok := vals[1].(string)
	if !ok {
		return Entry{}, ErrMiss
	}
	sig, _ := vals[0].(string)
	return Entry{Signature: sig, Country: country}, nil
}

func (s *RedisStore) Set(ctx context.Context, e Entry) error {
	_, err := s.rc.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, s.signatureKey(), e.Signature, s.ttl)
		p.Set(ctx, s.countryKey(), e.Country, s.ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Clear(ctx context.Context) error {
	err := s.rc.Del(ctx, s.signatureKey(), s.countryKey()).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
