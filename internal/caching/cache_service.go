package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService caches public tenant content (banners, notices, about pages
// hit on every page view) and holds refresh-token state.
type CacheService interface {
	// Public content caching, keyed by subdomain and section.
	GetContent(ctx context.Context, domain, section string, dst any) error
	SetContent(ctx context.Context, domain, section string, value any, ttl time.Duration) error
	InvalidateContent(ctx context.Context, domain string) error

	// Generic string operations for refresh-token management.
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = redis.Nil

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// forms as well as plain host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsedAddr = strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func contentKey(domain, section string) string {
	return fmt.Sprintf("content:%s:%s", domain, section)
}

func (s *redisCacheService) GetContent(ctx context.Context, domain, section string, dst any) error {
	data, err := s.client.Get(ctx, contentKey(domain, section)).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (s *redisCacheService) SetContent(ctx context.Context, domain, section string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, contentKey(domain, section), data, ttl).Err()
}

func (s *redisCacheService) InvalidateContent(ctx context.Context, domain string) error {
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("content:%s:*", domain), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *redisCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return s.client.Get(ctx, key).Result()
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
