// Package redis stores credentials in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/skills-gap-navigator/internal/domain"
)

// DefaultPrefix namespaces navigator keys.
const DefaultPrefix = "navigator:credential:"

// Store is a domain.CredentialStore backed by plain GET/SET/DEL.
type Store struct {
	rdb    *goredis.Client
	prefix string
}

var _ domain.CredentialStore = (*Store)(nil)

// New returns a store using rdb with DefaultPrefix.
func New(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb, prefix: DefaultPrefix}
}

// Load reads key. A missing key means no credential.
func (s *Store) Load(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("op=redis.load: %w", err)
	}
	return v, true, nil
}

// Save writes key without expiry.
func (s *Store) Save(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("op=redis.save: %w", err)
	}
	return nil
}

// Clear deletes key.
func (s *Store) Clear(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("op=redis.clear: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
