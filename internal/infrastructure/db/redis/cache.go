package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/userhub/account-service/internal/core/domain"
)

const profileTTL = 5 * time.Minute

// ProfileCache caches fetch-by-id user lookups.
// Key format: user:<id>
//
// Only id lookups are cached; email lookups on the login path always hit
// the store so a block is visible to the next login attempt. Entries are
// invalidated when the user is blocked.
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached user, or (nil, nil) on a miss.
func (p *ProfileCache) Get(ctx context.Context, id string) (*domain.User, error) {
	raw, err := p.client.Get(ctx, p.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the user under its id (expires after profileTTL).
func (p *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return p.client.Set(ctx, p.key(user.ID), raw, profileTTL).Err()
}

// Invalidate drops the cached entry for the given id.
func (p *ProfileCache) Invalidate(ctx context.Context, id string) error {
	return p.client.Del(ctx, p.key(id)).Err()
}

func (p *ProfileCache) key(id string) string {
	return "user:" + id
}
