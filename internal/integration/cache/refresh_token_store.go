// Package cache holds Redis-backed session state. Refresh tokens live here
// rather than in the relational store so revocation is a single key delete
// and expiry is handled by the TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "refresh_token:"

// RefreshTokenStore tracks which refresh tokens are currently valid.
type RefreshTokenStore interface {
	// Save marks a refresh token valid until expiresAt.
	Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// IsValid reports whether the token is present and unexpired.
	IsValid(ctx context.Context, token string) (bool, error)

	// Invalidate revokes the token. Revoking an unknown token is not an error.
	Invalidate(ctx context.Context, token string) error
}

// redisRefreshTokenStore implements RefreshTokenStore on Redis. Tokens are
// stored under a digest of their value so the raw JWT never appears in the
// keyspace.
type redisRefreshTokenStore struct {
	client *redis.Client
}

// NewRedisRefreshTokenStore creates a RefreshTokenStore backed by the given
// Redis client.
func NewRedisRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	return &redisRefreshTokenStore{client: client}
}

func (s *redisRefreshTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}

	if err := s.client.Set(ctx, tokenKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (s *redisRefreshTokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	_, err := s.client.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}
	return true, nil
}

func (s *redisRefreshTokenStore) Invalidate(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate refresh token: %w", err)
	}
	return nil
}

func tokenKey(token string) string {
	digest := sha256.Sum256([]byte(token))
	return refreshTokenKeyPrefix + hex.EncodeToString(digest[:])
}
