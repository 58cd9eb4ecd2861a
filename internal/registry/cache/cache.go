// Package cache provides a Redis-backed read cache for certificate lookups.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	platformredis "certledger/internal/platform/redis"
	"certledger/internal/registry/models"
	"certledger/pkg/domain"
	"certledger/pkg/platform/sentinel"
)

// Cache stores serialized certificates under a per-ID key with a TTL.
// Entries are invalidated on every accepted mutation, so the TTL is only a
// backstop against missed invalidations.
type Cache struct {
	client *platformredis.Client
	ttl    time.Duration
}

// New constructs a certificate cache. TTL must be positive.
func New(client *platformredis.Client, ttl time.Duration) (*Cache, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", ttl)
	}
	return &Cache{client: client, ttl: ttl}, nil
}

func key(id domain.CertificateID) string {
	return fmt.Sprintf("certledger:certificate:%d", id)
}

// Get returns the cached certificate, or sentinel.ErrNotFound on a miss.
func (c *Cache) Get(ctx context.Context, id domain.CertificateID) (*models.Certificate, error) {
	payload, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("cache get certificate %d: %w", id, err)
	}
	var cert models.Certificate
	if err := json.Unmarshal(payload, &cert); err != nil {
		// A corrupt entry is treated as a miss after dropping it.
		_ = c.client.Del(ctx, key(id)).Err()
		return nil, sentinel.ErrNotFound
	}
	return &cert, nil
}

func (c *Cache) Set(ctx context.Context, cert *models.Certificate) error {
	if cert == nil {
		return fmt.Errorf("certificate is required")
	}
	payload, err := json.Marshal(cert)
	if err != nil {
		return fmt.Errorf("cache encode certificate %d: %w", cert.ID, err)
	}
	if err := c.client.Set(ctx, key(cert.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set certificate %d: %w", cert.ID, err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context, id domain.CertificateID) error {
	if err := c.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("cache invalidate certificate %d: %w", id, err)
	}
	return nil
}
