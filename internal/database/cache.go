package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

const defaultCacheTTL = 1 * time.Hour

// CacheBuilder is a small fluent wrapper over a valkey client for the common
// get/set/delete-by-key JSON patterns. A nil client is tolerated: reads miss
// and writes are no-ops, which keeps cacheless test setups working.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  any
	ttl    time.Duration
	ctx    context.Context
}

func NewCacheBuilder(client CacheClient, key any) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    fmt.Sprint(key),
		ttl:    defaultCacheTTL,
		ctx:    context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) Set() error {
	if b.client == nil {
		return nil
	}

	payload, err := json.Marshal(b.value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	cmd := b.client.B().Set().Key(b.key).Value(string(payload)).Ex(b.ttl).Build()
	if err := b.client.Do(b.ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to set cache key %s: %w", b.key, err)
	}

	return nil
}

// Get unmarshals the cached value into dest. The boolean reports whether the
// key was present.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	if b.client == nil {
		return false, nil
	}

	raw, err := b.client.Do(b.ctx, b.client.B().Get().Key(b.key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache key %s: %w", b.key, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value for %s: %w", b.key, err)
	}

	return true, nil
}

func (b *CacheBuilder) Delete() error {
	if b.client == nil {
		return nil
	}

	if err := b.client.Do(b.ctx, b.client.B().Del().Key(b.key).Build()).Error(); err != nil {
		return fmt.Errorf("failed to delete cache key %s: %w", b.key, err)
	}

	return nil
}
