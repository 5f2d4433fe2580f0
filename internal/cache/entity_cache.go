// Package cache provides the in-process cache of decrypted entity lists that
// backs optimistic reads and mutations. Cached values are plaintext and must
// never leave the process; they are dropped wholesale on logout.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/google/uuid"
)

// Well-known collection keys.
const (
	accountsKey = "accounts"
	poolsKey    = "pools"
)

// AccountsKey returns the cache key for the account list.
func AccountsKey() string { return accountsKey }

// PoolsKey returns the cache key for the pool list.
func PoolsKey() string { return poolsKey }

// TransactionsKey returns the cache key for an account's transaction list.
func TransactionsKey(accountID uuid.UUID) string {
	return fmt.Sprintf("transactions:%s", accountID)
}

// AllocationsKey returns the cache key for a pool's allocation list.
func AllocationsKey(poolID uuid.UUID) string {
	return fmt.Sprintf("allocations:%s", poolID)
}

// EntityCache is an LRU cache of decrypted entity lists keyed by collection.
type EntityCache struct {
	lru *lru.Cache[string, any]
}

// New creates an entity cache holding at most size collections.
func New(size int) (*EntityCache, error) {
	inner, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create entity cache: %w", err)
	}
	return &EntityCache{lru: inner}, nil
}

// Get returns the cached value for key, if present.
func (c *EntityCache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

// Set stores value under key, replacing any previous value.
func (c *EntityCache) Set(key string, value any) {
	c.lru.Add(key, value)
}

// Invalidate drops the value stored under key.
func (c *EntityCache) Invalidate(key string) {
	c.lru.Remove(key)
}

// Purge drops every cached collection. Called on logout, alongside the key
// store cache invalidation.
func (c *EntityCache) Purge() {
	c.lru.Purge()
}
