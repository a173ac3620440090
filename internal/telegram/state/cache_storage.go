package state

import (
	"context"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheStorage keeps chat states in go-cache. Entries expire ttl after their
// last update, except conversations with an analysis in flight.
type CacheStorage struct {
	items *cache.Cache
	ttl   time.Duration
}

// NewCacheStorage creates a storage whose janitor purges expired entries
// every cleanupInterval
func NewCacheStorage(ttl, cleanupInterval time.Duration) *CacheStorage {
	return &CacheStorage{
		items: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (c *CacheStorage) Get(_ context.Context, userID int64) (*ChatState, error) {
	v, ok := c.items.Get(key(userID))
	if !ok {
		return nil, ErrNotFound
	}
	s := v.(ChatState)
	return &s, nil
}

func (c *CacheStorage) Set(_ context.Context, s *ChatState) error {
	ttl := c.ttl
	if s.Step == StepProcessing {
		ttl = cache.NoExpiration
	}
	c.items.Set(key(s.UserID), *s, ttl)
	return nil
}

func (c *CacheStorage) Delete(_ context.Context, userID int64) error {
	c.items.Delete(key(userID))
	return nil
}

// Expire drops idle conversations updated before the given time, on top of
// the janitor's own TTL purge
func (c *CacheStorage) Expire(before time.Time) int {
	removed := 0
	for k, item := range c.items.Items() {
		s, ok := item.Object.(ChatState)
		if !ok || s.Step == StepProcessing || !s.UpdatedAt.Before(before) {
			continue
		}
		c.items.Delete(k)
		removed++
	}
	return removed
}

// Len returns the number of unexpired conversations
func (c *CacheStorage) Len() int {
	return c.items.ItemCount()
}

func key(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
