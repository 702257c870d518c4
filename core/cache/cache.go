package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with optional expiry and tags.
type Cache struct {
	m        sync.Map // key -> cacheItem
	tagIndex sync.Map // tag -> *sync.Map of keys
	now      func() time.Time
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{now: time.Now}
}

// NewWithClock creates a Cache whose expiry checks use now.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{now: now}
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time // zero means no expiration
}

// Set stores value under key. A ttl of 0 never expires.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration, tags ...string) {
	item := cacheItem{value: value}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}
	c.m.Store(key, item)
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		val.(*sync.Map).Store(key, struct{}{})
	}
}

// Get returns the live value for key.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if !item.expiresAt.IsZero() && !c.now().Before(item.expiresAt) {
		c.m.Delete(key)
		return nil, false
	}
	return item.value, true
}

// GetString is Get for string values.
func (c *Cache) GetString(key string) (string, bool) {
	v, ok := c.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c *Cache) GetOrDefault(key string, def interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

func (c *Cache) Delete(key string) {
	c.m.Delete(key)
	c.tagIndex.Range(func(_, val interface{}) bool {
		val.(*sync.Map).Delete(key)
		return true
	})
}

// KeysByTag returns the keys currently assigned to tag.
func (c *Cache) KeysByTag(tag string) []string {
	var keys []string
	if val, ok := c.tagIndex.Load(tag); ok {
		val.(*sync.Map).Range(func(key, _ interface{}) bool {
			keys = append(keys, key.(string))
			return true
		})
	}
	return keys
}

// DeleteByTag deletes all entries assigned to tag.
func (c *Cache) DeleteByTag(tag string) {
	val, ok := c.tagIndex.LoadAndDelete(tag)
	if !ok {
		return
	}
	val.(*sync.Map).Range(func(key, _ interface{}) bool {
		c.m.Delete(key)
		return true
	})
}
