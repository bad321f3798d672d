package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// cacheItem guarda el valor serializado y el tiempo de expiración.
type cacheItem struct {
	value     []byte // Guardamos bytes para comportarnos igual que Redis.
	expiresAt time.Time
}

// InMemoryCache implementa Cache con un mapa protegido por RWMutex.
// Se usa cuando Redis no está disponible.
type InMemoryCache struct {
	store      map[string]cacheItem
	mu         sync.RWMutex
	defaultTTL time.Duration
	stopChan   chan struct{}
	stopOnce   sync.Once
}

var _ Cache = (*InMemoryCache)(nil)

// NewInMemoryCache crea la caché y arranca la limpieza periódica de claves expiradas.
func NewInMemoryCache(defaultTTL, cleanupInterval time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		store:      make(map[string]cacheItem),
		defaultTTL: defaultTTL,
		stopChan:   make(chan struct{}),
	}

	go c.cleanupLoop(cleanupInterval)

	return c
}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.store[key]
	if !ok {
		return false, nil
	}

	// Expirado: se trata como miss.
	if time.Now().UTC().After(item.expiresAt) {
		return false, nil
	}

	if err := json.Unmarshal(item.value, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (c *InMemoryCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := c.defaultTTL
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}

	c.store[key] = cacheItem{
		value:     data,
		expiresAt: time.Now().UTC().Add(ttl),
	}

	return nil
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.store, key)
	return nil
}

// Stop detiene la goroutine de limpieza. Llamar al apagar la aplicación.
func (c *InMemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}

func (c *InMemoryCache) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now().UTC()
			c.mu.Lock()
			for key, item := range c.store {
				if now.After(item.expiresAt) {
					delete(c.store, key)
				}
			}
			c.mu.Unlock()
		case <-c.stopChan:
			return
		}
	}
}
