// Package cache, thread-safe generic bir in-memory TTL cache sağlar.
//
// Filo'da container durum sorguları bu cache'ten geçer: dashboard
// polling'i her birkaç saniyede aynı client'ları sorgular, her istekte
// Docker daemon'a inspect çağrısı yapmak gereksiz yük olur.
//
// Her entry bir son kullanma zamanı taşır; süresi dolan entry Get'te
// miss sayılır, fiziksel silme arka plan goroutine'inde yapılır.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, K→V eşlemesini TTL ile tutar. New ile oluşturulmalıdır.
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration
	stopCh  chan struct{}
}

// New, cache'i oluşturur ve süresi dolan entry'leri silen temizlik
// goroutine'ini başlatır. cleanupInterval, map'in fiziksel temizlenme
// sıklığıdır — ttl'den büyük tutmak map'i gereksiz büyütür.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCh:
				return
			}
		}
	}()

	return c
}

// Get, süresi dolmamış bir entry varsa (value, true) döner.
// Süresi dolan entry burada silinmez — RLock yeterli kalsın.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set, değeri TTL ile yazar.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete, key'i siler. Durum dışarıdan değiştiğinde (ör: container
// yeniden provision edildiğinde) invalidation için kullanılır.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len, süresi dolmuşlar dahil toplam entry sayısını döner.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close, temizlik goroutine'ini durdurur.
func (c *TTLCache[K, V]) Close() {
	close(c.stopCh)
}

func (c *TTLCache[K, V]) evictExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
