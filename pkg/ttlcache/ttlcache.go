package ttlcache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache потокобезопасный LRU-кэш с ограничением размера и временем жизни записей.
// Кэш создаётся и передаётся явно тем, кто им владеет; глобального состояния нет.
type Cache[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
	mu  sync.Mutex // сериализует GetOrCreate
}

// New создает кэш на size записей, каждая живёт ttl.
// size <= 0 означает отсутствие ограничения по размеру.
func New[K comparable, V any](size int, ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		lru: expirable.NewLRU[K, V](size, nil, ttl),
	}
}

// Get возвращает значение, если оно есть и не истекло
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Set сохраняет значение, вытесняя самую старую запись при переполнении
func (c *Cache[K, V]) Set(key K, value V) {
	c.lru.Add(key, value)
}

// GetOrCreate возвращает значение из кэша или создает и сохраняет новое
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.lru.Get(key); ok {
		return v
	}
	v := create()
	c.lru.Add(key, v)
	return v
}

// Invalidate удаляет запись
func (c *Cache[K, V]) Invalidate(key K) {
	c.lru.Remove(key)
}

// Purge очищает кэш
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}

// Len возвращает количество живых записей
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}
