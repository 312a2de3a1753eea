// Package cache provides a thread-safe, generic LRU cache.
//
// # Features
//
//   - Thread-safe operations with a single mutex
//   - Generic type parameters for compile-time type safety
//   - LRU (Least Recently Used) eviction policy
//   - Configurable capacity limit
//   - Optional eviction callbacks for resource cleanup
//
// # Usage
//
// The framework uses LRUCache for its opt-in request-serving caches: the
// compiled-template cache in core/view and the static-file modification-time
// cache in core/static. Both tolerate duplicate recomputation under
// concurrent writes; last write wins.
//
//	import "github.com/dmitrymomot/spark/core/cache"
//
//	// Create a cache with capacity of 100 items
//	c := cache.NewLRUCache[string, int64](100)
//
//	c.Put("assets/app.css", 1712345678)
//	if v, found := c.Get("assets/app.css"); found {
//		_ = v
//	}
//
// An eviction callback can release resources tied to cached values:
//
//	c := cache.NewLRUCache(10, cache.WithEvictionCallback(func(k string, f *os.File) {
//		_ = f.Close()
//	}))
package cache
