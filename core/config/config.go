package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	// typeCache holds one loaded value per configuration type.
	typeCache sync.Map // reflect.Type -> any
)

// Load populates cfg from environment variables, loading .env files on first
// use. Each configuration type is parsed once per process; later calls for
// the same type return the cached value. Concurrent first loads may parse
// twice; last write wins, which is harmless for read-only configuration.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is the normal case outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf(*cfg)
	if cached, ok := typeCache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	typeCache.Store(key, *cfg)
	return nil
}

// MustLoad is Load that panics on failure, for application startup paths.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
