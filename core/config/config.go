package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNilConfig is returned when Load receives a nil pointer.
var ErrNilConfig = errors.New("config: nil config pointer")

var (
	loadDotenv sync.Once
	cache      sync.Map // reflect.Type -> any (T value)
	mu         sync.Mutex
)

// Load populates cfg from the environment. The first successful load of a
// type is cached and later calls copy the cached value into cfg.
// A .env file in the working directory is read once, if present; variables
// already set in the environment take precedence.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	key := reflect.TypeFor[T]()
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	// Another goroutine may have loaded it while we waited.
	if v, ok := cache.Load(key); ok {
		*cfg = v.(T)
		return nil
	}

	loadDotenv.Do(func() {
		_ = godotenv.Load()
	})

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("config: parse %s: %w", key, err)
	}

	cache.Store(key, loaded)
	*cfg = loaded
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// reset clears the cache. Tests only.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	cache.Range(func(k, _ any) bool {
		cache.Delete(k)
		return true
	})
}
