// Package config provides type-safe environment variable loading with
// per-type caching using generics. A .env file in the working directory is
// loaded once on first use; parsing is delegated to caarlos0/env struct tags.
//
//	type ServerConfig struct {
//		Addr string `env:"ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
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
	cache      sync.Map // reflect.Type -> parsed value
)

// Load populates cfg from the environment. Each configuration type is parsed
// once per process; subsequent calls for the same type return the cached
// value, so two loads of one type always agree.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env files are fine; the environment wins anyway.
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(*cfg)
	if v, ok := cache.Load(typ); ok {
		*cfg = v.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}

	v, _ := cache.LoadOrStore(typ, *cfg)
	*cfg = v.(T)
	return nil
}

// MustLoad is Load that panics on failure, for use during startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
