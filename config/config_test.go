package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/weave/config"
)

func TestLoad(t *testing.T) {
	t.Run("reads_environment", func(t *testing.T) {
		type readCfg struct {
			Addr string `env:"WEAVE_TEST_ADDR" envDefault:":8080"`
		}

		t.Setenv("WEAVE_TEST_ADDR", ":9090")

		var cfg readCfg
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
	})

	t.Run("applies_defaults", func(t *testing.T) {
		type defaultCfg struct {
			Addr string `env:"WEAVE_TEST_UNSET_ADDR" envDefault:":8080"`
		}

		var cfg defaultCfg
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
	})

	t.Run("fails_on_missing_required", func(t *testing.T) {
		type requiredCfg struct {
			Token string `env:"WEAVE_TEST_TOKEN,required"`
		}

		var cfg requiredCfg
		assert.Error(t, config.Load(&cfg))
	})

	t.Run("caches_per_type", func(t *testing.T) {
		type cachedCfg struct {
			Name string `env:"WEAVE_TEST_NAME" envDefault:"first"`
		}

		t.Setenv("WEAVE_TEST_NAME", "first")

		var a cachedCfg
		require.NoError(t, config.Load(&a))

		// A later environment change must not be visible: the type was
		// already parsed and cached.
		t.Setenv("WEAVE_TEST_NAME", "second")

		var b cachedCfg
		require.NoError(t, config.Load(&b))
		assert.Equal(t, a, b)
		assert.Equal(t, "first", b.Name)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics_on_failure", func(t *testing.T) {
		type badCfg struct {
			Token string `env:"WEAVE_TEST_MUST_TOKEN,required"`
		}

		var cfg badCfg
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("populates_on_success", func(t *testing.T) {
		type goodCfg struct {
			Level string `env:"WEAVE_TEST_LEVEL" envDefault:"info"`
		}

		var cfg goodCfg
		assert.NotPanics(t, func() { config.MustLoad(&cfg) })
		assert.Equal(t, "info", cfg.Level)
	})
}
