package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/csvbind/pkg/config"
)

type envFileConfig struct {
	Name         string   `env:"CSVBIND_TEST_NAME"`
	Count        int      `env:"CSVBIND_TEST_COUNT"`
	Tags         []string `env:"CSVBIND_TEST_TAGS" envSeparator:","`
	Quoted       string   `env:"CSVBIND_TEST_QUOTED"`
	OnlyOverride string   `env:"CSVBIND_TEST_ONLY_OVERRIDE"`
}

type defaultsConfig struct {
	Text string `env:"CSVBIND_TEST_DEFAULT_TEXT" envDefault:"fallback"`
	Num  int    `env:"CSVBIND_TEST_DEFAULT_NUM" envDefault:"42"`
}

type singletonConfig struct {
	Value string `env:"CSVBIND_TEST_SINGLETON" envDefault:"first"`
}

type requiredConfig struct {
	Value string `env:"CSVBIND_TEST_REQUIRED,required"`
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "CSVBIND_TEST_DEFAULT_TEXT", "CSVBIND_TEST_DEFAULT_NUM")
	config.ResetCache()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "fallback", cfg.Text)
	assert.Equal(t, 42, cfg.Num)
}

func TestLoad_CachedPerType(t *testing.T) {
	config.ResetCache()
	t.Setenv("CSVBIND_TEST_SINGLETON", "first")

	var first singletonConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("CSVBIND_TEST_SINGLETON", "second")

	var cached singletonConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "first", cached.Value)

	var reloaded singletonConfig
	require.NoError(t, config.Reload(&reloaded))
	assert.Equal(t, "second", reloaded.Value)
}

func TestLoad_RequiredMissingThenSet(t *testing.T) {
	unsetEnv(t, "CSVBIND_TEST_REQUIRED")
	config.ResetCache()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)

	t.Setenv("CSVBIND_TEST_REQUIRED", "present")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "present", cfg.Value)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *defaultsConfig
	assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	assert.Panics(t, func() { config.MustLoad(cfg) })
}

func TestLoadEnv_Files(t *testing.T) {
	unsetEnv(t,
		"CSVBIND_TEST_NAME",
		"CSVBIND_TEST_COUNT",
		"CSVBIND_TEST_TAGS",
		"CSVBIND_TEST_QUOTED",
		"CSVBIND_TEST_ONLY_OVERRIDE",
	)
	config.ResetCache()

	require.NoError(t, config.LoadEnv("testdata/.env.base", "testdata/.env.override"))
	t.Cleanup(func() {
		for _, k := range []string{"CSVBIND_TEST_NAME", "CSVBIND_TEST_COUNT", "CSVBIND_TEST_TAGS", "CSVBIND_TEST_QUOTED", "CSVBIND_TEST_ONLY_OVERRIDE"} {
			_ = os.Unsetenv(k)
		}
	})

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "override", cfg.Name)
	assert.Equal(t, 10, cfg.Count)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.Tags)
	assert.Equal(t, "quoted value", cfg.Quoted)
	assert.Equal(t, "yes", cfg.OnlyOverride)
}

func TestLoadEnv_MissingFile(t *testing.T) {
	err := config.LoadEnv("testdata/does-not-exist.env")
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	assert.Panics(t, func() { config.MustLoadEnv("testdata/does-not-exist.env") })
}

func TestSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		unsetEnv(t,
			"CSVBIND_LOCALE",
			"CSVBIND_LOG_LEVEL",
			"CSVBIND_LOG_FORMAT",
			"CSVBIND_UNIQUE_STORE",
			"CSVBIND_CONCURRENCY",
			"CSVBIND_GROUPS",
			"CSVBIND_REDIS_TTL",
		)

		var s config.Settings
		require.NoError(t, config.Reload(&s))
		require.NoError(t, s.Validate())

		assert.Equal(t, "en", s.Locale)
		assert.Equal(t, config.StoreMemory, s.UniqueStore)
		assert.False(t, s.UsesRedis())
		assert.Equal(t, 4, s.Concurrency)
		assert.Empty(t, s.Groups)
		assert.Equal(t, 24*time.Hour, s.Redis.TTL)
		assert.Len(t, s.LoggerOptions(), 2)
	})

	t.Run("from environment", func(t *testing.T) {
		t.Setenv("CSVBIND_LOCALE", "ja")
		t.Setenv("CSVBIND_UNIQUE_STORE", "Redis")
		t.Setenv("CSVBIND_GROUPS", "import,strict")
		t.Setenv("CSVBIND_LOG_LEVEL", "debug")
		t.Setenv("CSVBIND_REDIS_TTL", "1h")

		var s config.Settings
		require.NoError(t, config.Reload(&s))
		require.NoError(t, s.Validate())

		assert.Equal(t, "ja", s.Locale)
		assert.True(t, s.UsesRedis())
		assert.Equal(t, []string{"import", "strict"}, s.Groups)
		assert.Equal(t, time.Hour, s.Redis.TTL)
	})

	t.Run("validate collects every problem", func(t *testing.T) {
		s := config.Settings{
			LogLevel:    "loud",
			LogFormat:   "xml",
			UniqueStore: "disk",
			Concurrency: 0,
		}

		err := s.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrInvalidSettings)
		assert.Contains(t, err.Error(), "log level")
		assert.Contains(t, err.Error(), "log format")
		assert.Contains(t, err.Error(), `unique store "disk"`)
		assert.Contains(t, err.Error(), "concurrency 0")
		assert.Empty(t, s.LoggerOptions())
	})
}
