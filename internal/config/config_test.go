package config

import (
	"os"
	"path/filepath"
	"testing"

	"erdash/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "fs", cfg.StorageDriver)
	assert.Equal(t, "./erdata", cfg.FSRoot)
	assert.Equal(t, DefaultSecretKey, cfg.SecretKey)
	assert.True(t, cfg.DemoMode)
	assert.Equal(t, 100, cfg.SeedPatients)
	assert.Equal(t, int64(0), cfg.GeneratorSeed)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.True(t, cfg.IsDev())
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("ERDASH_STORAGE_DRIVER", " SQLite ")
	t.Setenv("ERDASH_DEMO_MODE", "false")
	t.Setenv("ERDASH_SEED_PATIENTS", "250")
	t.Setenv("ERDASH_GENERATOR_SEED", "42")
	t.Setenv("ERDASH_SECRET_KEY", "rotated")
	t.Setenv("ERDASH_S3_PATH_STYLE", "true")

	cfg, err := load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.False(t, cfg.DemoMode)
	assert.Equal(t, 250, cfg.SeedPatients)
	assert.Equal(t, int64(42), cfg.GeneratorSeed)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.True(t, cfg.S3PathStyle)

	m := cfg.Medium()
	assert.Equal(t, kv.DriverSQLite, m.Driver)
	assert.Equal(t, "./erdash.db", m.SQLitePath)
	assert.True(t, m.S3.PathStyle)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ERDASH_STORAGE_DRIVER=memory\nERDASH_LOG_LEVEL=debug\n"), 0o600))
	cfg, err := load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := load(missingEnvFile(t))
		require.NoError(t, err)
		return cfg
	}
	cases := map[string]func(c *Config){
		"unknown driver":    func(c *Config) { c.StorageDriver = "tape" },
		"s3 without bucket": func(c *Config) { c.StorageDriver = "s3" },
		"zero seed count":   func(c *Config) { c.SeedPatients = 0 },
		"empty secret":      func(c *Config) { c.SecretKey = "" },
		"bad kdf cost":      func(c *Config) { c.KDFCost = 1000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := base()
	cfg.StorageDriver = "s3"
	cfg.S3Bucket = "bucket"
	assert.NoError(t, cfg.Validate())
}
