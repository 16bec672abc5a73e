// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"strings"

	"erdash/internal/kv"

	"github.com/spf13/viper"
)

// DefaultSecretKey is the built-in storage passphrase. It is public, so any
// deployment that keeps it offers no confidentiality at rest.
const DefaultSecretKey = "marty-healthcare-secure-storage-key"

// Config holds every ERDASH_* setting.
type Config struct {
	Env           string `mapstructure:"ERDASH_ENV"`
	LogLevel      string `mapstructure:"ERDASH_LOG_LEVEL"`
	StorageDriver string `mapstructure:"ERDASH_STORAGE_DRIVER"`
	FSRoot        string `mapstructure:"ERDASH_FS_ROOT"`
	SQLitePath    string `mapstructure:"ERDASH_SQLITE_PATH"`
	PostgresDSN   string `mapstructure:"ERDASH_POSTGRES_DSN"`
	RedisURL      string `mapstructure:"ERDASH_REDIS_URL"`
	S3Bucket      string `mapstructure:"ERDASH_S3_BUCKET"`
	S3Region      string `mapstructure:"ERDASH_S3_REGION"`
	S3Endpoint    string `mapstructure:"ERDASH_S3_ENDPOINT"`
	S3PathStyle   bool   `mapstructure:"ERDASH_S3_PATH_STYLE"`
	SecretKey     string `mapstructure:"ERDASH_SECRET_KEY"`
	DemoMode      bool   `mapstructure:"ERDASH_DEMO_MODE"`
	SeedPatients  int    `mapstructure:"ERDASH_SEED_PATIENTS"`
	GeneratorSeed int64  `mapstructure:"ERDASH_GENERATOR_SEED"`
	KDFCost       int    `mapstructure:"ERDASH_KDF_COST"`
}

var defaults = map[string]any{
	"ERDASH_ENV":            "development",
	"ERDASH_LOG_LEVEL":      "info",
	"ERDASH_STORAGE_DRIVER": string(kv.DriverFilesystem),
	"ERDASH_FS_ROOT":        "./erdata",
	"ERDASH_SQLITE_PATH":    "./erdash.db",
	"ERDASH_POSTGRES_DSN":   "postgres://localhost/erdash?sslmode=disable",
	"ERDASH_REDIS_URL":      "redis://localhost:6379/0",
	"ERDASH_S3_BUCKET":      "",
	"ERDASH_S3_REGION":      "us-east-1",
	"ERDASH_S3_ENDPOINT":    "",
	"ERDASH_S3_PATH_STYLE":  false,
	"ERDASH_SECRET_KEY":     DefaultSecretKey,
	"ERDASH_DEMO_MODE":      true,
	"ERDASH_SEED_PATIENTS":  100,
	"ERDASH_GENERATOR_SEED": 0,
	"ERDASH_KDF_COST":       1 << 15,
}

// Load reads settings from the environment, then from .env in the working
// directory when present. Environment variables win.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
		// Bind env vars explicitly so Unmarshal picks them up
		_ = v.BindEnv(key)
	}

	// missing .env is fine
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	return cfg, nil
}

// Validate rejects settings the data layer cannot run with.
func (c *Config) Validate() error {
	known := false
	for _, d := range kv.Drivers() {
		if string(d) == c.StorageDriver {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("ERDASH_STORAGE_DRIVER %q is not one of %v", c.StorageDriver, kv.Drivers())
	}
	if kv.Driver(c.StorageDriver) == kv.DriverS3 && c.S3Bucket == "" {
		return fmt.Errorf("ERDASH_S3_BUCKET is required for the s3 driver")
	}
	if c.SeedPatients <= 0 {
		return fmt.Errorf("ERDASH_SEED_PATIENTS must be positive, got %d", c.SeedPatients)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("ERDASH_SECRET_KEY must not be empty")
	}
	if c.KDFCost < 2 || c.KDFCost&(c.KDFCost-1) != 0 {
		return fmt.Errorf("ERDASH_KDF_COST must be a power of two > 1, got %d", c.KDFCost)
	}
	return nil
}

// IsDev reports whether the process runs in development mode.
func (c *Config) IsDev() bool { return c.Env == "development" }

// UsesDefaultSecret reports whether the built-in passphrase is in effect.
func (c *Config) UsesDefaultSecret() bool { return c.SecretKey == DefaultSecretKey }

// Medium returns the kv driver configuration.
func (c *Config) Medium() kv.Config {
	return kv.Config{
		Driver:      kv.Driver(c.StorageDriver),
		FSRoot:      c.FSRoot,
		SQLitePath:  c.SQLitePath,
		PostgresDSN: c.PostgresDSN,
		RedisURL:    c.RedisURL,
		S3: kv.S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			Endpoint:  c.S3Endpoint,
			PathStyle: c.S3PathStyle,
		},
	}
}
