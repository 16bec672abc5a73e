package main

import (
	"context"
	"fmt"

	"erdash/internal/config"
	"erdash/internal/kv"
	"erdash/internal/observability"
	"erdash/internal/records"
	"erdash/internal/securestore"
	"erdash/internal/synth"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

const serviceName = "erdash"

// app holds the data layer wired from configuration for one command run.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	medium   kv.Medium
	secure   *securestore.Store
	records  *records.Store
	registry *prometheus.Registry
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := observability.InitLogger(serviceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.UsesDefaultSecret() {
		logger.Warn().Msg("ERDASH_SECRET_KEY not set: stored data is encrypted under the public default passphrase")
	}

	medium, err := kv.Open(ctx, cfg.Medium())
	if err != nil {
		return nil, fmt.Errorf("open %s medium: %w", cfg.StorageDriver, err)
	}
	registry := prometheus.NewRegistry()
	secure, err := securestore.New(medium, securestore.SecretKey(cfg.SecretKey),
		securestore.WithLogger(logger),
		securestore.WithMetrics(securestore.NewMetrics(registry)),
		securestore.WithKDFCost(cfg.KDFCost),
	)
	if err != nil {
		_ = kv.Close(medium)
		return nil, err
	}

	opts := records.DefaultOptions()
	opts.DemoMode = cfg.DemoMode
	opts.SeedPatients = cfg.SeedPatients
	opts.Generator = synth.New(synth.WithSeed(cfg.GeneratorSeed))
	opts.Logger = logger
	store, err := records.New(secure, opts)
	if err != nil {
		_ = kv.Close(medium)
		return nil, err
	}
	logger.Debug().Str("driver", string(medium.Driver())).Bool("demo_mode", cfg.DemoMode).Msg("data layer ready")
	return &app{
		cfg:      cfg,
		log:      logger,
		medium:   medium,
		secure:   secure,
		records:  store,
		registry: registry,
	}, nil
}

func (a *app) close() {
	if err := kv.Close(a.medium); err != nil {
		a.log.Warn().Err(err).Msg("close medium")
	}
}

// counters flattens the registry into "name{label=value,...}" -> value.
func (a *app) counters() (map[string]float64, error) {
	families, err := a.registry.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			if labels := m.GetLabel(); len(labels) > 0 {
				name += "{"
				for i, l := range labels {
					if i > 0 {
						name += ","
					}
					name += l.GetName() + "=" + l.GetValue()
				}
				name += "}"
			}
			out[name] = m.GetCounter().GetValue()
		}
	}
	return out, nil
}
