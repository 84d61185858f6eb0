package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/verte-zerg/calmkeys/internal/assessment"
	"github.com/verte-zerg/calmkeys/internal/coach"
	"github.com/verte-zerg/calmkeys/internal/config"
	"github.com/verte-zerg/calmkeys/internal/logging"
	"github.com/verte-zerg/calmkeys/internal/progression"
	"github.com/verte-zerg/calmkeys/internal/store"
)

// app holds the services for one profile.
type app struct {
	log     *zap.Logger
	assess  *assessment.Service
	levels  *progression.System
	coach   *coach.Coach
	closers []io.Closer
}

func loadFileConfig() (config.FileConfig, error) {
	if err := config.LoadDotEnv(config.DefaultEnvPath(), ".env"); err != nil {
		return config.FileConfig{}, err
	}
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	config.ApplyEnv(&fileCfg, nil)
	return fileCfg, nil
}

func openKV(ctx context.Context, st config.Storage) (store.KV, io.Closer, error) {
	if err := st.Validate(); err != nil {
		return nil, nil, err
	}
	switch st.Backend {
	case "redis":
		r, err := store.NewRedis(ctx, store.RedisOptions{
			Addr:     st.RedisAddr,
			Password: st.RedisPassword,
			DB:       st.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, r, nil
	case "memory":
		return store.NewMemory(), nil, nil
	default:
		db, err := store.Open(st.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db: %w", err)
		}
		return db, db, nil
	}
}

func openApp(ctx context.Context, fileCfg config.FileConfig, profile string) (*app, error) {
	logCfg := fileCfg.ResolveLog()
	log, logCloser, err := logging.New(logging.Options{Level: logCfg.Level, File: logCfg.File})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	a := &app{log: log.With(zap.String("profile", profile)), closers: []io.Closer{logCloser}}

	st := fileCfg.ResolveStorage()
	kv, kvCloser, err := openKV(ctx, st)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if kvCloser != nil {
		a.closers = append([]io.Closer{kvCloser}, a.closers...)
	}
	kv = store.WithPrefix(kv, profile)
	a.log.Debug("storage opened", zap.String("backend", st.Backend))

	a.assess = assessment.New(ctx, kv, assessment.WithLogger(a.log))
	a.levels = progression.New(ctx, kv, progression.WithLogger(a.log))
	a.coach = coach.New(a.assess, a.levels, a.log)
	return a, nil
}

// Close releases the store first and the log file last.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
