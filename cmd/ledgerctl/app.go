package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/ventureboard/backend/config"
	"github.com/ventureboard/backend/internal/infra/db"
	"github.com/ventureboard/backend/internal/infra/dependency"
)

// app opens the database on first use so -help works without one.
type app struct {
	useCases *dependency.UseCases
	closers  []func()
	out      io.Writer
}

func (a *app) open() (*dependency.UseCases, error) {
	if a.useCases != nil {
		return a.useCases, nil
	}

	cfg := config.Load()

	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = database.Close() })

	// Maintenance writes must invalidate cached consolidations the API serves
	var redisClient *redis.Client
	if cfg.Features.StatementCache {
		redisClient, err = db.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis unavailable, cached consolidations will expire on their own", "error", err)
			redisClient = nil
		} else {
			a.closers = append(a.closers, func() { _ = redisClient.Close() })
		}
	}

	a.useCases = dependency.NewUseCases(cfg, database.DB(), dependency.Options{
		Redis:      redisClient,
		Registerer: prometheus.NewRegistry(),
	})
	return a.useCases, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	a.useCases = nil
}

func (a *app) writer() io.Writer {
	if a.out != nil {
		return a.out
	}
	return os.Stdout
}

// print writes v as indented JSON.
func (a *app) print(v any) error {
	encoder := json.NewEncoder(a.writer())
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func parseID(name, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, fmt.Errorf("-%s is required", name)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid -%s %q: %w", name, value, err)
	}
	return id, nil
}
