package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/banknotify/internal/common"
	"github.com/Veraticus/banknotify/internal/config"
	"github.com/Veraticus/banknotify/internal/engine"
	"github.com/Veraticus/banknotify/internal/registry"
	"github.com/Veraticus/banknotify/internal/service"
	"github.com/Veraticus/banknotify/internal/storage"
)

const dateLayout = "2006-01-02"

// loadSettings reads the settings from the global viper instance.
func loadSettings() (config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Settings{}, common.NewUserError("Invalid configuration", err)
	}
	return settings, nil
}

// loadRegistry returns the built-in registry, or the override file at path
// merged over it when path is set.
func loadRegistry(path string) (*registry.Registry, error) {
	if path == "" {
		return registry.Default(), nil
	}
	reg, err := registry.Load(config.ExpandPath(path))
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("Could not load registry %s", path), err)
	}
	return reg, nil
}

// initStorage opens the verdict log and brings its schema up to date.
func initStorage(ctx context.Context, settings config.Settings) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(settings.Database.Path)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newPipeline builds the pipeline from settings. A nil recorder leaves
// verdicts unrecorded.
func newPipeline(settings config.Settings, recorder service.Recorder, opts ...engine.Option) (*engine.Pipeline, error) {
	reg, err := loadRegistry(settings.Registry.Path)
	if err != nil {
		return nil, err
	}
	if recorder != nil {
		opts = append(opts, engine.WithRecorder(recorder))
	}
	return engine.New(reg, settings, opts...), nil
}

// parseDate reads a YYYY-MM-DD flag value as local midnight. Empty input
// yields the zero time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, common.NewUserError(fmt.Sprintf("Invalid date %q (use YYYY-MM-DD)", value), err)
	}
	return t, nil
}

// dayRange returns [midnight, next midnight) of the local day containing t.
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
