package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driven/analysis/rest"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docaudit-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/docaudit-cli/internal/core/domain"
	"github.com/custodia-labs/docaudit-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docaudit-cli/internal/core/services"
	"github.com/custodia-labs/docaudit-cli/internal/logger"
	"github.com/custodia-labs/docaudit-cli/internal/resilience"
)

// wire builds the adapters and services for one command invocation.
func wire(_ context.Context, opts cli.Options) (func(), error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config directory: %w", err)
		}
		configDir = dir
	}
	logger.Debug("config directory: %s", configDir)

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if opts.ServerURL != "" {
		if err := domain.ValidateServiceURL(opts.ServerURL); err != nil {
			return nil, fmt.Errorf("--server: %w", err)
		}
		settings.Service.BaseURL = opts.ServerURL
	}

	client := rest.NewClient(rest.Config{
		BaseURL:   settings.Service.BaseURL,
		Timeout:   settings.Service.Timeout(),
		QueryRate: settings.Service.QueryRate,
		Guard:     resilience.NewGuard(resilience.FromSettings(settings.Breaker)),
	})
	logger.Debug("analysis service: %s", client.BaseURL())

	history, closeHistory, err := openHistory(configDir, opts.NoHistory || !settings.History.Enabled)
	if err != nil {
		return nil, err
	}

	workflow := services.NewWorkflowService(client,
		services.WithHistory(history),
		services.WithDiscardStale(settings.Workflow.DiscardStale),
	)

	cli.SetSettingsService(settingsService)
	cli.SetWorkflowService(workflow)
	cli.SetFileService(services.NewFileService(filesystem.NewLoader()))
	cli.SetHealthService(services.NewHealthService(client))
	cli.SetHistoryService(services.NewHistoryService(history))

	return closeHistory, nil
}

// openHistory opens the SQLite history under configDir, or an in-memory one
// when persistence is off.
func openHistory(configDir string, inMemory bool) (driven.HistoryStore, func(), error) {
	if inMemory {
		logger.Debug("history kept in memory")
		return memory.NewHistoryStore(), func() {}, nil
	}

	store, err := sqlite.NewStore(filepath.Join(configDir, "data"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	logger.Debug("history database: %s", store.Path())

	return store.HistoryStore(), func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing history: %v", err)
		}
	}, nil
}

func newDropFolder(dir string, debounce time.Duration) cli.DropFolder {
	return filesystem.NewWatcher(dir, debounce)
}
