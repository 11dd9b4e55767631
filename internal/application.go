package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-cli/internal/config"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository"
	"github.com/rocketscienceinc/tictactoe-cli/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-cli/transport/console"
)

// RunApp - wires the configured storage backend to the console
// transport and runs the menu loop until exit or SIGINT/SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	repo, closeStorage, err := buildRepository(ctx, conf)
	if err != nil {
		return fmt.Errorf("could not set up storage: %w", err)
	}

	defer func() {
		if closeErr := closeStorage(); closeErr != nil {
			log.Error("could not close storage", "error", closeErr)
		}
	}()

	server := console.New(logger, repo, os.Stdin, os.Stdout)

	if err = server.Start(ctx); err != nil {
		return fmt.Errorf("console session failed: %w", err)
	}

	return nil
}

// buildRepository - selects the save backend from config. The file
// backend is the default and needs no connection.
func buildRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Backend {
	case config.BackendFile:
		return repository.NewFileRepository(conf.SaveFile), noop, nil

	case config.BackendRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Storage.Redis.GetRedisAddr())
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewRedisRepository(redisStorage.Connection), redisStorage.Close, nil

	case config.BackendSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteRepository(sqliteStorage.Connection), sqliteStorage.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %q", conf.Storage.Backend)
	}
}
