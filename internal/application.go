package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-arena/internal/config"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/registry"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-arena/internal/service"
	"github.com/rocketscienceinc/tictactoe-arena/transport/rest"
)

const finishedEventsBuffer = 64

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var (
		gameRepo   repository.GameRepository
		playerRepo repository.PlayerRepository
	)

	if redisAddr := conf.Redis.GetRedisAddr(); redisAddr != "" {
		redisStorage, err := storage.NewRedisStorage(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		gameRepo = repository.NewGameRepository(redisStorage.Connection)
		playerRepo = repository.NewPlayerRepository(redisStorage.Connection)
	} else {
		log.Info("No redis address configured, using in-memory stores")
		gameRepo = repository.NewMemoryGameRepository()
		playerRepo = repository.NewMemoryPlayerRepository()
	}

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	statsRepo := repository.NewStatsRepository(sqliteStorage.Connection)
	if err = statsRepo.Init(ctx); err != nil {
		return fmt.Errorf("could not init stats storage: %w", err)
	}

	events := make(chan entity.GameFinished, finishedEventsBuffer)

	gameRegistry := registry.New(logger, gameRepo, playerRepo, events)
	playerService := service.NewPlayerService(playerRepo)
	statsService := service.NewStatsService(logger, statsRepo, events)

	go statsService.Run(ctx)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameRegistry, playerService, statsService)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
