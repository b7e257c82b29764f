package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/service"
	"github.com/rocketscienceinc/tictactoe-arena/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type gameRegistry interface {
	CreateGame(ctx context.Context, name string) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error)
	MakeMove(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, *entity.Move, error)
	DeleteGame(ctx context.Context, gameID string) error
	GetGameByID(ctx context.Context, gameID string) (*entity.Game, error)
	ListGames(ctx context.Context, status string) ([]*entity.Game, error)
	GetValidMoves(ctx context.Context, gameID string) ([]entity.Cell, error)
}

type playerService interface {
	Register(ctx context.Context, input service.RegisterPlayerInput) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type statsService interface {
	GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.PlayerStats, error)
}

type Server struct {
	logger   *slog.Logger
	registry gameRegistry
	players  playerService
	stats    statsService
}

func New(logger *slog.Logger, registry gameRegistry, players playerService, stats statsService) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		registry: registry,
		players:  players,
		stats:    stats,
	}
}

func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

func (that *Server) routes() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/ping", handlers.PingHandler)

	router.Route("/players", func(r chi.Router) {
		r.Post("/", that.handleRegisterPlayer)
		r.Get("/{playerID}", that.handleGetPlayer)
		r.Get("/{playerID}/stats", that.handleGetPlayerStats)
	})

	router.Route("/games", func(r chi.Router) {
		r.Post("/", that.handleCreateGame)
		r.Get("/", that.handleListGames)
		r.Get("/{gameID}", that.handleGetGame)
		r.Delete("/{gameID}", that.handleDeleteGame)
		r.Post("/{gameID}/join", that.handleJoinGame)
		r.Post("/{gameID}/moves", that.handleMakeMove)
		r.Get("/{gameID}/moves", that.handleGetValidMoves)
	})

	router.Get("/leaderboard", that.handleLeaderboard)

	return router
}
