package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
)

type statsRepo interface {
	RecordResult(ctx context.Context, playerID, result string, moves int) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.PlayerStats, error)
}

// StatsService turns game-finished events into per-player win/loss/draw
// counters. The registry publishes each event exactly once, so counters are
// incremented exactly once per finished game.
type StatsService struct {
	logger    *slog.Logger
	statsRepo statsRepo
	events    <-chan entity.GameFinished
}

func NewStatsService(logger *slog.Logger, statsRepo statsRepo, events <-chan entity.GameFinished) *StatsService {
	return &StatsService{
		logger:    logger.With("component", "stats"),
		statsRepo: statsRepo,
		events:    events,
	}
}

// Run consumes finished events until the context is cancelled.
func (that *StatsService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-that.events:
			if !ok {
				return
			}

			if err := that.Apply(ctx, event); err != nil {
				that.logger.Error("failed to apply finished game", "gameID", event.GameID, "error", err)
			}
		}
	}
}

// Apply records one finished game for every participant.
func (that *StatsService) Apply(ctx context.Context, event entity.GameFinished) error {
	for playerID, moves := range event.MoveCounts {
		result := repository.ResultDraw
		if event.Status == entity.StatusCompleted {
			if playerID == event.WinnerID {
				result = repository.ResultWin
			} else {
				result = repository.ResultLoss
			}
		}

		if err := that.statsRepo.RecordResult(ctx, playerID, result, moves); err != nil {
			return fmt.Errorf("failed to record result for player %s: %w", playerID, err)
		}
	}

	that.logger.Info("stats updated", "gameID", event.GameID, "status", event.Status)

	return nil
}

func (that *StatsService) GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	stats, err := that.statsRepo.GetByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}

	return stats, nil
}

func (that *StatsService) Leaderboard(ctx context.Context, limit int) ([]entity.PlayerStats, error) {
	leaderboard, err := that.statsRepo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return leaderboard, nil
}
