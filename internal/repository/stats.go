package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultDraw = "draw"
)

type StatsRepository interface {
	Init(ctx context.Context) error
	RecordResult(ctx context.Context, playerID, result string, moves int) error
	GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error)
	Leaderboard(ctx context.Context, limit int) ([]entity.PlayerStats, error)
}

type dbStats struct {
	conn *sql.DB
}

func NewStatsRepository(conn *sql.DB) StatsRepository {
	return &dbStats{
		conn: conn,
	}
}

func (that *dbStats) Init(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS player_stats (
		player_id TEXT PRIMARY KEY,
		wins      INTEGER NOT NULL DEFAULT 0,
		losses    INTEGER NOT NULL DEFAULT 0,
		draws     INTEGER NOT NULL DEFAULT 0,
		moves     INTEGER NOT NULL DEFAULT 0
	)`

	if _, err := that.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *dbStats) RecordResult(ctx context.Context, playerID, result string, moves int) error {
	var wins, losses, draws int

	switch result {
	case ResultWin:
		wins = 1
	case ResultLoss:
		losses = 1
	case ResultDraw:
		draws = 1
	default:
		return fmt.Errorf("unknown result %q for player %s", result, playerID)
	}

	query := `INSERT INTO player_stats (player_id, wins, losses, draws, moves)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			wins   = wins + excluded.wins,
			losses = losses + excluded.losses,
			draws  = draws + excluded.draws,
			moves  = moves + excluded.moves`

	if _, err := that.conn.ExecContext(ctx, query, playerID, wins, losses, draws, moves); err != nil {
		return fmt.Errorf("can't record result: %w", err)
	}

	return nil
}

func (that *dbStats) GetByPlayerID(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	query := `SELECT player_id, wins, losses, draws, moves FROM player_stats WHERE player_id = ?`

	var stats entity.PlayerStats

	row := that.conn.QueryRowContext(ctx, query, playerID)
	err := row.Scan(&stats.PlayerID, &stats.Wins, &stats.Losses, &stats.Draws, &stats.Moves)

	// a player without finished games has no row yet; that is zero counters,
	// not an error
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.PlayerStats{PlayerID: playerID}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("can't get stats for player %s: %w", playerID, err)
	}

	return &stats, nil
}

func (that *dbStats) Leaderboard(ctx context.Context, limit int) ([]entity.PlayerStats, error) {
	query := `SELECT player_id, wins, losses, draws, moves FROM player_stats
		ORDER BY wins DESC, draws DESC, player_id ASC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query leaderboard: %w", err)
	}
	defer rows.Close()

	var leaderboard []entity.PlayerStats
	for rows.Next() {
		var stats entity.PlayerStats
		if err = rows.Scan(&stats.PlayerID, &stats.Wins, &stats.Losses, &stats.Draws, &stats.Moves); err != nil {
			return nil, fmt.Errorf("can't scan leaderboard row: %w", err)
		}
		leaderboard = append(leaderboard, stats)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard rows failed: %w", err)
	}

	return leaderboard, nil
}
