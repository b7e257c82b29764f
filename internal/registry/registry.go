// Package registry owns the collection of game aggregates. It serializes
// mutations per game id, delegates every rules decision to the engine and
// publishes a finished event once per game reaching a terminal status.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/engine"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type gameStore interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.Game, error)
}

type playerDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Registry struct {
	logger  *slog.Logger
	store   gameStore
	players playerDirectory
	locks   *keyedMutex
	events  chan<- entity.GameFinished
}

func New(logger *slog.Logger, store gameStore, players playerDirectory, events chan<- entity.GameFinished) *Registry {
	return &Registry{
		logger:  logger.With("component", "registry"),
		store:   store,
		players: players,
		locks:   newKeyedMutex(),
		events:  events,
	}
}

// CreateGame allocates a fresh waiting game. An empty name gets a generated
// placeholder; an oversized one is rejected.
func (that *Registry) CreateGame(ctx context.Context, name string) (*entity.Game, error) {
	if utf8.RuneCountInString(name) > entity.MaxNameLength {
		return nil, fmt.Errorf("%w: name longer than %d characters", apperror.ErrValidation, entity.MaxNameLength)
	}

	id := uuid.NewString()
	if name == "" {
		name = "game-" + strings.Split(id, "-")[0]
	}

	game := entity.NewGame(id, name)
	if err := that.store.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID, "name", game.Name)

	return game, nil
}

// JoinGame adds a player to a waiting game. The second join activates the
// game, with the first-joined player moving first.
func (that *Registry) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	// Player lookup is I/O and does not depend on game state, so it stays
	// outside the critical section.
	exists, err := that.players.Exists(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to check player: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrPlayerNotFound, playerID)
	}

	that.locks.Lock(gameID)
	defer that.locks.Unlock(gameID)

	game, err := that.store.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if !game.IsWaiting() {
		if game.IsFinished() {
			return nil, apperror.ErrGameFinished
		}
		return nil, apperror.ErrGameInProgress
	}

	if game.HasPlayer(playerID) {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrAlreadyJoined, gameID)
	}

	if len(game.Players) >= entity.MaxPlayers {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameFull, gameID)
	}

	game.Players = append(game.Players, playerID)
	if len(game.Players) == entity.MaxPlayers {
		game.Status = entity.StatusActive
		game.CurrentPlayerID = game.Players[0]
	}
	game.UpdatedAt = time.Now().UTC()

	if err = that.store.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Info("player joined", "gameID", game.ID, "playerID", playerID, "status", game.Status)

	return game, nil
}

// MakeMove applies exactly one move: it validates turn ownership, delegates
// legality to the engine, appends the move record and settles the outcome.
// A successful move ends in a win, a draw, or a turn flip, never more than one.
func (that *Registry) MakeMove(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, *entity.Move, error) {
	game, move, finished, err := that.applyMove(ctx, gameID, playerID, row, col)
	if err != nil {
		return nil, nil, err
	}

	// Published outside the critical section; exactly once per terminal
	// transition.
	if finished {
		that.events <- game.FinishedEvent()
		that.logger.Info("game finished", "gameID", game.ID, "status", game.Status, "winnerID", game.WinnerID)
	}

	return game, move, nil
}

func (that *Registry) applyMove(ctx context.Context, gameID, playerID string, row, col int) (*entity.Game, *entity.Move, bool, error) {
	that.locks.Lock(gameID)
	defer that.locks.Unlock(gameID)

	game, err := that.store.GetByID(ctx, gameID)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmActiveState(); err != nil {
		return nil, nil, false, err
	}

	if game.CurrentPlayerID != playerID {
		return nil, nil, false, apperror.ErrNotYourTurn
	}

	board, err := engine.ApplyMove(game.Board, playerID, row, col)
	if err != nil {
		return nil, nil, false, fmt.Errorf("invalid turn: %w", err)
	}

	now := time.Now().UTC()
	move := entity.Move{
		ID:        uuid.NewString(),
		GameID:    game.ID,
		PlayerID:  playerID,
		Row:       row,
		Col:       col,
		Sequence:  len(game.Moves),
		CreatedAt: now,
	}

	game.Board = board
	game.Moves = append(game.Moves, move)
	game.UpdatedAt = now

	switch {
	case engine.CheckWin(board, playerID).Won:
		game.Status = entity.StatusCompleted
		game.WinnerID = playerID
		game.CurrentPlayerID = ""
	case engine.IsDraw(board):
		game.Status = entity.StatusDraw
		game.CurrentPlayerID = ""
	default:
		next, rotateErr := engine.NextPlayer(game.Players, playerID)
		if rotateErr != nil {
			return nil, nil, false, fmt.Errorf("failed to rotate turn: %w", rotateErr)
		}
		game.CurrentPlayerID = next
	}

	if err = that.store.CreateOrUpdate(ctx, game); err != nil {
		return nil, nil, false, fmt.Errorf("failed to update game: %w", err)
	}

	return game, &move, game.IsFinished(), nil
}

// DeleteGame removes a game. In-progress games are protected.
func (that *Registry) DeleteGame(ctx context.Context, gameID string) error {
	that.locks.Lock(gameID)
	defer that.locks.Unlock(gameID)

	game, err := that.store.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}

	if game.IsActive() {
		return fmt.Errorf("%w: game id %s", apperror.ErrGameInProgress, gameID)
	}

	if err = that.store.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	that.logger.Info("game deleted", "gameID", gameID)

	return nil
}

func (that *Registry) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.store.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

// ListGames returns all games, optionally filtered to one status, newest
// created first.
func (that *Registry) ListGames(ctx context.Context, status string) ([]*entity.Game, error) {
	games, err := that.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	if status != "" {
		filtered := games[:0]
		for _, game := range games {
			if game.Status == status {
				filtered = append(filtered, game)
			}
		}
		games = filtered
	}

	sort.SliceStable(games, func(i, j int) bool {
		if games[i].CreatedAt.Equal(games[j].CreatedAt) {
			return games[i].ID > games[j].ID
		}
		return games[i].CreatedAt.After(games[j].CreatedAt)
	})

	return games, nil
}

// GetValidMoves lists the empty cells of an active game in row-major order.
func (that *Registry) GetValidMoves(ctx context.Context, gameID string) ([]entity.Cell, error) {
	game, err := that.store.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmActiveState(); err != nil {
		return nil, err
	}

	return engine.ValidMoves(game.Board), nil
}
