package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// memoryGame keeps games in a process-local map behind the same interface as
// the Redis repository. Used when Redis is not configured. Reads hand out
// deep copies so a caller never observes a game mid-mutation.
type memoryGame struct {
	mu    sync.RWMutex
	games map[string]*entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{
		games: make(map[string]*entity.Game),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.games[game.ID] = game.Clone()

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	game, ok := that.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrGameNotFound, id)
	}

	return game.Clone(), nil
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.games, id)

	return nil
}

func (that *memoryGame) ListAll(_ context.Context) ([]*entity.Game, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	games := make([]*entity.Game, 0, len(that.games))
	for _, game := range that.games {
		games = append(games, game.Clone())
	}

	return games, nil
}

type memoryPlayer struct {
	mu      sync.RWMutex
	players map[string]entity.Player
}

func NewMemoryPlayerRepository() PlayerRepository {
	return &memoryPlayer{
		players: make(map[string]entity.Player),
	}
}

func (that *memoryPlayer) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.players[player.ID] = *player

	return nil
}

func (that *memoryPlayer) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	player, ok := that.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperror.ErrPlayerNotFound, id)
	}

	return &player, nil
}

func (that *memoryPlayer) Exists(_ context.Context, id string) (bool, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	_, ok := that.players[id]

	return ok, nil
}
