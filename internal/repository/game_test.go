package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/testing/suite"
)

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a waiting game
	game := entity.NewGame("123", "first game")

	// When: CreateOrUpdate is called
	err := gameRepo.CreateOrUpdate(ctx, game)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestGameRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: a stored active game with moves
		game := entity.NewGame("123", "first game")
		game.Status = entity.StatusActive
		game.Players = []string{"a", "b"}
		game.CurrentPlayerID = "b"
		game.Board[0][0] = "a"
		game.Moves = []entity.Move{{
			ID:        "m1",
			GameID:    game.ID,
			PlayerID:  "a",
			Row:       0,
			Col:       0,
			Sequence:  0,
			CreatedAt: time.Now().UTC(),
		}}

		err := gameRepo.CreateOrUpdate(ctx, game)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

		// Then: the retrieved game round-trips intact
		require.NoError(t, err)
		assert.Equal(t, game.ID, retrievedGame.ID)
		assert.Equal(t, game.Status, retrievedGame.Status)
		assert.Equal(t, game.Players, retrievedGame.Players)
		assert.Equal(t, game.CurrentPlayerID, retrievedGame.CurrentPlayerID)
		assert.Equal(t, game.Board, retrievedGame.Board)
		require.Len(t, retrievedGame.Moves, 1)
		assert.Equal(t, "m1", retrievedGame.Moves[0].ID)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		_, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrGameNotFound)
	})
}

func TestGameRepository_DeleteByID(t *testing.T) {
	ctx, st := suite.New(t)

	gameRepo := NewGameRepository(st.Storage)

	// Given: a stored game
	game := entity.NewGame("123", "first game")
	require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

	// When: DeleteByID is called
	err := gameRepo.DeleteByID(ctx, game.ID)

	// Then: the game is gone
	require.NoError(t, err)

	_, err = gameRepo.GetByID(ctx, game.ID)
	assert.ErrorIs(t, err, apperror.ErrGameNotFound)
}

func TestGameRepository_ListAll(t *testing.T) {
	t.Run("ListAll_Empty", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		games, err := gameRepo.ListAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("ListAll_ReturnsEveryGame", func(t *testing.T) {
		ctx, st := suite.New(t)

		gameRepo := NewGameRepository(st.Storage)

		// Given: three stored games
		for _, id := range []string{"1", "2", "3"} {
			require.NoError(t, gameRepo.CreateOrUpdate(ctx, entity.NewGame(id, "game "+id)))
		}

		// When: listing all games
		games, err := gameRepo.ListAll(ctx)

		// Then: all three come back
		require.NoError(t, err)
		require.Len(t, games, 3)

		ids := make(map[string]bool, len(games))
		for _, game := range games {
			ids[game.ID] = true
		}
		assert.Equal(t, map[string]bool{"1": true, "2": true, "3": true}, ids)
	})
}
