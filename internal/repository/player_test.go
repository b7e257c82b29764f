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

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	// Given: a player record
	player := &entity.Player{
		ID:        "p1",
		Name:      "Alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now().UTC(),
	}

	// When: CreateOrUpdate is called
	err := playerRepo.CreateOrUpdate(ctx, player)

	// Then: no error should be returned
	require.NoError(t, err)
}

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		player := &entity.Player{ID: "p1", Name: "Alice", Email: "alice@example.com"}
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

		// When: GetByID is called with existing ID
		retrieved, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player should match the saved player
		require.NoError(t, err)
		assert.Equal(t, player.ID, retrieved.ID)
		assert.Equal(t, player.Name, retrieved.Name)
		assert.Equal(t, player.Email, retrieved.Email)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		_, err := playerRepo.GetByID(ctx, "missing")

		// Then: an ErrPlayerNotFound error should be returned
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrPlayerNotFound)
	})
}

func TestPlayerRepository_Exists(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	require.NoError(t, playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: "p1", Name: "Alice"}))

	exists, err := playerRepo.Exists(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = playerRepo.Exists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}
