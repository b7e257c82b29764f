package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	playerA = "player-a"
	playerB = "player-b"
)

func TestApplyMove(t *testing.T) {
	t.Run("Marks an empty cell and leaves the rest untouched", func(t *testing.T) {
		// Given: an empty board
		var board entity.Board

		// When: player A marks the center
		updated, err := ApplyMove(board, playerA, 1, 1)

		// Then: only the center changed, the input board is untouched
		require.NoError(t, err)
		assert.Equal(t, playerA, updated[1][1])
		assert.Equal(t, 1, updated.OccupiedCells())
		assert.Equal(t, 0, board.OccupiedCells())
	})

	t.Run("Rejects coordinates outside the grid", func(t *testing.T) {
		var board entity.Board

		for _, cell := range []entity.Cell{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 3, Col: 0}, {Row: 0, Col: 3}} {
			_, err := ApplyMove(board, playerA, cell.Row, cell.Col)
			assert.ErrorIs(t, err, apperror.ErrOutOfBounds)
		}
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board where player A holds the center
		var board entity.Board
		board[1][1] = playerA

		// When: player B targets the same cell
		updated, err := ApplyMove(board, playerB, 1, 1)

		// Then: the move fails and the cell keeps its owner
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, playerA, updated[1][1])
	})
}

func TestCheckWin(t *testing.T) {
	lines := []struct {
		name      string
		cells     [3]entity.Cell
		condition string
		index     int
	}{
		{"row 0", [3]entity.Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}, ConditionRow, 0},
		{"row 1", [3]entity.Cell{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}}, ConditionRow, 1},
		{"row 2", [3]entity.Cell{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}}, ConditionRow, 2},
		{"column 0", [3]entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}}, ConditionColumn, 0},
		{"column 1", [3]entity.Cell{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}}, ConditionColumn, 1},
		{"column 2", [3]entity.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}}, ConditionColumn, 2},
		{"main diagonal", [3]entity.Cell{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}}, ConditionDiagonal, 0},
		{"anti diagonal", [3]entity.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}}, ConditionDiagonal, 1},
	}

	for _, line := range lines {
		t.Run("Detects "+line.name, func(t *testing.T) {
			// Given: player A holds all three cells of the line
			var board entity.Board
			for _, cell := range line.cells {
				board[cell.Row][cell.Col] = playerA
			}

			// When: checking the win for player A
			result := CheckWin(board, playerA)

			// Then: the line is reported with its condition and index
			assert.True(t, result.Won)
			assert.Equal(t, line.condition, result.Condition)
			assert.Equal(t, line.index, result.Index)

			// And: the opponent has no win on the same board
			assert.False(t, CheckWin(board, playerB).Won)
		})
	}

	t.Run("Returns no win without three-in-a-row", func(t *testing.T) {
		// Given: a full board with no completed line
		board := entity.Board{
			{playerA, playerA, playerB},
			{playerB, playerB, playerA},
			{playerA, playerA, playerB},
		}

		assert.False(t, CheckWin(board, playerA).Won)
		assert.False(t, CheckWin(board, playerB).Won)
	})
}

func TestIsDraw(t *testing.T) {
	t.Run("Full board is a draw", func(t *testing.T) {
		board := entity.Board{
			{playerA, playerA, playerB},
			{playerB, playerB, playerA},
			{playerA, playerA, playerB},
		}

		assert.True(t, IsDraw(board))
	})

	t.Run("Board with an empty cell is not a draw", func(t *testing.T) {
		board := entity.Board{
			{playerA, playerA, playerB},
			{playerB, entity.EmptyCell, playerA},
			{playerA, playerA, playerB},
		}

		assert.False(t, IsDraw(board))
	})
}

func TestValidMoves(t *testing.T) {
	t.Run("Empty board yields all nine cells in row-major order", func(t *testing.T) {
		var board entity.Board

		cells := ValidMoves(board)

		require.Len(t, cells, 9)
		assert.Equal(t, entity.Cell{Row: 0, Col: 0}, cells[0])
		assert.Equal(t, entity.Cell{Row: 0, Col: 2}, cells[2])
		assert.Equal(t, entity.Cell{Row: 1, Col: 0}, cells[3])
		assert.Equal(t, entity.Cell{Row: 2, Col: 2}, cells[8])
	})

	t.Run("Occupied cells are skipped", func(t *testing.T) {
		// Given: a board with the first row taken
		var board entity.Board
		board[0][0], board[0][1], board[0][2] = playerA, playerB, playerA

		// When: listing valid moves twice
		first := ValidMoves(board)
		second := ValidMoves(board)

		// Then: both calls produce the same six cells, starting at (1,0)
		require.Len(t, first, 6)
		assert.Equal(t, entity.Cell{Row: 1, Col: 0}, first[0])
		assert.Equal(t, first, second)
	})

	t.Run("Full board yields nothing", func(t *testing.T) {
		board := entity.Board{
			{playerA, playerA, playerB},
			{playerB, playerB, playerA},
			{playerA, playerA, playerB},
		}

		assert.Empty(t, ValidMoves(board))
	})
}

func TestNextPlayer(t *testing.T) {
	players := []string{playerA, playerB}

	t.Run("Flips between the two participants", func(t *testing.T) {
		next, err := NextPlayer(players, playerA)
		require.NoError(t, err)
		assert.Equal(t, playerB, next)

		next, err = NextPlayer(players, playerB)
		require.NoError(t, err)
		assert.Equal(t, playerA, next)
	})

	t.Run("Unknown current player is a corrupted-state error", func(t *testing.T) {
		_, err := NextPlayer(players, "intruder")

		assert.ErrorIs(t, err, apperror.ErrCorruptedState)
	})
}
