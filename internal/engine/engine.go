// Package engine holds the pure Tic-Tac-Toe rules: move legality, win and
// draw detection, turn rotation. It owns no storage and is safe to call from
// any number of goroutines.
package engine

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	ConditionRow      = "row"
	ConditionColumn   = "column"
	ConditionDiagonal = "diagonal"
)

// WinResult reports whether a player completed a line and which one.
// Scan order is rows, columns, then diagonals; the first match is an
// arbitrary fixed tie-break, since a single move can complete at most one
// new line.
type WinResult struct {
	Won       bool   `json:"won"`
	Condition string `json:"condition,omitempty"`
	Index     int    `json:"index"`
}

// ApplyMove marks the target cell with playerID and returns the updated
// board. The input board is never modified.
func ApplyMove(board entity.Board, playerID string, row, col int) (entity.Board, error) {
	if !board.InBounds(row, col) {
		return board, fmt.Errorf("%w: cell (%d,%d)", apperror.ErrOutOfBounds, row, col)
	}

	if board[row][col] != entity.EmptyCell {
		return board, fmt.Errorf("%w: cell (%d,%d)", apperror.ErrCellOccupied, row, col)
	}

	board[row][col] = playerID

	return board, nil
}

// CheckWin scans all 3 rows, 3 columns and both diagonals for
// three-in-a-row of playerID. It only needs to run for the player who just
// moved.
func CheckWin(board entity.Board, playerID string) WinResult {
	for row := 0; row < entity.BoardSize; row++ {
		if board[row][0] == playerID && board[row][1] == playerID && board[row][2] == playerID {
			return WinResult{Won: true, Condition: ConditionRow, Index: row}
		}
	}

	for col := 0; col < entity.BoardSize; col++ {
		if board[0][col] == playerID && board[1][col] == playerID && board[2][col] == playerID {
			return WinResult{Won: true, Condition: ConditionColumn, Index: col}
		}
	}

	if board[0][0] == playerID && board[1][1] == playerID && board[2][2] == playerID {
		return WinResult{Won: true, Condition: ConditionDiagonal, Index: 0}
	}

	if board[0][2] == playerID && board[1][1] == playerID && board[2][0] == playerID {
		return WinResult{Won: true, Condition: ConditionDiagonal, Index: 1}
	}

	return WinResult{}
}

// IsDraw reports a full board. Callers must check for a win first: a full
// board holding a winning line is a win, not a draw.
func IsDraw(board entity.Board) bool {
	return board.IsFull()
}

// ValidMoves lists all empty cells in row-major order. The slice is computed
// fresh on every call.
func ValidMoves(board entity.Board) []entity.Cell {
	var cells []entity.Cell

	for row := 0; row < entity.BoardSize; row++ {
		for col := 0; col < entity.BoardSize; col++ {
			if board[row][col] == entity.EmptyCell {
				cells = append(cells, entity.Cell{Row: row, Col: col})
			}
		}
	}

	return cells
}

// NextPlayer returns the other participant of a two-player game. A current
// player missing from the list is an internal-consistency violation, not a
// user-facing failure.
func NextPlayer(players []string, currentPlayerID string) (string, error) {
	for i, id := range players {
		if id == currentPlayerID {
			return players[(i+1)%len(players)], nil
		}
	}

	return "", fmt.Errorf("%w: current player %q is not a participant", apperror.ErrCorruptedState, currentPlayerID)
}
