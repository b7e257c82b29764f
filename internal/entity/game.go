package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const (
	StatusWaiting   = "waiting"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusDraw      = "draw"

	EmptyCell = ""

	BoardSize     = 3
	MaxPlayers    = 2
	MaxNameLength = 100
)

// Board is the 3x3 grid. Each cell holds the id of the occupying player or
// EmptyCell. A cell, once occupied, is never cleared or reassigned.
type Board [BoardSize][BoardSize]string

// Cell addresses one board position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that Board) IsFull() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that Board) OccupiedCells() int {
	count := 0
	for row := range that {
		for col := range that[row] {
			if that[row][col] != EmptyCell {
				count++
			}
		}
	}

	return count
}

// Game is the aggregate root: board, participants, turn, winner and the
// append-only move log.
type Game struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	Board           Board     `json:"board"`
	Players         []string  `json:"players"`
	CurrentPlayerID string    `json:"current_player_id,omitempty"`
	WinnerID        string    `json:"winner_id,omitempty"`
	Moves           []Move    `json:"moves"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewGame(id, name string) *Game {
	now := time.Now().UTC()

	return &Game{
		ID:        id,
		Name:      name,
		Status:    StatusWaiting,
		Players:   []string{},
		Moves:     []Move{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsActive() bool {
	return that.Status == StatusActive
}

// IsFinished reports whether the game reached a terminal status.
func (that *Game) IsFinished() bool {
	return that.Status == StatusCompleted || that.Status == StatusDraw
}

func (that *Game) HasPlayer(playerID string) bool {
	for _, id := range that.Players {
		if id == playerID {
			return true
		}
	}

	return false
}

// ConfirmActiveState gates every move: only an active game accepts turns.
func (that *Game) ConfirmActiveState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsActive():
		return nil
	default:
		return fmt.Errorf("%w: unknown status %q", apperror.ErrCorruptedState, that.Status)
	}
}

// Clone returns a deep copy so callers never share mutable slices with the
// stored aggregate.
func (that *Game) Clone() *Game {
	clone := *that

	if that.Players != nil {
		clone.Players = append([]string(nil), that.Players...)
	}
	if that.Moves != nil {
		clone.Moves = append([]Move(nil), that.Moves...)
	}

	return &clone
}

// FinishedEvent builds the game-finished notification for a terminal game.
// Move counts cover every participant, including one that never moved.
func (that *Game) FinishedEvent() GameFinished {
	counts := make(map[string]int, len(that.Players))
	for _, id := range that.Players {
		counts[id] = 0
	}
	for _, move := range that.Moves {
		counts[move.PlayerID]++
	}

	return GameFinished{
		GameID:     that.ID,
		Status:     that.Status,
		WinnerID:   that.WinnerID,
		MoveCounts: counts,
	}
}

// GameFinished is published once per game reaching a terminal status and
// consumed by the statistics bookkeeping.
type GameFinished struct {
	GameID     string         `json:"game_id"`
	Status     string         `json:"status"`
	WinnerID   string         `json:"winner_id,omitempty"`
	MoveCounts map[string]int `json:"move_counts"`
}
