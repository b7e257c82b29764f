package apperror

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")

	ErrGameNotStarted = errors.New("game is not started")
	ErrGameFinished   = errors.New("game is already finished")
	ErrGameInProgress = errors.New("game is still in progress")

	ErrNotYourTurn = errors.New("it's not your turn")

	ErrOutOfBounds  = errors.New("cell is out of bounds")
	ErrCellOccupied = errors.New("cell is already occupied")

	ErrGameFull      = errors.New("game already has two players")
	ErrAlreadyJoined = errors.New("player already joined this game")

	ErrValidation = errors.New("invalid input")

	// ErrCorruptedState marks an internal-consistency violation. It is never
	// caused by caller input and must not be mapped to a user-facing failure.
	ErrCorruptedState = errors.New("game state is corrupted")
)
