package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

// RegisterPlayerInput is the registration payload.
type RegisterPlayerInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type PlayerService struct {
	playerRepo playerRepo
	validate   *validator.Validate
}

func NewPlayerService(playerRepo playerRepo) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (that *PlayerService) Register(ctx context.Context, input RegisterPlayerInput) (*entity.Player, error) {
	if err := that.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrValidation, err)
	}

	player := &entity.Player{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *PlayerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}
