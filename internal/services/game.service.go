package services

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
)

type GameRepository interface {
	Create(ctx context.Context, game *model.Game) (*model.Game, error)
	GetByID(ctx context.Context, id int64) (*model.Game, error)
	ListAll(ctx context.Context) ([]*model.Game, error)
	UpdateName(ctx context.Context, id int64, name *string, updatedBy string) (*model.Game, error)
	Delete(ctx context.Context, id int64) error
	Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error)
}

type GameService struct {
	games GameRepository
}

func NewGameService(games GameRepository) *GameService {
	return &GameService{
		games: games,
	}
}

func (s *GameService) Create(ctx context.Context, p model.GameCreateRequest, userID, createdBy string) (*model.Game, error) {
	if err := p.Validate(); err != nil {
		return nil, validationErr(err)
	}

	return s.games.Create(ctx, &model.Game{
		Name:      p.Name,
		UserID:    userID,
		CreatedBy: createdBy,
		UpdatedBy: createdBy,
	})
}

func (s *GameService) ListAll(ctx context.Context) ([]*model.Game, error) {
	return s.games.ListAll(ctx)
}

func (s *GameService) Update(ctx context.Context, id int64, name *string, updatedBy string) (*model.Game, error) {
	if name != nil && *name == "" {
		return nil, validationErr(errors.New("name cannot be empty"))
	}

	game, err := s.games.UpdateName(ctx, id, name, updatedBy)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return game, nil
}

func (s *GameService) Delete(ctx context.Context, id int64) error {
	return mapRepoErr(s.games.Delete(ctx, id))
}

func (s *GameService) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	return s.games.Table(ctx, q)
}
