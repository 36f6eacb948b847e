package repository

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/pkg/pg"
	"gorm.io/gorm"
)

var gameTable = TableSpec{
	Columns:      []string{"id", "name", "user_id", "created_by", "created_at", "updated_at"},
	Searchable:   []string{"name"},
	DefaultOrder: "created_at DESC",
}

type GameRepository struct {
	*pg.DB
}

func NewGameRepository(db *pg.DB) *GameRepository {
	return &GameRepository{
		db,
	}
}

func (r *GameRepository) Create(ctx context.Context, game *model.Game) (*model.Game, error) {
	entity := toGameEntity(game)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toGameModel(entity), nil
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	var entity GameEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toGameModel(&entity), nil
}

func (r *GameRepository) ListAll(ctx context.Context) ([]*model.Game, error) {
	var entities []*GameEntity
	if err := r.Read(ctx).WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toGameModels(entities), nil
}

func (r *GameRepository) UpdateName(ctx context.Context, id int64, name *string, updatedBy string) (*model.Game, error) {
	var entity GameEntity
	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name != nil {
		entity.Name = *name
	}
	entity.UpdatedBy = updatedBy

	if err := r.Write(ctx).WithContext(ctx).Save(&entity).Error; err != nil {
		return nil, err
	}
	return toGameModel(&entity), nil
}

func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	var refs int64
	err := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{}).Where("game_id = ?", id).Count(&refs).Error
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrInUse
	}

	result := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&GameEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GameRepository) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	q.Normalize()

	var total int64
	if err := r.Read(ctx).WithContext(ctx).Model(&GameEntity{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var filtered int64
	countQ := gameTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&GameEntity{}), q.Search)
	if err := countQ.Count(&filtered).Error; err != nil {
		return nil, err
	}

	var entities []*GameEntity
	pageQ := gameTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&GameEntity{}), q.Search).
		Order(gameTable.OrderClause(q)).
		Offset(q.Start).
		Limit(q.Length)
	if err := pageQ.Find(&entities).Error; err != nil {
		return nil, err
	}

	rows := make([]model.GameRow, len(entities))
	for i, e := range entities {
		rows[i] = e.toRow()
	}

	return &model.TableResult{
		Draw:            q.Draw,
		RecordsTotal:    total,
		RecordsFiltered: filtered,
		Data:            rows,
	}, nil
}
