package repository

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/pkg/pg"
	"gorm.io/gorm"
)

var bankTable = TableSpec{
	Columns:      []string{"id", "name", "user_id", "created_by", "created_at", "updated_at"},
	Searchable:   []string{"name"},
	DefaultOrder: "created_at DESC",
}

type BankRepository struct {
	*pg.DB
}

func NewBankRepository(db *pg.DB) *BankRepository {
	return &BankRepository{
		db,
	}
}

func (r *BankRepository) Create(ctx context.Context, bank *model.Bank) (*model.Bank, error) {
	entity := toBankEntity(bank)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toBankModel(entity), nil
}

func (r *BankRepository) GetByID(ctx context.Context, id int64) (*model.Bank, error) {
	var entity BankEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toBankModel(&entity), nil
}

func (r *BankRepository) ListAll(ctx context.Context) ([]*model.Bank, error) {
	var entities []*BankEntity
	if err := r.Read(ctx).WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toBankModels(entities), nil
}

func (r *BankRepository) UpdateName(ctx context.Context, id int64, name *string, updatedBy string) (*model.Bank, error) {
	var entity BankEntity
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
	return toBankModel(&entity), nil
}

func (r *BankRepository) Delete(ctx context.Context, id int64) error {
	var refs int64
	err := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{}).Where("bank_id = ?", id).Count(&refs).Error
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrInUse
	}

	result := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&BankEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BankRepository) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	q.Normalize()

	var total int64
	if err := r.Read(ctx).WithContext(ctx).Model(&BankEntity{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var filtered int64
	countQ := bankTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&BankEntity{}), q.Search)
	if err := countQ.Count(&filtered).Error; err != nil {
		return nil, err
	}

	var entities []*BankEntity
	pageQ := bankTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&BankEntity{}), q.Search).
		Order(bankTable.OrderClause(q)).
		Offset(q.Start).
		Limit(q.Length)
	if err := pageQ.Find(&entities).Error; err != nil {
		return nil, err
	}

	rows := make([]model.BankRow, len(entities))
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
