package repository

import (
	"context"
	"errors"

	"github.com/sambathreasmey/library-management-system/internal/model"
	"github.com/sambathreasmey/library-management-system/pkg/pg"
	"gorm.io/gorm"
)

var customerTable = TableSpec{
	Columns:      []string{"id", "name", "acc_id", "user_id", "created_by", "created_at", "updated_at"},
	Searchable:   []string{"name", "acc_id"},
	DefaultOrder: "created_at DESC",
}

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(customer)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

// ListAll feeds the booking form dropdowns.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]*model.Customer, error) {
	var entities []*CustomerEntity
	if err := r.Read(ctx).WithContext(ctx).Order("name ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toCustomerModels(entities), nil
}

func (r *CustomerRepository) Update(ctx context.Context, id int64, p model.CustomerUpdateRequest, updatedBy string) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if p.Name != nil {
		entity.Name = *p.Name
	}
	if p.AccountID != nil {
		entity.AccountID = *p.AccountID
	}
	entity.UpdatedBy = updatedBy

	if err := r.Write(ctx).WithContext(ctx).Save(&entity).Error; err != nil {
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

// Delete refuses to remove a customer still referenced by
// transactions.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	var refs int64
	err := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{}).Where("customer_id = ?", id).Count(&refs).Error
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrInUse
	}

	result := r.Write(ctx).WithContext(ctx).Where("id = ?", id).Delete(&CustomerEntity{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) Table(ctx context.Context, q model.TableQuery) (*model.TableResult, error) {
	q.Normalize()

	var total int64
	if err := r.Read(ctx).WithContext(ctx).Model(&CustomerEntity{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var filtered int64
	countQ := customerTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&CustomerEntity{}), q.Search)
	if err := countQ.Count(&filtered).Error; err != nil {
		return nil, err
	}

	var entities []*CustomerEntity
	pageQ := customerTable.ApplySearch(r.Read(ctx).WithContext(ctx).Model(&CustomerEntity{}), q.Search).
		Order(customerTable.OrderClause(q)).
		Offset(q.Start).
		Limit(q.Length)
	if err := pageQ.Find(&entities).Error; err != nil {
		return nil, err
	}

	rows := make([]model.CustomerRow, len(entities))
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
